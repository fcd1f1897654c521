package endpoint

// OAuth2Endpoints describes the token operations.
var OAuth2Endpoints = []Descriptor{
	{
		OperationID: "oauth2AccessToken",
		Method:      "POST",
		Path:        "/oauth2/token",
		Description: "Generate an OAuth2 access token",
		Tag:         "oauth2",
		Parameters: []ParameterSpec{
			{Name: "client_id", In: InFormData, Type: TypeString, Required: true, Description: "The API client ID to authenticate your API requests."},
			{Name: "client_secret", In: InFormData, Type: TypeString, Required: true, Description: "The API client secret to authenticate your API requests."},
			{Name: "member_cid", In: InFormData, Type: TypeString, Description: "For MSSP Master CIDs, optionally lock the token to act on behalf of this member CID"},
		},
	},
	{
		OperationID: "oauth2RevokeToken",
		Method:      "POST",
		Path:        "/oauth2/revoke",
		Description: "Revoke a previously issued OAuth2 access token before the end of its standard 30-minute lifespan.",
		Tag:         "oauth2",
		Parameters: []ParameterSpec{
			{Name: "token", In: InFormData, Type: TypeString, Required: true, Description: "The OAuth2 access token you want to revoke."},
		},
	},
}

// EventStreamsEndpoints describes the event-streams operations.
var EventStreamsEndpoints = []Descriptor{
	{
		OperationID: "listAvailableStreamsOAuth2",
		Method:      "GET",
		Path:        "/sensors/entities/datafeed/v2",
		Description: "Discover all event streams in your environment",
		Tag:         "event-streams",
		Parameters: []ParameterSpec{
			{Name: "appId", In: InQuery, Type: TypeString, Required: true, Description: "Label that identifies your connection."},
			{Name: "format", In: InQuery, Type: TypeString, Enum: []string{"json", "flatjson"}, Description: "Format for streaming events."},
		},
	},
	{
		OperationID: "refreshActiveStreamSession",
		Method:      "POST",
		Path:        "/sensors/entities/datafeed-actions/v1/{}",
		Description: "Refresh an active event stream. Use the URL shown in a GET /sensors/entities/datafeed/v2 response.",
		Tag:         "event-streams",
		Parameters: []ParameterSpec{
			{Name: "action_name", In: InQuery, Type: TypeString, Required: true, Default: "refresh_active_stream_session", Enum: []string{"refresh_active_stream_session"}, Description: "Action name."},
			{Name: "appId", In: InQuery, Type: TypeString, Required: true, Description: "Label that identifies your connection."},
			{Name: "partition", In: InPath, Type: TypeInteger, Required: true, Description: "Partition to request data for."},
		},
	},
}

// SensorUpdatePoliciesEndpoints describes the sensor update kernel operations.
var SensorUpdatePoliciesEndpoints = []Descriptor{
	{
		OperationID: "queryCombinedSensorUpdateKernels",
		Method:      "GET",
		Path:        "/policy/combined/sensor-update-kernels/v1",
		Description: "Retrieve kernel compatibility info for Sensor Update Builds",
		Tag:         "sensor-update-policies",
		Parameters: []ParameterSpec{
			{Name: "filter", In: InQuery, Type: TypeString, Description: "An FQL filter expression."},
			{Name: "offset", In: InQuery, Type: TypeInteger, Description: "The offset to start retrieving records from"},
			{Name: "limit", In: InQuery, Type: TypeInteger, Maximum: intPtr(500), Description: "The maximum records to return. [1-500]"},
		},
	},
	{
		OperationID: "querySensorUpdateKernelsDistinct",
		Method:      "GET",
		Path:        "/policy/queries/sensor-update-kernels/{}/v1",
		Description: "Retrieve kernel compatibility info for Sensor Update Builds",
		Tag:         "sensor-update-policies",
		Parameters: []ParameterSpec{
			{Name: "distinct-field", In: InPath, Type: TypeString, Required: true, Description: "The field name to get distinct values for"},
			{Name: "filter", In: InQuery, Type: TypeString, Description: "An FQL filter expression."},
			{Name: "offset", In: InQuery, Type: TypeInteger, Description: "The offset to start retrieving records from"},
			{Name: "limit", In: InQuery, Type: TypeInteger, Maximum: intPtr(500), Description: "The maximum records to return. [1-500]"},
		},
	},
}

// FalconContainerEndpoints describes the container image operations. The
// operations listed in ContainerOperations are served by the container upload
// host instead of the API host.
var FalconContainerEndpoints = []Descriptor{
	{
		OperationID: "GetCredentials",
		Method:      "GET",
		Path:        "/container-security/entities/image-registry-credentials/v1",
		Description: "Gets the registry credentials",
		Tag:         "falcon-container",
	},
	{
		OperationID: "GetImageAssessmentReport",
		Method:      "GET",
		Path:        "/reports",
		Description: "Retrieve an assessment report for an image by specifying repository and tag",
		Tag:         "falcon-container",
		Parameters: []ParameterSpec{
			{Name: "repository", In: InQuery, Type: TypeString, Description: "Repository where the image resides"},
			{Name: "tag", In: InQuery, Type: TypeString, Description: "Tag used for the image assessed"},
			{Name: "image_id", In: InQuery, Type: TypeString, Description: "ID of the image"},
			{Name: "digest", In: InQuery, Type: TypeString, Description: "Digest of the image"},
		},
	},
	{
		OperationID: "DeleteImageDetails",
		Method:      "DELETE",
		Path:        "/images/{}",
		Description: "Delete image details from the CrowdStrike registry.",
		Tag:         "falcon-container",
		Parameters: []ParameterSpec{
			{Name: "image_id", In: InPath, Type: TypeString, Required: true, Description: "ID of the image"},
		},
	},
}

// ContainerOperations are dispatched to the container upload host and always
// decoded as JSON.
var ContainerOperations = map[string]bool{
	"GetImageAssessmentReport": true,
	"DeleteImageDetails":       true,
}

// SensorDownloadEndpoints describes the sensor installer operations.
var SensorDownloadEndpoints = []Descriptor{
	{
		OperationID: "GetSensorInstallersCCIDByQuery",
		Method:      "GET",
		Path:        "/sensors/queries/installers/ccid/v1",
		Description: "Get CCID to use with sensor installers",
		Tag:         "sensor-download",
	},
	{
		OperationID: "GetCombinedSensorInstallersByQuery",
		Method:      "GET",
		Path:        "/sensors/combined/installers/v1",
		Description: "Get sensor installer details by provided query",
		Tag:         "sensor-download",
		Parameters: []ParameterSpec{
			{Name: "offset", In: InQuery, Type: TypeInteger, Description: "The first item to return"},
			{Name: "limit", In: InQuery, Type: TypeInteger, Description: "The number of items to return in this response (default: 100, max: 500)."},
			{Name: "sort", In: InQuery, Type: TypeString, Description: "Sort items by providing a comma separated list of property and direction"},
			{Name: "filter", In: InQuery, Type: TypeString, Description: "Filter items using a query in Falcon Query Language (FQL)."},
		},
	},
	{
		OperationID: "DownloadSensorInstallerById",
		Method:      "GET",
		Path:        "/sensors/entities/download-installer/v1",
		Description: "Download sensor installer by SHA256 ID",
		Tag:         "sensor-download",
		Parameters: []ParameterSpec{
			{Name: "id", In: InQuery, Type: TypeString, Required: true, Description: "SHA256 of the installer to download"},
		},
	},
}
