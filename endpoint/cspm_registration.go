package endpoint

var cloudProviders = []string{"aws", "azure", "gcp"}

// CSPMRegistrationEndpoints describes the cspm-registration operations.
var CSPMRegistrationEndpoints = []Descriptor{
	{
		OperationID: "GetCSPMAwsAccount",
		Method:      "GET",
		Path:        "/cloud-connect-cspm-aws/entities/account/v1",
		Description: "Returns information about the current status of an AWS account.",
		Tag:         "cspm-registration",
		Parameters: []ParameterSpec{
			{Name: "scan-type", In: InQuery, Type: TypeString, Enum: []string{"dry", "full"}, Description: "Type of scan, dry or full, to perform on selected accounts"},
			{Name: "ids", In: InQuery, Type: TypeArray, Description: "AWS account IDs"},
			{Name: "iam_role_arns", In: InQuery, Type: TypeArray, Description: "AWS IAM role ARNs"},
			{Name: "organization-ids", In: InQuery, Type: TypeArray, Description: "AWS organization IDs"},
			{Name: "status", In: InQuery, Type: TypeString, Enum: []string{"provisioned", "operational"}, Description: "Account status to filter results by."},
			{Name: "limit", In: InQuery, Type: TypeInteger, Default: 100, Maximum: intPtr(1000), Description: "The maximum records to return. Defaults to 100."},
			{Name: "offset", In: InQuery, Type: TypeInteger, Description: "The offset to start retrieving records from"},
			{Name: "migrated", In: InQuery, Type: TypeString, Enum: []string{"true", "false"}, Description: "Only return migrated d4c accounts"},
			{Name: "group_by", In: InQuery, Type: TypeString, Enum: []string{"organization"}, Description: "Field to group by."},
		},
	},
	{
		OperationID: "CreateCSPMAwsAccount",
		Method:      "POST",
		Path:        "/cloud-connect-cspm-aws/entities/account/v1",
		Description: "Creates a new account in our system for a customer and generates a script for them to run in their AWS cloud environment to grant us access.",
		Tag:         "cspm-registration",
		Parameters:  []ParameterSpec{{Name: "body", In: InBody, Required: true}},
	},
	{
		OperationID: "DeleteCSPMAwsAccount",
		Method:      "DELETE",
		Path:        "/cloud-connect-cspm-aws/entities/account/v1",
		Description: "Deletes an existing AWS account or organization in our system.",
		Tag:         "cspm-registration",
		Parameters: []ParameterSpec{
			{Name: "ids", In: InQuery, Type: TypeArray, Description: "AWS account IDs to remove"},
			{Name: "organization-ids", In: InQuery, Type: TypeArray, Description: "AWS organization IDs to remove"},
		},
	},
	{
		OperationID: "PatchCSPMAwsAccount",
		Method:      "PATCH",
		Path:        "/cloud-connect-cspm-aws/entities/account/v1",
		Description: "Patches a existing account in our system for a customer.",
		Tag:         "cspm-registration",
		Parameters:  []ParameterSpec{{Name: "body", In: InBody, Required: true}},
	},
	{
		OperationID: "GetCSPMAwsConsoleSetupURLs",
		Method:      "GET",
		Path:        "/cloud-connect-cspm-aws/entities/console-setup-urls/v1",
		Description: "Return a URL for customer to visit in their cloud environment to grant us access to their AWS environment.",
		Tag:         "cspm-registration",
		Parameters: []ParameterSpec{
			{Name: "ids", In: InQuery, Type: TypeArray, Description: "AWS account IDs"},
			{Name: "use_existing_cloudtrail", In: InQuery, Type: TypeString, Enum: []string{"true", "false"}},
			{Name: "region", In: InQuery, Type: TypeString, Description: "Region"},
		},
	},
	{
		OperationID: "GetCSPMAwsAccountScriptsAttachment",
		Method:      "GET",
		Path:        "/cloud-connect-cspm-aws/entities/user-scripts-download/v1",
		Description: "Return a script for customer to run in their cloud environment to grant us access to their AWS environment as a downloadable attachment.",
		Tag:         "cspm-registration",
		Parameters: []ParameterSpec{
			{Name: "ids", In: InQuery, Type: TypeArray, Description: "AWS account IDs"},
		},
	},
	{
		OperationID: "GetCSPMAzureAccount",
		Method:      "GET",
		Path:        "/cloud-connect-cspm-azure/entities/account/v1",
		Description: "Return information about Azure account registration",
		Tag:         "cspm-registration",
		Parameters: []ParameterSpec{
			{Name: "ids", In: InQuery, Type: TypeArray, Description: "SubscriptionIDs of accounts to select for this status operation."},
			{Name: "tenant_ids", In: InQuery, Type: TypeArray, Description: "Tenant ids to filter azure accounts"},
			{Name: "scan-type", In: InQuery, Type: TypeString, Enum: []string{"dry", "full"}, Description: "Type of scan, dry or full, to perform on selected accounts"},
			{Name: "status", In: InQuery, Type: TypeString, Enum: []string{"provisioned", "operational"}, Description: "Account status to filter results by."},
			{Name: "limit", In: InQuery, Type: TypeInteger, Default: 100, Maximum: intPtr(1000), Description: "The maximum records to return. Defaults to 100."},
			{Name: "offset", In: InQuery, Type: TypeInteger, Description: "The offset to start retrieving records from"},
		},
	},
	{
		OperationID: "CreateCSPMAzureAccount",
		Method:      "POST",
		Path:        "/cloud-connect-cspm-azure/entities/account/v1",
		Description: "Creates a new account in our system for a customer and generates a script for them to run in their cloud environment to grant us access.",
		Tag:         "cspm-registration",
		Parameters:  []ParameterSpec{{Name: "body", In: InBody, Required: true}},
	},
	{
		OperationID: "DeleteCSPMAzureAccount",
		Method:      "DELETE",
		Path:        "/cloud-connect-cspm-azure/entities/account/v1",
		Description: "Deletes an Azure subscription from the system.",
		Tag:         "cspm-registration",
		Parameters: []ParameterSpec{
			{Name: "ids", In: InQuery, Type: TypeArray, Description: "Azure subscription IDs to remove"},
			{Name: "tenant_ids", In: InQuery, Type: TypeArray, Description: "Tenant ids to remove"},
			{Name: "retain_tenant", In: InQuery, Type: TypeString, Description: "Retain the tenant"},
		},
	},
	{
		OperationID: "UpdateCSPMAzureAccountClientID",
		Method:      "PATCH",
		Path:        "/cloud-connect-cspm-azure/entities/client-id/v1",
		Description: "Update an Azure service account in our system by with the user-created client_id created with the public key we've provided",
		Tag:         "cspm-registration",
		Parameters: []ParameterSpec{
			{Name: "id", In: InQuery, Type: TypeString, Description: "ClientID to use for the Service Principal associated with the Azure account"},
			{Name: "tenant-id", In: InQuery, Type: TypeString, Description: "Tenant ID to update client ID for. Required if multiple tenants are registered."},
		},
	},
	{
		OperationID: "UpdateCSPMAzureTenantDefaultSubscriptionID",
		Method:      "PATCH",
		Path:        "/cloud-connect-cspm-azure/entities/default-subscription-id/v1",
		Description: "Update an Azure default subscription_id in our system for given tenant_id",
		Tag:         "cspm-registration",
		Parameters: []ParameterSpec{
			{Name: "tenant-id", In: InQuery, Type: TypeString, Description: "Tenant ID to update client ID for. Required if multiple tenants are registered."},
			{Name: "subscription_id", In: InQuery, Type: TypeString, Required: true, Description: "Default Subscription ID to patch for all subscriptions belonged to a tenant."},
		},
	},
	{
		OperationID: "AzureDownloadCertificate",
		Method:      "GET",
		Path:        "/cloud-connect-cspm-azure/entities/download-certificate/v1",
		Description: "Returns JSON object(s) that contain the base64 encoded certificate for a service principal.",
		Tag:         "cspm-registration",
		Parameters: []ParameterSpec{
			{Name: "tenant_id", In: InQuery, Type: TypeArray, Required: true, Description: "Azure Tenant ID"},
			{Name: "refresh", In: InQuery, Type: TypeBoolean, Default: false},
			{Name: "years_valid", In: InQuery, Type: TypeString, Description: "Years the certificate should be valid (only used when refresh=true)"},
		},
	},
	{
		OperationID: "GetCSPMAzureUserScriptsAttachment",
		Method:      "GET",
		Path:        "/cloud-connect-cspm-azure/entities/user-scripts-download/v1",
		Description: "Return a script for customer to run in their cloud environment to grant us access to their Azure environment as a downloadable attachment",
		Tag:         "cspm-registration",
		Parameters: []ParameterSpec{
			{Name: "tenant-id", In: InQuery, Type: TypeString, Description: "Tenant ID to generate script for. Defaults to most recently registered tenant."},
			{Name: "subscription_ids", In: InQuery, Type: TypeArray, Description: "Subscription IDs to generate script for. Defaults to all."},
			{Name: "account_type", In: InQuery, Type: TypeString, Enum: []string{"commercial", "gov"}},
			{Name: "template", In: InQuery, Type: TypeString, Description: "Template to be rendered"},
		},
	},
	{
		OperationID: "GetBehaviorDetections",
		Method:      "GET",
		Path:        "/detects/entities/ioa/v1",
		Description: "Get list of detected behaviors",
		Tag:         "cspm-registration",
		Parameters: []ParameterSpec{
			{Name: "cloud_provider", In: InQuery, Type: TypeString, Enum: cloudProviders, Description: "Cloud Provider (e.g.: aws|azure|gcp)"},
			{Name: "service", In: InQuery, Type: TypeString, Description: "Cloud Service (e.g. EC2 | S3)"},
			{Name: "account_id", In: InQuery, Type: TypeString, Description: "Cloud Account ID (e.g.: AWS accountID, Azure subscriptionID)"},
			{Name: "aws_account_id", In: InQuery, Type: TypeString, Description: "AWS Account ID"},
			{Name: "azure_subscription_id", In: InQuery, Type: TypeString, Description: "Azure Subscription ID"},
			{Name: "azure_tenant_id", In: InQuery, Type: TypeString, Description: "Azure Tenant ID"},
			{Name: "state", In: InQuery, Type: TypeString, Enum: []string{"closed", "open"}, Description: "State"},
			{Name: "date_time_since", In: InQuery, Type: TypeString, Description: "Filter to get all events after this date, in format RFC3339"},
			{Name: "since", In: InQuery, Type: TypeString, Default: "24h", Description: "Filter events using a duration string (e.g. 24h)"},
			{Name: "severity", In: InQuery, Type: TypeString, Enum: []string{"High", "Medium", "Informational"}, Description: "Policy Severity"},
			{Name: "next_token", In: InQuery, Type: TypeString, Description: "String to get next page of results"},
			{Name: "limit", In: InQuery, Type: TypeInteger, Maximum: intPtr(500), Description: "The max number of detections to return"},
			{Name: "resource_id", In: InQuery, Type: TypeArray, Description: "Resource ID"},
			{Name: "resource_uuid", In: InQuery, Type: TypeArray, Description: "Resource UUID"},
		},
	},
	{
		OperationID: "GetConfigurationDetections",
		Method:      "GET",
		Path:        "/detects/entities/iom/v1",
		Description: "Get list of active misconfigurations",
		Tag:         "cspm-registration",
		Parameters: []ParameterSpec{
			{Name: "cloud_provider", In: InQuery, Type: TypeString, Enum: cloudProviders, Description: "Cloud Provider (e.g.: aws|azure|gcp)"},
			{Name: "account_id", In: InQuery, Type: TypeString, Description: "Cloud Account ID (e.g.: AWS accountID, Azure subscriptionID)"},
			{Name: "aws_account_id", In: InQuery, Type: TypeString, Description: "AWS Account ID"},
			{Name: "azure_subscription_id", In: InQuery, Type: TypeString, Description: "Azure Subscription ID"},
			{Name: "azure_tenant_id", In: InQuery, Type: TypeString, Description: "Azure Tenant ID"},
			{Name: "status", In: InQuery, Type: TypeString, Enum: []string{"all", "new", "reoccurring"}, Description: "Status"},
			{Name: "region", In: InQuery, Type: TypeString, Description: "Cloud Provider Region"},
			{Name: "severity", In: InQuery, Type: TypeString, Enum: []string{"High", "Medium", "Informational"}, Description: "Policy Severity"},
			{Name: "service", In: InQuery, Type: TypeString, Description: "Cloud Service (e.g. EC2 | S3)"},
			{Name: "next_token", In: InQuery, Type: TypeString, Description: "String to get next page of results"},
			{Name: "limit", In: InQuery, Type: TypeInteger, Maximum: intPtr(500), Description: "The max number of detections to return"},
		},
	},
	{
		OperationID: "GetConfigurationDetectionEntities",
		Method:      "GET",
		Path:        "/detects/entities/iom/v2",
		Description: "Get misconfigurations based on the ID - including custom policy detections in addition to default policy detections.",
		Tag:         "cspm-registration",
		Parameters: []ParameterSpec{
			{Name: "ids", In: InQuery, Type: TypeArray, Required: true, Description: "detection ids"},
		},
	},
	{
		OperationID: "GetConfigurationDetectionIDsV2",
		Method:      "GET",
		Path:        "/detects/queries/iom/v2",
		Description: "Get list of active misconfiguration ids - including custom policy detections in addition to default policy detections.",
		Tag:         "cspm-registration",
		Parameters: []ParameterSpec{
			{Name: "filter", In: InQuery, Type: TypeString, Description: "use_current_scan_ids - use this to get records for latest scans"},
			{Name: "sort", In: InQuery, Type: TypeString, Default: "timestamp|desc", Description: "Sort order"},
			{Name: "limit", In: InQuery, Type: TypeInteger, Default: 500, Description: "The max number of detections to return"},
			{Name: "offset", In: InQuery, Type: TypeInteger, Description: "Offset returned detections"},
		},
	},
	{
		OperationID: "GetIOAEvents",
		Method:      "GET",
		Path:        "/ioa/entities/events/v1",
		Description: "For CSPM IOA events, gets list of IOA events.",
		Tag:         "cspm-registration",
		Parameters: []ParameterSpec{
			{Name: "policy_id", In: InQuery, Type: TypeString, Required: true, Description: "Policy ID"},
			{Name: "cloud_provider", In: InQuery, Type: TypeString, Required: true, Enum: cloudProviders, Description: "Cloud Provider (e.g.: aws|azure|gcp)"},
			{Name: "account_id", In: InQuery, Type: TypeString, Description: "Cloud account ID (e.g.: AWS accountID, Azure subscriptionID)"},
			{Name: "aws_account_id", In: InQuery, Type: TypeString, Description: "AWS accountID"},
			{Name: "azure_subscription_id", In: InQuery, Type: TypeString, Description: "Azure subscription ID"},
			{Name: "azure_tenant_id", In: InQuery, Type: TypeString, Description: "Azure tenant ID"},
			{Name: "user_ids", In: InQuery, Type: TypeArray, Description: "user IDs"},
			{Name: "state", In: InQuery, Type: TypeString, Description: "state"},
			{Name: "offset", In: InQuery, Type: TypeInteger, Description: "Starting index of overall result set from which to return events."},
			{Name: "limit", In: InQuery, Type: TypeInteger, Description: "The maximum records to return. [1-500]"},
		},
	},
	{
		OperationID: "GetIOAUsers",
		Method:      "GET",
		Path:        "/ioa/entities/users/v1",
		Description: "For CSPM IOA users, gets list of IOA users.",
		Tag:         "cspm-registration",
		Parameters: []ParameterSpec{
			{Name: "policy_id", In: InQuery, Type: TypeString, Required: true, Description: "Policy ID"},
			{Name: "state", In: InQuery, Type: TypeString, Description: "state"},
			{Name: "cloud_provider", In: InQuery, Type: TypeString, Required: true, Enum: cloudProviders, Description: "Cloud Provider (e.g.: aws|azure|gcp)"},
			{Name: "account_id", In: InQuery, Type: TypeString, Description: "Cloud account ID (e.g.: AWS accountID, Azure subscriptionID)"},
			{Name: "aws_account_id", In: InQuery, Type: TypeString, Description: "AWS accountID"},
			{Name: "azure_subscription_id", In: InQuery, Type: TypeString, Description: "Azure subscription ID"},
			{Name: "azure_tenant_id", In: InQuery, Type: TypeString, Description: "Azure tenant ID"},
		},
	},
	{
		OperationID: "GetCSPMPolicy",
		Method:      "GET",
		Path:        "/settings/entities/policy-details/v1",
		Description: "Given a policy ID, returns detailed policy information.",
		Tag:         "cspm-registration",
		Parameters: []ParameterSpec{
			{Name: "ids", In: InQuery, Type: TypeString, Required: true, Description: "Policy ID"},
		},
	},
	{
		OperationID: "GetCSPMPoliciesDetails",
		Method:      "GET",
		Path:        "/settings/entities/policy-details/v2",
		Description: "Given an array of policy IDs, returns detailed policies information.",
		Tag:         "cspm-registration",
		Parameters: []ParameterSpec{
			{Name: "ids", In: InQuery, Type: TypeArray, Required: true, Description: "Policy IDs"},
		},
	},
	{
		OperationID: "GetCSPMPolicySettings",
		Method:      "GET",
		Path:        "/settings/entities/policy/v1",
		Description: "Returns information about current policy settings.",
		Tag:         "cspm-registration",
		Parameters: []ParameterSpec{
			{Name: "service", In: InQuery, Type: TypeString, Description: "Service type to filter policy settings by."},
			{Name: "policy-id", In: InQuery, Type: TypeString, Description: "Policy ID"},
			{Name: "cloud-platform", In: InQuery, Type: TypeString, Enum: cloudProviders, Description: "Cloud Platform"},
		},
	},
	{
		OperationID: "UpdateCSPMPolicySettings",
		Method:      "PATCH",
		Path:        "/settings/entities/policy/v1",
		Description: "Updates a policy setting - can be used to override policy severity or to disable a policy entirely.",
		Tag:         "cspm-registration",
		Parameters:  []ParameterSpec{{Name: "body", In: InBody, Required: true}},
	},
	{
		OperationID: "GetCSPMScanSchedule",
		Method:      "GET",
		Path:        "/settings/scan-schedule/v1",
		Description: "Returns scan schedule configuration for one or more cloud platforms.",
		Tag:         "cspm-registration",
		Parameters: []ParameterSpec{
			{Name: "cloud-platform", In: InQuery, Type: TypeArray, Description: "Cloud Platform"},
		},
	},
	{
		OperationID: "UpdateCSPMScanSchedule",
		Method:      "POST",
		Path:        "/settings/scan-schedule/v1",
		Description: "Updates scan schedule configuration for one or more cloud platforms.",
		Tag:         "cspm-registration",
		Parameters:  []ParameterSpec{{Name: "body", In: InBody, Required: true}},
	},
}
