package falconbridge

import "strings"

// Region is one Falcon cloud and the hosts that serve it.
type Region struct {
	Name          string
	APIHost       string
	ContainerHost string
	RegistryHost  string
}

const (
	commercialRegistry = "registry.crowdstrike.com"
	govRegistry        = "registry.laggar.gcw.crowdstrike.com"

	// DefaultRegion is assumed when a base URL matches no known cloud.
	DefaultRegion = "US1"
)

var regions = []Region{
	{Name: "US1", APIHost: "api.crowdstrike.com", ContainerHost: "container-upload.us-1.crowdstrike.com", RegistryHost: commercialRegistry},
	{Name: "US2", APIHost: "api.us-2.crowdstrike.com", ContainerHost: "container-upload.us-2.crowdstrike.com", RegistryHost: commercialRegistry},
	{Name: "EU1", APIHost: "api.eu-1.crowdstrike.com", ContainerHost: "container-upload.eu-1.crowdstrike.com", RegistryHost: commercialRegistry},
	{Name: "USGOV1", APIHost: "api.laggar.gcw.crowdstrike.com", ContainerHost: "container-upload.laggar.gcw.crowdstrike.com", RegistryHost: govRegistry},
	{Name: "USGOV2", APIHost: "api.us-gov-2.crowdstrike.mil", RegistryHost: govRegistry},
}

// Regions lists every known cloud.
func Regions() []Region {
	out := make([]Region, len(regions))
	copy(out, regions)
	return out
}

// BaseURLRegions returns the short names accepted by ConfirmBaseURL.
func BaseURLRegions() []string {
	out := make([]string, 0, len(regions))
	for _, r := range regions {
		out = append(out, r.Name)
	}
	return out
}

func regionByName(name string) (Region, bool) {
	key := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), "-", ""))
	for _, r := range regions {
		if r.Name == key {
			return r, true
		}
	}
	return Region{}, false
}

func regionByURL(base string) (Region, bool) {
	host := strings.TrimSuffix(base, "/")
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	host = strings.ToLower(host)
	for _, r := range regions {
		if r.APIHost == host {
			return r, true
		}
	}
	return Region{}, false
}

// ConfirmBaseURL normalizes a region name (US-1, us1, US-GOV-1, ...) or a
// host or URL into a canonical base URL without a trailing slash. An empty
// value selects US1.
func ConfirmBaseURL(provided string) string {
	provided = strings.TrimSpace(provided)
	if provided == "" {
		provided = DefaultRegion
	}
	if r, ok := regionByName(provided); ok {
		return "https://" + r.APIHost
	}
	if !strings.Contains(provided, "://") {
		provided = "https://" + provided
	}
	return strings.TrimRight(provided, "/")
}

// ConfirmBaseRegion is the inverse of ConfirmBaseURL. Unknown URLs report US1.
func ConfirmBaseRegion(base string) string {
	if r, ok := regionByURL(base); ok {
		return r.Name
	}
	return DefaultRegion
}

// AutodiscoverRegion returns the base URL for the region named by the
// X-Cs-Region response header when it differs from provided. Without the
// header, or for an unknown region, provided is returned unchanged.
func AutodiscoverRegion(provided string, headers map[string]string) string {
	var signalled string
	for k, v := range headers {
		if strings.EqualFold(k, "X-Cs-Region") {
			signalled = v
			break
		}
	}
	if signalled == "" {
		return provided
	}
	r, ok := regionByName(signalled)
	if !ok || r.Name == ConfirmBaseRegion(provided) {
		return provided
	}
	return "https://" + r.APIHost
}

// ContainerBaseURL maps an API base URL to the container upload host of the
// same cloud. Bases outside the known clouds are returned unchanged.
func ContainerBaseURL(apiBase string) string {
	if r, ok := regionByURL(apiBase); ok && r.ContainerHost != "" {
		return "https://" + r.ContainerHost
	}
	return apiBase
}

// SensorRegistryHost returns the sensor image registry serving apiBase.
func SensorRegistryHost(apiBase string) string {
	if r, ok := regionByURL(apiBase); ok {
		return r.RegistryHost
	}
	return commercialRegistry
}
