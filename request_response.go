package falconbridge

import "time"

// NormalizedRequest carries everything one dispatch call needs. It is owned
// by a single Perform call and never shared.
type NormalizedRequest struct {
	Operation string
	Method    string
	Endpoint  string
	Headers   map[string]string
	Params    map[string]any

	// Body is sent as JSON. Data is sent as-is when it is []byte or string,
	// or form encoded when it is a map.
	Body  any
	Data  any
	Files []File

	SkipTLSVerify bool
	Proxy         map[string]string
	Timeout       time.Duration

	BodyValidator Schema
	BodyRequired  []string

	ExpandResult  bool
	ContainerCall bool
}

// File is one multipart attachment.
type File struct {
	Field       string
	Name        string
	ContentType string
	Content     []byte
}

// Response is what the dispatcher hands back. Exactly one of Envelope and Raw
// is set: binary payloads come back unwrapped unless the caller asked for an
// expanded result.
type Response struct {
	Envelope *Result
	Raw      []byte
	Expanded bool
}

// StatusCode returns the envelope status, or 200 for unwrapped binary bodies.
func (r *Response) StatusCode() int {
	if r.Envelope != nil {
		return r.Envelope.StatusCode
	}
	return 200
}

// NormalizedRateLimitInfo is the last rate limit state reported by the API.
type NormalizedRateLimitInfo struct {
	MaxRequests       *int
	RemainingRequests *int
	ResetRequestsAt   *int64
}
