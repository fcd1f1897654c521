// sdk.go
// ------
// The sdk.go file contains the Bridge type, the entry point of the SDK.
//
// Key functionalities include:
// - Building a Bridge from a Config with New()
// - Resolving an operation id, its path placeholders and query parameters
// - Dispatching through the Dispatcher with authorization headers applied
// - Running any registered operation by id with Command()
//
// A Bridge performs exactly one HTTP request per call. Rate limit state and
// the token cache are the only state shared between calls.
package falconbridge

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/opengovern/falcon-bridge/endpoint"
)

// Version is reported in the default User-Agent.
const Version = "0.4.0"

// DefaultUserAgent identifies this SDK to the API.
const DefaultUserAgent = "falcon-bridge/" + Version

type Bridge struct {
	mu         sync.Mutex
	auth       Authenticator
	dispatcher *Dispatcher
	limiter    *RateLimiter
	registry   *endpoint.Registry
	logger     *zerolog.Logger
}

// Option customizes a Bridge.
type Option func(*Bridge)

// WithLogger sends debug traces to logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(b *Bridge) { b.logger = logger }
}

// WithAuthenticator replaces the client credentials flow.
func WithAuthenticator(auth Authenticator) Option {
	return func(b *Bridge) { b.auth = auth }
}

// WithRegistry replaces the compiled-in operation registry used by Command.
func WithRegistry(r *endpoint.Registry) Option {
	return func(b *Bridge) { b.registry = r }
}

// New validates cfg and returns a Bridge.
func New(cfg *Config, opts ...Option) (*Bridge, error) {
	if cfg == nil {
		cfg = ConfigFromEnv()
	}
	b := &Bridge{}
	for _, opt := range opts {
		opt(b)
	}
	if b.auth == nil {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if b.logger == nil && cfg.Debug {
		l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
			With().Timestamp().Logger().Level(zerolog.DebugLevel)
		b.logger = &l
	}
	if b.registry == nil {
		b.registry = endpoint.Default()
	}

	b.limiter = NewRateLimiter(cfg.RequestsPerSecond, cfg.HonorRateLimits)
	b.dispatcher = NewDispatcher(b.logger, b.limiter)
	b.dispatcher.RecordMax = cfg.recordMax()

	cert, err := cfg.LoadClientCertificate()
	if err != nil {
		return nil, err
	}
	if cert != nil {
		b.dispatcher.Certificates = append(b.dispatcher.Certificates, *cert)
	}

	if b.auth == nil {
		b.auth = NewTokenAuth(cfg, b.dispatcher, b.logger)
	}
	b.debugf("bridge ready for %s", b.auth.Settings().BaseURL)
	return b, nil
}

// Auth returns the authenticator in use.
func (b *Bridge) Auth() Authenticator {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.auth
}

// Registry returns the operation registry used by Command.
func (b *Bridge) Registry() *endpoint.Registry {
	return b.registry
}

// BaseURL returns the current base URL, which may have changed after the
// first token exchange.
func (b *Bridge) BaseURL() string {
	return b.Auth().Settings().BaseURL
}

// GetRateLimitInfo returns the last rate limit state reported for the API
// host.
func (b *Bridge) GetRateLimitInfo() *NormalizedRateLimitInfo {
	u, err := url.Parse(b.BaseURL())
	if err != nil {
		return nil
	}
	return b.limiter.GetRateLimitInfo(u.Host)
}

// ServiceRequest describes one call made on behalf of a service method.
type ServiceRequest struct {
	Endpoints   []endpoint.Descriptor
	OperationID string

	Keywords Keywords
	Params   map[string]any
	Headers  map[string]string
	Body     any
	Data     any
	Files    []File

	BodyValidator Schema
	BodyRequired  []string
	ExpandResult  bool

	// Method and Path are used only by the Manual operation.
	Method string
	Path   string
}

// ProcessServiceRequest resolves req against its endpoint table and performs
// it.
func (b *Bridge) ProcessServiceRequest(ctx context.Context, req ServiceRequest) *Response {
	b.debugf("OPERATION: %s", req.OperationID)

	var desc endpoint.Descriptor
	if req.OperationID == ManualOperation {
		desc = endpoint.Descriptor{OperationID: ManualOperation, Method: req.Method, Path: req.Path}
		if desc.Method == "" {
			desc.Method = http.MethodGet
		}
	} else {
		found, err := endpoint.Find(req.Endpoints, req.OperationID)
		if err != nil {
			b.debugf("ERROR: %v", err)
			return &Response{Envelope: ErrorResult(err.Error(), http.StatusInternalServerError, nil)}
		}
		desc = found
	}

	// The first token exchange may move the bridge to another cloud, so
	// settings are read after authorizing.
	var authHeaders map[string]string
	if desc.Tag != "oauth2" {
		h, err := b.Auth().AuthHeaders(ctx)
		if err != nil {
			b.debugf("ERROR: %v", err)
			return &Response{Envelope: ErrorResult(err.Error(), http.StatusUnauthorized, nil)}
		}
		authHeaders = h
	}

	settings := b.Auth().Settings()
	base := settings.BaseURL
	container := endpoint.ContainerOperations[desc.OperationID]
	if container {
		base = ContainerBaseURL(base)
	}

	path := desc.Path
	if desc.Placeholders() > 0 {
		values, err := PathValues(desc, req.Keywords)
		if err != nil {
			return &Response{Envelope: ErrorResult(err.Error(), http.StatusInternalServerError, nil)}
		}
		for _, v := range values {
			path = strings.Replace(path, "{}", url.PathEscape(v), 1)
		}
	}

	var params map[string]any
	if len(req.Keywords) > 0 || len(req.Params) > 0 {
		params = ArgsToParams(req.Params, req.Keywords, req.Endpoints, desc.OperationID)
	}

	data := req.Data
	if data == nil && len(req.Files) == 0 {
		if form := FormValues(desc, req.Keywords); len(form) > 0 {
			data = form
		}
	}

	headers := mergeHeaders(settings.Headers, authHeaders, req.Headers)
	if settings.UserAgent != "" {
		if _, ok := canonicalHeaders(req.Headers)["User-Agent"]; !ok {
			headers["User-Agent"] = settings.UserAgent
		}
	}

	expand := req.ExpandResult
	if v, ok := req.Keywords["expand_result"].(bool); ok && v {
		expand = true
	}

	return b.dispatcher.Perform(ctx, &NormalizedRequest{
		Operation:     desc.OperationID,
		Method:        desc.Method,
		Endpoint:      base + path,
		Headers:       headers,
		Params:        params,
		Body:          req.Body,
		Data:          data,
		Files:         req.Files,
		SkipTLSVerify: !settings.SSLVerify,
		Proxy:         settings.Proxy,
		Timeout:       settings.Timeout,
		BodyValidator: req.BodyValidator,
		BodyRequired:  req.BodyRequired,
		ExpandResult:  expand,
		ContainerCall: container,
	})
}

// CommandOptions are the inputs of a Command call.
type CommandOptions struct {
	Keywords     Keywords
	Parameters   map[string]any
	Headers      map[string]string
	Body         any
	Data         any
	Files        []File
	ExpandResult bool

	// Method and Path are required for the Manual operation.
	Method string
	Path   string
}

// Command performs any registered operation by id. The Manual operation
// sends Method and Path as given.
func (b *Bridge) Command(ctx context.Context, operationID string, opts CommandOptions) *Response {
	req := ServiceRequest{
		OperationID:  operationID,
		Keywords:     opts.Keywords,
		Params:       opts.Parameters,
		Headers:      opts.Headers,
		Body:         opts.Body,
		Data:         opts.Data,
		Files:        opts.Files,
		ExpandResult: opts.ExpandResult,
		Method:       opts.Method,
		Path:         opts.Path,
	}
	if operationID != ManualOperation {
		desc, err := b.registry.Lookup(operationID)
		if err != nil {
			b.debugf("ERROR: %v", err)
			return &Response{Envelope: ErrorResult(err.Error(), http.StatusInternalServerError, nil)}
		}
		req.Endpoints = []endpoint.Descriptor{desc}
	}
	return b.ProcessServiceRequest(ctx, req)
}

// debugf writes a debug message when a logger is configured.
func (b *Bridge) debugf(format string, args ...any) {
	if b.logger != nil {
		b.logger.Debug().Msgf(format, args...)
	}
}
