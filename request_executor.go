package falconbridge

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var allowedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPatch:  true,
	http.MethodPut:    true,
	http.MethodDelete: true,
}

// Dispatcher performs exactly one HTTP call per request and normalizes the
// outcome. It never returns a transport error; every failure becomes an
// error envelope.
type Dispatcher struct {
	Logger       *zerolog.Logger
	RecordMax    int
	Limiter      *RateLimiter
	Certificates []tls.Certificate

	mu         sync.Mutex
	transports map[string]*http.Transport
}

// NewDispatcher returns a dispatcher that logs to logger (nil disables
// traces) and paces through limiter (nil disables pacing).
func NewDispatcher(logger *zerolog.Logger, limiter *RateLimiter) *Dispatcher {
	return &Dispatcher{
		Logger:     logger,
		RecordMax:  DefaultRecordMax,
		Limiter:    limiter,
		transports: make(map[string]*http.Transport),
	}
}

// Perform sends req and returns its normalized response.
func (d *Dispatcher) Perform(ctx context.Context, req *NormalizedRequest) *Response {
	method := strings.ToUpper(req.Method)
	if !allowedMethods[method] {
		d.debugf("invalid method %q for %s", req.Method, req.Endpoint)
		return &Response{Envelope: ErrorResult("Invalid API operation specified.", http.StatusMethodNotAllowed, nil)}
	}

	if req.BodyValidator != nil {
		body, _ := req.Body.(map[string]any)
		if err := ValidatePayload(req.BodyValidator, body, req.BodyRequired); err != nil {
			d.debugf("payload validation failed for %s: %v", req.Endpoint, err)
			return &Response{Envelope: ErrorResult(err.Error(), http.StatusInternalServerError, nil)}
		}
	}

	headers := d.headers(req.Headers)

	resp, err := d.send(ctx, method, req, headers)
	if err != nil {
		d.debugf("ERROR: %v", err)
		return &Response{Envelope: ErrorResult(err.Error(), http.StatusInternalServerError, nil)}
	}

	d.trace(req, method, headers, resp)
	return resp
}

func (d *Dispatcher) headers(in map[string]string) map[string]string {
	out := make(map[string]string, len(in)+2)
	for k, v := range canonicalHeaders(in) {
		out[k] = v
	}
	if _, ok := out["User-Agent"]; !ok {
		out["User-Agent"] = DefaultUserAgent
	}
	out[http.CanonicalHeaderKey("CrowdStrike-SDK")] = DefaultUserAgent
	return out
}

// canonicalHeaders folds header names to their canonical form. When one name
// appears under two spellings, the non-canonical spelling wins.
func canonicalHeaders(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		ck := http.CanonicalHeaderKey(k)
		if _, seen := out[ck]; seen && k == ck {
			continue
		}
		out[ck] = v
	}
	return out
}

func (d *Dispatcher) send(ctx context.Context, method string, req *NormalizedRequest, headers map[string]string) (*Response, error) {
	target, err := url.Parse(req.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endpoint %q: %v", ErrTransportFailure, req.Endpoint, err)
	}
	if len(req.Params) > 0 {
		q := target.Query()
		for k, vs := range EncodeQuery(req.Params) {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		target.RawQuery = q.Encode()
	}

	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	if err := d.Limiter.Wait(ctx, target.Host); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransportFailure, err)
	}
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}
	if contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	client := &http.Client{
		Transport: d.transport(req.SkipTLSVerify, req.Proxy),
		Timeout:   req.Timeout,
	}
	httpResp, err := client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	respHeaders := flattenHeaders(httpResp.Header)
	d.Limiter.Record(target.Host, respHeaders)

	isJSON := strings.HasPrefix(httpResp.Header.Get("Content-Type"), "application/json") || req.ContainerCall
	if isJSON {
		var decoded any
		if len(bytes.TrimSpace(data)) == 0 || json.Unmarshal(data, &decoded) != nil {
			d.debugf("%s: %v", req.Operation, ErrDecodeEmpty)
			return &Response{Envelope: OKResult(NoContentMessage, httpResp.StatusCode, respHeaders)}, nil
		}
		return &Response{
			Envelope: &Result{StatusCode: httpResp.StatusCode, Headers: respHeaders, Body: decoded},
			Expanded: req.ExpandResult,
		}, nil
	}

	if req.ExpandResult {
		return &Response{
			Envelope: &Result{StatusCode: httpResp.StatusCode, Headers: respHeaders, Body: data},
			Expanded: true,
		}, nil
	}
	return &Response{Raw: data}, nil
}

func encodeBody(req *NormalizedRequest) (io.Reader, string, error) {
	if len(req.Files) > 0 {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		if fields, ok := req.Data.(map[string]any); ok {
			keys := make([]string, 0, len(fields))
			for k := range fields {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				if err := w.WriteField(k, formatScalar(fields[k])); err != nil {
					return nil, "", err
				}
			}
		}
		for _, f := range req.Files {
			h := make(textproto.MIMEHeader)
			h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.Name))
			ct := f.ContentType
			if ct == "" {
				ct = "application/octet-stream"
			}
			h.Set("Content-Type", ct)
			part, err := w.CreatePart(h)
			if err != nil {
				return nil, "", err
			}
			if _, err := part.Write(f.Content); err != nil {
				return nil, "", err
			}
		}
		if err := w.Close(); err != nil {
			return nil, "", err
		}
		return &buf, w.FormDataContentType(), nil
	}

	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, "", fmt.Errorf("encoding body: %w", err)
		}
		return bytes.NewReader(data), "application/json", nil
	}

	switch data := req.Data.(type) {
	case nil:
		return nil, "", nil
	case []byte:
		return bytes.NewReader(data), "", nil
	case string:
		return strings.NewReader(data), "", nil
	case map[string]any:
		form := url.Values{}
		for k, vs := range EncodeQuery(data) {
			form[k] = vs
		}
		return strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", nil
	case map[string]string:
		form := url.Values{}
		for k, v := range data {
			form.Set(k, v)
		}
		return strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", nil
	default:
		return nil, "", fmt.Errorf("unsupported data payload %T", req.Data)
	}
}

// transport returns a cached transport for the TLS and proxy settings of a
// call.
func (d *Dispatcher) transport(skipVerify bool, proxy map[string]string) *http.Transport {
	key := fmt.Sprintf("%t|%s|%s", skipVerify, proxy["http"], proxy["https"])

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.transports == nil {
		d.transports = make(map[string]*http.Transport)
	}
	if t, ok := d.transports[key]; ok {
		return t
	}

	t := http.DefaultTransport.(*http.Transport).Clone()
	t.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: skipVerify,
		Certificates:       d.Certificates,
	}
	if len(proxy) > 0 {
		t.Proxy = proxyFunc(proxy)
	}
	d.transports[key] = t
	return t
}

func proxyFunc(proxy map[string]string) func(*http.Request) (*url.URL, error) {
	return func(r *http.Request) (*url.URL, error) {
		raw, ok := proxy[r.URL.Scheme]
		if !ok || raw == "" {
			return nil, nil
		}
		return url.Parse(raw)
	}
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, vs := range h {
		out[k] = strings.Join(vs, ", ")
	}
	return out
}

func (d *Dispatcher) debugf(format string, args ...any) {
	if d.Logger != nil {
		d.Logger.Debug().Msgf(format, args...)
	}
}

// trace writes the redacted record of one call.
func (d *Dispatcher) trace(req *NormalizedRequest, method string, headers map[string]string, resp *Response) {
	if d.Logger == nil {
		return
	}
	ev := d.Logger.Debug().
		Str("operation", req.Operation).
		Str("endpoint", req.Endpoint).
		Str("method", method).
		Interface("headers", Sanitize(headers, d.RecordMax))
	if req.Params != nil {
		ev = ev.Interface("parameters", Sanitize(req.Params, d.RecordMax))
	}
	if req.Body != nil {
		ev = ev.Interface("body", Sanitize(req.Body, d.RecordMax))
	}
	if req.Data != nil {
		if _, raw := req.Data.([]byte); raw {
			ev = ev.Str("data", "binary payload")
		} else {
			ev = ev.Interface("data", Sanitize(req.Data, d.RecordMax))
		}
	}
	switch {
	case resp.Envelope != nil:
		if _, binary := resp.Envelope.Body.([]byte); binary {
			ev = ev.Int("status_code", resp.Envelope.StatusCode).Str("result", "binary response received from API")
		} else {
			ev = ev.Int("status_code", resp.Envelope.StatusCode).Interface("result", Sanitize(resp.Envelope, d.RecordMax))
		}
	default:
		ev = ev.Str("result", "binary response received from API")
	}
	ev.Msg("api activity")
}
