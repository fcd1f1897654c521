package falconbridge

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// ============================================================================
// Method and payload checks
// ============================================================================

func TestPerformInvalidMethod(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	d := NewDispatcher(nil, nil)
	resp := d.Perform(context.Background(), &NormalizedRequest{Method: "TRACE", Endpoint: srv.URL})

	if resp.Envelope == nil || resp.Envelope.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("Perform() = %+v, want 405 envelope", resp)
	}
	if got := resp.Envelope.Errors(); len(got) != 1 || got[0] != "Invalid API operation specified." {
		t.Errorf("Errors() = %v", got)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Error("request was sent for an invalid method")
	}
}

func TestPerformValidatorShortCircuits(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	d := NewDispatcher(nil, nil)
	resp := d.Perform(context.Background(), &NormalizedRequest{
		Method:        http.MethodPost,
		Endpoint:      srv.URL,
		Body:          map[string]any{"ids": "x"},
		BodyValidator: Schema{"ids": KindList},
	})

	if resp.Envelope.StatusCode != 500 {
		t.Errorf("StatusCode = %d, want 500", resp.Envelope.StatusCode)
	}
	if got := resp.Envelope.Errors(); len(got) != 1 || !strings.Contains(got[0], "Should be: list") {
		t.Errorf("Errors() = %v", got)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Error("request was sent despite a validation failure")
	}
}

// ============================================================================
// Response classification
// ============================================================================

func TestPerformJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query()["ids"][1] != "b" {
			t.Errorf("query = %v", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Ratelimit-Remaining", "5")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, `{"resources":["a"],"errors":[]}`)
	}))
	defer srv.Close()

	d := NewDispatcher(nil, nil)
	resp := d.Perform(context.Background(), &NormalizedRequest{
		Method:   "get",
		Endpoint: srv.URL + "/things",
		Params:   map[string]any{"ids": []string{"a", "b"}},
	})
	if resp.Envelope == nil {
		t.Fatal("Envelope = nil")
	}
	if resp.Envelope.StatusCode != 200 {
		t.Errorf("StatusCode = %d", resp.Envelope.StatusCode)
	}
	if got := resp.Envelope.Resources(); len(got) != 1 || got[0] != "a" {
		t.Errorf("Resources() = %v", got)
	}
	if resp.Envelope.Headers["X-Ratelimit-Remaining"] != "5" {
		t.Errorf("Headers = %v", resp.Envelope.Headers)
	}
}

func TestPerformEmptyJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	resp := NewDispatcher(nil, nil).Perform(context.Background(), &NormalizedRequest{Method: "DELETE", Endpoint: srv.URL})
	if resp.Envelope == nil || resp.Envelope.StatusCode != http.StatusNoContent {
		t.Fatalf("Perform() = %+v", resp)
	}
	body := resp.Envelope.Body.(map[string]any)
	if body["message"] != "No content returned" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestPerformBinary(t *testing.T) {
	payload := []byte{0x4d, 0x5a, 0x00, 0x01}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	d := NewDispatcher(nil, nil)

	raw := d.Perform(context.Background(), &NormalizedRequest{Method: "GET", Endpoint: srv.URL})
	if raw.Envelope != nil || !bytes.Equal(raw.Raw, payload) {
		t.Errorf("raw Perform() = %+v", raw)
	}

	expanded := d.Perform(context.Background(), &NormalizedRequest{Method: "GET", Endpoint: srv.URL, ExpandResult: true})
	if expanded.Envelope == nil || !expanded.Expanded {
		t.Fatalf("expanded Perform() = %+v", expanded)
	}
	if got, _ := expanded.Envelope.Body.([]byte); !bytes.Equal(got, payload) {
		t.Errorf("expanded Body = %v", expanded.Envelope.Body)
	}
	if expanded.Envelope.Headers["Content-Type"] != "application/octet-stream" {
		t.Errorf("expanded Headers = %v", expanded.Envelope.Headers)
	}
}

func TestPerformContainerCallDecodesJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, `{"vulnerabilities":[]}`)
	}))
	defer srv.Close()

	resp := NewDispatcher(nil, nil).Perform(context.Background(), &NormalizedRequest{Method: "GET", Endpoint: srv.URL, ContainerCall: true})
	if resp.Envelope == nil {
		t.Fatal("Envelope = nil")
	}
	if _, ok := resp.Envelope.Body.(map[string]any)["vulnerabilities"]; !ok {
		t.Errorf("Body = %v", resp.Envelope.Body)
	}
}

func TestPerformTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	resp := NewDispatcher(nil, nil).Perform(context.Background(), &NormalizedRequest{Method: "GET", Endpoint: url, Timeout: time.Second})
	if resp.Envelope == nil || resp.Envelope.StatusCode != 500 {
		t.Fatalf("Perform() = %+v, want 500 envelope", resp)
	}
	if len(resp.Envelope.Errors()) != 1 {
		t.Errorf("Errors() = %v", resp.Envelope.Errors())
	}
}

// ============================================================================
// Headers and bodies
// ============================================================================

func TestPerformHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	d := NewDispatcher(nil, nil)

	d.Perform(context.Background(), &NormalizedRequest{Method: "GET", Endpoint: srv.URL})
	if got.Get("User-Agent") != DefaultUserAgent {
		t.Errorf("User-Agent = %q, want %q", got.Get("User-Agent"), DefaultUserAgent)
	}
	if got.Get("CrowdStrike-SDK") != DefaultUserAgent {
		t.Errorf("CrowdStrike-SDK = %q", got.Get("CrowdStrike-SDK"))
	}

	d.Perform(context.Background(), &NormalizedRequest{
		Method:   "GET",
		Endpoint: srv.URL,
		Headers:  map[string]string{"user-agent": "custom/1.0", "CrowdStrike-SDK": "spoofed"},
	})
	if got.Get("User-Agent") != "custom/1.0" {
		t.Errorf("User-Agent = %q, want custom/1.0", got.Get("User-Agent"))
	}
	if got.Get("CrowdStrike-SDK") != DefaultUserAgent {
		t.Errorf("CrowdStrike-SDK = %q, want %q", got.Get("CrowdStrike-SDK"), DefaultUserAgent)
	}
}

func TestMergeHeadersCanonical(t *testing.T) {
	for i := 0; i < 20; i++ {
		got := mergeHeaders(
			map[string]string{"user-agent": "cfg/1.0", "x-team": "blue"},
			map[string]string{"User-Agent": "default", "user-agent": "caller/2.0"},
		)
		if len(got) != 2 {
			t.Fatalf("mergeHeaders() = %v, want two canonical keys", got)
		}
		if got["User-Agent"] != "caller/2.0" || got["X-Team"] != "blue" {
			t.Fatalf("mergeHeaders() = %v", got)
		}
	}
}

func TestPerformBodies(t *testing.T) {
	type seen struct {
		contentType string
		body        []byte
	}
	var last seen
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		last = seen{contentType: r.Header.Get("Content-Type"), body: data}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	d := NewDispatcher(nil, nil)

	d.Perform(context.Background(), &NormalizedRequest{Method: "POST", Endpoint: srv.URL, Body: map[string]any{"a": 1}})
	var decoded map[string]any
	if err := json.Unmarshal(last.body, &decoded); err != nil || decoded["a"] != float64(1) {
		t.Errorf("json body = %s (%v)", last.body, err)
	}
	if last.contentType != "application/json" {
		t.Errorf("json Content-Type = %q", last.contentType)
	}

	d.Perform(context.Background(), &NormalizedRequest{Method: "POST", Endpoint: srv.URL, Data: map[string]any{"client_id": "x", "client_secret": "y"}})
	if string(last.body) != "client_id=x&client_secret=y" {
		t.Errorf("form body = %q", last.body)
	}
	if last.contentType != "application/x-www-form-urlencoded" {
		t.Errorf("form Content-Type = %q", last.contentType)
	}

	d.Perform(context.Background(), &NormalizedRequest{
		Method:   "POST",
		Endpoint: srv.URL,
		Data:     map[string]any{"comment": "hi"},
		Files:    []File{{Field: "file", Name: "sample.bin", Content: []byte("payload")}},
	})
	if !strings.HasPrefix(last.contentType, "multipart/form-data; boundary=") {
		t.Errorf("multipart Content-Type = %q", last.contentType)
	}
	for _, want := range []string{`name="comment"`, "hi", `filename="sample.bin"`, "payload"} {
		if !bytes.Contains(last.body, []byte(want)) {
			t.Errorf("multipart body missing %q", want)
		}
	}
}

// ============================================================================
// Debug trace
// ============================================================================

func TestPerformTraceRedacts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"access_token":"tok-value","resources":[1,2,3]}`)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	d := NewDispatcher(&logger, nil)
	d.RecordMax = 2

	d.Perform(context.Background(), &NormalizedRequest{
		Operation: "oauth2AccessToken",
		Method:    "POST",
		Endpoint:  srv.URL,
		Headers:   map[string]string{"Authorization": "Bearer secret-token"},
		Data:      map[string]any{"client_id": "id-value", "client_secret": "secret-value"},
	})

	out := buf.String()
	for _, leaked := range []string{"tok-value", "id-value", "secret-value", "secret-token"} {
		if strings.Contains(out, leaked) {
			t.Errorf("trace leaked %q: %s", leaked, out)
		}
	}
	if !strings.Contains(out, `"operation":"oauth2AccessToken"`) {
		t.Errorf("trace missing operation: %s", out)
	}
	if !strings.Contains(out, `"resources":[1,2]`) {
		t.Errorf("trace did not truncate resources: %s", out)
	}
}

func TestPerformCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDispatcher(nil, NewRateLimiter(1, false))
	resp := d.Perform(ctx, &NormalizedRequest{Method: "GET", Endpoint: srv.URL})
	if resp.Envelope == nil || resp.Envelope.StatusCode != 500 {
		t.Fatalf("Perform() = %+v", resp)
	}
	if !strings.Contains(resp.Envelope.Errors()[0], context.Canceled.Error()) {
		t.Errorf("Errors() = %v", resp.Envelope.Errors())
	}
}
