// Package mock serves a fake Falcon API over httptest for tests and local
// experiments. It issues signed JWT access tokens, reports a region header,
// tracks rate limits and echoes every authorized call back as JSON.
package mock

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	MockDefaultMaxRequests = 100
	MockDefaultWindowSecs  = 60

	DefaultClientID     = "mock-client-id"
	DefaultClientSecret = "mock-client-secret"

	// InstallerBody is what the installer download endpoint returns.
	InstallerBody = "MZ-falcon-sensor-installer"
	// CCID and RegistryToken back the sensor registry credential endpoints.
	CCID          = "0123456789ABCDEF0123456789ABCDEF-A1"
	RegistryToken = "mock-registry-token"
)

// RecordedRequest is one call the server received.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Server is a fake Falcon API.
type Server struct {
	*httptest.Server

	ClientID     string
	ClientSecret string
	// Region is sent in X-Cs-Region on token responses.
	Region string

	RequestsUntilRateLimit int  // How many requests until we hit a limit
	ShouldReturn429Always  bool // If true, always return 429
	MaxRequests            int
	WindowSecs             int64

	mu                  sync.Mutex
	signingKey          []byte
	handlers            map[string]http.HandlerFunc
	requests            []RecordedRequest
	currentRequestCount int
	tokensIssued        int
}

// NewServer starts a fake API with default credentials and region us-1.
func NewServer() *Server {
	s := &Server{
		ClientID:     DefaultClientID,
		ClientSecret: DefaultClientSecret,
		Region:       "us-1",
		MaxRequests:  MockDefaultMaxRequests,
		WindowSecs:   MockDefaultWindowSecs,
		signingKey:   []byte("mock-signing-key"),
		handlers:     make(map[string]http.HandlerFunc),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", s.handleToken)
	mux.HandleFunc("/oauth2/revoke", s.handleRevoke)
	mux.HandleFunc("/", s.handleAPI)
	s.handlers["/sensors/queries/installers/ccid/v1"] = resourcesHandler(CCID)
	s.handlers["/container-security/entities/image-registry-credentials/v1"] = resourcesHandler(map[string]any{"token": RegistryToken})
	s.Server = httptest.NewServer(s.record(mux))
	return s
}

// Handle overrides the response for one path.
func (s *Server) Handle(path string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[path] = h
}

// Requests returns every call received so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// TokensIssued reports how many token exchanges succeeded.
func (s *Server) TokensIssued() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokensIssued
}

// IssueToken signs an access token valid for ttl.
func (s *Server) IssueToken(ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   s.ClientID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErrors(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeErrors(w, http.StatusBadRequest, err.Error())
		return
	}
	if r.PostForm.Get("client_id") != s.ClientID || r.PostForm.Get("client_secret") != s.ClientSecret {
		writeErrors(w, http.StatusForbidden, "access denied, invalid client_id or client_secret")
		return
	}
	tok, err := s.IssueToken(30 * time.Minute)
	if err != nil {
		writeErrors(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.mu.Lock()
	s.tokensIssued++
	region := s.Region
	s.mu.Unlock()

	w.Header().Set("X-Cs-Region", region)
	writeJSON(w, http.StatusCreated, map[string]any{
		"access_token": tok,
		"token_type":   "bearer",
		"expires_in":   1799,
	})
}

func (s *Server) handleRevoke(w http.ResponseWriter, r *http.Request) {
	user, pass, ok := r.BasicAuth()
	if !ok || user != s.ClientID || pass != s.ClientSecret {
		writeErrors(w, http.StatusUnauthorized, "invalid basic credentials")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"meta": map[string]any{}, "resources": []any{}, "errors": []any{}})
}

func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		writeErrors(w, http.StatusUnauthorized, "access denied, authorization failed")
		return
	}

	limited, remaining := s.countRequest()
	w.Header().Set("X-Ratelimit-Limit", strconv.Itoa(s.MaxRequests))
	w.Header().Set("X-Ratelimit-Remaining", strconv.Itoa(remaining))
	if limited {
		w.Header().Set("X-Ratelimit-Retryafter", strconv.FormatInt(time.Now().Unix()+s.WindowSecs, 10))
		writeErrors(w, http.StatusTooManyRequests, "API rate limit exceeded.")
		return
	}

	s.mu.Lock()
	h, ok := s.handlers[r.URL.Path]
	s.mu.Unlock()
	if ok {
		h(w, r)
		return
	}

	if r.URL.Path == "/sensors/entities/download-installer/v1" {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, InstallerBody)
		return
	}

	query := map[string]any{}
	for k, vs := range r.URL.Query() {
		query[k] = vs
	}
	var body any
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 && strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(raw, &body)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"meta": map[string]any{
			"method": r.Method,
			"path":   r.URL.Path,
			"query":  query,
			"body":   body,
		},
		"resources": []any{fmt.Sprintf("%s %s", r.Method, r.URL.Path)},
		"errors":    []any{},
	})
}

func (s *Server) authorized(r *http.Request) bool {
	raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if raw == "" {
		return false
	}
	tok, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.signingKey, nil
	})
	return err == nil && tok.Valid
}

// countRequest applies the mock rate limit and reports whether the call is
// over it, and how many requests remain in the window.
func (s *Server) countRequest() (bool, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentRequestCount++
	remaining := s.MaxRequests - s.currentRequestCount
	if remaining < 0 {
		remaining = 0
	}
	limited := s.ShouldReturn429Always ||
		(s.RequestsUntilRateLimit > 0 && s.currentRequestCount > s.RequestsUntilRateLimit)
	return limited, remaining
}

func resourcesHandler(resources ...any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"meta": map[string]any{}, "resources": resources, "errors": []any{}})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrors(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{
		"meta":      map[string]any{},
		"resources": []any{},
		"errors":    []any{map[string]any{"code": code, "message": msg}},
	})
}
