package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"
)

func token(t *testing.T, s *Server) string {
	t.Helper()
	resp, err := http.PostForm(s.URL+"/oauth2/token", url.Values{
		"client_id":     {s.ClientID},
		"client_secret": {s.ClientSecret},
	})
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("token status = %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Cs-Region") != "us-1" {
		t.Errorf("X-Cs-Region = %q", resp.Header.Get("X-Cs-Region"))
	}
	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	return body.AccessToken
}

func get(t *testing.T, s *Server, path, tok string) *http.Response {
	t.Helper()
	req, _ := http.NewRequest(http.MethodGet, s.URL+path, nil)
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestTokenAndEcho(t *testing.T) {
	s := NewServer()
	defer s.Close()

	tok := token(t, s)
	resp := get(t, s, "/devices/queries/devices/v1?limit=2", tok)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Ratelimit-Limit") != "100" || resp.Header.Get("X-Ratelimit-Remaining") != "99" {
		t.Errorf("rate limit headers = %v", resp.Header)
	}

	var body struct {
		Meta struct {
			Method string              `json:"method"`
			Query  map[string][]string `json:"query"`
		} `json:"meta"`
		Resources []string `json:"resources"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Meta.Method != "GET" || body.Meta.Query["limit"][0] != "2" {
		t.Errorf("meta = %+v", body.Meta)
	}
	if len(body.Resources) != 1 || body.Resources[0] != "GET /devices/queries/devices/v1" {
		t.Errorf("resources = %v", body.Resources)
	}
	if s.TokensIssued() != 1 || len(s.Requests()) != 2 {
		t.Errorf("TokensIssued() = %d, Requests() = %d", s.TokensIssued(), len(s.Requests()))
	}
}

func TestRejectsBadCredentialsAndTokens(t *testing.T) {
	s := NewServer()
	defer s.Close()

	resp, err := http.PostForm(s.URL+"/oauth2/token", url.Values{"client_id": {"x"}, "client_secret": {"y"}})
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("bad credentials status = %d", resp.StatusCode)
	}

	for _, tok := range []string{"", "not-a-jwt"} {
		resp := get(t, s, "/anything", tok)
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("token %q status = %d", tok, resp.StatusCode)
		}
	}

	expired, err := s.IssueToken(-time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	resp = get(t, s, "/anything", expired)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expired token status = %d", resp.StatusCode)
	}
}

func TestRateLimit(t *testing.T) {
	s := NewServer()
	defer s.Close()
	s.RequestsUntilRateLimit = 2
	tok := token(t, s)

	for i, want := range []int{200, 200, 429, 429} {
		resp := get(t, s, "/anything", tok)
		resp.Body.Close()
		if resp.StatusCode != want {
			t.Errorf("request %d status = %d, want %d", i, resp.StatusCode, want)
		}
		if want == 429 && resp.Header.Get("X-Ratelimit-Retryafter") == "" {
			t.Errorf("request %d has no X-Ratelimit-Retryafter", i)
		}
	}
}

func TestHandleOverrideAndInstaller(t *testing.T) {
	s := NewServer()
	defer s.Close()
	s.Handle("/custom", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	tok := token(t, s)

	resp := get(t, s, "/custom", tok)
	resp.Body.Close()
	if resp.StatusCode != http.StatusTeapot {
		t.Errorf("custom status = %d", resp.StatusCode)
	}

	resp = get(t, s, "/sensors/entities/download-installer/v1?id=x", tok)
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if string(data) != InstallerBody || !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/octet-stream") {
		t.Errorf("installer = %q (%s)", data, resp.Header.Get("Content-Type"))
	}
}
