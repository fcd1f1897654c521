package falconbridge

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/opengovern/falcon-bridge/mock"
)

func newTestConfig(srv *mock.Server) *Config {
	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.ClientID = mock.DefaultClientID
	cfg.ClientSecret = mock.DefaultClientSecret
	return cfg
}

func TestTokenAuthCachesToken(t *testing.T) {
	srv := mock.NewServer()
	defer srv.Close()

	auth := NewTokenAuth(newTestConfig(srv), NewDispatcher(nil, nil), nil)

	tok, err := auth.Token(context.Background())
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if tok.AccessToken == "" {
		t.Error("AccessToken is empty")
	}
	if until := time.Until(tok.Expiry); until < 25*time.Minute || until > 31*time.Minute {
		t.Errorf("Expiry in %v, want about 30m", until)
	}

	again, err := auth.Token(context.Background())
	if err != nil {
		t.Fatalf("second Token() error = %v", err)
	}
	if again.AccessToken != tok.AccessToken {
		t.Error("second Token() returned a different token")
	}
	if srv.TokensIssued() != 1 {
		t.Errorf("TokensIssued() = %d, want 1", srv.TokensIssued())
	}

	headers, err := auth.AuthHeaders(context.Background())
	if err != nil {
		t.Fatalf("AuthHeaders() error = %v", err)
	}
	if headers["Authorization"] != "Bearer "+tok.AccessToken {
		t.Errorf("Authorization = %q", headers["Authorization"])
	}
}

func TestTokenAuthSendsMemberCID(t *testing.T) {
	srv := mock.NewServer()
	defer srv.Close()

	cfg := newTestConfig(srv)
	cfg.MemberCID = "child-cid"
	if _, err := NewTokenAuth(cfg, NewDispatcher(nil, nil), nil).Token(context.Background()); err != nil {
		t.Fatalf("Token() error = %v", err)
	}

	reqs := srv.Requests()
	if len(reqs) != 1 || reqs[0].Path != "/oauth2/token" {
		t.Fatalf("Requests() = %+v", reqs)
	}
	if body := string(reqs[0].Body); !strings.Contains(body, "member_cid=child-cid") {
		t.Errorf("token request body = %q", body)
	}
}

func TestTokenAuthBadCredentials(t *testing.T) {
	srv := mock.NewServer()
	defer srv.Close()

	cfg := newTestConfig(srv)
	cfg.ClientSecret = "wrong"
	_, err := NewTokenAuth(cfg, NewDispatcher(nil, nil), nil).Token(context.Background())
	if err == nil {
		t.Fatal("Token() error = nil")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("Token() error = %v, want status 403", err)
	}
}

func TestTokenAuthRegionSwitch(t *testing.T) {
	srv := mock.NewServer()
	defer srv.Close()
	srv.Region = "eu-1"

	auth := NewTokenAuth(newTestConfig(srv), NewDispatcher(nil, nil), nil)
	if _, err := auth.Token(context.Background()); err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if got := auth.Settings().BaseURL; got != "https://api.eu-1.crowdstrike.com" {
		t.Errorf("BaseURL = %q, want the EU1 API host", got)
	}
}

func TestTokenAuthRevoke(t *testing.T) {
	srv := mock.NewServer()
	defer srv.Close()

	auth := NewTokenAuth(newTestConfig(srv), NewDispatcher(nil, nil), nil)
	tok, err := auth.Token(context.Background())
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}

	res, err := auth.Revoke(context.Background(), tok.AccessToken)
	if err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	if res.StatusCode != 200 {
		t.Errorf("Revoke() status = %d, errors %v", res.StatusCode, res.Errors())
	}

	if _, err := auth.Token(context.Background()); err != nil {
		t.Fatalf("Token() after revoke error = %v", err)
	}
	if srv.TokensIssued() != 2 {
		t.Errorf("TokensIssued() = %d, want 2", srv.TokensIssued())
	}
}

func TestTokenAuthStaticToken(t *testing.T) {
	srv := mock.NewServer()
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.AccessToken = "preissued"
	tok, err := NewTokenAuth(cfg, NewDispatcher(nil, nil), nil).Token(context.Background())
	if err != nil || tok.AccessToken != "preissued" {
		t.Errorf("Token() = %v, %v", tok, err)
	}
	if len(srv.Requests()) != 0 {
		t.Errorf("static token made %d requests", len(srv.Requests()))
	}
}

func TestTokenExpiryFallback(t *testing.T) {
	if got := time.Until(tokenExpiry("not-a-jwt", float64(60))); got < 50*time.Second || got > 61*time.Second {
		t.Errorf("tokenExpiry(expires_in=60) in %v", got)
	}
	if got := time.Until(tokenExpiry("not-a-jwt", nil)); got < 29*time.Minute {
		t.Errorf("tokenExpiry(default) in %v", got)
	}
}

func TestTokenAuthRenewalUsesCallerContext(t *testing.T) {
	srv := mock.NewServer()
	defer srv.Close()

	cfg := newTestConfig(srv)
	cfg.RenewWindow = time.Hour
	auth := NewTokenAuth(cfg, NewDispatcher(nil, nil), nil)

	if _, err := auth.Token(context.Background()); err != nil {
		t.Fatalf("Token() error = %v", err)
	}

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := auth.Token(canceled); err == nil {
		t.Error("Token() with a canceled context renewed the token")
	}
	if srv.TokensIssued() != 1 {
		t.Errorf("TokensIssued() = %d after canceled renewal, want 1", srv.TokensIssued())
	}

	if _, err := auth.Token(context.Background()); err != nil {
		t.Fatalf("Token() after canceled call error = %v", err)
	}
	if srv.TokensIssued() != 2 {
		t.Errorf("TokensIssued() = %d, want 2", srv.TokensIssued())
	}
}
