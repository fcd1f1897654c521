package falconbridge

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/opengovern/falcon-bridge/endpoint"
)

// TokenAuth exchanges API client credentials for bearer tokens and keeps the
// current token until it is about to expire. The first successful exchange
// also corrects the base URL when the API reports a different cloud.
type TokenAuth struct {
	mu         sync.Mutex
	cfg        *Config
	dispatcher *Dispatcher
	logger     *zerolog.Logger
	baseURL    string
	source     oauth2.TokenSource
	fetcher    *tokenFetcher

	// callMu serializes Token so the fetcher sees the current caller's context.
	callMu sync.Mutex
}

// NewTokenAuth returns an authenticator for cfg that sends its token requests
// through dispatcher.
func NewTokenAuth(cfg *Config, dispatcher *Dispatcher, logger *zerolog.Logger) *TokenAuth {
	return &TokenAuth{
		cfg:        cfg,
		dispatcher: dispatcher,
		logger:     logger,
		baseURL:    ConfirmBaseURL(cfg.BaseURL),
	}
}

// Settings implements Authenticator.
func (a *TokenAuth) Settings() Settings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Settings{
		BaseURL:          a.baseURL,
		Proxy:            a.cfg.Proxy,
		Timeout:          a.cfg.Timeout,
		UserAgent:        a.cfg.UserAgent,
		Headers:          a.cfg.Headers,
		SSLVerify:        !a.cfg.SkipTLSVerify,
		Log:              a.logger,
		DebugRecordCount: a.cfg.recordMax(),
	}
}

// AuthHeaders implements Authenticator.
func (a *TokenAuth) AuthHeaders(ctx context.Context) (map[string]string, error) {
	tok, err := a.Token(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]string{"Authorization": "Bearer " + tok.AccessToken}, nil
}

// Token returns a valid token, requesting a new one when the cached token is
// inside the renew window.
func (a *TokenAuth) Token(ctx context.Context) (*oauth2.Token, error) {
	if a.cfg.AccessToken != "" {
		return &oauth2.Token{AccessToken: a.cfg.AccessToken, TokenType: "Bearer"}, nil
	}

	a.callMu.Lock()
	defer a.callMu.Unlock()

	a.mu.Lock()
	if a.source == nil {
		a.fetcher = &tokenFetcher{auth: a}
		a.source = oauth2.ReuseTokenSourceWithExpiry(nil, a.fetcher, a.cfg.RenewWindow)
	}
	src, fetcher := a.source, a.fetcher
	a.mu.Unlock()

	fetcher.ctx = ctx
	defer func() { fetcher.ctx = nil }()

	tok, err := src.Token()
	if err != nil {
		return nil, err
	}
	return tok, nil
}

// Revoke invalidates the current token on the API side and drops it locally.
func (a *TokenAuth) Revoke(ctx context.Context, token string) (*Result, error) {
	desc, err := endpoint.Find(endpoint.OAuth2Endpoints, "oauth2RevokeToken")
	if err != nil {
		return nil, err
	}
	settings := a.Settings()
	creds := base64.StdEncoding.EncodeToString([]byte(a.cfg.ClientID + ":" + a.cfg.ClientSecret))
	headers := mergeHeaders(settings.Headers, map[string]string{"Authorization": "Basic " + creds})
	if settings.UserAgent != "" {
		headers["User-Agent"] = settings.UserAgent
	}

	resp := a.dispatcher.Perform(ctx, &NormalizedRequest{
		Operation:     desc.OperationID,
		Method:        desc.Method,
		Endpoint:      settings.BaseURL + desc.Path,
		Headers:       headers,
		Data:          map[string]any{"token": token, "client_id": a.cfg.ClientID},
		SkipTLSVerify: !settings.SSLVerify,
		Proxy:         settings.Proxy,
		Timeout:       settings.Timeout,
	})

	a.mu.Lock()
	a.source = nil
	a.mu.Unlock()

	if resp.Envelope == nil {
		return nil, fmt.Errorf("%w: unexpected binary response from token revocation", ErrTransportFailure)
	}
	return resp.Envelope, nil
}

// fetch performs the client credentials exchange.
func (a *TokenAuth) fetch(ctx context.Context) (*oauth2.Token, error) {
	desc, err := endpoint.Find(endpoint.OAuth2Endpoints, "oauth2AccessToken")
	if err != nil {
		return nil, err
	}
	settings := a.Settings()

	data := map[string]any{
		"client_id":     a.cfg.ClientID,
		"client_secret": a.cfg.ClientSecret,
	}
	if a.cfg.MemberCID != "" {
		data["member_cid"] = a.cfg.MemberCID
	}
	headers := mergeHeaders(settings.Headers, nil)
	if settings.UserAgent != "" {
		headers["User-Agent"] = settings.UserAgent
	}

	resp := a.dispatcher.Perform(ctx, &NormalizedRequest{
		Operation:     desc.OperationID,
		Method:        desc.Method,
		Endpoint:      settings.BaseURL + desc.Path,
		Headers:       headers,
		Data:          data,
		SkipTLSVerify: !settings.SSLVerify,
		Proxy:         settings.Proxy,
		Timeout:       settings.Timeout,
	})
	if resp.Envelope == nil {
		return nil, fmt.Errorf("%w: unexpected binary response from token endpoint", ErrTransportFailure)
	}
	result := resp.Envelope
	if result.StatusCode != http.StatusCreated && result.StatusCode != http.StatusOK {
		msg := http.StatusText(result.StatusCode)
		if errs := result.Errors(); len(errs) > 0 {
			msg = errs[0]
		}
		return nil, fmt.Errorf("token request failed with status %d: %s", result.StatusCode, msg)
	}

	body, _ := result.Body.(map[string]any)
	access, _ := body["access_token"].(string)
	if access == "" {
		return nil, fmt.Errorf("token response carried no access_token")
	}
	tok := &oauth2.Token{
		AccessToken: access,
		TokenType:   "Bearer",
		Expiry:      tokenExpiry(access, body["expires_in"]),
	}

	if next := AutodiscoverRegion(settings.BaseURL, result.Headers); next != settings.BaseURL {
		a.mu.Lock()
		a.baseURL = next
		a.mu.Unlock()
		if a.logger != nil {
			a.logger.Debug().Str("from", settings.BaseURL).Str("to", next).Msg("switching base URL to reported region")
		}
	}
	return tok, nil
}

// tokenExpiry prefers the exp claim of a JWT access token and falls back to
// expires_in seconds.
func tokenExpiry(access string, expiresIn any) time.Time {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(access, &claims); err == nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	if secs, ok := expiresIn.(float64); ok && secs > 0 {
		return time.Now().Add(time.Duration(secs) * time.Second)
	}
	return time.Now().Add(30 * time.Minute)
}

// tokenFetcher adapts TokenAuth.fetch to oauth2.TokenSource. ctx is the
// context of the Token call in progress.
type tokenFetcher struct {
	auth *TokenAuth
	ctx  context.Context
}

func (f *tokenFetcher) Token() (*oauth2.Token, error) {
	ctx := f.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return f.auth.fetch(ctx)
}

// mergeHeaders layers header maps under canonical names; later layers win.
func mergeHeaders(layers ...map[string]string) map[string]string {
	out := map[string]string{}
	for _, l := range layers {
		for k, v := range canonicalHeaders(l) {
			out[k] = v
		}
	}
	return out
}
