package services

import (
	"context"
	"encoding/base64"

	falconbridge "github.com/opengovern/falcon-bridge"
	"github.com/opengovern/falcon-bridge/endpoint"
)

// OAuth2 exposes the raw token operations. Most callers never need it; the
// bridge acquires tokens on its own.
type OAuth2 struct {
	service
}

// NewOAuth2 returns the token service of b.
func NewOAuth2(b *falconbridge.Bridge) *OAuth2 {
	return &OAuth2{service{bridge: b, endpoints: endpoint.OAuth2Endpoints}}
}

// Credentials are API client credentials, sent as form data.
type Credentials struct {
	ClientID     string `schema:"client_id" validate:"required"`
	ClientSecret string `schema:"client_secret" validate:"required"`
	MemberCID    string `schema:"member_cid,omitempty"`
}

// Token requests a new access token.
func (s *OAuth2) Token(ctx context.Context, creds Credentials, opts ...Option) *falconbridge.Response {
	return s.call(ctx, "oauth2AccessToken", &creds, nil, opts)
}

// Revoke invalidates token before its normal lifetime ends.
func (s *OAuth2) Revoke(ctx context.Context, token string, creds Credentials, opts ...Option) *falconbridge.Response {
	basic := base64.StdEncoding.EncodeToString([]byte(creds.ClientID + ":" + creds.ClientSecret))
	opts = append([]Option{
		WithHeaders(map[string]string{"Authorization": "Basic " + basic}),
		WithKeyword("token", token),
	}, opts...)
	return s.call(ctx, "oauth2RevokeToken", nil, nil, opts)
}
