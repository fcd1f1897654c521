package falconbridge

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Authenticator supplies credentials and per-call transport settings to the
// bridge.
type Authenticator interface {
	Settings() Settings

	// AuthHeaders returns the headers that authorize a request, acquiring or
	// renewing a token when needed.
	AuthHeaders(ctx context.Context) (map[string]string, error)
}

// Settings are the read-only inputs the dispatcher takes from an
// Authenticator.
type Settings struct {
	BaseURL          string
	Proxy            map[string]string
	Timeout          time.Duration
	UserAgent        string
	Headers          map[string]string
	SSLVerify        bool
	Log              *zerolog.Logger
	DebugRecordCount int
}
