// config.go
// ----------
// Config holds everything the bridge needs to authenticate and to shape each
// request: credentials, cloud, transport settings and debug options. It can
// be built in code, read from a YAML file or taken from the environment.
package falconbridge

import (
	"crypto/tls"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/pkcs12"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config configures a Bridge.
type Config struct {
	ClientID     string `yaml:"client_id" json:"client_id" validate:"required_without=AccessToken"`
	ClientSecret string `yaml:"client_secret" json:"client_secret" validate:"required_with=ClientID"`
	MemberCID    string `yaml:"member_cid,omitempty" json:"member_cid,omitempty"`
	// AccessToken skips the token exchange entirely.
	AccessToken string `yaml:"access_token,omitempty" json:"access_token,omitempty"`

	BaseURL       string            `yaml:"base_url" json:"base_url"`
	SkipTLSVerify bool              `yaml:"skip_tls_verify" json:"skip_tls_verify"`
	Proxy         map[string]string `yaml:"proxy,omitempty" json:"proxy,omitempty" validate:"omitempty,dive,keys,oneof=http https,endkeys,url"`
	Timeout       time.Duration     `yaml:"timeout" json:"timeout" validate:"gte=0"`
	UserAgent     string            `yaml:"user_agent,omitempty" json:"user_agent,omitempty"`
	Headers       map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`

	Debug            bool `yaml:"debug" json:"debug"`
	DebugRecordCount int  `yaml:"debug_record_count" json:"debug_record_count" validate:"omitempty,min=1,max=5000"`

	// RenewWindow is how long before expiry a token is replaced.
	RenewWindow       time.Duration `yaml:"renew_window" json:"renew_window" validate:"gte=0"`
	RequestsPerSecond float64       `yaml:"requests_per_second" json:"requests_per_second" validate:"gte=0"`
	HonorRateLimits   bool          `yaml:"honor_rate_limits" json:"honor_rate_limits"`

	// PKCS#12 bundle presented for mutual TLS.
	ClientCertificate         string `yaml:"client_certificate,omitempty" json:"client_certificate,omitempty" validate:"omitempty,file"`
	ClientCertificatePassword string `yaml:"client_certificate_password,omitempty" json:"client_certificate_password,omitempty"`
}

// DefaultConfig returns a config for US1 with the usual defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:          ConfirmBaseURL(DefaultRegion),
		Timeout:          30 * time.Second,
		DebugRecordCount: DefaultRecordMax,
		RenewWindow:      120 * time.Second,
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.BaseURL = ConfirmBaseURL(cfg.BaseURL)
	return cfg, nil
}

// ConfigFromEnv builds a config from FALCON_CLIENT_ID, FALCON_CLIENT_SECRET,
// FALCON_MEMBER_CID and FALCON_BASE_URL.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()
	cfg.ApplyEnv()
	return cfg
}

// ApplyEnv overrides fields with any FALCON_* variables that are set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("FALCON_CLIENT_ID"); v != "" {
		c.ClientID = v
	}
	if v := os.Getenv("FALCON_CLIENT_SECRET"); v != "" {
		c.ClientSecret = v
	}
	if v := os.Getenv("FALCON_MEMBER_CID"); v != "" {
		c.MemberCID = v
	}
	if v := os.Getenv("FALCON_BASE_URL"); v != "" {
		c.BaseURL = ConfirmBaseURL(v)
	}
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var valErrs validator.ValidationErrors
		if errors.As(err, &valErrs) {
			msgs := make([]string, 0, len(valErrs))
			for _, ve := range valErrs {
				msgs = append(msgs, ve.Field()+": failed "+ve.Tag())
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// recordMax returns the configured debug record count, or the default.
func (c *Config) recordMax() int {
	if c.DebugRecordCount <= 0 {
		return DefaultRecordMax
	}
	return c.DebugRecordCount
}

// LoadClientCertificate decodes the PKCS#12 bundle named by
// ClientCertificate. It returns nil when no bundle is configured.
func (c *Config) LoadClientCertificate() (*tls.Certificate, error) {
	if c.ClientCertificate == "" {
		return nil, nil
	}
	data, err := os.ReadFile(c.ClientCertificate)
	if err != nil {
		return nil, fmt.Errorf("reading client certificate: %w", err)
	}
	key, cert, err := pkcs12.Decode(data, c.ClientCertificatePassword)
	if err != nil {
		return nil, fmt.Errorf("decoding client certificate: %w", err)
	}
	return &tls.Certificate{
		Certificate: [][]byte{cert.Raw},
		PrivateKey:  key,
		Leaf:        cert,
	}, nil
}
