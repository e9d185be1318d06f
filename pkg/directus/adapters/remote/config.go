package remote

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Authentication schemes.
const (
	AuthBasic  = "basic"
	AuthBearer = "bearer"
)

// Defaults applied by SetDefaults.
const (
	DefaultBaseURL    = "http://localhost"
	DefaultAPIVersion = "1"
	DefaultTimeout    = "60s"

	// HostedBaseURLFormat builds the base URL of a hosted instance from its
	// instance key.
	HostedBaseURLFormat = "https://%s.directus.io"
)

// Config contains configuration for the remote client.
//
// Example configuration (HCL):
//
//	remote {
//	  base_url     = "https://cms.example.com"
//	  access_token = "..."
//	  version      = "1"
//	  timeout      = "30s"
//	}
type Config struct {
	// BaseURL is the server root, e.g. "https://cms.example.com".
	BaseURL string `hcl:"base_url,optional" yaml:"base_url"`

	// InstanceKey selects a hosted instance and takes precedence over BaseURL.
	InstanceKey string `hcl:"instance_key,optional" yaml:"instance_key"`

	// Version is the API version path segment. Default: "1".
	Version string `hcl:"version,optional" yaml:"version"`

	AccessToken string `hcl:"access_token" yaml:"access_token" json:"-"`

	// AuthScheme is "basic" (token as user name) or "bearer". Default: basic.
	AuthScheme string `hcl:"auth_scheme,optional" yaml:"auth_scheme"`

	// Timeout for API requests. Default: 60s.
	Timeout string `hcl:"timeout,optional" yaml:"timeout"`

	// TLSVerify controls TLS certificate verification.
	TLSVerify *bool `hcl:"tls_verify,optional" yaml:"tls_verify"`

	// PasswordCost is the bcrypt cost used for user passwords.
	PasswordCost int `hcl:"password_cost,optional" yaml:"password_cost"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Version == "" {
		c.Version = DefaultAPIVersion
	}
	if c.AuthScheme == "" {
		c.AuthScheme = AuthBasic
	}
	if c.Timeout == "" {
		c.Timeout = DefaultTimeout
	}
	if c.TLSVerify == nil {
		tlsVerify := true
		c.TLSVerify = &tlsVerify
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.InstanceKey == "" {
		parsedURL, err := url.Parse(c.BaseURL)
		if err != nil {
			return fmt.Errorf("invalid base_url: %w", err)
		}
		if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			return fmt.Errorf("base_url must use http or https scheme, got: %q", parsedURL.Scheme)
		}
	}

	if c.AccessToken == "" {
		return fmt.Errorf("access_token is required")
	}

	if c.AuthScheme != AuthBasic && c.AuthScheme != AuthBearer {
		return fmt.Errorf("auth_scheme must be %q or %q, got: %q", AuthBasic, AuthBearer, c.AuthScheme)
	}

	timeout, err := c.TimeoutDuration()
	if err != nil {
		return err
	}
	if timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got: %v", timeout)
	}

	return nil
}

// TimeoutDuration parses Timeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout: %w", err)
	}
	return d, nil
}

// NewHTTPClient creates a configured HTTP client.
func (c *Config) NewHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	if c.TLSVerify != nil && !*c.TLSVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	timeout, _ := c.TimeoutDuration()
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
