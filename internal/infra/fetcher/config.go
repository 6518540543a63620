package fetcher

import (
	"fmt"
	"time"

	"newsbrief/pkg/config"
)

// Config controls full-article fetching.
//
// Security settings:
//   - DenyPrivateIPs: blocks hosts resolving to internal addresses (SSRF)
//   - MaxBodySize: caps the bytes read from one page
//   - MaxRedirects: caps the redirect chain, each hop is re-validated
//   - Timeout: bounds one page fetch
type Config struct {
	// Enabled turns enhancement on. When false the API body is always used.
	// Default: false
	Enabled bool

	// Threshold is the API body length in runes below which the full page
	// is fetched. Default: 1500
	Threshold int

	// Default: 10s
	Timeout time.Duration

	// Default: 5MB
	MaxBodySize int64

	// Default: 5
	MaxRedirects int

	// Should stay true outside tests. Default: true
	DenyPrivateIPs bool

	// UserAgent is sent with every page request.
	UserAgent string
}

// DefaultConfig returns the default content fetch configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:        false,
		Threshold:      1500,
		Timeout:        10 * time.Second,
		MaxBodySize:    5 * 1024 * 1024,
		MaxRedirects:   5,
		DenyPrivateIPs: true,
		UserAgent:      "newsbrief/1.0 (+https://github.com/newsbrief)",
	}
}

// Validate checks the configuration for unsafe or meaningless values.
func (c Config) Validate() error {
	if c.Threshold < 0 {
		return fmt.Errorf("threshold must be non-negative, got %d", c.Threshold)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	minBodySize := int64(1024)
	maxBodySize := int64(50 * 1024 * 1024)
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}
	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}
	return nil
}

// LoadConfigFromEnv loads the configuration from environment variables and
// validates it.
//
// Environment variables:
//   - CONTENT_FETCH_ENABLED (default: false)
//   - CONTENT_FETCH_THRESHOLD (default: 1500)
//   - CONTENT_FETCH_TIMEOUT (default: 10s)
//   - CONTENT_FETCH_MAX_BODY_SIZE (default: 5242880)
//   - CONTENT_FETCH_MAX_REDIRECTS (default: 5)
//   - CONTENT_FETCH_DENY_PRIVATE_IPS (default: true)
func LoadConfigFromEnv() (Config, error) {
	d := DefaultConfig()
	cfg := Config{
		Enabled:        config.GetEnvBool("CONTENT_FETCH_ENABLED", d.Enabled),
		Threshold:      config.GetEnvInt("CONTENT_FETCH_THRESHOLD", d.Threshold),
		Timeout:        config.GetEnvDuration("CONTENT_FETCH_TIMEOUT", d.Timeout),
		MaxBodySize:    int64(config.GetEnvInt("CONTENT_FETCH_MAX_BODY_SIZE", int(d.MaxBodySize))),
		MaxRedirects:   config.GetEnvInt("CONTENT_FETCH_MAX_REDIRECTS", d.MaxRedirects),
		DenyPrivateIPs: config.GetEnvBool("CONTENT_FETCH_DENY_PRIVATE_IPS", d.DenyPrivateIPs),
		UserAgent:      d.UserAgent,
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid content fetch configuration: %w", err)
	}
	return cfg, nil
}
