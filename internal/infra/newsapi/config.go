package newsapi

import (
	"fmt"
	"net/url"
	"time"

	"newsbrief/pkg/config"
)

// Config holds the settings for the news API client.
type Config struct {
	// BaseURL is the API root, without a trailing slash.
	// Default: https://gnews.io/api/v4
	BaseURL string

	// APIKey is sent as the apikey query parameter.
	APIKey string

	// Country scopes top headlines. Default: in
	Country string

	// Language scopes both endpoints. Default: en
	Language string

	// MaxResults caps top headlines. Default: 10
	MaxResults int

	// Timeout bounds one request. Zero keeps the HTTP client default
	// (no explicit deadline).
	Timeout time.Duration
}

// DefaultConfig returns the defaults used when no environment override is set.
func DefaultConfig() Config {
	return Config{
		BaseURL:    "https://gnews.io/api/v4",
		Country:    "in",
		Language:   "en",
		MaxResults: 10,
	}
}

// LoadConfigFromEnv loads the client configuration from environment variables
// and validates it.
//
// Environment variables:
//   - NEWS_API_BASE_URL (default: https://gnews.io/api/v4)
//   - NEWS_API_KEY (required)
//   - NEWS_COUNTRY (default: in)
//   - NEWS_LANG (default: en)
//   - NEWS_MAX (default: 10, range 1-100)
//   - NEWS_HTTP_TIMEOUT (default: 0, no explicit timeout)
func LoadConfigFromEnv() (Config, error) {
	d := DefaultConfig()
	cfg := Config{
		BaseURL:    config.GetEnvString("NEWS_API_BASE_URL", d.BaseURL),
		APIKey:     config.GetEnvString("NEWS_API_KEY", ""),
		Country:    config.GetEnvString("NEWS_COUNTRY", d.Country),
		Language:   config.GetEnvString("NEWS_LANG", d.Language),
		MaxResults: config.GetEnvInt("NEWS_MAX", d.MaxResults),
		Timeout:    config.GetEnvDuration("NEWS_HTTP_TIMEOUT", d.Timeout),
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid news API configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for missing or out-of-range values.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base URL must be an absolute http(s) URL, got %q", c.BaseURL)
	}
	if c.APIKey == "" {
		return fmt.Errorf("api key cannot be empty")
	}
	if c.Country == "" {
		return fmt.Errorf("country cannot be empty")
	}
	if c.Language == "" {
		return fmt.Errorf("language cannot be empty")
	}
	if c.MaxResults < 1 || c.MaxResults > 100 {
		return fmt.Errorf("max results must be between 1 and 100, got %d", c.MaxResults)
	}
	if err := config.ValidateNonNegativeDuration(c.Timeout); err != nil {
		return fmt.Errorf("timeout: %w", err)
	}
	return nil
}
