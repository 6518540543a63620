package newsapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "https://gnews.io/api/v4", cfg.BaseURL)
	assert.Equal(t, "in", cfg.Country)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, 10, cfg.MaxResults)
	assert.Zero(t, cfg.Timeout)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("NEWS_API_KEY", "k")
	t.Setenv("NEWS_API_BASE_URL", "http://localhost:9999/v4")
	t.Setenv("NEWS_COUNTRY", "us")
	t.Setenv("NEWS_LANG", "fr")
	t.Setenv("NEWS_MAX", "25")
	t.Setenv("NEWS_HTTP_TIMEOUT", "5s")

	cfg, err := LoadConfigFromEnv()

	require.NoError(t, err)
	assert.Equal(t, Config{
		BaseURL:    "http://localhost:9999/v4",
		APIKey:     "k",
		Country:    "us",
		Language:   "fr",
		MaxResults: 25,
		Timeout:    5 * time.Second,
	}, cfg)
}

func TestLoadConfigFromEnv_MissingKey(t *testing.T) {
	t.Setenv("NEWS_API_KEY", "")

	_, err := LoadConfigFromEnv()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key")
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.APIKey = "k"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"relative base URL", func(c *Config) { c.BaseURL = "/api" }, "base URL"},
		{"ftp base URL", func(c *Config) { c.BaseURL = "ftp://gnews.io" }, "base URL"},
		{"empty key", func(c *Config) { c.APIKey = "" }, "api key"},
		{"empty country", func(c *Config) { c.Country = "" }, "country"},
		{"empty language", func(c *Config) { c.Language = "" }, "language"},
		{"max zero", func(c *Config) { c.MaxResults = 0 }, "max results"},
		{"max too large", func(c *Config) { c.MaxResults = 101 }, "max results"},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
