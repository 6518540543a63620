package fetcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, 1500, cfg.Threshold)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.True(t, cfg.DenyPrivateIPs)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("CONTENT_FETCH_ENABLED", "true")
	t.Setenv("CONTENT_FETCH_THRESHOLD", "800")
	t.Setenv("CONTENT_FETCH_TIMEOUT", "3s")
	t.Setenv("CONTENT_FETCH_MAX_BODY_SIZE", "2048")
	t.Setenv("CONTENT_FETCH_MAX_REDIRECTS", "1")
	t.Setenv("CONTENT_FETCH_DENY_PRIVATE_IPS", "false")

	cfg, err := LoadConfigFromEnv()

	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 800, cfg.Threshold)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, int64(2048), cfg.MaxBodySize)
	assert.Equal(t, 1, cfg.MaxRedirects)
	assert.False(t, cfg.DenyPrivateIPs)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative threshold", func(c *Config) { c.Threshold = -1 }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"tiny body", func(c *Config) { c.MaxBodySize = 10 }},
		{"huge body", func(c *Config) { c.MaxBodySize = 1 << 40 }},
		{"too many redirects", func(c *Config) { c.MaxRedirects = 11 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
