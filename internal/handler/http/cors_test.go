package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCORSConfig(t *testing.T) {
	tests := []struct {
		name        string
		origins     string
		maxAge      string
		wantOrigins []string
		wantMaxAge  int
		wantErr     string
	}{
		{name: "unset disables CORS"},
		{
			name:        "origins trimmed",
			origins:     " http://localhost:3000 , https://news.example.com ,",
			wantOrigins: []string{"http://localhost:3000", "https://news.example.com"},
			wantMaxAge:  86400,
		},
		{
			name:        "custom max age",
			origins:     "https://news.example.com",
			maxAge:      "600",
			wantOrigins: []string{"https://news.example.com"},
			wantMaxAge:  600,
		},
		{name: "bad scheme", origins: "ftp://example.com", wantErr: "http or https"},
		{name: "path not allowed", origins: "https://example.com/app", wantErr: "must not include path"},
		{name: "only commas", origins: ",,", wantErr: "at least one valid origin"},
		{name: "negative max age", origins: "https://example.com", maxAge: "-1", wantErr: "non-negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CORS_ALLOWED_ORIGINS", tt.origins)
			t.Setenv("CORS_MAX_AGE", tt.maxAge)

			cfg, err := LoadCORSConfig()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.wantOrigins == nil {
				assert.Nil(t, cfg)
				return
			}
			require.NotNil(t, cfg)
			assert.Equal(t, tt.wantOrigins, cfg.AllowedOrigins)
			assert.Equal(t, tt.wantMaxAge, cfg.MaxAge)
		})
	}
}

func TestCORS(t *testing.T) {
	cfg := CORSConfig{
		AllowedOrigins: []string{"https://news.example.com"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         600,
	}
	var called bool
	h := CORS(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		}))

	t.Run("preflight from allowed origin", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodOptions, "/summaries", nil)
		req.Header.Set("Origin", "https://news.example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://news.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("actual request from allowed origin", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/news", nil)
		req.Header.Set("Origin", "https://news.example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.True(t, called)
		assert.Equal(t, "https://news.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("disallowed origin gets no headers", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/news", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.True(t, called)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("same-origin request passes through", func(t *testing.T) {
		called = false
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/news", nil))

		assert.True(t, called)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
