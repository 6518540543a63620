package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsbrief/internal/resilience/circuitbreaker"
)

func testBreaker(name string) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		Name:             name,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Hour,
		FailureThreshold: 0.5,
		MinRequests:      2,
	})
}

func tripBreaker(t *testing.T, cb *circuitbreaker.CircuitBreaker) {
	t.Helper()
	for range 2 {
		_, _ = circuitbreaker.Do(cb, func() (int, error) { return 0, errors.New("upstream down") })
	}
	require.True(t, cb.IsOpen())
}

func serveHealth(t *testing.T, h *HealthHandler) HealthResponse {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestHealthHandler_Healthy(t *testing.T) {
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	h := &HealthHandler{
		Version:  "1.2.3",
		Breakers: []*circuitbreaker.CircuitBreaker{testBreaker("news-api"), testBreaker("openrouter-api"), nil},
		Now:      func() time.Time { return fixed },
	}

	resp := serveHealth(t, h)

	assert.Equal(t, statusHealthy, resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.Equal(t, "2025-01-02T03:04:05Z", resp.Timestamp)
	require.Len(t, resp.Checks, 2)
	assert.Equal(t, statusHealthy, resp.Checks["news-api"].Status)
	assert.Equal(t, "closed", resp.Checks["news-api"].Details["circuit_breaker"])
}

func TestHealthHandler_OpenBreakerDegrades(t *testing.T) {
	news := testBreaker("news-api")
	tripBreaker(t, news)

	resp := serveHealth(t, &HealthHandler{
		Breakers: []*circuitbreaker.CircuitBreaker{news, testBreaker("openrouter-api")},
	})

	assert.Equal(t, statusDegraded, resp.Status)
	assert.Equal(t, statusDegraded, resp.Checks["news-api"].Status)
	assert.Equal(t, "circuit breaker open", resp.Checks["news-api"].Message)
	assert.Equal(t, statusHealthy, resp.Checks["openrouter-api"].Status)
}

func TestLiveHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	LiveHandler{}.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"alive"}`, rec.Body.String())
}
