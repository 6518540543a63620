// Package http holds the HTTP surface of the news reader: shared middleware,
// metrics, health endpoints and route registration. Endpoint handlers live
// in the news and summary subpackages.
package http

import (
	"net/http"
	"time"

	"newsbrief/internal/handler/http/respond"
	"newsbrief/internal/resilience/circuitbreaker"
)

// Health status values.
const (
	statusHealthy  = "healthy"
	statusDegraded  = "degraded"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is the state of one dependency.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthHandler reports the circuit breaker of each upstream. An open breaker
// marks the service degraded, not down: the clients fail soft and the API
// keeps answering.
type HealthHandler struct {
	Version  string
	Breakers []*circuitbreaker.CircuitBreaker
	Now      func() time.Time
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	checks := make(map[string]CheckStatus, len(h.Breakers))
	overall := statusHealthy
	for _, cb := range h.Breakers {
		if cb == nil {
			continue
		}
		check := CheckStatus{
			Status:  statusHealthy,
			Details: map[string]any{"circuit_breaker": cb.State().String()},
		}
		if cb.IsOpen() {
			check.Status = statusDegraded
			check.Message = "circuit breaker open"
			overall = statusDegraded
		}
		checks[cb.Name()] = check
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, http.StatusOK, HealthResponse{
		Status:    overall,
		Timestamp: now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

// LiveHandler answers liveness probes.
type LiveHandler struct{}

func (LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, http.StatusOK, map[string]string{"status": "alive"})
}
