package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"newsbrief/internal/handler/http/responsewriter"
)

var routeLabelNames = []string{"method", "route", "status"}

var (
	apiRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "API requests by method, route and status code.",
	}, routeLabelNames)

	// Buckets reach 30s because POST /summaries waits on the LLM.
	apiLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "API request latency in seconds.",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, routeLabelNames)

	apiResponseBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_response_size_bytes",
		Help:    "API response body size in bytes.",
		Buckets: prometheus.ExponentialBuckets(100, 10, 8),
	}, []string{"method", "route"})

	apiInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "API requests currently being served.",
	})
)

// servedRoutes is the fixed label set; unknown paths collapse to "other".
var servedRoutes = map[string]bool{
	"/news":      true,
	"/summaries": true,
	"/open":      true,
	"/health":    true,
	"/live":      true,
	"/metrics":   true,
}

func routeLabel(path string) string {
	if servedRoutes[path] {
		return path
	}
	return "other"
}

// MetricsMiddleware records per-route request counts, latency and response
// size, plus the number of requests in flight.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiInFlight.Inc()
		defer apiInFlight.Dec()

		start := time.Now()
		rw := responsewriter.Wrap(w)
		next.ServeHTTP(rw, r)

		observeRequest(r.Method, routeLabel(r.URL.Path), rw.StatusCode(), rw.BytesWritten(), time.Since(start))
	})
}

func observeRequest(method, route string, status, bytes int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	apiRequests.WithLabelValues(method, route, code).Inc()
	apiLatency.WithLabelValues(method, route, code).Observe(elapsed.Seconds())
	apiResponseBytes.WithLabelValues(method, route).Observe(float64(bytes))
}

// MetricsHandler serves the Prometheus scrape endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
