package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for upstream calls.
const (
	OutcomeSuccess  = "success"
	OutcomeEmpty    = "empty"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"
)

var (
	// UpstreamRequestsTotal counts calls to upstream APIs by outcome.
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of requests to upstream APIs",
		},
		[]string{"upstream", "operation", "outcome"},
	)

	// UpstreamRequestDuration measures upstream call latency in seconds.
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of requests to upstream APIs in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"upstream", "operation"},
	)

	// ArticlesReturned tracks how many articles each news fetch returned.
	ArticlesReturned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "news_articles_returned",
			Help:    "Number of articles returned per news fetch",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		},
		[]string{"operation"},
	)
)

// RecordUpstream records the outcome and duration of one upstream call.
func RecordUpstream(upstream, operation, outcome string, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(upstream, operation, outcome).Inc()
	UpstreamRequestDuration.WithLabelValues(upstream, operation).Observe(duration.Seconds())
}

// RecordArticlesReturned records the size of one news fetch result.
func RecordArticlesReturned(operation string, count int) {
	ArticlesReturned.WithLabelValues(operation).Observe(float64(count))
}
