package summarizer

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Summary outcome labels.
const (
	outcomeSuccess  = "success"
	outcomeEmpty    = "empty"
	outcomeError    = "error"
	outcomeRejected = "rejected"
)

// MetricsRecorder records summarization metrics. Tests substitute a fake.
type MetricsRecorder interface {
	// RecordLength records the summary length in runes.
	RecordLength(provider string, length int)

	// RecordDuration records the time one provider call took.
	RecordDuration(provider string, duration time.Duration)

	// RecordOutcome counts one call by outcome.
	RecordOutcome(provider, outcome string)
}

// PrometheusMetrics implements MetricsRecorder with Prometheus collectors.
type PrometheusMetrics struct {
	length   *prometheus.HistogramVec
	duration *prometheus.HistogramVec
	outcomes *prometheus.CounterVec
}

var (
	prometheusMetricsInstance *PrometheusMetrics
	prometheusMetricsOnce     sync.Once
)

func getOrCreateHistogramVec(opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	h := prometheus.NewHistogramVec(opts, labels)
	if err := prometheus.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.HistogramVec)
		}
		return promauto.NewHistogramVec(opts, labels)
	}
	return h
}

func getOrCreateCounterVec(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labels)
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
		return promauto.NewCounterVec(opts, labels)
	}
	return c
}

// NewPrometheusMetrics returns the process-wide recorder, registering its
// collectors on first use.
func NewPrometheusMetrics() *PrometheusMetrics {
	prometheusMetricsOnce.Do(func() {
		prometheusMetricsInstance = &PrometheusMetrics{
			length: getOrCreateHistogramVec(prometheus.HistogramOpts{
				Name:    "article_summary_length_characters",
				Help:    "Distribution of summary lengths in characters (Unicode runes)",
				Buckets: []float64{50, 100, 200, 400, 600, 800, 1200},
			}, []string{"provider"}),
			duration: getOrCreateHistogramVec(prometheus.HistogramOpts{
				Name:    "article_summarization_duration_seconds",
				Help:    "Time taken to generate a summary via the chat-completion API",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
			}, []string{"provider"}),
			outcomes: getOrCreateCounterVec(prometheus.CounterOpts{
				Name: "article_summaries_total",
				Help: "Total number of summarization calls by outcome",
			}, []string{"provider", "outcome"}),
		}
	})
	return prometheusMetricsInstance
}

// RecordLength implements MetricsRecorder.
func (p *PrometheusMetrics) RecordLength(provider string, length int) {
	p.length.WithLabelValues(provider).Observe(float64(length))
}

// RecordDuration implements MetricsRecorder.
func (p *PrometheusMetrics) RecordDuration(provider string, duration time.Duration) {
	p.duration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordOutcome implements MetricsRecorder.
func (p *PrometheusMetrics) RecordOutcome(provider, outcome string) {
	p.outcomes.WithLabelValues(provider, outcome).Inc()
}
