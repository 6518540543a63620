// Package metrics provides Prometheus metrics for calls to upstream APIs
// (the news API, the summarization providers and article pages).
package metrics
