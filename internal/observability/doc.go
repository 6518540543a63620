// Package observability groups the logging, metrics and tracing helpers used
// by the news and summary clients and by the HTTP API.
//
// Subpackages:
//   - logging: slog loggers with request ID propagation
//   - metrics: Prometheus metrics for calls to upstream APIs
//   - tracing: OpenTelemetry tracer, provider setup and HTTP middleware
package observability
