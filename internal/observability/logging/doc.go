// Package logging builds the slog loggers used by both binaries.
//
// LOG_LEVEL and LOG_FORMAT (json or text) pick the handler. The HTTP API
// stores a request-scoped logger carrying request_id in the context with
// WithLogger, and the news and summary clients read it back via FromContext
// so their fail-soft warnings can be matched to the request that caused them:
//
//	logger := logging.FromContext(ctx)
//	logger.Warn("news fetch failed", slog.Any("error", err))
package logging
