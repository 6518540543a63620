package http

import (
	"log/slog"
	"net/http"

	"newsbrief/internal/handler/http/news"
	"newsbrief/internal/handler/http/requestid"
	"newsbrief/internal/handler/http/summary"
	"newsbrief/internal/observability/tracing"
	"newsbrief/internal/usecase/reader"
)

// DefaultMaxBodyBytes caps request bodies; a summary request carries at most
// one article.
const DefaultMaxBodyBytes = 1 << 20

// RouterConfig holds what NewRouter wires together.
type RouterConfig struct {
	Logger       *slog.Logger
	Reader       *reader.Service
	Health       *HealthHandler
	MaxBodyBytes int64

	// CORS is optional; nil leaves cross-origin requests without CORS headers.
	CORS *CORSConfig
}

// NewRouter registers every route and wraps the mux in the middleware chain.
// Order, outermost first: CORS (when configured), request ID, tracing,
// metrics, logging, panic recovery, body limit.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	health := cfg.Health
	if health == nil {
		health = &HealthHandler{}
	}

	mux := http.NewServeMux()
	news.Register(mux, cfg.Reader)
	summary.Register(mux, cfg.Reader)
	mux.Handle("GET /health", health)
	mux.Handle("GET /live", LiveHandler{})
	mux.Handle("GET /metrics", MetricsHandler())

	mws := make([]Middleware, 0, 7)
	if cfg.CORS != nil {
		mws = append(mws, CORS(*cfg.CORS, logger))
	}
	mws = append(mws,
		requestid.Middleware,
		tracing.Middleware,
		MetricsMiddleware,
		Logging(logger),
		Recover(logger),
		LimitRequestBody(maxBody),
	)
	return Chain(mux, mws...)
}
