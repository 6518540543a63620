package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"newsbrief/internal/app"
	hhttp "newsbrief/internal/handler/http"
	"newsbrief/internal/observability/logging"
	"newsbrief/internal/observability/tracing"
	"newsbrief/pkg/config"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("failed to load .env", slog.Any("error", err))
		os.Exit(1)
	}

	logger := initLogger()
	version := getVersion()

	shutdownTracing := tracing.Setup("newsbrief-api", version,
		config.GetEnvFloat("TRACING_SAMPLE_RATIO", 1.0))

	components, err := app.FromEnv(logger)
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	cors, err := hhttp.LoadCORSConfig()
	if err != nil {
		logger.Error("failed to load CORS configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if cors == nil {
		logger.Info("CORS disabled (CORS_ALLOWED_ORIGINS not set)")
	}

	handler := hhttp.NewRouter(hhttp.RouterConfig{
		Logger: logger,
		Reader: components.Reader,
		Health: &hhttp.HealthHandler{
			Version:  version,
			Breakers: components.Breakers,
		},
		CORS: cors,
	})

	if err := runServer(logger, handler, version); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		flushTracing(logger, shutdownTracing)
		os.Exit(1)
	}
	flushTracing(logger, shutdownTracing)
}

// initLogger builds the JSON logger from LOG_LEVEL and LOG_FORMAT and makes
// it the default.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	return config.GetEnvString("VERSION", "dev")
}

func flushTracing(logger *slog.Logger, shutdown func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		logger.Error("tracer shutdown failed", slog.Any("error", err))
	}
}

// runServer serves until SIGINT or SIGTERM, then drains in-flight requests.
func runServer(logger *slog.Logger, handler http.Handler, version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := config.GetEnvString("HTTP_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}
