// Package app builds the reader service from environment configuration.
// Both binaries share it so they run the same clients with the same
// settings.
package app

import (
	"fmt"
	"log/slog"

	"newsbrief/internal/infra/fetcher"
	"newsbrief/internal/infra/newsapi"
	"newsbrief/internal/infra/summarizer"
	"newsbrief/internal/resilience/circuitbreaker"
	"newsbrief/internal/usecase/reader"
)

// Components is the wired reader and the circuit breakers of its upstreams,
// which the health endpoint reports.
type Components struct {
	Reader   *reader.Service
	Breakers []*circuitbreaker.CircuitBreaker
}

type breakerOwner interface {
	CircuitBreaker() *circuitbreaker.CircuitBreaker
}

// FromEnv loads every client configuration and wires the reader service.
// Any invalid configuration is returned as an error.
func FromEnv(logger *slog.Logger) (*Components, error) {
	newsCfg, err := newsapi.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	newsClient := newsapi.NewClient(newsCfg)

	sum, err := summarizer.NewFromEnv()
	if err != nil {
		return nil, fmt.Errorf("invalid summarizer configuration: %w", err)
	}

	fetchCfg, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}

	svc := &reader.Service{
		News:      newsClient,
		Summaries: summarizer.NewFailSoft(sum),
	}
	breakers := []*circuitbreaker.CircuitBreaker{newsClient.CircuitBreaker()}
	if owner, ok := sum.(breakerOwner); ok {
		breakers = append(breakers, owner.CircuitBreaker())
	}

	if fetchCfg.Enabled {
		f := fetcher.NewReadabilityFetcher(fetchCfg)
		svc.Content = f
		svc.EnhanceBelow = fetchCfg.Threshold
		breakers = append(breakers, f.CircuitBreaker())
	}

	logger.Info("reader configured",
		slog.String("news_base_url", newsCfg.BaseURL),
		slog.String("country", newsCfg.Country),
		slog.String("language", newsCfg.Language),
		slog.String("summarizer", fmt.Sprintf("%T", sum)),
		slog.Bool("content_fetch_enabled", fetchCfg.Enabled),
		slog.Int("content_fetch_threshold", fetchCfg.Threshold))

	return &Components{Reader: svc, Breakers: breakers}, nil
}
