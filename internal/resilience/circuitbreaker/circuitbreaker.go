// Package circuitbreaker guards the upstream APIs (news, summarizer, article
// pages) with sony/gobreaker so a failing host is short-circuited instead of
// being hit on every reader action.
package circuitbreaker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Config describes when a breaker trips and how it recovers.
type Config struct {
	Name string

	// MaxRequests is how many probe calls pass while half-open.
	MaxRequests uint32
	// Interval resets the closed-state counts; zero never resets them.
	Interval time.Duration
	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration

	// The breaker trips once at least MinRequests calls were counted and
	// the failure ratio reaches FailureThreshold.
	FailureThreshold float64
	MinRequests      uint32
}

func preset(name string, minRequests uint32, threshold float64, interval, timeout time.Duration) Config {
	return Config{
		Name:             name,
		MaxRequests:      3,
		Interval:         interval,
		Timeout:          timeout,
		FailureThreshold: threshold,
		MinRequests:      minRequests,
	}
}

// NewsAPIConfig is used by the GNews client.
func NewsAPIConfig() Config {
	return preset("news-api", 10, 0.7, time.Minute, 30*time.Second)
}

// OpenRouterAPIConfig is used by the OpenRouter summarizer.
func OpenRouterAPIConfig() Config {
	return preset("openrouter-api", 5, 0.6, 30*time.Second, time.Minute)
}

// ClaudeAPIConfig is used by the Claude summarizer.
func ClaudeAPIConfig() Config {
	return preset("claude-api", 5, 0.6, 30*time.Second, time.Minute)
}

// ContentFetchConfig is used when downloading full article pages. Pages come
// from many unrelated hosts, so it tolerates a higher failure ratio.
func ContentFetchConfig() Config {
	c := preset("content-fetch", 10, 0.8, time.Minute, time.Minute)
	c.MaxRequests = 5
	return c
}

func (c Config) readyToTrip(counts gobreaker.Counts) bool {
	if counts.Requests < c.MinRequests {
		return false
	}
	return float64(counts.TotalFailures)/float64(counts.Requests) >= c.FailureThreshold
}

// notUpstreamFailure keeps a caller that gave up (client disconnect, CLI
// interrupt) from counting against a healthy upstream.
func notUpstreamFailure(err error) bool {
	return err == nil || errors.Is(err, context.Canceled)
}

// CircuitBreaker is a named gobreaker instance.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
	name    string
}

// New builds a breaker from cfg. State changes are logged at warn level.
func New(cfg Config) *CircuitBreaker {
	return &CircuitBreaker{
		name: cfg.Name,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:         cfg.Name,
			MaxRequests:  cfg.MaxRequests,
			Interval:     cfg.Interval,
			Timeout:      cfg.Timeout,
			ReadyToTrip:  cfg.readyToTrip,
			IsSuccessful: notUpstreamFailure,
			OnStateChange: func(name string, from, to gobreaker.State) {
				slog.Warn("upstream circuit changed state",
					slog.String("circuit", name),
					slog.String("from", from.String()),
					slog.String("to", to.String()))
			},
		}),
	}
}

// Do runs fn through cb. When the breaker rejects the call fn is not run and
// the error satisfies IsRejected. On any error the zero T is returned.
func Do[T any](cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	var zero T
	res, err := cb.breaker.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		return zero, err
	}
	v, _ := res.(T)
	return v, nil
}

func (cb *CircuitBreaker) State() gobreaker.State { return cb.breaker.State() }

func (cb *CircuitBreaker) Name() string { return cb.name }

// IsOpen reports whether calls are currently short-circuited.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}

// IsRejected reports whether err means the breaker refused the call
// without running it.
func IsRejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
