// Package resilience holds fault tolerance helpers for calls to external APIs.
//
// Calls to the news API, the summarization providers and article pages are
// never retried. A circuit breaker per upstream fast-fails once a burst of
// failures trips it, and the callers turn that failure into their fail-soft
// default like any other.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.NewsAPIConfig())
//	articles, err := circuitbreaker.Do(cb, func() ([]entity.Article, error) {
//	    return fetch(ctx)
//	})
package resilience
