package fetcher

import "errors"

// Errors returned by FetchContent. Callers fall back to the API-provided
// article body on any of them.
var (
	// ErrInvalidURL means the URL does not parse or is not http(s).
	ErrInvalidURL = errors.New("invalid URL or unsupported scheme")

	// ErrPrivateIP means the host resolves to a loopback, private or
	// link-local address.
	ErrPrivateIP = errors.New("URL resolves to private IP address")

	// ErrTooManyRedirects means the redirect chain exceeded MaxRedirects.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrBodyTooLarge means the page exceeded MaxBodySize.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrTimeout means the page did not arrive within Timeout.
	ErrTimeout = errors.New("request timeout")

	// ErrNoContent means neither extractor found readable text.
	ErrNoContent = errors.New("no readable content found")

	// ErrUnavailable means the circuit breaker refused the call.
	ErrUnavailable = errors.New("content fetch unavailable")
)
