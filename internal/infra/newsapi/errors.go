package newsapi

import "errors"

// Sentinel errors returned by Client.Fetch. FetchNews logs them and
// degrades to an empty result.
var (
	// ErrTransport indicates the request could not be sent or the response
	// could not be read (DNS, connection, timeout).
	ErrTransport = errors.New("news api transport failure")

	// ErrUpstream indicates the API answered with a non-200 status, such as
	// an invalid key or an exhausted quota.
	ErrUpstream = errors.New("news api returned an error")

	// ErrMalformedResponse indicates the response body was not the expected JSON.
	ErrMalformedResponse = errors.New("news api returned a malformed response")

	// ErrUnavailable indicates the circuit breaker rejected the call.
	ErrUnavailable = errors.New("news api unavailable: circuit breaker open")
)
