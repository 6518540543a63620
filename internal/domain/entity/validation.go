package entity

import (
	"errors"
	"fmt"
	"net/url"
)

var (
	// ErrNotFound means the URL is not among the articles currently listed.
	ErrNotFound = errors.New("article not found")
	// ErrInvalidInput is matched by every *ValidationError.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError reports a rejected field. Its message is safe to show to
// API callers.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

const maxURLLength = 2048

func urlError(format string, args ...any) error {
	return &ValidationError{Field: "url", Message: fmt.Sprintf(format, args...)}
}

// ValidateArticleURL accepts only absolute http(s) URLs with a host, i.e.
// links that are safe to hand to a browser or to fetch.
func ValidateArticleURL(rawURL string) error {
	switch {
	case rawURL == "":
		return urlError("url is required")
	case len(rawURL) > maxURLLength:
		return urlError("url must not exceed %d characters", maxURLLength)
	}

	u, err := url.Parse(rawURL)
	switch {
	case err != nil:
		return urlError("url is invalid")
	case u.Scheme != "http" && u.Scheme != "https":
		return urlError("url must use http or https scheme")
	case u.Host == "":
		return urlError("url must have a valid host")
	}
	return nil
}
