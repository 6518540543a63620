package text

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy removes every tag. A bluemonday policy is safe for concurrent
// use once built.
var strictPolicy = bluemonday.StrictPolicy()

// StripMarkup returns s with HTML tags removed and entities decoded.
// Text without '<' or '&' is returned unchanged.
func StripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	return html.UnescapeString(strictPolicy.Sanitize(s))
}
