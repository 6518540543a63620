package reader

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultCategory lists top headlines.
const DefaultCategory = "general"

// Categories are the selectable news categories, in display order.
var Categories = []string{
	"general",
	"business",
	"entertainment",
	"health",
	"science",
	"sports",
	"technology",
}

// ErrUnknownCategory is returned for a category outside Categories.
var ErrUnknownCategory = errors.New("unknown category")

// NormalizeCategory lowercases and trims category and checks it is known.
// An empty category means DefaultCategory.
func NormalizeCategory(category string) (string, error) {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" {
		return DefaultCategory, nil
	}
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, category)
}

// QueryForCategory returns the news query that lists a category: empty
// (top headlines) for the default category, the category keyword otherwise.
func QueryForCategory(category string) (string, error) {
	c, err := NormalizeCategory(category)
	if err != nil {
		return "", err
	}
	if c == DefaultCategory {
		return "", nil
	}
	return c, nil
}
