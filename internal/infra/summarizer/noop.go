package summarizer

import (
	"context"
	"strconv"
	"strings"
)

// NoOp builds a summary locally from the article's leading sentences. It
// needs no API key and is meant for development.
type NoOp struct{}

// NewNoOp creates a NoOp summarizer.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Summarize returns up to four "Point N: sentence" bullets, or
// ErrEmptyResponse for blank input.
func (n *NoOp) Summarize(_ context.Context, content string) (string, error) {
	const maxPoints = 4

	var b strings.Builder
	points := 0
	for _, sentence := range strings.FieldsFunc(content, func(r rune) bool {
		return r == '.' || r == '\n' || r == '!' || r == '?'
	}) {
		sentence = strings.Join(strings.Fields(sentence), " ")
		if sentence == "" {
			continue
		}
		if points > 0 {
			b.WriteByte('\n')
		}
		points++
		b.WriteString("- Point ")
		b.WriteString(strconv.Itoa(points))
		b.WriteString(": ")
		b.WriteString(sentence)
		if points == maxPoints {
			break
		}
	}
	if points == 0 {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}
