// Package summarizer turns article text into a short bulleted summary by
// calling a chat-completion API.
//
// Providers implement Summarizer and return errors. FailSoft adapts any of
// them to the display contract: it always yields a string, substituting a
// fixed placeholder when the provider produced nothing or failed.
package summarizer

import (
	"context"
	"errors"
	"log/slog"

	"newsbrief/internal/utils/text"
)

// Placeholders shown in place of a summary.
const (
	NoSummaryText = "No summary available."
	ErrorText     = "Error summarizing article."
)

// maxInputRunes bounds the article text sent upstream. API content is short;
// only readability-enhanced bodies come near it.
const maxInputRunes = 12000

var (
	// ErrEmptyResponse means the provider answered without usable text.
	ErrEmptyResponse = errors.New("summarizer: empty response")

	// ErrUnavailable means the circuit breaker refused the call.
	ErrUnavailable = errors.New("summarizer: provider unavailable")
)

const instruction = `Summarize the following news article in 4–6 bullet points. Each bullet should:
- Start with a short bold-like title followed by ':' (just capitalize, do NOT use any asterisks or markdown)
- Then explain the detail clearly.
Avoid any extra text. Only return the bullet points.`

// Summarizer produces a summary for the given article text.
// Implementations return the trimmed summary, ErrEmptyResponse when the
// provider returned no text, or another error on failure.
type Summarizer interface {
	Summarize(ctx context.Context, content string) (string, error)
}

// BuildPrompt returns the single user message sent to the provider.
func BuildPrompt(content string) string {
	return instruction + "\n\nArticle:\n\n" + content
}

func clampInput(ctx context.Context, provider, content string) string {
	clamped, truncated := text.TruncateRunes(content, maxInputRunes)
	if truncated {
		slog.WarnContext(ctx, "article text truncated before summarization",
			slog.String("provider", provider),
			slog.Int("input_length", text.CountRunes(content)),
			slog.Int("truncated_length", maxInputRunes))
	}
	return clamped
}

// FailSoft wraps a Summarizer so that callers never see an error.
type FailSoft struct {
	summarizer Summarizer
}

// NewFailSoft wraps s.
func NewFailSoft(s Summarizer) *FailSoft {
	return &FailSoft{summarizer: s}
}

// SummarizeArticle returns the summary of content, NoSummaryText when the
// provider returned nothing, or ErrorText when the call failed. Failures are
// logged.
func (f *FailSoft) SummarizeArticle(ctx context.Context, content string) string {
	summary, err := f.summarizer.Summarize(ctx, content)
	switch {
	case errors.Is(err, ErrEmptyResponse):
		return NoSummaryText
	case err != nil:
		slog.ErrorContext(ctx, "error summarizing article", slog.Any("error", err))
		return ErrorText
	case summary == "":
		return NoSummaryText
	}
	return summary
}
