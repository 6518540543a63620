// Package digest turns a free-form bulleted summary into display segments.
//
// FormatSummary is pure and deterministic: it performs no I/O and keeps no
// state between lines, so the same input always yields the same output.
package digest

import (
	"strings"

	"newsbrief/internal/domain/entity"
)

// fallbackTitleWords is how many leading words become the title of a line
// that has no colon.
const fallbackTitleWords = 3

// bulletMarkers are the leading markers stripped from a line. Only one is
// removed per line.
var bulletMarkers = []string{"-", "•"}

// FormatSummary splits raw into one SummaryLine per non-blank line, in input
// order.
//
// A line with a colon is split on the first colon into title and detail,
// both trimmed; later colons stay in the detail. A line without a colon uses
// its first three whitespace-separated words as the title and the remaining
// words, joined by single spaces, as the detail.
func FormatSummary(raw string) []entity.SummaryLine {
	lines := strings.Split(raw, "\n")
	out := make([]entity.SummaryLine, 0, len(lines))

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, segment(stripBullet(line)))
	}

	return out
}

// stripBullet removes surrounding whitespace and then a single leading bullet
// marker together with the whitespace after it.
func stripBullet(line string) string {
	s := strings.TrimSpace(line)
	for _, m := range bulletMarkers {
		if rest, ok := strings.CutPrefix(s, m); ok {
			return strings.TrimSpace(rest)
		}
	}
	return s
}

func segment(s string) entity.SummaryLine {
	if title, detail, ok := strings.Cut(s, ":"); ok {
		return entity.SummaryLine{
			Title:  strings.TrimSpace(title),
			Detail: strings.TrimSpace(detail),
		}
	}

	words := strings.Fields(s)
	n := min(fallbackTitleWords, len(words))
	return entity.SummaryLine{
		Title:  strings.Join(words[:n], " "),
		Detail: strings.Join(words[n:], " "),
	}
}
