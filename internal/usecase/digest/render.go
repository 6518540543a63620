package digest

import (
	"strings"

	"newsbrief/internal/domain/entity"
)

// Render writes lines as plain-text bullets: the title after a bullet glyph,
// and the detail indented on the next line when present.
func Render(lines []entity.SummaryLine) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("• ")
		b.WriteString(l.Title)
		b.WriteString("\n")
		if l.Detail != "" {
			b.WriteString("  ")
			b.WriteString(l.Detail)
			b.WriteString("\n")
		}
	}
	return b.String()
}
