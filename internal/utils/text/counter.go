// Package text provides rune-aware length helpers and markup stripping for
// the article text sent to the summarizer.
package text

import "unicode/utf8"

// CountRunes counts the Unicode characters (runes) in s, so multi-byte
// scripts and emoji count as one character each.
//
//	CountRunes("hello")    // 5
//	CountRunes("日本語")    // 3
//	CountRunes("Hello👋")  // 6
func CountRunes(s string) int {
	return utf8.RuneCountInString(s)
}

// TruncateRunes cuts s to at most limit runes without splitting a
// character. It reports whether anything was removed.
func TruncateRunes(s string, limit int) (string, bool) {
	if limit <= 0 {
		return "", s != ""
	}
	if len(s) <= limit {
		// byte length bounds rune count
		return s, false
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i], true
		}
		n++
	}
	return s, false
}
