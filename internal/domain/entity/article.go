// Package entity defines the core domain types shared by the news and summary
// clients: the Article record returned by the news API and the SummaryLine
// derived from a generated summary.
package entity

import "strings"

// Source identifies the publisher of an article.
type Source struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Article is one news item as returned by the news API.
// URL is the article's identity within a single fetch result.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	Image       string `json:"image"`
	PublishedAt string `json:"publishedAt"`
	Source      Source `json:"source"`
}

// Body returns the text to summarize: the content, else the description,
// else the title. Whitespace-only fields count as empty.
func (a Article) Body() string {
	for _, s := range []string{a.Content, a.Description, a.Title} {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// HasImage reports whether the article carries a thumbnail URL.
func (a Article) HasImage() bool {
	return strings.TrimSpace(a.Image) != ""
}

// DedupeByURL drops articles whose URL already appeared earlier in the slice.
// Order of first occurrence is preserved. Articles with an empty URL are kept.
func DedupeByURL(articles []Article) []Article {
	out := make([]Article, 0, len(articles))
	seen := make(map[string]struct{}, len(articles))
	for _, a := range articles {
		if a.URL != "" {
			if _, ok := seen[a.URL]; ok {
				continue
			}
			seen[a.URL] = struct{}{}
		}
		out = append(out, a)
	}
	return out
}

// FindByURL returns the article with the given URL.
func FindByURL(articles []Article, url string) (Article, bool) {
	for _, a := range articles {
		if a.URL == url {
			return a, true
		}
	}
	return Article{}, false
}
