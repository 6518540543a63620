// Package summary provides the HTTP handler that summarizes one article.
package summary

// Request is the body of POST /summaries. At least one of Content,
// Description or Title must be non-blank; the first non-blank in that
// order is summarized.
type Request struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

// Response is the summary of one article.
type Response struct {
	URL     string    `json:"url"`
	Summary string    `json:"summary"`
	Lines   []LineDTO `json:"lines"`
}

// LineDTO is one titled bullet of a summary.
type LineDTO struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}
