// Package reader implements the news reading flow: listing headlines,
// searching, and producing a formatted digest for a selected article.
//
// Service is stateless. Session holds the state of one reader and applies
// only the latest request's result.
package reader

import (
	"context"
	"log/slog"
	"strings"

	"newsbrief/internal/domain/entity"
	"newsbrief/internal/usecase/digest"
	"newsbrief/internal/utils/text"
)

// NewsSource lists articles. An empty query means top headlines. It never
// fails; failures surface as an empty list.
type NewsSource interface {
	FetchNews(ctx context.Context, query string) []entity.Article
}

// SummarySource summarizes article text. It always returns display text,
// substituting a placeholder on failure.
type SummarySource interface {
	SummarizeArticle(ctx context.Context, content string) string
}

// ContentFetcher downloads the full text of an article page.
type ContentFetcher interface {
	FetchContent(ctx context.Context, url string) (string, error)
}

// Digest is the summary of one article, raw and segmented.
type Digest struct {
	Article entity.Article
	Raw     string
	Lines   []entity.SummaryLine
}

// Service wires the news and summary clients together.
type Service struct {
	News      NewsSource
	Summaries SummarySource

	// Content is optional. When set, articles whose body is shorter than
	// EnhanceBelow runes are summarized from the full page instead.
	Content      ContentFetcher
	EnhanceBelow int
}

// Headlines returns the top headlines.
func (s *Service) Headlines(ctx context.Context) []entity.Article {
	return s.list(ctx, "")
}

// Search returns articles matching query. A blank query returns the top
// headlines.
func (s *Service) Search(ctx context.Context, query string) []entity.Article {
	return s.list(ctx, strings.TrimSpace(query))
}

// List resolves a listing request: a non-blank query wins, otherwise the
// category decides.
func (s *Service) List(ctx context.Context, category, query string) ([]entity.Article, error) {
	if q := strings.TrimSpace(query); q != "" {
		return s.list(ctx, q), nil
	}
	q, err := QueryForCategory(category)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, q), nil
}

func (s *Service) list(ctx context.Context, query string) []entity.Article {
	return entity.DedupeByURL(s.News.FetchNews(ctx, query))
}

// Digest summarizes the article and segments the result into titled lines.
// Markup in the article text is stripped before it is sent upstream.
func (s *Service) Digest(ctx context.Context, article entity.Article) Digest {
	raw := s.Summaries.SummarizeArticle(ctx, text.StripMarkup(s.body(ctx, article)))
	return Digest{
		Article: article,
		Raw:     raw,
		Lines:   digest.FormatSummary(raw),
	}
}

// body picks the text to summarize, preferring the full page when the API
// body is short and enhancement is configured.
func (s *Service) body(ctx context.Context, article entity.Article) string {
	body := article.Body()
	if s.Content == nil || article.URL == "" || text.CountRunes(body) >= s.EnhanceBelow {
		return body
	}

	full, err := s.Content.FetchContent(ctx, article.URL)
	if err != nil {
		slog.WarnContext(ctx, "content enhancement failed, using API body",
			slog.String("url", article.URL),
			slog.Any("error", err))
		return body
	}
	if text.CountRunes(full) <= text.CountRunes(body) {
		return body
	}

	slog.DebugContext(ctx, "using full article content",
		slog.String("url", article.URL),
		slog.Int("api_length", text.CountRunes(body)),
		slog.Int("full_length", text.CountRunes(full)))
	return full
}
