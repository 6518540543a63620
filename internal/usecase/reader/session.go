package reader

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"newsbrief/internal/domain/entity"
)

// ErrStale means a newer request of the same kind started while this one
// was in flight; its result was discarded.
var ErrStale = errors.New("result superseded by a newer request")

// Snapshot is a copy of a session's state.
type Snapshot struct {
	Articles    []entity.Article
	Query       string
	Category    string
	Loading     bool
	Summarizing bool
	Selected    *entity.Article
	Digest      *Digest
}

// Session holds one reader's state. Methods are safe for concurrent use.
// The lock is never held across network calls; each fetch and summarize
// takes a generation number and its result is applied only if no newer
// request of the same kind started meanwhile.
type Session struct {
	svc *Service

	mu          sync.Mutex
	articles    []entity.Article
	query       string
	category    string
	loading     bool
	summarizing bool
	selected    *entity.Article
	digest      *Digest
	fetchGen    uint64
	summaryGen  uint64
}

// NewSession creates an empty session on the default category.
func NewSession(svc *Service) *Session {
	return &Session{
		svc:      svc,
		articles: []entity.Article{},
		category: DefaultCategory,
	}
}

// Load lists the top headlines and resets the query and category.
func (s *Session) Load(ctx context.Context) ([]entity.Article, error) {
	return s.fetch(ctx, "", DefaultCategory, "")
}

// Search lists articles for query. A blank query behaves as Load.
func (s *Session) Search(ctx context.Context, query string) ([]entity.Article, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return s.Load(ctx)
	}
	s.mu.Lock()
	category := s.category
	s.mu.Unlock()
	return s.fetch(ctx, q, category, q)
}

// SelectCategory switches category, clears the query and lists the
// category's articles.
func (s *Session) SelectCategory(ctx context.Context, category string) ([]entity.Article, error) {
	c, err := NormalizeCategory(category)
	if err != nil {
		return nil, err
	}
	q, err := QueryForCategory(c)
	if err != nil {
		return nil, err
	}
	return s.fetch(ctx, "", c, q)
}

// Refresh re-runs the current search, or the current category listing when
// there is no search.
func (s *Session) Refresh(ctx context.Context) ([]entity.Article, error) {
	s.mu.Lock()
	query, category := s.query, s.category
	s.mu.Unlock()

	if query != "" {
		return s.fetch(ctx, query, category, query)
	}
	q, err := QueryForCategory(category)
	if err != nil {
		return nil, err
	}
	return s.fetch(ctx, "", category, q)
}

// fetch lists apiQuery and, if still current, commits the list together with
// the query and category that describe it. A cancelled fetch leaves all three
// untouched.
func (s *Session) fetch(ctx context.Context, query, category, apiQuery string) ([]entity.Article, error) {
	s.mu.Lock()
	s.fetchGen++
	gen := s.fetchGen
	s.loading = true
	s.mu.Unlock()

	articles := s.svc.list(ctx, apiQuery)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.fetchGen {
		return nil, ErrStale
	}
	s.loading = false
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.articles = articles
	s.query = query
	s.category = category
	return cloneArticles(articles), nil
}

// Open summarizes the listed article with the given URL and makes it the
// selected article.
func (s *Session) Open(ctx context.Context, url string) (Digest, error) {
	s.mu.Lock()
	article, ok := entity.FindByURL(s.articles, url)
	if !ok {
		s.mu.Unlock()
		return Digest{}, fmt.Errorf("article %q: %w", url, entity.ErrNotFound)
	}
	s.summaryGen++
	gen := s.summaryGen
	s.selected = &article
	s.digest = nil
	s.summarizing = true
	s.mu.Unlock()

	d := s.svc.Digest(ctx, article)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.summaryGen {
		return Digest{}, ErrStale
	}
	s.summarizing = false
	if err := ctx.Err(); err != nil {
		return Digest{}, err
	}
	s.digest = &d
	return d, nil
}

// CloseSummary deselects the article. A summary still in flight is
// discarded when it arrives.
func (s *Session) CloseSummary() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaryGen++
	s.selected = nil
	s.digest = nil
	s.summarizing = false
}

// Articles returns a copy of the current list.
func (s *Session) Articles() []entity.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneArticles(s.articles)
}

// Snapshot returns a copy of the whole state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Articles:    cloneArticles(s.articles),
		Query:       s.query,
		Category:    s.category,
		Loading:     s.loading,
		Summarizing: s.summarizing,
	}
	if s.selected != nil {
		a := *s.selected
		snap.Selected = &a
	}
	if s.digest != nil {
		d := *s.digest
		d.Lines = append([]entity.SummaryLine(nil), s.digest.Lines...)
		snap.Digest = &d
	}
	return snap
}

func cloneArticles(articles []entity.Article) []entity.Article {
	return append(make([]entity.Article, 0, len(articles)), articles...)
}
