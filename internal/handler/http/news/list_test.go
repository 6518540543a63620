package news_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsbrief/internal/domain/entity"
	"newsbrief/internal/handler/http/news"
	"newsbrief/internal/handler/http/respond"
	"newsbrief/internal/usecase/reader"
)

/* ───────── stubs ───────── */

type stubNews struct {
	articles []entity.Article
	queries  []string
}

func (s *stubNews) FetchNews(_ context.Context, query string) []entity.Article {
	s.queries = append(s.queries, query)
	return s.articles
}

type stubLister struct {
	err error
}

func (s stubLister) List(_ context.Context, _, _ string) ([]entity.Article, error) {
	return nil, s.err
}

func newMux(svc news.Lister) *http.ServeMux {
	mux := http.NewServeMux()
	news.Register(mux, svc)
	return mux
}

/* ───────── tests ───────── */

func TestListHandler_QueryAndCategoryRouting(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantQuery string
	}{
		{name: "no parameters lists headlines", target: "/news", wantQuery: ""},
		{name: "general category lists headlines", target: "/news?category=general", wantQuery: ""},
		{name: "category searches keyword", target: "/news?category=Sports", wantQuery: "sports"},
		{name: "query wins over category", target: "/news?q=monsoon&category=sports", wantQuery: "monsoon"},
		{name: "query is trimmed", target: "/news?q=%20%20rbi%20policy%20", wantQuery: "rbi policy"},
		{name: "blank query falls back to category", target: "/news?q=%20&category=health", wantQuery: "health"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &stubNews{}
			mux := newMux(&reader.Service{News: src})

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, []string{tt.wantQuery}, src.queries)
		})
	}
}

func TestListHandler_ReturnsArticlesInOrder(t *testing.T) {
	src := &stubNews{articles: []entity.Article{
		{Title: "First", URL: "https://example.com/1", PublishedAt: "2025-01-02T03:04:05Z",
			Source: entity.Source{Name: "Example", URL: "https://example.com"}},
		{Title: "Second", URL: "https://example.com/2", Image: "https://example.com/2.jpg"},
		{Title: "Duplicate", URL: "https://example.com/1"},
	}}
	mux := newMux(&reader.Service{News: src})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/news", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got []news.DTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

	want := []news.DTO{
		{Title: "First", URL: "https://example.com/1", PublishedAt: "2025-01-02T03:04:05Z",
			Source: news.SourceDTO{Name: "Example", URL: "https://example.com"}},
		{Title: "Second", URL: "https://example.com/2", Image: "https://example.com/2.jpg"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("articles mismatch (-want +got):\n%s", diff)
	}
}

func TestListHandler_WireFieldNames(t *testing.T) {
	src := &stubNews{articles: []entity.Article{
		{Title: "First", URL: "https://example.com/1", PublishedAt: "2025-01-02T03:04:05Z"},
	}}
	mux := newMux(&reader.Service{News: src})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/news", nil))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)

	keys := make([]string, 0, len(got[0]))
	for k := range got[0] {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t,
		[]string{"title", "description", "content", "url", "published_at", "source"}, keys)
}

func TestListHandler_EmptyListIsJSONArray(t *testing.T) {
	mux := newMux(&reader.Service{News: &stubNews{}})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/news?q=nothing", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListHandler_UnknownCategory(t *testing.T) {
	src := &stubNews{}
	mux := newMux(&reader.Service{News: src})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/news?category=weather", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body respond.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body.Error, "unknown category")
	assert.Empty(t, src.queries, "no upstream call for a rejected category")
}

func TestListHandler_UnexpectedErrorIsHidden(t *testing.T) {
	mux := newMux(stubLister{err: errors.New("token=secret-value leaked")})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/news", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret-value")
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestListHandler_MethodNotAllowed(t *testing.T) {
	mux := newMux(&reader.Service{News: &stubNews{}})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/news", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
