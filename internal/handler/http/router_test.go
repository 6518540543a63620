package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsbrief/internal/domain/entity"
	"newsbrief/internal/handler/http/requestid"
	"newsbrief/internal/usecase/reader"
)

type fixedNews []entity.Article

func (f fixedNews) FetchNews(context.Context, string) []entity.Article { return f }

type fixedSummary string

func (f fixedSummary) SummarizeArticle(context.Context, string) string { return string(f) }

func newTestRouter(maxBody int64) http.Handler {
	return NewRouter(RouterConfig{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Reader: &reader.Service{
			News:      fixedNews{{Title: "Headline", URL: "https://example.com/1"}},
			Summaries: fixedSummary("Main Point: something happened"),
		},
		MaxBodyBytes: maxBody,
	})
}

func TestNewRouter_Routes(t *testing.T) {
	router := newTestRouter(0)

	tests := []struct {
		method string
		target string
		body   string
		want   int
	}{
		{http.MethodGet, "/news", "", http.StatusOK},
		{http.MethodGet, "/news?category=unknown", "", http.StatusBadRequest},
		{http.MethodGet, "/open?url=https%3A%2F%2Fexample.com%2F1", "", http.StatusOK},
		{http.MethodGet, "/open", "", http.StatusNoContent},
		{http.MethodPost, "/summaries", `{"title":"Headline"}`, http.StatusOK},
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/live", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodGet, "/articles", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body)))

			assert.Equal(t, tt.want, rec.Code)
			assert.NotEmpty(t, rec.Header().Get(requestid.RequestIDHeader))
		})
	}
}

func TestNewRouter_SummaryBody(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(0).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/summaries",
		strings.NewReader(`{"url":"https://example.com/1","title":"Headline"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "https://example.com/1", body["url"])
	assert.Equal(t, "Main Point: something happened", body["summary"])
	assert.Equal(t, []any{map[string]any{"title": "Main Point", "detail": "something happened"}}, body["lines"])
}

func TestNewRouter_BodyLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	body := `{"content":"` + strings.Repeat("a", 512) + `"}`
	newTestRouter(64).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/summaries", strings.NewReader(body)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestNewRouter_CORSPreflight(t *testing.T) {
	router := NewRouter(RouterConfig{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Reader: &reader.Service{News: fixedNews{}},
		CORS: &CORSConfig{
			AllowedOrigins: []string{"https://news.example.com"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         60,
		},
	})

	req := httptest.NewRequest(http.MethodOptions, "/summaries", nil)
	req.Header.Set("Origin", "https://news.example.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://news.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
