// Package newsapi is a client for the GNews search and top-headlines API.
//
// FetchNews is fail-soft: it never returns an error and degrades to an empty
// list, so callers cannot tell "no matches" from "fetch failed". Fetch is the
// strict variant for callers that want to know why a fetch came back empty.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"newsbrief/internal/domain/entity"
	"newsbrief/internal/observability/metrics"
	"newsbrief/internal/observability/tracing"
	"newsbrief/internal/resilience/circuitbreaker"
)

const (
	upstreamName = "news-api"

	opTopHeadlines = "top-headlines"
	opSearch       = "search"

	maxBodySize     = 5 * 1024 * 1024 // 5MB
	maxErrorExcerpt = 256
)

// response is the JSON envelope of both endpoints.
type response struct {
	TotalArticles int              `json:"totalArticles"`
	Articles      []entity.Article `json:"articles"`
}

// Client calls the news API. It holds no per-request state and is safe for
// concurrent use.
type Client struct {
	httpClient     *http.Client
	config         Config
	now            func() time.Time
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithClock replaces the clock used for the cache-busting timestamp.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient creates a news API client.
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		config:         cfg,
		now:            time.Now,
		circuitBreaker: circuitbreaker.New(circuitbreaker.NewsAPIConfig()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CircuitBreaker exposes the client's breaker for health reporting.
func (c *Client) CircuitBreaker() *circuitbreaker.CircuitBreaker {
	return c.circuitBreaker
}

// FetchNews returns top headlines when query is empty and search results
// otherwise. Any failure is logged and yields an empty, non-nil slice.
// Article order is the order returned by the API.
func (c *Client) FetchNews(ctx context.Context, query string) []entity.Article {
	articles, err := c.Fetch(ctx, query)
	if err != nil {
		slog.ErrorContext(ctx, "error fetching news",
			slog.String("operation", operationFor(query)),
			slog.String("query", query),
			slog.Any("error", err))
		return []entity.Article{}
	}
	return articles
}

// Fetch is the strict form of FetchNews. Errors wrap ErrTransport,
// ErrUpstream, ErrMalformedResponse or ErrUnavailable.
func (c *Client) Fetch(ctx context.Context, query string) (articles []entity.Article, err error) {
	op := operationFor(query)

	ctx, span := tracing.StartSpan(ctx, "newsapi.fetch",
		attribute.String("news.operation", op),
		attribute.Bool("news.has_query", query != ""))
	defer func() { tracing.EndWithError(span, err) }()

	start := time.Now()
	articles, err = circuitbreaker.Do(c.circuitBreaker, func() ([]entity.Article, error) {
		return c.doFetch(ctx, op, query)
	})
	duration := time.Since(start)

	switch {
	case circuitbreaker.IsRejected(err):
		slog.WarnContext(ctx, "news api circuit breaker open, request rejected",
			slog.String("service", upstreamName),
			slog.String("state", c.circuitBreaker.State().String()))
		metrics.RecordUpstream(upstreamName, op, metrics.OutcomeRejected, duration)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	case err != nil:
		metrics.RecordUpstream(upstreamName, op, metrics.OutcomeError, duration)
		return nil, err
	}

	outcome := metrics.OutcomeSuccess
	if len(articles) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	metrics.RecordUpstream(upstreamName, op, outcome, duration)
	metrics.RecordArticlesReturned(op, len(articles))
	span.SetAttributes(attribute.Int("news.articles", len(articles)))

	return articles, nil
}

func (c *Client) doFetch(ctx context.Context, op, query string) ([]entity.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(query), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %s request aborted: %w", ErrTransport, op, ctxErr)
		}
		// url.Error carries the full URL including the API key
		return nil, fmt.Errorf("%w: %s request failed: %v", ErrTransport, op, redact(err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d: %s", ErrUpstream, resp.StatusCode, excerpt(body))
	}

	var payload response
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	slog.InfoContext(ctx, "news api returned articles",
		slog.String("operation", op),
		slog.Int("total_articles", payload.TotalArticles),
		slog.Int("returned", len(payload.Articles)))

	if payload.Articles == nil {
		return []entity.Article{}, nil
	}
	return payload.Articles, nil
}

// requestURL builds the endpoint URL. Parameters keep the order the API
// documents; the query is percent-encoded with %20 for spaces.
func (c *Client) requestURL(query string) string {
	base := strings.TrimRight(c.config.BaseURL, "/")
	if query == "" {
		return fmt.Sprintf("%s/top-headlines?country=%s&lang=%s&max=%d&apikey=%s&t=%s",
			base,
			encode(c.config.Country),
			encode(c.config.Language),
			c.config.MaxResults,
			encode(c.config.APIKey),
			strconv.FormatInt(c.now().UnixMilli(), 10))
	}
	return fmt.Sprintf("%s/search?q=%s&lang=%s&apikey=%s",
		base,
		encode(query),
		encode(c.config.Language),
		encode(c.config.APIKey))
}

func operationFor(query string) string {
	if query == "" {
		return opTopHeadlines
	}
	return opSearch
}

// encode percent-encodes s for use as a query value.
func encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func redact(err error) error {
	if uErr, ok := err.(*url.Error); ok {
		return uErr.Err
	}
	return err
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorExcerpt {
		return s[:maxErrorExcerpt] + "..."
	}
	return s
}
