// Package fetcher downloads an article page and extracts its readable text.
// The news API truncates article content, so the full page is an optional
// richer input for summarization.
package fetcher

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"go.opentelemetry.io/otel/attribute"

	"newsbrief/internal/observability/metrics"
	"newsbrief/internal/observability/tracing"
	"newsbrief/internal/resilience/circuitbreaker"
)

const (
	upstreamName   = "content-fetch"
	fetchOperation = "page"
)

// ReadabilityFetcher extracts article text with the Readability algorithm,
// falling back to page metadata and paragraphs when that finds nothing.
// It is safe for concurrent use.
type ReadabilityFetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	config         Config
}

// NewReadabilityFetcher creates a fetcher. Every redirect hop is checked
// against MaxRedirects and re-validated for SSRF. With DenyPrivateIPs the
// dialer also refuses internal addresses.
func NewReadabilityFetcher(cfg Config) *ReadabilityFetcher {
	f := &ReadabilityFetcher{
		circuitBreaker: circuitbreaker.New(circuitbreaker.ContentFetchConfig()),
		config:         cfg,
	}

	dialer := &net.Dialer{Timeout: 10 * time.Second, KeepAlive: 30 * time.Second}
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}
	if cfg.DenyPrivateIPs {
		// a proxy would resolve the article host itself, out of our sight
		dialer.Control = denyPrivateDial
		transport.Proxy = nil
	}

	f.client = &http.Client{
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > f.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", ErrTooManyRedirects, len(via))
			}
			if err := validateURL(req.URL.String(), f.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}
	return f
}

// CircuitBreaker exposes the fetcher's breaker for health reporting.
func (f *ReadabilityFetcher) CircuitBreaker() *circuitbreaker.CircuitBreaker {
	return f.circuitBreaker
}

// FetchContent downloads urlStr and returns its article text.
func (f *ReadabilityFetcher) FetchContent(ctx context.Context, urlStr string) (content string, err error) {
	ctx, span := tracing.StartSpan(ctx, "fetcher.fetch_content")
	defer func() { tracing.EndWithError(span, err) }()

	if err := validateURL(urlStr, f.config.DenyPrivateIPs); err != nil {
		return "", err
	}

	start := time.Now()
	content, err = circuitbreaker.Do(f.circuitBreaker, func() (string, error) {
		return f.doFetch(ctx, urlStr)
	})
	duration := time.Since(start)

	if err != nil {
		if circuitbreaker.IsRejected(err) {
			metrics.RecordUpstream(upstreamName, fetchOperation, metrics.OutcomeRejected, duration)
			return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		metrics.RecordUpstream(upstreamName, fetchOperation, metrics.OutcomeError, duration)
		return "", err
	}

	metrics.RecordUpstream(upstreamName, fetchOperation, metrics.OutcomeSuccess, duration)
	span.SetAttributes(attribute.Int("fetcher.content_bytes", len(content)))
	return content, nil
}

func (f *ReadabilityFetcher) doFetch(ctx context.Context, urlStr string) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: request exceeded %v", ErrTimeout, f.config.Timeout)
		}
		// redirect validation errors arrive wrapped in url.Error
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Err != nil {
			return "", urlErr.Err
		}
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	htmlBytes, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxBodySize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(htmlBytes)) > f.config.MaxBodySize {
		return "", fmt.Errorf("%w: exceeds limit %d bytes", ErrBodyTooLarge, f.config.MaxBodySize)
	}

	pageURL := resp.Request.URL
	if text := extractReadable(htmlBytes, pageURL); text != "" {
		return text, nil
	}

	slog.DebugContext(ctx, "readability found no text, trying page metadata",
		slog.String("url", urlStr))
	if text := extractFallback(htmlBytes); text != "" {
		return text, nil
	}
	return "", ErrNoContent
}

func extractReadable(html []byte, pageURL *url.URL) string {
	article, err := readability.FromReader(bytes.NewReader(html), pageURL)
	if err != nil {
		return ""
	}
	return normalizeText(article.TextContent)
}

// extractFallback joins the article paragraphs, or uses the page
// description when there are none.
func extractFallback(html []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return ""
	}

	var paragraphs []string
	doc.Find("article p, main p").Each(func(_ int, s *goquery.Selection) {
		if p := normalizeText(s.Text()); p != "" {
			paragraphs = append(paragraphs, p)
		}
	})
	if len(paragraphs) > 0 {
		return strings.Join(paragraphs, "\n")
	}

	for _, sel := range []string{`meta[property="og:description"]`, `meta[name="description"]`} {
		if desc := normalizeText(doc.Find(sel).First().AttrOr("content", "")); desc != "" {
			return desc
		}
	}
	return ""
}

// normalizeText collapses runs of spaces inside lines and drops blank lines.
func normalizeText(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
