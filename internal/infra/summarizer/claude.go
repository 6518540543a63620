package summarizer

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"newsbrief/internal/resilience/circuitbreaker"
)

// Claude summarizes through Anthropic's Messages API.
type Claude struct {
	client anthropic.Client
	config ClaudeConfig
	invoker
}

// ClaudeOption customizes a Claude summarizer.
type ClaudeOption func(*claudeOptions)

type claudeOptions struct {
	httpClient *http.Client
	metrics    MetricsRecorder
}

// WithClaudeHTTPClient replaces the HTTP client used for API calls.
func WithClaudeHTTPClient(hc *http.Client) ClaudeOption {
	return func(o *claudeOptions) { o.httpClient = hc }
}

// WithClaudeMetrics replaces the metrics recorder.
func WithClaudeMetrics(m MetricsRecorder) ClaudeOption {
	return func(o *claudeOptions) { o.metrics = m }
}

// NewClaude creates a Claude summarizer. The configuration is assumed valid.
func NewClaude(cfg ClaudeConfig, opts ...ClaudeOption) *Claude {
	o := claudeOptions{metrics: NewPrometheusMetrics()}
	for _, opt := range opts {
		opt(&o)
	}

	// the SDK retries by default; calls here are single-shot
	clientOpts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(cfg.BaseURL))
	}
	if o.httpClient != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(o.httpClient))
	}

	slog.Info("initialized Claude summarizer",
		slog.String("model", cfg.Model),
		slog.Int("max_tokens", cfg.MaxTokens))

	return &Claude{
		client: anthropic.NewClient(clientOpts...),
		config: cfg,
		invoker: invoker{
			provider:       ProviderClaude,
			upstream:       "claude-api",
			timeout:        cfg.Timeout,
			circuitBreaker: circuitbreaker.New(circuitbreaker.ClaudeAPIConfig()),
			metrics:        o.metrics,
		},
	}
}

// CircuitBreaker exposes the summarizer's breaker for health reporting.
func (c *Claude) CircuitBreaker() *circuitbreaker.CircuitBreaker {
	return c.circuitBreaker
}

// Summarize sends one Messages request and returns the trimmed text of the
// first content block.
func (c *Claude) Summarize(ctx context.Context, content string) (string, error) {
	return c.summarize(ctx, content, c.complete)
}

func (c *Claude) complete(ctx context.Context, prompt string) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}
	if len(message.Content) == 0 {
		return "", nil
	}
	block, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", nil
	}
	return block.Text, nil
}
