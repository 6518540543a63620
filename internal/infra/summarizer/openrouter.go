package summarizer

import (
	"context"
	"log/slog"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"newsbrief/internal/resilience/circuitbreaker"
)

// OpenRouter summarizes through OpenRouter's OpenAI-compatible
// chat-completion endpoint.
type OpenRouter struct {
	client *openai.Client
	config OpenRouterConfig
	invoker
}

// OpenRouterOption customizes an OpenRouter summarizer.
type OpenRouterOption func(*openRouterOptions)

type openRouterOptions struct {
	httpClient *http.Client
	metrics    MetricsRecorder
}

// WithOpenRouterHTTPClient replaces the HTTP client used for API calls.
func WithOpenRouterHTTPClient(hc *http.Client) OpenRouterOption {
	return func(o *openRouterOptions) { o.httpClient = hc }
}

// WithOpenRouterMetrics replaces the metrics recorder.
func WithOpenRouterMetrics(m MetricsRecorder) OpenRouterOption {
	return func(o *openRouterOptions) { o.metrics = m }
}

// NewOpenRouter creates an OpenRouter summarizer. The configuration is
// assumed valid.
func NewOpenRouter(cfg OpenRouterConfig, opts ...OpenRouterOption) *OpenRouter {
	o := openRouterOptions{metrics: NewPrometheusMetrics()}
	for _, opt := range opts {
		opt(&o)
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.BaseURL
	if o.httpClient != nil {
		clientConfig.HTTPClient = o.httpClient
	}

	slog.Info("initialized OpenRouter summarizer",
		slog.String("model", cfg.Model),
		slog.Int("max_tokens", cfg.MaxTokens))

	return &OpenRouter{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
		invoker: invoker{
			provider:       ProviderOpenRouter,
			upstream:       "openrouter-api",
			timeout:        cfg.Timeout,
			circuitBreaker: circuitbreaker.New(circuitbreaker.OpenRouterAPIConfig()),
			metrics:        o.metrics,
		},
	}
}

// CircuitBreaker exposes the summarizer's breaker for health reporting.
func (o *OpenRouter) CircuitBreaker() *circuitbreaker.CircuitBreaker {
	return o.circuitBreaker
}

// Summarize sends one chat-completion request and returns the trimmed text
// of the first choice.
func (o *OpenRouter) Summarize(ctx context.Context, content string) (string, error) {
	return o.summarize(ctx, content, o.complete)
}

func (o *OpenRouter) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.config.Model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
		MaxTokens: o.config.MaxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
