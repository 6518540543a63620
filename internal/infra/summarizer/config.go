package summarizer

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"newsbrief/pkg/config"
)

// Provider names accepted by SUMMARIZER_PROVIDER.
const (
	ProviderOpenRouter = "openrouter"
	ProviderClaude     = "claude"
	ProviderNoOp       = "noop"
)

// OpenRouterConfig holds settings for the OpenRouter chat-completion client.
type OpenRouterConfig struct {
	APIKey string

	// BaseURL is the OpenAI-compatible API root; /chat/completions is
	// appended by the client. Default: https://openrouter.ai/api/v1
	BaseURL string

	// Model defaults to deepseek/deepseek-chat-v3-0324:free.
	Model string

	// MaxTokens caps the completion length. Default: 200
	MaxTokens int

	// Timeout bounds one call. Zero means no explicit deadline.
	Timeout time.Duration
}

// DefaultOpenRouterConfig returns the OpenRouter defaults without an API key.
func DefaultOpenRouterConfig() OpenRouterConfig {
	return OpenRouterConfig{
		BaseURL:   "https://openrouter.ai/api/v1",
		Model:     "deepseek/deepseek-chat-v3-0324:free",
		MaxTokens: 200,
	}
}

// LoadOpenRouterConfig loads and validates the OpenRouter configuration.
//
// Environment variables:
//   - OPENROUTER_API_KEY (required)
//   - OPENROUTER_BASE_URL (default: https://openrouter.ai/api/v1)
//   - OPENROUTER_MODEL (default: deepseek/deepseek-chat-v3-0324:free)
//   - SUMMARIZER_MAX_TOKENS (default: 200)
//   - SUMMARIZER_TIMEOUT (default: 0)
func LoadOpenRouterConfig() (OpenRouterConfig, error) {
	d := DefaultOpenRouterConfig()
	cfg := OpenRouterConfig{
		APIKey:    config.GetEnvString("OPENROUTER_API_KEY", ""),
		BaseURL:   config.GetEnvString("OPENROUTER_BASE_URL", d.BaseURL),
		Model:     config.GetEnvString("OPENROUTER_MODEL", d.Model),
		MaxTokens: config.GetEnvInt("SUMMARIZER_MAX_TOKENS", d.MaxTokens),
		Timeout:   config.GetEnvDuration("SUMMARIZER_TIMEOUT", d.Timeout),
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid OpenRouter configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c OpenRouterConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api key cannot be empty")
	}
	if err := validateBaseURL(c.BaseURL); err != nil {
		return err
	}
	return validateCommon(c.Model, c.MaxTokens, c.Timeout)
}

// ClaudeConfig holds settings for the Anthropic Messages client.
type ClaudeConfig struct {
	APIKey string

	// BaseURL overrides the SDK default endpoint when set.
	BaseURL string

	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// DefaultClaudeConfig returns the Claude defaults without an API key.
func DefaultClaudeConfig() ClaudeConfig {
	return ClaudeConfig{
		Model:     string(anthropic.ModelClaudeSonnet4_5_20250929),
		MaxTokens: 200,
	}
}

// LoadClaudeConfig loads and validates the Claude configuration.
//
// Environment variables:
//   - ANTHROPIC_API_KEY (required)
//   - ANTHROPIC_BASE_URL (optional)
//   - CLAUDE_MODEL (default: claude-sonnet-4-5-20250929)
//   - SUMMARIZER_MAX_TOKENS (default: 200)
//   - SUMMARIZER_TIMEOUT (default: 0)
func LoadClaudeConfig() (ClaudeConfig, error) {
	d := DefaultClaudeConfig()
	cfg := ClaudeConfig{
		APIKey:    config.GetEnvString("ANTHROPIC_API_KEY", ""),
		BaseURL:   config.GetEnvString("ANTHROPIC_BASE_URL", ""),
		Model:     config.GetEnvString("CLAUDE_MODEL", d.Model),
		MaxTokens: config.GetEnvInt("SUMMARIZER_MAX_TOKENS", d.MaxTokens),
		Timeout:   config.GetEnvDuration("SUMMARIZER_TIMEOUT", d.Timeout),
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid Claude configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c ClaudeConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api key cannot be empty")
	}
	if c.BaseURL != "" {
		if err := validateBaseURL(c.BaseURL); err != nil {
			return err
		}
	}
	return validateCommon(c.Model, c.MaxTokens, c.Timeout)
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base URL must be an absolute http(s) URL, got %q", raw)
	}
	return nil
}

func validateCommon(model string, maxTokens int, timeout time.Duration) error {
	if model == "" {
		return fmt.Errorf("model cannot be empty")
	}
	if maxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", maxTokens)
	}
	if err := config.ValidateNonNegativeDuration(timeout); err != nil {
		return fmt.Errorf("timeout: %w", err)
	}
	return nil
}

// NewFromEnv builds the provider named by SUMMARIZER_PROVIDER
// (openrouter, claude or noop; default openrouter).
func NewFromEnv() (Summarizer, error) {
	provider := strings.ToLower(config.GetEnvString("SUMMARIZER_PROVIDER", ProviderOpenRouter))
	switch provider {
	case ProviderOpenRouter:
		cfg, err := LoadOpenRouterConfig()
		if err != nil {
			return nil, err
		}
		return NewOpenRouter(cfg), nil
	case ProviderClaude:
		cfg, err := LoadClaudeConfig()
		if err != nil {
			return nil, err
		}
		return NewClaude(cfg), nil
	case ProviderNoOp:
		return NewNoOp(), nil
	default:
		return nil, fmt.Errorf("unknown SUMMARIZER_PROVIDER %q", provider)
	}
}
