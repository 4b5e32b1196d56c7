package llm

import (
	"fmt"

	"go.uber.org/zap"
)

// Provider names accepted by NewClient.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config holds configuration for creating a completion client.
type Config struct {
	Provider    string // "openai" (any OpenAI-compatible endpoint) or "anthropic"
	Endpoint    string // Base URL for OpenAI-compatible endpoints
	Model       string // Model name, e.g. "gpt-4o" or "claude-sonnet-4-5"
	APIKey      string // Optional for local OpenAI-compatible endpoints
	Temperature float64
}

// NewClient creates a completion client for the configured provider.
func NewClient(cfg *Config, logger *zap.Logger) (CompletionClient, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		return NewOpenAIClient(cfg, logger)
	case ProviderAnthropic:
		return NewAnthropicClient(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q: supported providers are %s, %s",
			cfg.Provider, ProviderOpenAI, ProviderAnthropic)
	}
}
