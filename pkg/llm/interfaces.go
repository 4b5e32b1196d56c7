// Package llm provides completion clients for the compliance assistant.
package llm

import (
	"context"
)

// CompletionClient is the boundary to the external LLM service: one
// text-in/text-out operation. Use this interface for dependency injection
// to enable mocking in tests.
type CompletionClient interface {
	// Complete submits the prompts and returns the generated text.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// GetModel returns the configured model name.
	GetModel() string
}

// Ensure implementations satisfy CompletionClient at compile time.
var (
	_ CompletionClient = (*OpenAIClient)(nil)
	_ CompletionClient = (*AnthropicClient)(nil)
)
