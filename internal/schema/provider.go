package schema

import "context"

// ChatOptions configures a single LLM chat request.
type ChatOptions struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

// NewChatOptions bundles the per-request generation settings.
func NewChatOptions(model string, maxTokens int, temperature float64) ChatOptions {
	return ChatOptions{Model: model, MaxTokens: maxTokens, Temperature: temperature}
}

// LLMResponse is the normalised response from any LLM provider.
// Content is the raw completion text; directives embedded in it are the
// extractor's concern, not the provider's.
type LLMResponse struct {
	Content      string
	FinishReason string
	Usage        map[string]int
}

// LLMProvider is the interface every LLM backend must satisfy.
// A provider error is fatal to the current turn (no retries in core).
type LLMProvider interface {
	Chat(ctx context.Context, messages Messages, opts ChatOptions) (LLMResponse, error)
	DefaultModel() string
}
