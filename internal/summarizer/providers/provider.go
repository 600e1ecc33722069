// Package providers contains implementations of different LLM providers
// used by the transcript summarization pipeline.
package providers

import (
	"context"
	"time"
)

const (
	// Provider constants
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGoogle    = "google"
	ProviderXAI       = "xai"

	// Default settings
	DefaultTimeout   = 60 * time.Second
	DefaultMaxTokens = 1024
)

// Message roles understood by all providers. Providers with a different
// wire format translate these before sending.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is a single role-tagged message in a model conversation.
type Message struct {
	Role    string
	Content string
}

// GenerateRequest describes one model invocation: the messages to send,
// an optional model override, and sampling/output limits.
type GenerateRequest struct {
	Messages    []Message
	Model       string
	Temperature float32
	MaxTokens   int
}

// LLMProvider defines the narrow capability interface the summarization
// pipeline depends on. Implementations make exactly one outbound call
// per Generate and hold no pipeline state.
type LLMProvider interface {
	// Generate sends the request to the provider and returns the
	// generated text, or an error describing the provider failure.
	Generate(ctx context.Context, req GenerateRequest) (string, error)

	// Name returns the provider name
	Name() string
}

// Config holds common configuration for LLM providers
type Config struct {
	APIKey  string
	ModelID string

	// BaseURL overrides the provider's API endpoint. Empty means the
	// provider default. Tests point this at an httptest server.
	BaseURL string
}
