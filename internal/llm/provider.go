package llm

import (
	"context"

	"github.com/catalystscan/catalystscan/internal/model"
)

// Provider defines the interface for remote language models. The
// classification stage treats the model as an opaque, best-effort
// classifier and depends on nothing beyond this interface.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends one prompt and returns the model's raw text answer
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for one model call
type CompletionRequest struct {
	// System sets the assistant's role (provider-specific placement)
	System string

	// Prompt is the full instruction text including the numbered sentences
	Prompt string

	// Model overrides the configured model for this call
	Model string

	// MaxTokens limits the response length
	MaxTokens int

	// Temperature controls sampling; classification wants 0
	Temperature float32
}

// CompletionResponse contains the model's raw output
type CompletionResponse struct {
	// Text is the raw response body; callers must parse it defensively
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Temperature for sampling
	Temperature float32

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:    "",
		Model:       "",
		Timeout:     60,
		MaxTokens:   2000,
		Temperature: 0,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:    mc.Provider,
		Model:       mc.Model,
		APIKey:      mc.APIKey,
		BaseURL:     mc.BaseURL,
		Timeout:     mc.Timeout,
		MaxTokens:   mc.MaxTokens,
		Temperature: mc.Temperature,
		HTTPProxy:   mc.HTTPProxy,
		HTTPSProxy:  mc.HTTPSProxy,
		NoProxy:     mc.NoProxy,
	}
}
