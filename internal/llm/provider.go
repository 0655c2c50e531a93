package llm

import (
	"context"
	"fmt"
)

// Provider tags. Each tag selects a concrete client family; callers never
// branch on the tag themselves.
const (
	ProviderOpenAI = "openai"
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// Config identifies which backend and credentials to use for a single call.
type Config struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	APIKey   string `json:"api_key"`
}

// Validate checks the invariants a config must satisfy before any call.
// Model names are not validated locally; a wrong model surfaces as a
// provider HTTP error.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderGroq, ProviderGemini:
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("model is required for provider %q", c.Provider)
	}
	if c.APIKey == "" {
		return fmt.Errorf("api key is required for provider %q", c.Provider)
	}
	return nil
}

// DocumentPart is an optional binary attachment (e.g. a PDF) for providers
// that accept multimodal input.
type DocumentPart struct {
	Data     []byte
	MIMEType string
}

// Request is the uniform shape every provider variant accepts.
type Request struct {
	Prompt          string
	Document        *DocumentPart
	Temperature     float64
	MaxOutputTokens int
}

// Provider is the uniform call interface over the supported text-generation
// backends. Implementations make one outbound network call per invocation,
// with no caching and no retry; failures propagate as *ProviderError.
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Factory builds a Provider for a config. Services depend on a Factory so
// tests can substitute stub providers.
type Factory func(cfg Config) (Provider, error)

// New selects the provider implementation for cfg.Provider.
func New(cfg Config) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Provider {
	case ProviderOpenAI:
		return &chatCompletionProvider{cfg: cfg}, nil
	case ProviderGroq:
		return &chatCompletionProvider{cfg: cfg, baseURL: groqBaseURL}, nil
	case ProviderGemini:
		return &geminiProvider{cfg: cfg}, nil
	}
	return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
}
