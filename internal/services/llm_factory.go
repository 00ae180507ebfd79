package services

import (
	"fmt"
	"strings"
)

const (
	ProviderOllama  = "ollama"
	ProviderOpenAI  = "openai"
	ProviderSidecar = "sidecar"
)

// ProviderSettings selects and configures a model backend
type ProviderSettings struct {
	Provider string
	BaseURL  string
	Model    string
	APIKey   string
}

// NewLLMClient builds the LLM client named by settings.Provider
func NewLLMClient(settings ProviderSettings) (LLMClient, error) {
	switch strings.ToLower(settings.Provider) {
	case "", ProviderOllama:
		return NewLLMService(settings.BaseURL, settings.Model), nil
	case ProviderOpenAI:
		return NewOpenAIService(settings.APIKey, settings.Model, settings.BaseURL)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}

// NewEmbedder builds the embedder named by settings.Provider
func NewEmbedder(settings ProviderSettings) (Embedder, error) {
	switch strings.ToLower(settings.Provider) {
	case "", ProviderSidecar:
		if settings.BaseURL == "" {
			return nil, fmt.Errorf("embedding sidecar URL is required")
		}
		return NewEmbeddingClient(settings.BaseURL, settings.Model), nil
	case ProviderOpenAI:
		return NewOpenAIEmbedder(settings.APIKey, settings.Model, settings.BaseURL)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}
