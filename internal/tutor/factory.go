package tutor

import (
	"context"
	"fmt"
	"net/http"

	"codetrek/configs"
)

// NewProvider builds the generation backend named by cfg.TutorProvider.
func NewProvider(ctx context.Context, cfg *configs.Config) (Provider, error) {
	var (
		p   Provider
		err error
	)
	switch cfg.TutorProvider {
	case "ollama":
		p = NewOllamaProvider(cfg.OllamaURL, cfg.TutorModel, &http.Client{})
	case "openai":
		p, err = NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.TutorModel)
	case "anthropic":
		p, err = NewAnthropicProvider(cfg.AnthropicAPIKey, cfg.TutorModel)
	case "gemini":
		p, err = NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.TutorModel)
	case "mock":
		p = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown tutor provider: %q", cfg.TutorProvider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.TutorProvider, err)
	}
	return p, nil
}

// NewEmbedder builds the embedding backend named by cfg.EmbedProvider.
func NewEmbedder(cfg *configs.Config) (Embedder, error) {
	switch cfg.EmbedProvider {
	case "ollama":
		return NewOllamaEmbedder(cfg.OllamaEmbedURL, cfg.EmbedModel, &http.Client{}), nil
	case "openai":
		p, err := NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.EmbedModel)
		if err != nil {
			return nil, fmt.Errorf("initializing openai embedder: %w", err)
		}
		return p, nil
	case "mock":
		return &MockEmbedder{}, nil
	default:
		return nil, fmt.Errorf("unknown embed provider: %q", cfg.EmbedProvider)
	}
}
