package tutor

import "context"

// Sampling parameters sent with every tutor prompt.
const (
	DefaultTemperature = 0.7
	DefaultTopP        = 0.9
	DefaultNumPredict  = 300
	DefaultMaxTokens   = 1500
)

type Request struct {
	Prompt      string
	Temperature float64
	TopP        float64
	// NumPredict caps generated tokens on backends that distinguish it from
	// MaxTokens.
	NumPredict int
	MaxTokens  int
}

func NewRequest(prompt string) Request {
	return Request{
		Prompt:      prompt,
		Temperature: DefaultTemperature,
		TopP:        DefaultTopP,
		NumPredict:  DefaultNumPredict,
		MaxTokens:   DefaultMaxTokens,
	}
}

// Provider is a text generation backend.
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
	// Name is the backend's display name, e.g. "Ollama".
	Name() string
	ModelID() string
}

// Embedder turns text into a dense vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
