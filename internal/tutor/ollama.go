package tutor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// OllamaProvider talks to Ollama's native /api/generate endpoint.
type OllamaProvider struct {
	url   string
	model string
	http  *http.Client
}

func NewOllamaProvider(url, model string, client *http.Client) *OllamaProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &OllamaProvider{url: url, model: model, http: client}
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	NumPredict  int     `json:"num_predict"`
	MaxTokens   int     `json:"max_tokens"`
}

type ollamaGenerateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaGenerateResponse struct {
	Response *string `json:"response"`
}

func (p *OllamaProvider) Generate(ctx context.Context, req Request) (string, error) {
	body := ollamaGenerateRequest{
		Model:  p.model,
		Prompt: req.Prompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: req.Temperature,
			TopP:        req.TopP,
			NumPredict:  req.NumPredict,
			MaxTokens:   req.MaxTokens,
		},
	}

	var out ollamaGenerateResponse
	if err := postJSON(ctx, p.http, p.url, body, &out); err != nil {
		return "", err
	}
	if out.Response == nil {
		return "", ErrEmptyResponse
	}
	return *out.Response, nil
}

func (p *OllamaProvider) Name() string    { return "Ollama" }
func (p *OllamaProvider) ModelID() string { return p.model }

// OllamaEmbedder calls Ollama's /api/embeddings endpoint.
type OllamaEmbedder struct {
	url   string
	model string
	http  *http.Client
}

func NewOllamaEmbedder(url, model string, client *http.Client) *OllamaEmbedder {
	if client == nil {
		client = http.DefaultClient
	}
	return &OllamaEmbedder{url: url, model: model, http: client}
}

func (e *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	body := map[string]string{"model": e.model, "prompt": text}

	var out struct {
		Embedding []float32 `json:"embedding"`
	}
	if err := postJSON(ctx, e.http, e.url, body, &out); err != nil {
		return nil, fmt.Errorf("embedding text: %w", err)
	}
	if len(out.Embedding) == 0 {
		return nil, fmt.Errorf("embedding text: %w", ErrEmptyResponse)
	}
	return out.Embedding, nil
}

func postJSON(ctx context.Context, client *http.Client, url string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
