package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codetrek/configs"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIProvider(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "llama3", body["model"])
		assert.InDelta(t, 0.7, body["temperature"], 1e-6)
		assert.InDelta(t, 0.9, body["top_p"], 1e-6)
		assert.Equal(t, float64(1500), body["max_tokens"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "llama3",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": "Think about sorting."},
				"finish_reason": "stop",
			}},
		})
	})
	mux.HandleFunc("/v1/embeddings", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   []map[string]any{{"object": "embedding", "index": 0, "embedding": []float32{1, 0}}},
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	p, err := NewOpenAIProvider("test-key", server.URL+"/v1", "llama3")
	require.NoError(t, err)

	text, err := p.Generate(context.Background(), NewRequest("hint please"))
	require.NoError(t, err)
	assert.Equal(t, "Think about sorting.", text)

	vec, err := p.Embed(context.Background(), "graphs")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0}, vec)
}

func TestOpenAIProviderStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":{"message":"upstream down","type":"server_error"}}`))
	}))
	t.Cleanup(server.Close)

	p, err := NewOpenAIProvider("test-key", server.URL+"/v1", "llama3")
	require.NoError(t, err)

	got := NewClient(p, time.Second).Generate(context.Background(), "x")
	assert.Equal(t, "Error: API returned status code 502", got)
}

func TestNewOpenAIProviderRequiresKeyOrBaseURL(t *testing.T) {
	_, err := NewOpenAIProvider("", "", "gpt-4o-mini")
	assert.Error(t, err)
}

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewAnthropicProvider("test-key", "claude-haiku-4-5-20251001",
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	require.NoError(t, err)
	return p
}

func TestAnthropicProvider(t *testing.T) {
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":          "msg_test",
			"type":        "message",
			"role":        "assistant",
			"content":     []map[string]any{{"type": "text", "text": "Consider two pointers."}},
			"model":       "claude-haiku-4-5-20251001",
			"stop_reason": "end_turn",
			"usage":       map[string]any{"input_tokens": 10, "output_tokens": 5},
		})
	})

	text, err := p.Generate(context.Background(), NewRequest("hint"))
	require.NoError(t, err)
	assert.Equal(t, "Consider two pointers.", text)
}

func TestAnthropicProviderStatusError(t *testing.T) {
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"invalid_request_error","message":"bad"}}`))
	})

	_, err := p.Generate(context.Background(), NewRequest("hint"))
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.Code)
}

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGeminiProvider(context.Background(), "test-key", server.URL, "gemini-2.0-flash")
	require.NoError(t, err)
	return p
}

func TestGeminiProvider(t *testing.T) {
	p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "gemini-2.0-flash:generateContent")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Try a hash map."}]},"finishReason":"STOP"}]}`))
	})

	text, err := p.Generate(context.Background(), NewRequest("hint"))
	require.NoError(t, err)
	assert.Equal(t, "Try a hash map.", text)
}

func TestGeminiProviderStatusError(t *testing.T) {
	p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"code":503,"message":"overloaded","status":"UNAVAILABLE"}}`))
	})

	_, err := p.Generate(context.Background(), NewRequest("hint"))
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)

	got := NewClient(p, time.Second).Generate(context.Background(), "hint")
	assert.Equal(t, "Error: API returned status code 503", got)
}

func TestMockProvider(t *testing.T) {
	m := NewMockProvider(MockResponse{Text: "first"}, MockResponse{Err: errors.New("boom")})
	c := NewClient(m, time.Second)

	assert.Equal(t, "first", c.Generate(context.Background(), "a"))
	assert.Equal(t, "Error connecting to Mock API: boom", c.Generate(context.Background(), "b"))
	assert.Equal(t, "This is a mock tutor response.", c.Generate(context.Background(), "c"))
	assert.Equal(t, 3, m.CallCount())
	assert.Equal(t, "c", m.LastPrompt())
	assert.Equal(t, DefaultTemperature, m.Calls[0].Temperature)
}

func TestMockEmbedderIsDeterministic(t *testing.T) {
	e := &MockEmbedder{Dim: 16}
	a, err := e.Embed(context.Background(), "Binary Search")
	require.NoError(t, err)
	b, err := e.Embed(context.Background(), "binary search!")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 16)
}

func TestFactory(t *testing.T) {
	ctx := context.Background()

	p, err := NewProvider(ctx, &configs.Config{TutorProvider: "ollama", TutorModel: "llama3"})
	require.NoError(t, err)
	assert.Equal(t, "Ollama", p.Name())
	assert.Equal(t, "llama3", p.ModelID())

	p, err = NewProvider(ctx, &configs.Config{TutorProvider: "mock"})
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	_, err = NewProvider(ctx, &configs.Config{TutorProvider: "anthropic"})
	assert.Error(t, err)

	_, err = NewProvider(ctx, &configs.Config{TutorProvider: "skynet"})
	assert.Error(t, err)

	e, err := NewEmbedder(&configs.Config{EmbedProvider: "mock"})
	require.NoError(t, err)
	assert.IsType(t, &MockEmbedder{}, e)

	_, err = NewEmbedder(&configs.Config{EmbedProvider: "nope"})
	assert.Error(t, err)
}
