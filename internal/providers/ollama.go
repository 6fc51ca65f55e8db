package providers

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultOllamaURL = "http://localhost:11434"

// Ollama implements the Completer interface for Ollama and LM Studio
// (OpenAI-compatible API).
type Ollama struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOllama creates a new Ollama provider. No API key is required by default.
func NewOllama(model string) (*Ollama, error) {
	baseURL := os.Getenv("OLLAMA_HOST")
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}

	return &Ollama{
		apiKey:  os.Getenv("CODEREV_OLLAMA_API_KEY"),
		model:   model,
		baseURL: normalizeOllamaURL(baseURL),
		client:  &http.Client{Timeout: 300 * time.Second},
	}, nil
}

// normalizeOllamaURL accepts a host with or without the /v1 or
// /v1/chat/completions suffix and returns the chat completions endpoint.
func normalizeOllamaURL(baseURL string) string {
	baseURL = strings.TrimRight(baseURL, "/")
	baseURL = strings.TrimSuffix(baseURL, "/v1/chat/completions")
	baseURL = strings.TrimSuffix(baseURL, "/v1")
	return baseURL + "/v1/chat/completions"
}

func (o *Ollama) Name() string { return "ollama" }

func (o *Ollama) Complete(ctx context.Context, req Request) (Response, error) {
	return chatComplete(ctx, o.client, o.Name(), o.baseURL, o.apiKey, o.model, req)
}
