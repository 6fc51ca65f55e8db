package providers

import (
	"context"
	"fmt"
)

// JSONInstruction ends every prompt that expects a JSON object back. The
// offline provider keys on it to decide which canned answer to return.
const JSONInstruction = "Respond only with valid JSON."

// Request contains the data sent to an LLM for one completion.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
}

// Response contains the raw text returned by an LLM.
type Response struct {
	Content    string
	TokensUsed int
}

// Completer is the provider abstraction interface. Implementations make a
// single round trip per call and never retry.
type Completer interface {
	Complete(ctx context.Context, req Request) (Response, error)
	Name() string
}

// New creates a provider by name.
func New(provider, model string) (Completer, error) {
	switch provider {
	case "groq":
		return NewGroq(model)
	case "openai":
		return NewOpenAI(model)
	case "anthropic":
		return NewAnthropic(model)
	case "gemini", "google":
		return NewGemini(model)
	case "ollama", "lmstudio":
		return NewOllama(model)
	case "offline", "mock":
		return NewOffline(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
}

// Names lists the provider names accepted by New.
func Names() []string {
	return []string{"groq", "openai", "anthropic", "gemini", "ollama", "offline"}
}

var defaultModels = map[string]string{
	"groq":      DefaultGroqModel,
	"openai":    "gpt-4.1-mini",
	"anthropic": "claude-haiku-4-5",
	"gemini":    "gemini-2.5-flash",
	"google":    "gemini-2.5-flash",
	"ollama":    "llama3.2",
	"lmstudio":  "llama3.2",
	"offline":   "offline",
	"mock":      "offline",
}

// DefaultModel returns the model used for a provider when none is
// configured. Unknown providers yield "".
func DefaultModel(provider string) string {
	return defaultModels[provider]
}
