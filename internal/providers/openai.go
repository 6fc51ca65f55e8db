package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	defaultOpenAIURL = "https://api.openai.com/v1/chat/completions"
	defaultGroqURL   = "https://api.groq.com/openai/v1/chat/completions"

	// DefaultGroqModel is the model used when none is configured for groq.
	DefaultGroqModel = "llama3-8b-8192"
)

// OpenAI implements the Completer interface for OpenAI's chat completions
// API and compatible services such as Groq.
type OpenAI struct {
	name    string
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenAI creates a new OpenAI provider.
func NewOpenAI(model string) (*OpenAI, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}
	baseURL := os.Getenv("CODEREV_OPENAI_BASE_URL")
	if baseURL == "" {
		baseURL = defaultOpenAIURL
	}
	return &OpenAI{
		name:    "openai",
		apiKey:  key,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}, nil
}

// NewGroq creates a provider for Groq's OpenAI-compatible endpoint.
func NewGroq(model string) (*OpenAI, error) {
	key := os.Getenv("GROQ_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("GROQ_API_KEY environment variable is not set")
	}
	if model == "" {
		model = DefaultGroqModel
	}
	baseURL := os.Getenv("CODEREV_GROQ_BASE_URL")
	if baseURL == "" {
		baseURL = defaultGroqURL
	}
	return &OpenAI{
		name:    "groq",
		apiKey:  key,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}, nil
}

func (o *OpenAI) Name() string { return o.name }

func (o *OpenAI) Complete(ctx context.Context, req Request) (Response, error) {
	return chatComplete(ctx, o.client, o.name, o.baseURL, o.apiKey, o.model, req)
}

// chatComplete performs one OpenAI-style chat completion round trip.
func chatComplete(ctx context.Context, client *http.Client, name, url, apiKey, model string, req Request) (Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}

	body := openaiRequest{
		Model: model,
		Messages: []openaiMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		MaxTokens: maxTokens,
	}
	if req.Temperature > 0 {
		body.Temperature = &req.Temperature
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return Response{}, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return Response{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	}

	httpResp, err := client.Do(httpReq)
	if err != nil {
		return Response{}, &ServiceError{Provider: name, Err: fmt.Errorf("sending request: %w", err)}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return Response{}, &ServiceError{Provider: name, Err: fmt.Errorf("reading response: %w", err)}
	}
	if err := checkStatus(name, httpResp.StatusCode, respBody); err != nil {
		return Response{}, err
	}

	var result openaiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return Response{}, &ResponseError{Provider: name, Reason: "parsing response", Err: err}
	}
	if len(result.Choices) == 0 {
		return Response{}, &ResponseError{Provider: name, Reason: "no choices in response"}
	}
	if result.Choices[0].Message.Content == "" {
		return Response{}, &ResponseError{Provider: name, Reason: "empty text content in API response"}
	}

	return Response{
		Content:    result.Choices[0].Message.Content,
		TokensUsed: result.Usage.TotalTokens,
	}, nil
}

type openaiRequest struct {
	Model       string          `json:"model"`
	Messages    []openaiMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature *float64        `json:"temperature,omitempty"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiResponse struct {
	Choices []openaiChoice `json:"choices"`
	Usage   openaiUsage    `json:"usage"`
}

type openaiChoice struct {
	Message openaiMessage `json:"message"`
}

type openaiUsage struct {
	TotalTokens int `json:"total_tokens"`
}
