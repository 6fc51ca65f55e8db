package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnthropic_Complete(t *testing.T) {
	var got anthropicRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicAPIVersion, r.Header.Get("anthropic-version"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		resp := anthropicResponse{
			Content: []anthropicBlock{
				{Type: "text", Text: "Great "},
				{Type: "tool_use", Text: "ignored"},
				{Type: "text", Text: "work!"},
			},
			Usage: anthropicUsage{InputTokens: 10, OutputTokens: 5},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	a := &Anthropic{apiKey: "test-key", model: "claude-haiku-4-5", baseURL: server.URL, client: server.Client()}
	resp, err := a.Complete(context.Background(), Request{
		SystemPrompt: "be kind",
		UserPrompt:   "summarize",
		Temperature:  0.4,
		MaxTokens:    300,
	})
	require.NoError(t, err)
	assert.Equal(t, "Great work!", resp.Content)
	assert.Equal(t, 15, resp.TokensUsed)

	assert.Equal(t, "be kind", got.System)
	assert.Equal(t, 300, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "summarize", got.Messages[0].Content)
	require.NotNil(t, got.Temperature)
	assert.InDelta(t, 0.4, *got.Temperature, 1e-9)
}

func TestAnthropic_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[],"usage":{"input_tokens":1,"output_tokens":0}}`))
	}))
	defer server.Close()

	a := &Anthropic{apiKey: "k", model: "m", baseURL: server.URL, client: server.Client()}
	_, err := a.Complete(context.Background(), Request{UserPrompt: "x"})
	var re *ResponseError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "anthropic", re.Provider)
}

func TestAnthropic_AuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"forbidden"}`))
	}))
	defer server.Close()

	a := &Anthropic{apiKey: "k", model: "m", baseURL: server.URL, client: server.Client()}
	_, err := a.Complete(context.Background(), Request{UserPrompt: "x"})
	assert.True(t, IsAuthError(err))
}
