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

func newTestOpenAI(name string, server *httptest.Server) *OpenAI {
	return &OpenAI{
		name:    name,
		apiKey:  "test-key",
		model:   "llama3-8b-8192",
		baseURL: server.URL,
		client:  server.Client(),
	}
}

func TestOpenAI_Complete(t *testing.T) {
	var got openaiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		resp := openaiResponse{
			Choices: []openaiChoice{
				{Message: openaiMessage{Role: "assistant", Content: `{"the_why":"x"}`}},
			},
			Usage: openaiUsage{TotalTokens: 50},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	o := newTestOpenAI("groq", server)
	resp, err := o.Complete(context.Background(), Request{
		SystemPrompt: "system",
		UserPrompt:   "user",
		Temperature:  0.25,
		MaxTokens:    900,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"the_why":"x"}`, resp.Content)
	assert.Equal(t, 50, resp.TokensUsed)

	assert.Equal(t, "llama3-8b-8192", got.Model)
	assert.Equal(t, 900, got.MaxTokens)
	require.NotNil(t, got.Temperature)
	assert.InDelta(t, 0.25, *got.Temperature, 1e-9)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "system", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "user", got.Messages[1].Content)
}

func TestOpenAI_NoRetryOnRateLimit(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer server.Close()

	_, err := newTestOpenAI("groq", server).Complete(context.Background(), Request{UserPrompt: "x"})
	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
	assert.Equal(t, 1, attempts, "completion calls must not be retried")
}

func TestOpenAI_AuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid key"}`))
	}))
	defer server.Close()

	_, err := newTestOpenAI("openai", server).Complete(context.Background(), Request{UserPrompt: "x"})
	require.Error(t, err)
	assert.True(t, IsAuthError(err))

	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "openai", se.Provider)
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Contains(t, err.Error(), "authentication error")
}

func TestOpenAI_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	_, err := newTestOpenAI("groq", server).Complete(context.Background(), Request{UserPrompt: "x"})
	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
	assert.Contains(t, err.Error(), "status 502")
	assert.False(t, IsAuthError(err))
}

func TestOpenAI_ResponseErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"no choices", `{"choices":[]}`, "no choices"},
		{"empty content", `{"choices":[{"message":{"role":"assistant","content":""}}]}`, "empty text content"},
		{"not json", `<html>oops</html>`, "parsing response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestOpenAI("groq", server).Complete(context.Background(), Request{UserPrompt: "x"})
			var re *ResponseError
			require.ErrorAs(t, err, &re)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestOpenAI_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	o := newTestOpenAI("groq", server)
	server.Close()

	_, err := o.Complete(context.Background(), Request{UserPrompt: "x"})
	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Zero(t, se.StatusCode)
	assert.Contains(t, err.Error(), "sending request")
}

func TestOpenAI_OmitsZeroTemperature(t *testing.T) {
	var raw map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer server.Close()

	_, err := newTestOpenAI("groq", server).Complete(context.Background(), Request{UserPrompt: "x"})
	require.NoError(t, err)
	_, hasTemp := raw["temperature"]
	assert.False(t, hasTemp)
	assert.EqualValues(t, 1024, raw["max_tokens"])
}

func TestNewGroq_DefaultModel(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk-test")
	g, err := NewGroq("")
	require.NoError(t, err)
	assert.Equal(t, "groq", g.Name())
	assert.Equal(t, DefaultGroqModel, g.model)
	assert.Equal(t, defaultGroqURL, g.baseURL)
}

func TestNewGroq_MissingKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	_, err := NewGroq("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GROQ_API_KEY")
}
