package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "g")
	t.Setenv("OPENAI_API_KEY", "o")
	t.Setenv("ANTHROPIC_API_KEY", "a")
	t.Setenv("GEMINI_API_KEY", "gm")

	tests := []struct {
		provider string
		wantName string
	}{
		{"groq", "groq"},
		{"openai", "openai"},
		{"anthropic", "anthropic"},
		{"gemini", "gemini"},
		{"google", "gemini"},
		{"ollama", "ollama"},
		{"lmstudio", "ollama"},
		{"offline", "offline"},
		{"mock", "offline"},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			c, err := New(tt.provider, "some-model")
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, c.Name())
		})
	}
}

func TestNew_Unknown(t *testing.T) {
	_, err := New("watson", "")
	assert.ErrorContains(t, err, "unknown provider: watson")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestNames_AllConstructible(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "g")
	t.Setenv("OPENAI_API_KEY", "o")
	t.Setenv("ANTHROPIC_API_KEY", "a")
	t.Setenv("GEMINI_API_KEY", "gm")

	for _, name := range Names() {
		_, err := New(name, "m")
		assert.NoError(t, err, name)
	}
}

func TestDefaultModel(t *testing.T) {
	assert.Equal(t, "llama3-8b-8192", DefaultModel("groq"))
	assert.Equal(t, DefaultModel("gemini"), DefaultModel("google"))
	for _, name := range Names() {
		assert.NotEmpty(t, DefaultModel(name), name)
	}
	assert.Empty(t, DefaultModel("watson"))
}
