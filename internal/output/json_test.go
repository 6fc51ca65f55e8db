package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONWriter{}).Write(&buf, sampleReport()))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "coderev", got["tool"])
	assert.Equal(t, "python", got["language"])
	assert.Equal(t, "Great work! Keep iterating.", got["summary"])

	entries, ok := got["entries"].([]any)
	require.True(t, ok)
	require.Len(t, entries, 2)
	first := entries[0].(map[string]any)
	assert.Equal(t, "harsh", first["severity"])
	feedback := first["feedback"].(map[string]any)
	assert.Contains(t, feedback, "positive_rephrasing")
	assert.Contains(t, feedback, "resource_link")

	second := entries[1].(map[string]any)
	assert.Equal(t, "service_error", second["outcome"])
	assert.Equal(t, "API call error: groq: rate limited", second["notice"])
}
