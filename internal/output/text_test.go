package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TextWriter{}).Write(&buf, sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "CodeRev Empathetic Review — Python")
	assert.Contains(t, out, "Provider: offline (model: offline)")
	assert.Contains(t, out, "Comments: 2 | Harsh: 1 | Suggestions: 2 | Fallbacks: 1")
	assert.Contains(t, out, `[!!] Comment 1: "This is inefficient."`)
	assert.Contains(t, out, `[+] Comment 2: "Boolean comparison is redundant."`)
	assert.Contains(t, out, "    return [user for user in users if user.is_active]")
	assert.Contains(t, out, "  Note: API call error: groq: rate limited")
	assert.Contains(t, out, "Great work! Keep iterating.")
	assert.Contains(t, out, "Completed in 15ms (LLM: 12ms)\n")
}

func TestTextWriter_TokensUsed(t *testing.T) {
	report := sampleReport()
	report.Timing.TokensUsed = 1234

	var buf bytes.Buffer
	require.NoError(t, (&TextWriter{}).Write(&buf, report))
	assert.Contains(t, buf.String(), "Completed in 15ms (LLM: 12ms, 1234 tokens)\n")
}

func TestTextWriter_NoFallbacks(t *testing.T) {
	report := sampleReport()
	report.Entries = report.Entries[:1]
	report.Stats.Comments = 1
	report.Stats.Fallbacks = 0

	var buf bytes.Buffer
	require.NoError(t, (&TextWriter{}).Write(&buf, report))
	out := buf.String()
	assert.NotContains(t, out, "Fallbacks")
	assert.NotContains(t, out, "Note:")
}

func TestPreview(t *testing.T) {
	short := "Variable 'u' is a bad name."
	assert.Equal(t, short, Preview(short))

	exact := strings.Repeat("a", 60)
	assert.Equal(t, exact, Preview(exact))

	long := strings.Repeat("b", 61)
	assert.Equal(t, strings.Repeat("b", 60)+"...", Preview(long))

	runes := strings.Repeat("é", 70)
	assert.Equal(t, strings.Repeat("é", 60)+"...", Preview(runes))
}

func TestTextWriter_LongCommentPreview(t *testing.T) {
	report := sampleReport()
	report.Entries[0].Comment = strings.Repeat("x", 80)

	var buf bytes.Buffer
	require.NoError(t, (&TextWriter{}).Write(&buf, report))
	assert.Contains(t, buf.String(), `"`+strings.Repeat("x", 60)+`..."`)
}

func TestWrapText(t *testing.T) {
	lines := wrapText(strings.Repeat("word ", 30), 20)
	for _, l := range lines {
		assert.LessOrEqual(t, len(l), 20)
	}
	assert.Equal(t, []string{"short"}, wrapText("short", 20))
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, assert.AnError }

func TestWriters_PropagateErrors(t *testing.T) {
	for _, format := range Formats() {
		w, err := GetWriter(format)
		require.NoError(t, err)
		assert.Error(t, w.Write(failWriter{}, sampleReport()), format)
	}
}
