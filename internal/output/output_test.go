package output

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetWriter(t *testing.T) {
	for _, format := range []string{"text", "json", "markdown", "md"} {
		w, err := GetWriter(format)
		require.NoError(t, err, format)
		assert.NotNil(t, w)
	}

	_, err := GetWriter("sarif")
	assert.ErrorContains(t, err, "unsupported output format: sarif")
}

func TestDefaultFilename(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	assert.Equal(t, "empathetic_review_20240309_140507.md", DefaultFilename(ts))
}

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	assert.Equal(t, "", ResolvePath("", ts))
	assert.Equal(t, filepath.Join(dir, "empathetic_review_20240309_140507.md"), ResolvePath(dir, ts))
	assert.Equal(t, filepath.Join(dir, "r.md"), ResolvePath(filepath.Join(dir, "r.md"), ts))
}

func TestWriteReport_ToDirectory(t *testing.T) {
	dir := t.TempDir()
	report := sampleReport()

	path, err := WriteReport(report, "markdown", dir, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultFilename(report.GeneratedAt)), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, wantMarkdown, string(data))
}

func TestWriteReport_UnknownFormat(t *testing.T) {
	_, err := WriteReport(sampleReport(), "xml", filepath.Join(t.TempDir(), "x"), io.Discard)
	assert.Error(t, err)
}

func TestWriteReport_Stdout(t *testing.T) {
	var buf bytes.Buffer
	path, err := WriteReport(sampleReport(), "markdown", "", &buf)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, wantMarkdown, buf.String())
}
