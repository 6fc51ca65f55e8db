package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/coderev/internal/review"
)

// Writer writes a report in a specific format.
type Writer interface {
	Write(w io.Writer, report *review.Report) error
}

// Formats lists the accepted format names.
func Formats() []string {
	return []string{"text", "json", "markdown"}
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "markdown", "md":
		return &MarkdownWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// DefaultFilename is the timestamped name used when a Markdown report is
// saved without an explicit file name.
func DefaultFilename(t time.Time) string {
	return "empathetic_review_" + t.Format("20060102_150405") + ".md"
}

// ResolvePath returns the file the report should be written to. An existing
// directory gets DefaultFilename appended.
func ResolvePath(outPath string, generatedAt time.Time) string {
	if outPath == "" {
		return ""
	}
	if info, err := os.Stat(outPath); err == nil && info.IsDir() {
		return filepath.Join(outPath, DefaultFilename(generatedAt))
	}
	return outPath
}

// WriteReport writes the report to outPath, or to stdout when outPath is
// empty, and returns the path written ("" for stdout).
func WriteReport(report *review.Report, format, outPath string, stdout io.Writer) (string, error) {
	writer, err := GetWriter(format)
	if err != nil {
		return "", err
	}

	path := ResolvePath(outPath, report.GeneratedAt)
	if path == "" {
		return "", writer.Write(stdout, report)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating output file: %w", err)
	}
	if err := writer.Write(f, report); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing output file: %w", err)
	}
	return path, nil
}
