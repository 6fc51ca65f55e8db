package output

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dshills/coderev/internal/review"
)

const previewLen = 60

// TextWriter outputs a human-readable text report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *review.Report) error {
	ew := &errWriter{w: w}

	// Header, mirroring the metric cards of the interactive view.
	ew.printf("CodeRev Empathetic Review — %s\n", report.Language.DisplayName())
	if report.Provider != "" {
		ew.printf("Provider: %s (model: %s)\n", report.Provider, report.Model)
	}
	ew.println(strings.Repeat("─", 60))
	ew.printf("Comments: %d | Harsh: %d | Suggestions: %d",
		report.Stats.Comments, report.Stats.Harsh, len(report.Entries))
	if report.Stats.Fallbacks > 0 {
		ew.printf(" | Fallbacks: %d", report.Stats.Fallbacks)
	}
	ew.println("")
	ew.println(strings.Repeat("─", 60))

	for i, e := range report.Entries {
		ew.printf("\n%s Comment %d: %q\n", severityIcon(e.Severity), i+1, Preview(e.Comment))
		ew.println(strings.Repeat("─", 40))

		ew.println("  Positive Rephrasing:")
		for _, line := range wrapText(e.Feedback.PositiveRephrasing, 70) {
			ew.printf("    %s\n", line)
		}
		ew.println("  The 'Why':")
		for _, line := range wrapText(e.Feedback.TheWhy, 70) {
			ew.printf("    %s\n", line)
		}
		ew.println("  Suggested Improvement:")
		for _, line := range strings.Split(e.Feedback.SuggestedImprovement, "\n") {
			ew.printf("    %s\n", line)
		}
		ew.printf("  Learn More: %s\n", e.Feedback.ResourceLink)
		if e.Notice != "" {
			ew.printf("  Note: %s\n", e.Notice)
		}
	}

	ew.printf("\nSummary\n")
	ew.println(strings.Repeat("─", 40))
	for _, line := range wrapText(report.Summary, 70) {
		ew.printf("  %s\n", line)
	}

	ew.printf("\n%s\n", strings.Repeat("─", 60))
	ew.printf("Completed in %dms (LLM: %dms", report.Timing.TotalMs, report.Timing.LLMMs)
	if report.Timing.TokensUsed > 0 {
		ew.printf(", %d tokens", report.Timing.TokensUsed)
	}
	ew.println(")")

	return ew.err
}

// Preview shortens a comment to 60 characters, adding "..." when truncated.
func Preview(comment string) string {
	if utf8.RuneCountInString(comment) <= previewLen {
		return comment
	}
	return string([]rune(comment)[:previewLen]) + "..."
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

func severityIcon(s review.Severity) string {
	switch s {
	case review.SeverityHarsh:
		return "[!!]"
	case review.SeverityNeutral:
		return "[~]"
	case review.SeverityConstructive:
		return "[+]"
	default:
		return "[?]"
	}
}

func wrapText(text string, width int) []string {
	if len(text) <= width {
		return []string{text}
	}
	var lines []string
	words := strings.Fields(text)
	var current strings.Builder
	for _, word := range words {
		if current.Len()+len(word)+1 > width && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
