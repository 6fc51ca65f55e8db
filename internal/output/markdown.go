package output

import (
	"io"
	"strings"

	"github.com/dshills/coderev/internal/review"
)

// MarkdownWriter outputs the downloadable empathetic review document.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *review.Report) error {
	ew := &errWriter{w: w}
	lang := string(report.Language)

	ew.printf("# 🌟 Empathetic Code Review Report\n\n")
	ew.printf("Generated on: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	ew.printf("## Original Code (%s)\n\n", report.Language.DisplayName())
	writeCodeBlock(ew, lang, report.Snippet)
	ew.printf("\n## Constructive Feedback\n\n")

	for i, e := range report.Entries {
		ew.printf("### 💡 Analysis of Comment %d: \"%s\"\n\n", i+1, e.Comment)
		ew.printf("**🤝 Positive Rephrasing:** %s\n\n", e.Feedback.PositiveRephrasing)
		ew.printf("**🧠 The 'Why':** %s\n\n", e.Feedback.TheWhy)
		ew.printf("**🔧 Suggested Improvement:**\n")
		writeCodeBlock(ew, lang, e.Feedback.SuggestedImprovement)
		ew.printf("\n**📚 Learn More:** %s\n\n", markdownLink(e.Feedback.ResourceLink))
		ew.printf("---\n\n")
	}

	ew.printf("## 🎉 Summary\n\n%s\n\n", report.Summary)
	ew.printf("*Happy coding! 🚀*\n")

	return ew.err
}

// writeCodeBlock fences code with a backtick run longer than any run inside
// it, so embedded fences cannot terminate the block.
func writeCodeBlock(ew *errWriter, lang, code string) {
	fence := strings.Repeat("`", max(3, longestBacktickRun(code)+1))
	ew.printf("%s%s\n%s\n%s\n", fence, lang, code, fence)
}

func longestBacktickRun(s string) int {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return longest
}

func markdownLink(link string) string {
	if isHTTPURL(link) {
		return "[" + link + "](" + link + ")"
	}
	return link
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://")
}
