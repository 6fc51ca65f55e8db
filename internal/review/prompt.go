package review

import (
	"fmt"
	"strings"

	"github.com/dshills/coderev/internal/providers"
)

const feedbackSystemPrompt = "You are an expert code reviewer and mentor. Always respond with valid JSON containing the requested fields."

const summarySystemPrompt = "You are a supportive senior developer providing encouraging feedback. Write in a warm, mentoring tone."

var toneInstructions = map[Severity]string{
	SeverityHarsh:        "extra gentle and encouraging, as the original comment was quite direct and potentially discouraging",
	SeverityNeutral:      "supportive and educational with a collaborative tone",
	SeverityConstructive: "warm, collaborative, and appreciative of the existing effort",
}

// resourceHints bias the model's choice of documentation link. They are not
// used to validate the returned link.
var resourceHints = map[Language]string{
	LanguagePython:     "Python documentation (docs.python.org), PEP 8 style guide",
	LanguageJavaScript: "MDN Web Docs, JavaScript.info, ECMAScript specifications",
	LanguageJava:       "Oracle Java documentation, Java Code Conventions",
	LanguageCPP:        "cppreference.com, ISO C++ guidelines",
	LanguageC:          "C standard documentation, K&R C book references",
	LanguageGo:         "Go documentation (golang.org), Effective Go",
	LanguageRust:       "The Rust Book, Rust by Example",
	LanguagePHP:        "PHP Manual, PSR standards",
}

// FeedbackSystemPrompt returns the system prompt for per-comment feedback.
func FeedbackSystemPrompt() string {
	return feedbackSystemPrompt
}

// SummarySystemPrompt returns the system prompt for the holistic summary.
func SummarySystemPrompt() string {
	return summarySystemPrompt
}

// ToneInstruction returns the tone phrase used for a severity.
func ToneInstruction(s Severity) string {
	if t, ok := toneInstructions[s]; ok {
		return t
	}
	return toneInstructions[SeverityConstructive]
}

// ResourceHint returns the documentation hint used for a language.
func ResourceHint(l Language) string {
	if h, ok := resourceHints[l]; ok {
		return h
	}
	return "relevant documentation"
}

// BuildFeedbackPrompt constructs the user prompt asking the model to rewrite
// one comment as a JSON feedback object.
func BuildFeedbackPrompt(snippet, comment string, lang Language, sev Severity) string {
	var b strings.Builder

	b.WriteString("You are an experienced senior developer and mentor who excels at giving constructive, empathetic code reviews. ")
	b.WriteString("Your goal is to transform direct criticism into supportive, educational guidance.\n\n")

	fmt.Fprintf(&b, "**Code Snippet (%s):**\n", lang)
	writeFence(&b, lang, snippet)
	fmt.Fprintf(&b, "\n**Original Comment:** %q\n\n", comment)

	b.WriteString("Please provide a response in the following JSON format:\n")
	b.WriteString("{\n")
	b.WriteString(`    "positive_rephrasing": "A gentle, encouraging version of the feedback that maintains technical accuracy but uses supportive language",` + "\n")
	b.WriteString(`    "the_why": "A clear explanation of the underlying software engineering principle, performance concern, or best practice",` + "\n")
	b.WriteString(`    "suggested_improvement": "A concrete code example showing the recommended fix",` + "\n")
	fmt.Fprintf(&b, `    "resource_link": "A real, helpful documentation link or resource relevant to %s"`+"\n", ResourceHint(lang))
	b.WriteString("}\n\n")

	b.WriteString("**Important Guidelines:**\n")
	fmt.Fprintf(&b, "- Be %s\n", ToneInstruction(sev))
	b.WriteString("- Focus on growth and learning opportunities\n")
	b.WriteString("- Explain the reasoning behind best practices\n")
	b.WriteString("- Provide specific, actionable improvements\n")
	b.WriteString("- Use collaborative language (\"we\", \"let's\") when appropriate\n")
	b.WriteString("- Acknowledge what's working well before suggesting improvements\n")
	b.WriteString("- Make sure the code example is syntactically correct and directly addresses the issue\n")
	b.WriteString("- Keep explanations concise but comprehensive\n\n")

	b.WriteString("The JSON object must contain exactly these four fields and nothing else.\n")
	b.WriteString(providers.JSONInstruction)
	b.WriteString("\n")

	return b.String()
}

// BuildSummaryPrompt constructs the user prompt for the closing paragraph.
func BuildSummaryPrompt(snippet string, items []FeedbackItem, lang Language) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Based on the code review feedback provided for this %s code snippet, ", lang)
	b.WriteString("write an encouraging and supportive concluding paragraph that:\n\n")
	b.WriteString("1. Acknowledges the developer's effort and current implementation\n")
	b.WriteString("2. Highlights the main themes from the feedback (e.g., performance, readability, conventions)\n")
	b.WriteString("3. Frames the suggestions as opportunities for growth\n")
	b.WriteString("4. Maintains an encouraging, mentor-like tone\n")
	b.WriteString("5. Ends with motivation for continued learning\n\n")

	b.WriteString("**Code Snippet:**\n")
	writeFence(&b, lang, snippet)
	fmt.Fprintf(&b, "\n**Number of feedback items:** %d\n\n", len(items))

	b.WriteString("Write a warm, encouraging paragraph (3-5 sentences) that would make a developer feel supported and motivated to implement the suggestions.\n")

	return b.String()
}

func writeFence(b *strings.Builder, lang Language, code string) {
	fmt.Fprintf(b, "```%s\n%s\n```\n", lang, EscapeFences(code))
}

// EscapeFences breaks up backtick fences inside text so that it cannot close
// the fenced block it is embedded in. A zero-width space is inserted after
// the first backtick of every run of three, repeatedly, until no run is left.
func EscapeFences(s string) string {
	for strings.Contains(s, "```") {
		s = strings.ReplaceAll(s, "```", "`\u200b``")
	}
	return s
}
