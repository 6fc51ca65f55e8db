package review

import (
	"strings"
	"time"
)

// Severity is the derived harshness of a single review comment.
type Severity string

const (
	SeverityHarsh        Severity = "harsh"
	SeverityNeutral      Severity = "neutral"
	SeverityConstructive Severity = "constructive"
)

// Language is one of the fixed language tags the tool knows how to talk about.
type Language string

const (
	LanguagePython     Language = "python"
	LanguageJavaScript Language = "javascript"
	LanguageJava       Language = "java"
	LanguageCPP        Language = "cpp"
	LanguageC          Language = "c"
	LanguageGo         Language = "go"
	LanguageRust       Language = "rust"
	LanguagePHP        Language = "php"
)

// AutoDetect is the language hint that asks for detection from the snippet.
const AutoDetect = "auto-detect"

// Languages lists every supported tag in detection order.
func Languages() []Language {
	return []Language{
		LanguagePython,
		LanguageJavaScript,
		LanguageJava,
		LanguageCPP,
		LanguageC,
		LanguageGo,
		LanguageRust,
		LanguagePHP,
	}
}

var displayNames = map[Language]string{
	LanguagePython:     "Python",
	LanguageJavaScript: "JavaScript",
	LanguageJava:       "Java",
	LanguageCPP:        "C++",
	LanguageC:          "C",
	LanguageGo:         "Go",
	LanguageRust:       "Rust",
	LanguagePHP:        "PHP",
}

// DisplayName returns the human-facing name of the language, e.g. "C++".
func (l Language) DisplayName() string {
	if name, ok := displayNames[l]; ok {
		return name
	}
	return string(l)
}

// ParseLanguage maps a tag or display name (case-insensitive) to a Language.
func ParseLanguage(s string) (Language, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, l := range Languages() {
		if s == string(l) || s == strings.ToLower(displayNames[l]) {
			return l, true
		}
	}
	return "", false
}

// FeedbackItem is the four-field structured rewrite of one comment.
type FeedbackItem struct {
	PositiveRephrasing   string `json:"positive_rephrasing"`
	TheWhy               string `json:"the_why"`
	SuggestedImprovement string `json:"suggested_improvement"`
	ResourceLink         string `json:"resource_link"`
}

// Outcome records how a feedback item or summary was obtained.
type Outcome string

const (
	OutcomeOK                Outcome = "ok"
	OutcomeServiceError      Outcome = "service_error"
	OutcomeMalformedResponse Outcome = "malformed_response"
)

// Fallback reports whether the outcome means placeholder text was used.
func (o Outcome) Fallback() bool {
	return o == OutcomeServiceError || o == OutcomeMalformedResponse
}

// Request is the immutable input of one analysis run.
type Request struct {
	Snippet      string   `json:"snippet"`
	LanguageHint string   `json:"language,omitempty"`
	Comments     []string `json:"comments"`
}

// Entry pairs one comment with the feedback produced for it.
type Entry struct {
	Comment  string       `json:"comment"`
	Severity Severity     `json:"severity"`
	Feedback FeedbackItem `json:"feedback"`
	Outcome  Outcome      `json:"outcome"`
	Notice   string       `json:"notice,omitempty"`

	err    error
	tokens int
}

// Err returns the error that caused a fallback, if any.
func (e Entry) Err() error {
	return e.err
}

// Timing contains performance metrics.
type Timing struct {
	LLMMs      int64 `json:"llmMs"`
	TotalMs    int64 `json:"totalMs"`
	TokensUsed int   `json:"tokensUsed,omitempty"`
}

// Stats summarizes a report for display.
type Stats struct {
	Comments  int `json:"comments"`
	Harsh     int `json:"harsh"`
	Fallbacks int `json:"fallbacks"`
}

// Report is the result of one analysis run. It is not modified after
// construction.
type Report struct {
	Tool           string    `json:"tool"`
	Version        string    `json:"version"`
	RunID          string    `json:"runId"`
	GeneratedAt    time.Time `json:"generatedAt"`
	Provider       string    `json:"provider,omitempty"`
	Model          string    `json:"model,omitempty"`
	Snippet        string    `json:"snippet"`
	Language       Language  `json:"language"`
	Entries        []Entry   `json:"entries"`
	Summary        string    `json:"summary"`
	SummaryOutcome Outcome   `json:"summaryOutcome"`
	Stats          Stats     `json:"stats"`
	Timing         Timing    `json:"timing"`
}

// ComputeStats counts comments, harsh comments and fallbacks.
func ComputeStats(entries []Entry) Stats {
	s := Stats{Comments: len(entries)}
	for _, e := range entries {
		if e.Severity == SeverityHarsh {
			s.Harsh++
		}
		if e.Outcome.Fallback() {
			s.Fallbacks++
		}
	}
	return s
}
