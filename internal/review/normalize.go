package review

import (
	"encoding/json"
	"fmt"
	"strings"
)

const summaryFallback = "Great work on this implementation! The feedback above provides some excellent opportunities to enhance your code's performance, readability, and adherence to best practices. Keep iterating and learning!"

var documentationLinks = map[Language]string{
	LanguagePython:     "https://docs.python.org/3/tutorial/",
	LanguageJavaScript: "https://developer.mozilla.org/",
	LanguageJava:       "https://docs.oracle.com/javase/tutorial/",
	LanguageCPP:        "https://en.cppreference.com/w/cpp",
	LanguageC:          "https://en.cppreference.com/w/c",
	LanguageGo:         "https://go.dev/doc/effective_go",
	LanguageRust:       "https://doc.rust-lang.org/book/",
	LanguagePHP:        "https://www.php.net/manual/en/",
}

// DocumentationLink returns the generic documentation URL for a language.
func DocumentationLink(l Language) string {
	if u, ok := documentationLinks[l]; ok {
		return u
	}
	return "https://developer.mozilla.org/"
}

// MalformedFallback is substituted when a response cannot be parsed.
func MalformedFallback(l Language) FeedbackItem {
	return FeedbackItem{
		PositiveRephrasing:   "Let's explore how we can enhance this aspect of the code together.",
		TheWhy:               "This improvement follows software engineering best practices for maintainable and readable code.",
		SuggestedImprovement: fmt.Sprintf("// Example improvement for %s would go here", l),
		ResourceLink:         DocumentationLink(l),
	}
}

// ServiceFallback is substituted when the completion call itself fails.
func ServiceFallback(l Language) FeedbackItem {
	return FeedbackItem{
		PositiveRephrasing:   "There's a great opportunity to enhance this code.",
		TheWhy:               "Following established patterns improves code quality and maintainability.",
		SuggestedImprovement: fmt.Sprintf("// Code improvement example for %s", l),
		ResourceLink:         DocumentationLink(l),
	}
}

// SummaryFallback is used when the summary call fails or returns nothing.
func SummaryFallback() string {
	return summaryFallback
}

// rawFeedback is the JSON structure returned by the LLM.
type rawFeedback struct {
	PositiveRephrasing   *string `json:"positive_rephrasing"`
	TheWhy               *string `json:"the_why"`
	SuggestedImprovement *string `json:"suggested_improvement"`
	ResourceLink         *string `json:"resource_link"`
}

// NormalizeFeedback turns raw completion text into a FeedbackItem. It never
// fails; unusable text yields MalformedFallback for the language.
func NormalizeFeedback(raw string, lang Language) FeedbackItem {
	item, _ := normalize(raw, lang)
	return item
}

// normalize is NormalizeFeedback that also reports why the fallback was used.
// The returned item is always fully populated.
func normalize(raw string, lang Language) (FeedbackItem, error) {
	item, err := ParseFeedback(raw)
	if err != nil {
		return MalformedFallback(lang), err
	}
	return item, nil
}

// Fallback returns the placeholder feedback for a failed outcome.
func Fallback(o Outcome, lang Language) FeedbackItem {
	if o == OutcomeMalformedResponse {
		return MalformedFallback(lang)
	}
	return ServiceFallback(lang)
}

// ParseFeedback extracts the JSON feedback object from completion text. The
// returned error is always a *MalformedResponseError.
func ParseFeedback(raw string) (FeedbackItem, error) {
	content := extractJSONObject(stripFences(strings.TrimSpace(raw)))
	if content == "" {
		return FeedbackItem{}, &MalformedResponseError{Reason: "empty response"}
	}

	var r rawFeedback
	if err := json.Unmarshal([]byte(content), &r); err != nil {
		return FeedbackItem{}, &MalformedResponseError{Reason: "invalid JSON object", Err: err}
	}

	var missing []string
	field := func(name string, v *string) string {
		if v == nil || strings.TrimSpace(*v) == "" {
			missing = append(missing, name)
			return ""
		}
		return *v
	}
	item := FeedbackItem{
		PositiveRephrasing:   field("positive_rephrasing", r.PositiveRephrasing),
		TheWhy:               field("the_why", r.TheWhy),
		SuggestedImprovement: field("suggested_improvement", r.SuggestedImprovement),
		ResourceLink:         field("resource_link", r.ResourceLink),
	}
	if len(missing) > 0 {
		return FeedbackItem{}, &MalformedResponseError{Reason: "missing fields " + strings.Join(missing, ", ")}
	}
	return item, nil
}

// stripFences removes one leading ``` or ```json marker and one trailing ```.
func stripFences(s string) string {
	switch {
	case strings.HasPrefix(s, "```json"):
		s = strings.TrimSpace(s[len("```json"):])
	case strings.HasPrefix(s, "```"):
		s = strings.TrimSpace(s[len("```"):])
	default:
		return s
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(s[:len(s)-len("```")])
	}
	return s
}

// extractJSONObject slices from the first '{' to the last '}' so commentary
// around the payload is ignored. Text without an ordered pair is returned
// unchanged.
func extractJSONObject(s string) string {
	first := strings.Index(s, "{")
	last := strings.LastIndex(s, "}")
	if first != -1 && last > first {
		return s[first : last+1]
	}
	return s
}
