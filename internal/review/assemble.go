package review

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	toolName    = "coderev"
	toolVersion = "1.0"
)

// Assemble pairs comments[i] with items[i] and combines them with the summary
// into a Report. Lists of different lengths are rejected with
// ErrLengthMismatch rather than truncated.
func Assemble(snippet string, lang Language, comments []string, items []FeedbackItem, summary string) (*Report, error) {
	entries := make([]Entry, len(items))
	for i, item := range items {
		entries[i] = Entry{Feedback: item, Outcome: OutcomeOK}
	}
	return assemble(snippet, lang, comments, entries, summary, OutcomeOK)
}

// assemble pairs comments[i] with entries[i], keeping each entry's outcome
// and notice. Entries without a severity are classified from their comment.
func assemble(snippet string, lang Language, comments []string, entries []Entry, summary string, summaryOutcome Outcome) (*Report, error) {
	if len(comments) != len(entries) {
		return nil, fmt.Errorf("%w: %d comments, %d feedback items", ErrLengthMismatch, len(comments), len(entries))
	}
	out := make([]Entry, len(entries))
	for i, en := range entries {
		en.Comment = comments[i]
		if en.Severity == "" {
			en.Severity = ClassifyTone(en.Comment)
		}
		out[i] = en
	}
	return &Report{
		Tool:           toolName,
		Version:        toolVersion,
		RunID:          uuid.NewString(),
		GeneratedAt:    time.Now(),
		Snippet:        snippet,
		Language:       lang,
		Entries:        out,
		Summary:        summary,
		SummaryOutcome: summaryOutcome,
		Stats:          ComputeStats(out),
	}, nil
}
