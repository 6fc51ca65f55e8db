package output

import (
	"time"

	"github.com/dshills/coderev/internal/review"
)

const sampleSnippet = `def get_active_users(users):
    results = []
    for u in users:
        if u.is_active == True and u.profile_complete == True:
            results.append(u)
    return results`

func sampleReport() *review.Report {
	entries := []review.Entry{
		{
			Comment:  "This is inefficient.",
			Severity: review.SeverityHarsh,
			Outcome:  review.OutcomeOK,
			Feedback: review.FeedbackItem{
				PositiveRephrasing:   "Nice work, the logic is solid.",
				TheWhy:               "A single comprehension avoids building the list by hand.",
				SuggestedImprovement: "return [user for user in users if user.is_active]",
				ResourceLink:         "https://docs.python.org/3/tutorial/datastructures.html",
			},
		},
		{
			Comment:  "Boolean comparison is redundant.",
			Severity: review.SeverityConstructive,
			Outcome:  review.OutcomeServiceError,
			Notice:   "API call error: groq: rate limited",
			Feedback: review.FeedbackItem{
				PositiveRephrasing:   "There's a great opportunity to enhance this code.",
				TheWhy:               "Following established patterns improves code quality and maintainability.",
				SuggestedImprovement: "// Code improvement example for python",
				ResourceLink:         "PEP 8",
			},
		},
	}
	return &review.Report{
		Tool:           "coderev",
		Version:        "1.0",
		RunID:          "run-1",
		GeneratedAt:    time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local),
		Provider:       "offline",
		Model:          "offline",
		Snippet:        sampleSnippet,
		Language:       review.LanguagePython,
		Entries:        entries,
		Summary:        "Great work! Keep iterating.",
		SummaryOutcome: review.OutcomeOK,
		Stats:          review.ComputeStats(entries),
		Timing:         review.Timing{LLMMs: 12, TotalMs: 15},
	}
}
