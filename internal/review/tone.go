package review

import "strings"

var (
	harshIndicators   = []string{"bad", "wrong", "terrible", "awful", "stupid", "inefficient", "don't", "never", "horrible"}
	neutralIndicators = []string{"consider", "might", "could", "suggest", "perhaps"}
)

// ClassifyTone derives the severity of a comment by substring keyword
// matching. Any harsh keyword makes the comment harsh, however many neutral
// keywords it also contains.
func ClassifyTone(comment string) Severity {
	lower := strings.ToLower(comment)
	harsh := countIndicators(lower, harshIndicators)
	neutral := countIndicators(lower, neutralIndicators)

	switch {
	case harsh > 0:
		return SeverityHarsh
	case neutral > 0:
		return SeverityNeutral
	default:
		return SeverityConstructive
	}
}

func countIndicators(text string, indicators []string) int {
	n := 0
	for _, ind := range indicators {
		if strings.Contains(text, ind) {
			n++
		}
	}
	return n
}
