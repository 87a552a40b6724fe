package matching

import (
	"strings"

	"github.com/homematch/homematch/internal/models"
)

// Reason thresholds: a criterion contributes its strong phrase at >= 0.8, its
// moderate phrase at >= 0.6, and nothing below that.
const (
	reasonStrongThreshold   = 0.8
	reasonModerateThreshold = 0.6
)

const reasonFallback = "unremarkable overall fit"

type reasonPhrases struct {
	strong   string
	moderate string
}

// Phrase tables in fixed criterion order: budget, area, school, commute.
// Output order follows this order, not score magnitude.
var reasonTable = []struct {
	score   func(models.CriterionScores) float64
	phrases reasonPhrases
}{
	{func(s models.CriterionScores) float64 { return s.Budget }, reasonPhrases{"price fits the budget", "price close to budget"}},
	{func(s models.CriterionScores) float64 { return s.Area }, reasonPhrases{"prime location", "good location"}},
	{func(s models.CriterionScores) float64 { return s.School }, reasonPhrases{"excellent school district", "decent school district"}},
	{func(s models.CriterionScores) float64 { return s.Commute }, reasonPhrases{"convenient commute", "manageable commute"}},
}

// BuildReason derives the human-readable justification string from the four
// criterion scores.
func BuildReason(scores models.CriterionScores) string {
	var parts []string
	for _, entry := range reasonTable {
		switch v := entry.score(scores); {
		case v >= reasonStrongThreshold:
			parts = append(parts, entry.phrases.strong)
		case v >= reasonModerateThreshold:
			parts = append(parts, entry.phrases.moderate)
		}
	}
	if len(parts) == 0 {
		return reasonFallback
	}
	return strings.Join(parts, ", ")
}
