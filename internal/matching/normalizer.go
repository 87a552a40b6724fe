package matching

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/homematch/homematch/internal/models"
)

// Budget and commute text markers. The budget unit "万" multiplies the parsed
// number by 10,000; "以内" marks an "or less" bound; "分钟" marks a commute
// limit in minutes.
const (
	budgetUnitMarker    = "万"
	budgetCeilingMarker = "以内"
	commuteUnitMarker   = "分钟"
	budgetUnitMultiple  = 10_000
)

// Normalizer parses free-text preference fields into numeric constraints.
// Parsing is best-effort: text it cannot understand degrades to "no
// constraint" for that field, never an error. It is the single source of
// truth for budget/commute grammar so candidate filtering and scoring can
// never diverge.
type Normalizer struct{}

// NewNormalizer creates a Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize converts a raw preference record into numeric bounds. It never
// fails; every unparsable field is left unset.
func (n *Normalizer) Normalize(rec models.PreferenceRecord) models.NormalizedPreference {
	pref := models.NormalizedPreference{
		RequiredArea:   strings.TrimSpace(rec.AreaText),
		RequiredSchool: strings.TrimSpace(rec.SchoolText),
	}
	pref.BudgetMin, pref.BudgetMax = n.parseBudget(rec.BudgetText)
	pref.MaxCommuteMinutes = n.parseCommute(rec.CommuteText)
	return pref
}

// parseBudget understands two shapes: "A-B万" (range) and "N万以内" (ceiling).
// Anything else, including text without the 万 unit, yields no bounds.
func (n *Normalizer) parseBudget(text string) (min, max *float64) {
	text = strings.TrimSpace(text)
	if text == "" || !strings.Contains(text, budgetUnitMarker) {
		return nil, nil
	}
	text = strings.ReplaceAll(text, budgetUnitMarker, "")

	if strings.Contains(text, "-") {
		parts := strings.SplitN(text, "-", 2)
		lo, errLo := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		hi, errHi := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errLo != nil || errHi != nil {
			return nil, nil
		}
		lo *= budgetUnitMultiple
		hi *= budgetUnitMultiple
		return &lo, &hi
	}

	if strings.Contains(text, budgetCeilingMarker) {
		raw := strings.TrimSpace(strings.ReplaceAll(text, budgetCeilingMarker, ""))
		hi, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, nil
		}
		hi *= budgetUnitMultiple
		return nil, &hi
	}

	return nil, nil
}

// parseCommute extracts the first run of decimal digits from text containing
// the 分钟 marker.
func (n *Normalizer) parseCommute(text string) *int {
	if !strings.Contains(text, commuteUnitMarker) {
		return nil
	}
	digits := firstDigitRun(text)
	if digits == "" {
		return nil
	}
	minutes, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &minutes
}

func firstDigitRun(s string) string {
	start := -1
	for i, r := range s {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return s[start:i]
		}
	}
	if start >= 0 {
		return s[start:]
	}
	return ""
}
