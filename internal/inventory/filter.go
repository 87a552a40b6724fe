package inventory

import (
	"strings"

	"github.com/homematch/homematch/internal/models"
)

// Filter applies the buyer's hard constraints to a candidate pool before
// scoring: budget bounds, area and school substring containment, and the
// commute cap. It consumes the same NormalizedPreference the scorers use so
// filtering and scoring can never disagree about what the text meant.
func Filter(listings []*models.Listing, pref models.NormalizedPreference) []*models.Listing {
	out := make([]*models.Listing, 0, len(listings))
	for _, l := range listings {
		if l == nil || !matches(l, pref) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func matches(l *models.Listing, pref models.NormalizedPreference) bool {
	if pref.BudgetMin != nil && l.Price < *pref.BudgetMin {
		return false
	}
	if pref.BudgetMax != nil && l.Price > *pref.BudgetMax {
		return false
	}
	if pref.RequiredArea != "" && !strings.Contains(l.Area, pref.RequiredArea) {
		return false
	}
	if pref.RequiredSchool != "" && !strings.Contains(l.SchoolDistrict, pref.RequiredSchool) {
		return false
	}
	if pref.MaxCommuteMinutes != nil && l.CommuteMinutes > *pref.MaxCommuteMinutes {
		return false
	}
	return true
}
