package matching

import "github.com/homematch/homematch/pkg/utils"

// BudgetScorer scores how well a listing price fits the buyer's budget.
type BudgetScorer struct{}

// NewBudgetScorer creates a BudgetScorer.
func NewBudgetScorer() *BudgetScorer {
	return &BudgetScorer{}
}

// Name returns the scorer name.
func (s *BudgetScorer) Name() string {
	return "budget"
}

// Score returns a fit score in [0, 1] for price against the optional budget
// bounds. No bounds means no information, which scores a neutral 0.5 rather
// than penalizing the listing. Below the floor the score ramps linearly as
// price/min; above the cap it decays linearly by the overage relative to the
// cap. An inverted range (min > max) simply fails both inclusion checks and
// scores by whichever side the price falls on.
func (s *BudgetScorer) Score(price float64, min, max *float64) float64 {
	switch {
	case min == nil && max == nil:
		return 0.5
	case max == nil:
		if price >= *min {
			return 1.0
		}
		return utils.Clamp01(price / *min)
	case min == nil:
		if price <= *max {
			return 1.0
		}
		return utils.Clamp01(1.0 - (price-*max) / *max)
	}

	if *min <= price && price <= *max {
		return 1.0
	}
	if price < *min {
		return utils.Clamp01(price / *min)
	}
	return utils.Clamp01(1.0 - (price-*max) / *max)
}
