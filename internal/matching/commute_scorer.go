package matching

import "github.com/homematch/homematch/pkg/utils"

// commuteFullDecayMinutes is the commute length at which the uncapped score
// reaches zero: with no stated limit, shorter is simply better.
const commuteFullDecayMinutes = 60.0

// CommuteScorer scores listing commute time against an optional maximum.
type CommuteScorer struct{}

// NewCommuteScorer creates a CommuteScorer.
func NewCommuteScorer() *CommuteScorer {
	return &CommuteScorer{}
}

// Name returns the scorer name.
func (s *CommuteScorer) Name() string {
	return "commute"
}

// Score returns a fit score in [0, 1] for the listing's commute minutes.
// Without a limit the score decays linearly, reaching zero at 60 minutes.
// With a limit, anything within it scores 1.0 and the score decays by the
// overage ratio. A zero limit with any excess scores 0.0 outright so the
// ratio never divides by zero.
func (s *CommuteScorer) Score(listingMinutes int, maxMinutes *int) float64 {
	if maxMinutes == nil {
		return utils.Clamp01(1.0 - float64(listingMinutes)/commuteFullDecayMinutes)
	}
	if listingMinutes <= *maxMinutes {
		return 1.0
	}
	if *maxMinutes == 0 {
		return 0.0
	}
	excess := float64(listingMinutes-*maxMinutes) / float64(*maxMinutes)
	return utils.Clamp01(1.0 - excess)
}
