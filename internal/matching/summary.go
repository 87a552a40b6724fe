package matching

import (
	"github.com/homematch/homematch/internal/models"
	"github.com/homematch/homematch/pkg/utils"
)

// noMatchesMessage is the report body when ranking produced nothing.
const noMatchesMessage = "no suitable listings found"

// Summarize assembles the final report from a ranking result: aggregate
// statistics, the rank-1 highlight, and the full ordered entry list with
// rounded scores. An empty result yields a "no matches" report with no
// statistics fields.
func Summarize(result *models.RankResult) *models.SummaryReport {
	if result == nil || len(result.Recommendations) == 0 {
		report := &models.SummaryReport{Message: noMatchesMessage}
		if result != nil {
			report.SkippedListings = result.SkippedListings
		}
		return report
	}

	recs := result.Recommendations
	var sum float64
	priceRange := &models.PriceRange{
		Min: recs[0].Listing.Price,
		Max: recs[0].Listing.Price,
	}
	entries := make([]*models.RecommendationEntry, 0, len(recs))
	for _, rec := range recs {
		sum += rec.TotalScore
		if rec.Listing.Price < priceRange.Min {
			priceRange.Min = rec.Listing.Price
		}
		if rec.Listing.Price > priceRange.Max {
			priceRange.Max = rec.Listing.Price
		}
		entries = append(entries, &models.RecommendationEntry{
			Rank:           rec.Rank,
			ListingID:      rec.Listing.ID,
			Address:        rec.Listing.Address,
			Price:          rec.Listing.Price,
			Area:           rec.Listing.Area,
			SchoolDistrict: rec.Listing.SchoolDistrict,
			CommuteMinutes: rec.Listing.CommuteMinutes,
			MatchingScore:  utils.Round2(rec.TotalScore),
			ScoreBreakdown: models.CriterionScores{
				Budget:  utils.Round2(rec.Scores.Budget),
				Area:    utils.Round2(rec.Scores.Area),
				School:  utils.Round2(rec.Scores.School),
				Commute: utils.Round2(rec.Scores.Commute),
			},
			Reason: rec.Reason,
		})
	}

	top := recs[0]
	return &models.SummaryReport{
		TotalRecommendations: len(recs),
		AverageMatchingScore: utils.Round2(sum / float64(len(recs))),
		PriceRange:           priceRange,
		TopRecommendation: &models.TopRecommendation{
			ListingID:     top.Listing.ID,
			Address:       top.Listing.Address,
			Price:         top.Listing.Price,
			MatchingScore: utils.Round2(top.TotalScore),
			Reason:        top.Reason,
		},
		Recommendations: entries,
		SkippedListings: result.SkippedListings,
	}
}
