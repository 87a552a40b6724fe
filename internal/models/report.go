package models

// CriterionScores holds the four per-dimension fit scores, each in [0, 1].
type CriterionScores struct {
	Budget  float64 `json:"budget"`
	Area    float64 `json:"area"`
	School  float64 `json:"school"`
	Commute float64 `json:"commute"`
}

// ScoredListing pairs a listing with its criterion scores, weighted total,
// and templated reason string. Immutable once created.
type ScoredListing struct {
	Listing    *Listing        `json:"listing"`
	Scores     CriterionScores `json:"scores"`
	TotalScore float64         `json:"total_score"`
	Reason     string          `json:"reason"`
}

// Recommendation wraps a ScoredListing with its 1-based rank.
type Recommendation struct {
	Rank int `json:"rank"`
	ScoredListing
}

// RankResult is the output of a ranking pass: the ordered top-k
// recommendations plus the number of listings excluded for missing data.
type RankResult struct {
	Recommendations []*Recommendation `json:"recommendations"`
	SkippedListings int               `json:"skipped_listings,omitempty"`
}

// PriceRange is the min/max price over a set of recommended listings.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// TopRecommendation mirrors the rank-1 entry of a summary report.
type TopRecommendation struct {
	ListingID     string  `json:"listing_id"`
	Address       string  `json:"address"`
	Price         float64 `json:"price"`
	MatchingScore float64 `json:"matching_score"`
	Reason        string  `json:"reason"`
}

// RecommendationEntry is one row of the summary report, with rank, listing
// attributes, rounded scores, and the reason string.
type RecommendationEntry struct {
	Rank           int             `json:"rank"`
	ListingID      string          `json:"listing_id"`
	Address        string          `json:"address"`
	Price          float64         `json:"price"`
	Area           string          `json:"area"`
	SchoolDistrict string          `json:"school_district"`
	CommuteMinutes int             `json:"commute_minutes"`
	MatchingScore  float64         `json:"matching_score"`
	ScoreBreakdown CriterionScores `json:"score_breakdown"`
	Reason         string          `json:"reason"`
}

// SummaryReport is the final response structure. When no recommendations
// exist, Message is set and all statistics fields are omitted.
type SummaryReport struct {
	Message              string                 `json:"message,omitempty"`
	TotalRecommendations int                    `json:"total_recommendations,omitempty"`
	AverageMatchingScore float64                `json:"average_matching_score,omitempty"`
	PriceRange           *PriceRange            `json:"price_range,omitempty"`
	TopRecommendation    *TopRecommendation     `json:"top_recommendation,omitempty"`
	Recommendations      []*RecommendationEntry `json:"recommendations,omitempty"`
	SkippedListings      int                    `json:"skipped_listings,omitempty"`
}
