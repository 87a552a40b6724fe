package matching

import "strings"

// Area scoring constants. The neighbor and unrelated scores are heuristic
// and tunable; they are fixed here because downstream consumers expect them.
const (
	areaNeutralScore   = 0.5
	areaNeighborScore  = 0.7
	areaUnrelatedScore = 0.2
)

// AreaScorer scores listing location against the required area, consulting
// an adjacency table for near-miss neighborhoods.
type AreaScorer struct {
	adjacency AreaAdjacency
}

// NewAreaScorer creates an AreaScorer over the given adjacency table.
func NewAreaScorer(adjacency AreaAdjacency) *AreaScorer {
	return &AreaScorer{adjacency: adjacency}
}

// Name returns the scorer name.
func (s *AreaScorer) Name() string {
	return "area"
}

// Score returns 0.5 when no area is required, 1.0 on an exact or substring
// match in either direction, 0.7 when the listing area neighbors the required
// area, and 0.2 otherwise.
func (s *AreaScorer) Score(listingArea, requiredArea string) float64 {
	if requiredArea == "" {
		return areaNeutralScore
	}
	if strings.Contains(listingArea, requiredArea) || strings.Contains(requiredArea, listingArea) {
		return 1.0
	}
	for _, neighbor := range s.adjacency.Neighbors(requiredArea) {
		if listingArea == neighbor {
			return areaNeighborScore
		}
	}
	return areaUnrelatedScore
}
