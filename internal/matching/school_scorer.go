package matching

import (
	"math"
	"strings"

	"github.com/homematch/homematch/pkg/utils"
)

const schoolNeutralScore = 0.5

// SchoolScorer scores listing school districts against the required school,
// falling back to a quality-similarity comparison when the names do not
// overlap: schools of similar perceived quality score higher even without a
// name match.
type SchoolScorer struct {
	quality SchoolQuality
}

// NewSchoolScorer creates a SchoolScorer over the given quality table.
func NewSchoolScorer(quality SchoolQuality) *SchoolScorer {
	return &SchoolScorer{quality: quality}
}

// Name returns the scorer name.
func (s *SchoolScorer) Name() string {
	return "school"
}

// Score returns 0.5 when no school is required, 1.0 on an exact or substring
// match in either direction, and max(0, 1 - 2*|quality difference|) otherwise.
func (s *SchoolScorer) Score(listingSchool, requiredSchool string) float64 {
	if requiredSchool == "" {
		return schoolNeutralScore
	}
	if strings.Contains(listingSchool, requiredSchool) || strings.Contains(requiredSchool, listingSchool) {
		return 1.0
	}
	diff := math.Abs(s.quality.Quality(listingSchool) - s.quality.Quality(requiredSchool))
	return utils.Clamp01(1.0 - 2*diff)
}
