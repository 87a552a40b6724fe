package matching

// AreaAdjacency maps each known area to its neighboring areas. Listings in a
// neighbor of the required area score 0.7 instead of the unrelated-area 0.2.
// The table is plain data injected at construction so deployments can swap it
// without touching scoring logic.
type AreaAdjacency map[string][]string

// Neighbors returns the neighboring areas of area, or nil if unknown.
func (a AreaAdjacency) Neighbors(area string) []string {
	return a[area]
}

// SchoolQuality maps school names to a perceived quality rating in [0, 1].
// Unknown schools fall back to DefaultSchoolQuality.
type SchoolQuality map[string]float64

// DefaultSchoolQuality is the quality assumed for schools missing from the
// table. Tunable alongside the table itself.
const DefaultSchoolQuality = 0.6

// Quality returns the rating for school, or DefaultSchoolQuality if unknown.
func (q SchoolQuality) Quality(school string) float64 {
	if v, ok := q[school]; ok {
		return v
	}
	return DefaultSchoolQuality
}

// DefaultAreaAdjacency returns the built-in Beijing district adjacency table.
func DefaultAreaAdjacency() AreaAdjacency {
	return AreaAdjacency{
		"朝阳区": {"海淀区", "东城区"},
		"海淀区": {"朝阳区", "西城区"},
		"西城区": {"海淀区", "东城区"},
		"东城区": {"西城区", "朝阳区"},
		"丰台区": {"朝阳区", "西城区"},
	}
}

// DefaultSchoolQualityTable returns the built-in school quality ratings.
func DefaultSchoolQualityTable() SchoolQuality {
	return SchoolQuality{
		"北京第二实验小学": 0.95,
		"中关村第一小学":  0.90,
		"朝阳实验小学":   0.85,
		"朝阳外国语学校":  0.88,
		"丰台第五小学":   0.75,
		"丰台实验小学":   0.78,
	}
}
