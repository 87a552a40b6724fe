package matching

import (
	"sort"
	"sync"

	"github.com/homematch/homematch/internal/models"
)

// parallelThreshold is the candidate pool size above which scoring fans out
// across goroutines. Listings are scored independently, so the only ordering
// requirement is the barrier before the final sort.
const parallelThreshold = 64

// Engine combines the normalizer, the four criterion scorers, and the
// weighted aggregator into a single ranking service. It holds no mutable
// state after construction; every method is a pure function of its inputs.
type Engine struct {
	weights    Weights
	normalizer *Normalizer
	budget     *BudgetScorer
	area       *AreaScorer
	school     *SchoolScorer
	commute    *CommuteScorer
}

// NewEngine creates an Engine. Raw weights are normalized to sum to 1.0;
// an all-zero weight configuration is a construction error. Nil tables fall
// back to the built-in defaults.
func NewEngine(w Weights, adjacency AreaAdjacency, quality SchoolQuality) (*Engine, error) {
	normalized, err := w.Normalize()
	if err != nil {
		return nil, err
	}
	if adjacency == nil {
		adjacency = DefaultAreaAdjacency()
	}
	if quality == nil {
		quality = DefaultSchoolQualityTable()
	}
	return &Engine{
		weights:    normalized,
		normalizer: NewNormalizer(),
		budget:     NewBudgetScorer(),
		area:       NewAreaScorer(adjacency),
		school:     NewSchoolScorer(quality),
		commute:    NewCommuteScorer(),
	}, nil
}

// Weights returns the normalized weights in use.
func (e *Engine) Weights() Weights {
	return e.weights
}

// Normalize exposes the engine's preference normalizer so callers (e.g. the
// inventory filter) share one parsing behavior.
func (e *Engine) Normalize(rec models.PreferenceRecord) models.NormalizedPreference {
	return e.normalizer.Normalize(rec)
}

// Score computes the four criterion scores, the weighted total, and the
// reason string for one listing against a normalized preference.
func (e *Engine) Score(listing *models.Listing, pref models.NormalizedPreference) *models.ScoredListing {
	scores := models.CriterionScores{
		Budget:  e.budget.Score(listing.Price, pref.BudgetMin, pref.BudgetMax),
		Area:    e.area.Score(listing.Area, pref.RequiredArea),
		School:  e.school.Score(listing.SchoolDistrict, pref.RequiredSchool),
		Commute: e.commute.Score(listing.CommuteMinutes, pref.MaxCommuteMinutes),
	}
	total := scores.Budget*e.weights.Budget +
		scores.Area*e.weights.Area +
		scores.School*e.weights.School +
		scores.Commute*e.weights.Commute
	return &models.ScoredListing{
		Listing:    listing,
		Scores:     scores,
		TotalScore: total,
		Reason:     BuildReason(scores),
	}
}

// Rank scores every listing against the raw preference record, sorts
// descending by total score with a stable tie-break on input order, and
// returns the top-k with contiguous 1-based ranks. Listings without a usable
// price are excluded and counted, not fatal to the batch. topK <= 0 yields
// an empty result; topK beyond the pool size returns everything ranked.
func (e *Engine) Rank(listings []*models.Listing, rec models.PreferenceRecord, topK int) *models.RankResult {
	pref := e.normalizer.Normalize(rec)

	candidates := make([]*models.Listing, 0, len(listings))
	skipped := 0
	for _, l := range listings {
		if l == nil || !l.HasPrice() {
			skipped++
			continue
		}
		candidates = append(candidates, l)
	}

	scored := e.scoreAll(candidates, pref)

	// Stable sort: equal totals keep input order so reruns are reproducible.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].TotalScore > scored[j].TotalScore
	})

	if topK < 0 {
		topK = 0
	}
	if topK > len(scored) {
		topK = len(scored)
	}

	recs := make([]*models.Recommendation, 0, topK)
	for i := 0; i < topK; i++ {
		recs = append(recs, &models.Recommendation{
			Rank:          i + 1,
			ScoredListing: *scored[i],
		})
	}
	return &models.RankResult{
		Recommendations: recs,
		SkippedListings: skipped,
	}
}

// scoreAll scores candidates sequentially for small pools and fans out over
// goroutines for large ones, writing by index so order is preserved for the
// stable sort that follows.
func (e *Engine) scoreAll(candidates []*models.Listing, pref models.NormalizedPreference) []*models.ScoredListing {
	scored := make([]*models.ScoredListing, len(candidates))
	if len(candidates) <= parallelThreshold {
		for i, l := range candidates {
			scored[i] = e.Score(l, pref)
		}
		return scored
	}

	var wg sync.WaitGroup
	for i, l := range candidates {
		wg.Add(1)
		go func(i int, l *models.Listing) {
			defer wg.Done()
			scored[i] = e.Score(l, pref)
		}(i, l)
	}
	wg.Wait()
	return scored
}
