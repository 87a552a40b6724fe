// Package matching implements the multi-criteria scoring and ranking engine:
// preference normalization, four per-criterion scorers, weighted aggregation,
// reason generation, ranking, and summary building.
package matching

import "errors"

// ErrZeroWeights is returned when all configured weights are zero, which
// would make every total score undefined.
var ErrZeroWeights = errors.New("matching: weights sum to zero")

// Weights holds the relative importance of each criterion. Raw values are
// rescaled at construction so they sum to exactly 1.0.
type Weights struct {
	Budget  float64 `yaml:"budget" json:"budget"`
	Area    float64 `yaml:"area" json:"area"`
	School  float64 `yaml:"school" json:"school"`
	Commute float64 `yaml:"commute" json:"commute"`
}

// DefaultWeights returns the baseline raw weights: budget 0.4, area 0.2,
// school 0.3, commute 0.3 (normalized by their sum of 1.2 at construction).
func DefaultWeights() Weights {
	return Weights{
		Budget:  0.4,
		Area:    0.2,
		School:  0.3,
		Commute: 0.3,
	}
}

// Normalize rescales the weights so they sum to 1.0. Negative weights are
// rejected, and an all-zero configuration returns ErrZeroWeights: silently
// producing NaN totals is worse than failing construction.
func (w Weights) Normalize() (Weights, error) {
	if w.Budget < 0 || w.Area < 0 || w.School < 0 || w.Commute < 0 {
		return Weights{}, errors.New("matching: weights must be non-negative")
	}
	sum := w.Budget + w.Area + w.School + w.Commute
	if sum == 0 {
		return Weights{}, ErrZeroWeights
	}
	return Weights{
		Budget:  w.Budget / sum,
		Area:    w.Area / sum,
		School:  w.School / sum,
		Commute: w.Commute / sum,
	}, nil
}
