// Package scoring converts benchmark timings into normalized scores and
// aggregates them with the geometric mean.
package scoring

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// DefaultNormalization scales scores into a human-readable range. A benchmark
// running exactly at its reference time scores DefaultNormalization.
const DefaultNormalization = 1000.0

var (
	// ErrNoScores is returned when aggregating an empty score set.
	ErrNoScores = errors.New("no scores to aggregate")

	// ErrInvalidScore is returned when a score is not a positive finite number.
	ErrInvalidScore = errors.New("score must be a positive finite number")

	// ErrIncomplete is returned when a constituent score is missing because
	// its benchmark or suite failed.
	ErrIncomplete = errors.New("score set is incomplete")
)

// Score is a single constituent of an aggregate. OK is false when the
// benchmark or suite that should have produced Value failed.
type Score struct {
	Value float64
	OK    bool
}

// Scorer converts measurements to scores.
type Scorer struct {
	// Normalization is the constant multiplier applied to every score.
	// Zero means DefaultNormalization.
	Normalization float64
}

// New returns a scorer with the given normalization constant.
func New(normalization float64) *Scorer {
	return &Scorer{Normalization: normalization}
}

// Constant returns the effective normalization constant.
func (s *Scorer) Constant() float64 {
	if s == nil || s.Normalization == 0 {
		return DefaultNormalization
	}
	return s.Normalization
}

// ScoreOf computes (reference / (elapsed / iterations)) * normalization.
// Larger is better.
func (s *Scorer) ScoreOf(elapsed, reference time.Duration, iterations int) (float64, error) {
	if elapsed <= 0 {
		return 0, fmt.Errorf("elapsed time must be positive, got %v", elapsed)
	}
	if reference <= 0 {
		return 0, fmt.Errorf("reference time must be positive, got %v", reference)
	}
	if iterations <= 0 {
		return 0, fmt.Errorf("iteration count must be positive, got %d", iterations)
	}
	if n := s.Constant(); n <= 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("normalization constant must be positive, got %v", n)
	}

	perIteration := float64(elapsed) / float64(iterations)
	return float64(reference) / perIteration * s.Constant(), nil
}

// Aggregate returns the geometric mean of scores. Any score that is not OK
// makes the whole aggregate fail with ErrIncomplete.
func (s *Scorer) Aggregate(scores []Score) (float64, error) {
	values := make([]float64, 0, len(scores))
	for _, sc := range scores {
		if !sc.OK {
			return 0, ErrIncomplete
		}
		values = append(values, sc.Value)
	}
	return GeometricMean(values)
}

// GeometricMean returns the Nth root of the product of N positive values,
// accumulated in log space so large sets do not overflow.
func GeometricMean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoScores
	}

	logSum := 0.0
	for i, v := range values {
		if !(v > 0) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("value %d (%v): %w", i, v, ErrInvalidScore)
		}
		logSum += math.Log(v)
	}
	return math.Exp(logSum / float64(len(values))), nil
}
