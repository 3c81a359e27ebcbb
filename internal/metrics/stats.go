package metrics

import (
	"math"
	"time"
)

// Summary describes the spread of per-iteration timing samples.
// All durations are in milliseconds.
type Summary struct {
	Samples int     `json:"samples"`
	MeanMs  float64 `json:"mean_ms"`
	MinMs   float64 `json:"min_ms"`
	MaxMs   float64 `json:"max_ms"`
	StdDev  float64 `json:"std_dev_ms"`
	CI95Lo  float64 `json:"ci95_lo_ms"`
	CI95Hi  float64 `json:"ci95_hi_ms"`

	// RelativeError is the CI95 half-width as a fraction of the mean.
	RelativeError float64 `json:"relative_error"`
}

// Summarize computes a Summary over samples. Returns nil for empty input.
func Summarize(samples []time.Duration) *Summary {
	if len(samples) == 0 {
		return nil
	}

	ms := Milliseconds(samples)
	lo, hi := ConfidenceInterval95(ms)
	m := Mean(ms)

	s := &Summary{
		Samples: len(ms),
		MeanMs:  m,
		MinMs:   ms[0],
		MaxMs:   ms[0],
		StdDev:  StdDev(ms),
		CI95Lo:  lo,
		CI95Hi:  hi,
	}
	for _, v := range ms[1:] {
		s.MinMs = math.Min(s.MinMs, v)
		s.MaxMs = math.Max(s.MaxMs, v)
	}
	if m > 0 {
		s.RelativeError = (hi - lo) / 2 / m
	}
	return s
}

// Milliseconds converts durations to fractional milliseconds.
func Milliseconds(samples []time.Duration) []float64 {
	out := make([]float64, len(samples))
	for i, d := range samples {
		out[i] = float64(d) / float64(time.Millisecond)
	}
	return out
}

// Mean computes the arithmetic mean of a float64 slice.
// Returns 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev computes the sample standard deviation (Bessel's correction).
// Returns 0 when fewer than 2 values are available.
func StdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	m := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(n-1))
}

// ConfidenceInterval95 returns the 95% confidence interval (low, high) of the
// mean using the normal approximation (z=1.96). Returns (mean, mean) when
// fewer than 2 data points are available.
func ConfidenceInterval95(values []float64) (float64, float64) {
	m := Mean(values)
	n := len(values)
	if n < 2 {
		return m, m
	}
	margin := 1.96 * StdDev(values) / math.Sqrt(float64(n))
	return m - margin, m + margin
}
