package statistics

import (
	"math"
	"math/rand"
	"sort"
)

// ConfidenceInterval holds the result of a bootstrap confidence interval computation.
type ConfidenceInterval struct {
	Lower           float64 `json:"lower"`
	Upper           float64 `json:"upper"`
	Center          float64 `json:"center"`
	ConfidenceLevel float64 `json:"confidence_level"`
	NumBootstraps   int     `json:"num_bootstraps"`
}

// DefaultBootstrapIterations is the number of bootstrap resamples.
const DefaultBootstrapIterations = 2000

// BootstrapGeoMeanCI computes a percentile bootstrap confidence interval for
// the geometric mean of positive values. confidenceLevel should be in (0, 1),
// e.g. 0.95. A negative seed uses a non-deterministic source.
// Returns a degenerate interval when fewer than 2 data points exist, and a
// zero value when any input is not positive.
func BootstrapGeoMeanCI(values []float64, confidenceLevel float64, seed int64) ConfidenceInterval {
	logs := make([]float64, len(values))
	for i, v := range values {
		if !(v > 0) || math.IsInf(v, 0) {
			return ConfidenceInterval{ConfidenceLevel: confidenceLevel}
		}
		logs[i] = math.Log(v)
	}

	n := len(logs)
	center := math.Exp(mean(logs))
	if n < 2 {
		if n == 0 {
			center = 0
		}
		return ConfidenceInterval{
			Lower:           center,
			Upper:           center,
			Center:          center,
			ConfidenceLevel: confidenceLevel,
		}
	}

	var rng *rand.Rand
	if seed >= 0 {
		rng = rand.New(rand.NewSource(seed))
	} else {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	iters := DefaultBootstrapIterations

	// Resample in log space; exp of the mean log is the geometric mean.
	boot := make([]float64, iters)
	sample := make([]float64, n)
	for i := 0; i < iters; i++ {
		for j := 0; j < n; j++ {
			sample[j] = logs[rng.Intn(n)]
		}
		boot[i] = mean(sample)
	}

	sort.Float64s(boot)

	alpha := 1.0 - confidenceLevel
	loIdx := int(math.Floor(alpha / 2.0 * float64(iters)))
	hiIdx := int(math.Floor((1.0 - alpha/2.0) * float64(iters)))
	if hiIdx >= iters {
		hiIdx = iters - 1
	}

	return ConfidenceInterval{
		Lower:           math.Exp(boot[loIdx]),
		Upper:           math.Exp(boot[hiIdx]),
		Center:          center,
		ConfidenceLevel: confidenceLevel,
		NumBootstraps:   iters,
	}
}

// Contains reports whether v lies inside the interval.
func (ci ConfidenceInterval) Contains(v float64) bool {
	return v >= ci.Lower && v <= ci.Upper
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
