package models

import (
	"time"

	"github.com/spboyer/scorebench/internal/metrics"
	"github.com/spboyer/scorebench/internal/statistics"
)

// Status represents the outcome status of a benchmark.
type Status string

const (
	StatusPassed Status = "passed"
	StatusError  Status = "error"
)

// Measurement is what the timer observed for one benchmark execution.
type Measurement struct {
	Elapsed    time.Duration
	Iterations int

	// Samples holds one per-iteration time per timed round.
	Samples []time.Duration
}

// PerIteration returns the mean time of a single iteration.
func (m Measurement) PerIteration() time.Duration {
	if m.Iterations == 0 {
		return 0
	}
	return m.Elapsed / time.Duration(m.Iterations)
}

// RunSetup records the timing and scoring configuration of a run.
type RunSetup struct {
	MinDurationMs    int64   `json:"min_duration_ms"`
	MinIterations    int     `json:"min_iterations"`
	RoundDurationMs  int64   `json:"round_duration_ms"`
	WarmupIterations int     `json:"warmup_iterations"`
	Normalization    float64 `json:"normalization"`
}

// BenchmarkResult is the result of one benchmark in one suite.
type BenchmarkResult struct {
	Suite       string  `json:"suite"`
	Name        string  `json:"name"`
	Status      Status  `json:"status"`
	Score       float64 `json:"score,omitempty"`
	ElapsedMs   float64 `json:"elapsed_ms"`
	Iterations  int     `json:"iterations"`
	ReferenceMs float64 `json:"reference_ms"`

	Stats   *metrics.Summary               `json:"stats,omitempty"`
	ScoreCI *statistics.ConfidenceInterval `json:"score_ci,omitempty"`

	// NOTE: Phase and Error are only set when Status == StatusError.
	Phase string `json:"phase,omitempty"`
	Error string `json:"error,omitempty"`
}

// SuiteOutcome aggregates the benchmark results of one suite. Score is only
// meaningful when Scored is true, which requires every benchmark to pass.
type SuiteOutcome struct {
	Name       string            `json:"name"`
	Benchmarks []BenchmarkResult `json:"benchmarks"`
	Score      float64           `json:"score,omitempty"`
	Scored     bool              `json:"scored"`
	DurationMs int64             `json:"duration_ms"`
}

// Failed returns the number of benchmarks that errored.
func (s *SuiteOutcome) Failed() int {
	n := 0
	for _, b := range s.Benchmarks {
		if b.Status != StatusPassed {
			n++
		}
	}
	return n
}

// RunOutcome is the complete record of one run across all suites.
type RunOutcome struct {
	RunID      string         `json:"run_id"`
	Timestamp  time.Time      `json:"timestamp"`
	Setup      RunSetup       `json:"config"`
	Suites     []SuiteOutcome `json:"suites"`
	Score      float64        `json:"score,omitempty"`
	Scored     bool           `json:"scored"`
	Success    bool           `json:"success"`
	Completed  int            `json:"completed"`
	Total      int            `json:"total"`
	DurationMs int64          `json:"duration_ms"`
}

// Failed returns the number of failed benchmarks across all suites.
func (o *RunOutcome) Failed() int {
	n := 0
	for i := range o.Suites {
		n += o.Suites[i].Failed()
	}
	return n
}
