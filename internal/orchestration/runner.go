package orchestration

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spboyer/scorebench/internal/execution"
	"github.com/spboyer/scorebench/internal/metrics"
	"github.com/spboyer/scorebench/internal/models"
	"github.com/spboyer/scorebench/internal/scoring"
	"github.com/spboyer/scorebench/internal/statistics"
	"github.com/spboyer/scorebench/internal/utils"
)

// Runner runs suites one after another and reports through a Notifier.
// Benchmarks execute strictly one at a time, in registration order.
type Runner struct {
	engine execution.Engine
	scorer *scoring.Scorer
	setup  models.RunSetup

	// Seed for the score confidence interval; negative is non-deterministic.
	ciSeed  int64
	ciLevel float64

	// Progress tracking
	progressMu sync.Mutex
	listeners  []ProgressListener
}

// ProgressListener receives progress updates
type ProgressListener func(event ProgressEvent)

// EventType represents the type of progress event
type EventType string

// EventType constants
const (
	EventRunStart          EventType = "run_start"
	EventRunComplete       EventType = "run_complete"
	EventSuiteStart        EventType = "suite_start"
	EventSuiteComplete     EventType = "suite_complete"
	EventBenchmarkStart    EventType = "benchmark_start"
	EventBenchmarkComplete EventType = "benchmark_complete"
)

// ProgressEvent represents a progress update. Result, Suite and Outcome are
// set on the matching *_complete events.
type ProgressEvent struct {
	EventType  EventType
	SuiteName  string
	Benchmark  string
	Completed  int
	Total      int
	Status     models.Status
	DurationMs int64

	Result  *models.BenchmarkResult
	Suite   *models.SuiteOutcome
	Outcome *models.RunOutcome
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithScorer replaces the default scorer.
func WithScorer(s *scoring.Scorer) RunnerOption {
	return func(r *Runner) {
		r.scorer = s
	}
}

// WithSetup records the timing configuration in the run outcome.
func WithSetup(setup models.RunSetup) RunnerOption {
	return func(r *Runner) {
		r.setup = setup
	}
}

// WithConfidence sets the level and seed of the per-benchmark score interval.
func WithConfidence(level float64, seed int64) RunnerOption {
	return func(r *Runner) {
		r.ciLevel = level
		r.ciSeed = seed
	}
}

// NewRunner creates a runner that executes benchmarks with engine.
func NewRunner(engine execution.Engine, opts ...RunnerOption) *Runner {
	r := &Runner{
		engine:    engine,
		scorer:    scoring.New(scoring.DefaultNormalization),
		ciLevel:   0.95,
		ciSeed:    -1,
		listeners: []ProgressListener{},
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// OnProgress registers a progress listener
func (r *Runner) OnProgress(listener ProgressListener) {
	r.progressMu.Lock()
	defer r.progressMu.Unlock()
	r.listeners = append(r.listeners, listener)
}

func (r *Runner) notifyProgress(event ProgressEvent) {
	r.progressMu.Lock()
	listeners := make([]ProgressListener, len(r.listeners))
	copy(listeners, r.listeners)
	r.progressMu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// runState is the mutable state of a single RunAll call.
type runState struct {
	completed   int
	total       int
	success     bool
	suiteScores []scoring.Score
}

// RunAll runs every benchmark of every suite. A failing benchmark is reported
// through OnError and never stops the run. OnScore receives the geometric
// mean of the suite scores, and only when nothing failed.
func (r *Runner) RunAll(suites []*models.Suite, n Notifier) {
	if n == nil {
		n = Hooks{}
	}

	startTime := time.Now()
	st := &runState{
		total:   models.CountBenchmarks(suites),
		success: true,
	}

	setup := r.setup
	setup.Normalization = r.scorer.Constant()
	outcome := &models.RunOutcome{
		RunID:     uuid.NewString(),
		Timestamp: startTime,
		Setup:     setup,
		Total:     st.total,
	}

	r.notifyProgress(ProgressEvent{
		EventType: EventRunStart,
		Total:     st.total,
	})

	for _, s := range suites {
		so := r.runSuite(s, st, n)
		outcome.Suites = append(outcome.Suites, so)
	}

	outcome.Completed = st.completed
	outcome.Success = st.success
	outcome.DurationMs = time.Since(startTime).Milliseconds()

	if st.success {
		overall, err := r.scorer.Aggregate(st.suiteScores)
		if err != nil {
			slog.Warn("Overall score unavailable", "error", err)
		} else {
			outcome.Score = overall
			outcome.Scored = true
			n.OnScore(overall)
		}
	}

	r.notifyProgress(ProgressEvent{
		EventType:  EventRunComplete,
		Completed:  st.completed,
		Total:      st.total,
		DurationMs: outcome.DurationMs,
		Outcome:    outcome,
	})
}

// runSuite runs the benchmarks of one suite in order. The suite is scored
// only when every benchmark in it succeeded.
func (r *Runner) runSuite(s *models.Suite, st *runState, n Notifier) models.SuiteOutcome {
	startTime := time.Now()
	so := models.SuiteOutcome{Name: s.Name}

	r.notifyProgress(ProgressEvent{
		EventType: EventSuiteStart,
		SuiteName: s.Name,
		Completed: st.completed,
		Total:     st.total,
	})

	scores := make([]scoring.Score, 0, len(s.Benchmarks))
	for _, b := range s.Benchmarks {
		st.completed++
		n.OnStep(Step{
			Suite:     s.Name,
			Benchmark: b.Name,
			Completed: st.completed,
			Total:     st.total,
			Percent:   float64(st.completed) / float64(st.total) * 100,
		})
		r.notifyProgress(ProgressEvent{
			EventType: EventBenchmarkStart,
			SuiteName: s.Name,
			Benchmark: b.Name,
			Completed: st.completed,
			Total:     st.total,
		})

		result, err := r.runBenchmark(s.Name, b)
		if err != nil {
			st.success = false
			scores = append(scores, scoring.Score{OK: false})
			n.OnError(b.Name, err)
		} else {
			scores = append(scores, scoring.Score{Value: result.Score, OK: true})
			n.OnResult(b.Name, result.Score)
		}
		utils.ResultToSlog(&result)
		so.Benchmarks = append(so.Benchmarks, result)

		r.notifyProgress(ProgressEvent{
			EventType:  EventBenchmarkComplete,
			SuiteName:  s.Name,
			Benchmark:  b.Name,
			Completed:  st.completed,
			Total:      st.total,
			Status:     result.Status,
			DurationMs: int64(result.ElapsedMs),
			Result:     &result,
		})
	}

	suiteScore, err := r.scorer.Aggregate(scores)
	if err == nil {
		so.Score = suiteScore
		so.Scored = true
	} else {
		slog.Debug("Suite not scored", "suite", s.Name, "error", err)
	}
	st.suiteScores = append(st.suiteScores, scoring.Score{Value: so.Score, OK: so.Scored})
	so.DurationMs = time.Since(startTime).Milliseconds()

	r.notifyProgress(ProgressEvent{
		EventType:  EventSuiteComplete,
		SuiteName:  s.Name,
		Completed:  st.completed,
		Total:      st.total,
		DurationMs: so.DurationMs,
		Suite:      &so,
	})

	return so
}

// runBenchmark executes and scores one benchmark. The returned error is the
// benchmark-level failure, if any; the result is populated either way.
func (r *Runner) runBenchmark(suite string, b *models.Benchmark) (models.BenchmarkResult, error) {
	result := models.BenchmarkResult{
		Suite:       suite,
		Name:        b.Name,
		ReferenceMs: durationMs(b.Reference),
	}

	m, err := r.engine.Execute(b)
	result.Iterations = m.Iterations
	result.ElapsedMs = durationMs(m.Elapsed)
	if err == nil {
		result.Score, err = r.scorer.ScoreOf(m.Elapsed, b.Reference, m.Iterations)
	}
	if err != nil {
		result.Status = models.StatusError
		result.Phase = string(execution.PhaseOf(err))
		result.Error = err.Error()
		return result, err
	}

	result.Status = models.StatusPassed
	result.Stats = metrics.Summarize(m.Samples)
	result.ScoreCI = r.scoreInterval(b, m.Samples)
	return result, nil
}

// scoreInterval bootstraps an interval for the score from per-round samples.
func (r *Runner) scoreInterval(b *models.Benchmark, samples []time.Duration) *statistics.ConfidenceInterval {
	if len(samples) < 2 {
		return nil
	}
	scores := make([]float64, 0, len(samples))
	for _, s := range samples {
		sc, err := r.scorer.ScoreOf(s, b.Reference, 1)
		if err != nil {
			return nil
		}
		scores = append(scores, sc)
	}
	ci := statistics.BootstrapGeoMeanCI(scores, r.ciLevel, r.ciSeed)
	return &ci
}

func durationMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
