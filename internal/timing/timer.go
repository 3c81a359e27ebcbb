// Package timing measures repeated executions of a benchmark's run action
// until the measurement is long enough to be meaningful.
package timing

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spboyer/scorebench/internal/models"
)

// Defaults for the timer floors. All of them can be overridden through
// .scorebench.yaml, CLI flags, or per benchmark.
const (
	DefaultMinDuration      = time.Second
	DefaultMinIterations    = 32
	DefaultRoundDuration    = 100 * time.Millisecond
	DefaultWarmupIterations = 1
)

// Clock is a monotonic time source.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// Now returns the wall clock reading, which carries Go's monotonic reading;
// durations computed with Sub use the monotonic clock.
func (systemClock) Now() time.Time { return time.Now() }

// Timer invokes a run action repeatedly until both floors are crossed: the
// accumulated elapsed time reaches MinDuration and at least MinIterations
// invocations completed. Invocations are grouped into rounds of roughly
// RoundDuration; each round contributes one per-iteration sample.
type Timer struct {
	MinDuration      time.Duration
	MinIterations    int
	RoundDuration    time.Duration
	WarmupIterations int

	Clock Clock
}

// Option configures a Timer.
type Option func(*Timer)

// WithMinDuration sets the elapsed time floor.
func WithMinDuration(d time.Duration) Option {
	return func(t *Timer) {
		t.MinDuration = d
	}
}

// WithMinIterations sets the iteration count floor.
func WithMinIterations(n int) Option {
	return func(t *Timer) {
		t.MinIterations = n
	}
}

// WithRoundDuration sets the target length of a sampling round.
func WithRoundDuration(d time.Duration) Option {
	return func(t *Timer) {
		t.RoundDuration = d
	}
}

// WithWarmupIterations sets the number of untimed invocations before measuring.
func WithWarmupIterations(n int) Option {
	return func(t *Timer) {
		t.WarmupIterations = n
	}
}

// WithClock replaces the monotonic system clock.
func WithClock(c Clock) Option {
	return func(t *Timer) {
		t.Clock = c
	}
}

// New creates a timer with the default floors.
func New(opts ...Option) *Timer {
	t := &Timer{
		MinDuration:      DefaultMinDuration,
		MinIterations:    DefaultMinIterations,
		RoundDuration:    DefaultRoundDuration,
		WarmupIterations: DefaultWarmupIterations,
		Clock:            systemClock{},
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// For returns a copy of t with b's non-zero floors applied.
func (t *Timer) For(b *models.Benchmark) *Timer {
	c := *t
	if b.MinDuration > 0 {
		c.MinDuration = b.MinDuration
	}
	if b.MinIterations > 0 {
		c.MinIterations = b.MinIterations
	}
	return &c
}

// Measure runs the action until both floors are crossed. If the action fails,
// measuring stops immediately; the returned Measurement holds the partial
// iteration count and must not be scored.
func (t *Timer) Measure(run models.Action) (models.Measurement, error) {
	var m models.Measurement

	clock := t.Clock
	if clock == nil {
		clock = systemClock{}
	}
	minIters := max(t.MinIterations, 1)
	roundDur := t.RoundDuration
	if roundDur <= 0 {
		roundDur = DefaultRoundDuration
	}

	for i := 0; i < t.WarmupIterations; i++ {
		if err := run(); err != nil {
			return m, fmt.Errorf("warmup iteration %d: %w", i+1, err)
		}
	}

	for m.Elapsed < t.MinDuration || m.Iterations < minIters {
		start := clock.Now()
		n := 0
		var roundElapsed time.Duration
		for {
			err := run()
			roundElapsed = clock.Now().Sub(start)
			if err != nil {
				m.Elapsed += roundElapsed
				return m, fmt.Errorf("iteration %d: %w", m.Iterations+1, err)
			}
			n++
			m.Iterations++
			if roundElapsed >= roundDur {
				break
			}
			if m.Elapsed+roundElapsed >= t.MinDuration && m.Iterations >= minIters {
				break
			}
		}
		m.Elapsed += roundElapsed
		m.Samples = append(m.Samples, roundElapsed/time.Duration(n))

		slog.Debug("Timing round complete",
			"iterations", n,
			"round", roundElapsed,
			"total", m.Elapsed,
			"totalIterations", m.Iterations)
	}

	return m, nil
}

// Setup reports the timer floors for inclusion in a run record.
func (t *Timer) Setup() models.RunSetup {
	return models.RunSetup{
		MinDurationMs:    t.MinDuration.Milliseconds(),
		MinIterations:    t.MinIterations,
		RoundDurationMs:  t.RoundDuration.Milliseconds(),
		WarmupIterations: t.WarmupIterations,
	}
}
