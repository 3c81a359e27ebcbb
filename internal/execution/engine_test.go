package execution

import (
	"errors"
	"testing"
	"time"

	"github.com/spboyer/scorebench/internal/models"
	"github.com/spboyer/scorebench/internal/timing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time { return c.now }

// lifecycle builds a benchmark whose actions append to a shared trace.
type lifecycle struct {
	clock *stepClock
	trace []string

	setupErr    error
	runErr      error
	teardownErr error
	runPanic    any
}

func (l *lifecycle) benchmark() *models.Benchmark {
	return &models.Benchmark{
		Name:      "Probe",
		Reference: time.Millisecond,
		Setup: func() error {
			l.trace = append(l.trace, "setup")
			return l.setupErr
		},
		Run: func() error {
			l.trace = append(l.trace, "run")
			l.clock.now = l.clock.now.Add(time.Millisecond)
			if l.runPanic != nil {
				panic(l.runPanic)
			}
			return l.runErr
		},
		Teardown: func() error {
			l.trace = append(l.trace, "teardown")
			return l.teardownErr
		},
	}
}

func newTestExecutor(clock *stepClock) *Executor {
	return NewExecutor(timing.New(
		timing.WithClock(clock),
		timing.WithMinDuration(3*time.Millisecond),
		timing.WithMinIterations(3),
		timing.WithWarmupIterations(0),
	))
}

func TestExecute_Success(t *testing.T) {
	l := &lifecycle{clock: &stepClock{now: time.Unix(0, 0)}}

	m, err := newTestExecutor(l.clock).Execute(l.benchmark())
	require.NoError(t, err)

	assert.Equal(t, 3, m.Iterations)
	assert.Equal(t, 3*time.Millisecond, m.Elapsed)
	assert.Equal(t, []string{"setup", "run", "run", "run", "teardown"}, l.trace)
}

func TestExecute_SetupFailureSkipsRunAndTeardown(t *testing.T) {
	boom := errors.New("no fixture")
	l := &lifecycle{clock: &stepClock{}, setupErr: boom}

	_, err := newTestExecutor(l.clock).Execute(l.benchmark())
	require.ErrorIs(t, err, boom)

	var pe *PhaseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, PhaseSetup, pe.Phase)
	assert.Equal(t, "Probe", pe.Benchmark)
	assert.Equal(t, []string{"setup"}, l.trace)
}

func TestExecute_RunFailureStillTearsDown(t *testing.T) {
	boom := errors.New("diverged")
	l := &lifecycle{clock: &stepClock{}, runErr: boom}

	m, err := newTestExecutor(l.clock).Execute(l.benchmark())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, PhaseRun, PhaseOf(err))
	assert.Zero(t, m.Iterations)
	assert.Equal(t, []string{"setup", "run", "teardown"}, l.trace)
}

func TestExecute_TeardownFailureFailsSuccessfulRun(t *testing.T) {
	boom := errors.New("leaked handle")
	l := &lifecycle{clock: &stepClock{}, teardownErr: boom}

	_, err := newTestExecutor(l.clock).Execute(l.benchmark())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, PhaseTeardown, PhaseOf(err))
}

func TestExecute_RunAndTeardownFailuresAreJoined(t *testing.T) {
	runErr := errors.New("diverged")
	tdErr := errors.New("leaked handle")
	l := &lifecycle{clock: &stepClock{}, runErr: runErr, teardownErr: tdErr}

	_, err := newTestExecutor(l.clock).Execute(l.benchmark())
	require.ErrorIs(t, err, runErr)
	require.ErrorIs(t, err, tdErr)
	assert.Equal(t, PhaseRun, PhaseOf(err))
	assert.Equal(t, 1, countOf(l.trace, "teardown"))
}

func TestExecute_PanicIsIsolated(t *testing.T) {
	l := &lifecycle{clock: &stepClock{}, runPanic: "index out of range"}

	_, err := newTestExecutor(l.clock).Execute(l.benchmark())
	require.Error(t, err)

	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "index out of range", pe.Value)
	assert.NotEmpty(t, pe.Stack)
	assert.Equal(t, PhaseRun, PhaseOf(err))
	assert.Equal(t, []string{"setup", "run", "teardown"}, l.trace)
}

func TestExecute_OptionalActions(t *testing.T) {
	clock := &stepClock{}
	b := &models.Benchmark{
		Name:      "Bare",
		Reference: time.Millisecond,
		Run: func() error {
			clock.now = clock.now.Add(time.Millisecond)
			return nil
		},
	}

	m, err := newTestExecutor(clock).Execute(b)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Iterations)
}

func TestExecute_ZeroValueExecutorUsesDefaultTimer(t *testing.T) {
	runs := 0
	b := &models.Benchmark{
		Name:          "Quick",
		Reference:     time.Millisecond,
		MinDuration:   time.Nanosecond,
		MinIterations: 1,
		Run: func() error {
			runs++
			return nil
		},
	}

	var x Executor
	m, err := x.Execute(b)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, m.Iterations, 1)
	assert.Greater(t, runs, m.Iterations, "warmup runs are untimed")
}

func TestMockEngine(t *testing.T) {
	e := NewMockEngine(10).Set("X", 50*time.Millisecond)

	m, err := e.Execute(&models.Benchmark{Name: "X", Run: func() error { return nil }})
	require.NoError(t, err)
	assert.Equal(t, 10, m.Iterations)
	assert.Equal(t, 500*time.Millisecond, m.Elapsed)

	_, err = e.Execute(&models.Benchmark{Name: "Unknown", Run: func() error { return nil }})
	assert.Equal(t, PhaseRun, PhaseOf(err))
	assert.Equal(t, []string{"X", "Unknown"}, e.Executed)
}

func countOf(items []string, want string) int {
	n := 0
	for _, s := range items {
		if s == want {
			n++
		}
	}
	return n
}
