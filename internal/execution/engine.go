// Package execution runs a single benchmark's lifecycle: setup, the timed
// run, and teardown.
package execution

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/spboyer/scorebench/internal/models"
	"github.com/spboyer/scorebench/internal/timing"
)

// Phase names the lifecycle step in which a benchmark failed.
type Phase string

const (
	PhaseSetup    Phase = "setup"
	PhaseRun      Phase = "run"
	PhaseTeardown Phase = "teardown"
)

// PhaseError is a benchmark-level failure. It never aborts a suite.
type PhaseError struct {
	Benchmark string
	Phase     Phase
	Err       error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Benchmark, e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// PanicError is produced when an action panics instead of returning an error.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Engine executes a benchmark and reports what was measured.
type Engine interface {
	Execute(b *models.Benchmark) (models.Measurement, error)
}

// Executor is the default Engine. It times the run action with Timer.
type Executor struct {
	Timer *timing.Timer
}

// NewExecutor creates an executor around timer. A nil timer uses the defaults.
func NewExecutor(timer *timing.Timer) *Executor {
	if timer == nil {
		timer = timing.New()
	}
	return &Executor{Timer: timer}
}

// Execute runs setup, the timed run and teardown. Teardown runs exactly once
// whenever setup succeeded, including when the run action fails. A failed
// setup skips both run and teardown.
func (x *Executor) Execute(b *models.Benchmark) (m models.Measurement, err error) {
	if b.Setup != nil {
		slog.Debug("Benchmark setup", "benchmark", b.Name)
		if setupErr := guard(b.Setup)(); setupErr != nil {
			return m, &PhaseError{Benchmark: b.Name, Phase: PhaseSetup, Err: setupErr}
		}
	}

	if b.Teardown != nil {
		defer func() {
			slog.Debug("Benchmark teardown", "benchmark", b.Name)
			tdErr := guard(b.Teardown)()
			if tdErr == nil {
				return
			}
			pe := &PhaseError{Benchmark: b.Name, Phase: PhaseTeardown, Err: tdErr}
			if err != nil {
				err = errors.Join(err, pe)
				return
			}
			err = pe
		}()
	}

	timer := x.Timer
	if timer == nil {
		timer = timing.New()
	}
	m, runErr := timer.For(b).Measure(guard(b.Run))
	if runErr != nil {
		return m, &PhaseError{Benchmark: b.Name, Phase: PhaseRun, Err: runErr}
	}

	slog.Debug("Benchmark measured",
		"benchmark", b.Name,
		"elapsed", m.Elapsed,
		"iterations", m.Iterations)
	return m, nil
}

// PhaseOf returns the phase of the first PhaseError in err's tree.
func PhaseOf(err error) Phase {
	var pe *PhaseError
	if errors.As(err, &pe) {
		return pe.Phase
	}
	return ""
}

// guard converts a panicking action into an error.
func guard(a models.Action) models.Action {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &PanicError{Value: r, Stack: debug.Stack()}
			}
		}()
		return a()
	}
}
