package execution

import (
	"fmt"
	"time"

	"github.com/spboyer/scorebench/internal/models"
)

// MockEngine returns canned measurements instead of timing anything. It still
// honors the lifecycle contract, so setup/run/teardown actions on the
// benchmark are invoked once each and their failures are reported.
type MockEngine struct {
	perIteration map[string]time.Duration
	iterations   int

	// Executed records benchmark names in execution order.
	Executed []string
}

// NewMockEngine creates a mock engine that reports iterations runs per benchmark.
func NewMockEngine(iterations int) *MockEngine {
	return &MockEngine{
		perIteration: map[string]time.Duration{},
		iterations:   max(iterations, 1),
	}
}

// Set fixes the per-iteration time reported for the named benchmark.
func (e *MockEngine) Set(name string, perIteration time.Duration) *MockEngine {
	e.perIteration[name] = perIteration
	return e
}

func (e *MockEngine) Execute(b *models.Benchmark) (m models.Measurement, err error) {
	e.Executed = append(e.Executed, b.Name)

	if b.Setup != nil {
		if err := guard(b.Setup)(); err != nil {
			return m, &PhaseError{Benchmark: b.Name, Phase: PhaseSetup, Err: err}
		}
	}
	if b.Teardown != nil {
		defer func() {
			if tdErr := guard(b.Teardown)(); tdErr != nil && err == nil {
				err = &PhaseError{Benchmark: b.Name, Phase: PhaseTeardown, Err: tdErr}
			}
		}()
	}

	if runErr := guard(b.Run)(); runErr != nil {
		return m, &PhaseError{Benchmark: b.Name, Phase: PhaseRun, Err: runErr}
	}

	per, ok := e.perIteration[b.Name]
	if !ok {
		return m, &PhaseError{Benchmark: b.Name, Phase: PhaseRun, Err: fmt.Errorf("no mock timing configured")}
	}

	m = models.Measurement{
		Elapsed:    per * time.Duration(e.iterations),
		Iterations: e.iterations,
		Samples:    []time.Duration{per},
	}
	return m, nil
}
