package orchestration

// Step describes progress at the moment a benchmark is about to run.
// Completed counts benchmarks stepped so far across all suites, including
// this one, so Percent reaches 100 exactly at the last benchmark.
type Step struct {
	Suite     string
	Benchmark string
	Completed int
	Total     int
	Percent   float64
}

// Notifier receives the four run notifications.
type Notifier interface {
	// OnStep fires once per benchmark, before it executes.
	OnStep(step Step)

	// OnError fires when a benchmark's setup, run or teardown fails.
	OnError(benchmark string, err error)

	// OnResult fires when a benchmark completes successfully.
	OnResult(benchmark string, score float64)

	// OnScore fires at most once, at the end, and only if every benchmark in
	// every suite succeeded.
	OnScore(score float64)
}

// Hooks adapts optional functions to Notifier. Nil hooks are no-ops.
type Hooks struct {
	Step   func(step Step)
	Error  func(benchmark string, err error)
	Result func(benchmark string, score float64)
	Score  func(score float64)
}

func (h Hooks) OnStep(step Step) {
	if h.Step != nil {
		h.Step(step)
	}
}

func (h Hooks) OnError(benchmark string, err error) {
	if h.Error != nil {
		h.Error(benchmark, err)
	}
}

func (h Hooks) OnResult(benchmark string, score float64) {
	if h.Result != nil {
		h.Result(benchmark, score)
	}
}

func (h Hooks) OnScore(score float64) {
	if h.Score != nil {
		h.Score(score)
	}
}
