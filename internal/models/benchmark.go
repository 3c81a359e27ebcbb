package models

import (
	"errors"
	"fmt"
	"time"
)

// Action is an opaque unit of work. Setup, run and teardown steps of a
// benchmark are all Actions.
type Action func() error

// Benchmark is a named unit of work plus the reference time its score is
// normalized against.
type Benchmark struct {
	Name string

	// Reference is the baseline per-iteration time. A benchmark that takes
	// exactly Reference per iteration scores the scorer's normalization constant.
	Reference time.Duration

	// MinDuration and MinIterations override the timer's floors for this
	// benchmark when non-zero.
	MinDuration   time.Duration
	MinIterations int

	Setup    Action
	Run      Action
	Teardown Action
}

// Validate checks that the benchmark can be executed and scored.
func (b *Benchmark) Validate() error {
	if b.Name == "" {
		return errors.New("benchmark name is required")
	}
	if b.Reference <= 0 {
		return fmt.Errorf("benchmark %q: reference time must be positive, got %v", b.Name, b.Reference)
	}
	if b.Run == nil {
		return fmt.Errorf("benchmark %q: run action is required", b.Name)
	}
	if b.MinDuration < 0 {
		return fmt.Errorf("benchmark %q: min duration must not be negative, got %v", b.Name, b.MinDuration)
	}
	if b.MinIterations < 0 {
		return fmt.Errorf("benchmark %q: min iterations must not be negative, got %d", b.Name, b.MinIterations)
	}
	return nil
}

// Suite is a named, ordered collection of benchmarks. Registration order is
// execution order.
type Suite struct {
	Name       string
	Benchmarks []*Benchmark
}

// NewSuite builds a suite, rejecting empty suites, invalid benchmarks and
// duplicate benchmark names.
func NewSuite(name string, benchmarks ...*Benchmark) (*Suite, error) {
	if name == "" {
		return nil, errors.New("suite name is required")
	}
	if len(benchmarks) == 0 {
		return nil, fmt.Errorf("suite %q: at least one benchmark is required", name)
	}

	seen := make(map[string]bool, len(benchmarks))
	for _, b := range benchmarks {
		if b == nil {
			return nil, fmt.Errorf("suite %q: nil benchmark", name)
		}
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("suite %q: %w", name, err)
		}
		if seen[b.Name] {
			return nil, fmt.Errorf("suite %q: duplicate benchmark name %q", name, b.Name)
		}
		seen[b.Name] = true
	}

	return &Suite{Name: name, Benchmarks: benchmarks}, nil
}

// Registry collects suites in registration order before a run starts.
type Registry struct {
	suites []*Suite
	byName map[string]*Suite
}

// Register declares a suite. Suite names are unique within the registry.
func (r *Registry) Register(name string, benchmarks ...*Benchmark) (*Suite, error) {
	if _, exists := r.byName[name]; exists {
		return nil, fmt.Errorf("suite %q already registered", name)
	}

	s, err := NewSuite(name, benchmarks...)
	if err != nil {
		return nil, err
	}

	if r.byName == nil {
		r.byName = make(map[string]*Suite)
	}
	r.byName[name] = s
	r.suites = append(r.suites, s)
	return s, nil
}

// Suites returns the registered suites in registration order.
func (r *Registry) Suites() []*Suite {
	out := make([]*Suite, len(r.suites))
	copy(out, r.suites)
	return out
}

// Lookup returns the suite registered under name.
func (r *Registry) Lookup(name string) (*Suite, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// CountBenchmarks returns the total benchmark count across the given suites.
func CountBenchmarks(suites []*Suite) int {
	n := 0
	for _, s := range suites {
		n += len(s.Benchmarks)
	}
	return n
}
