package models

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spboyer/scorebench/internal/hooks"
	"gopkg.in/yaml.v3"
)

// SuiteFile is the on-disk declaration of benchmark suites.
type SuiteFile struct {
	Suites []SuiteSpec `yaml:"suites"`
}

// SuiteSpec declares one suite. Benchmark order is execution order.
type SuiteSpec struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description,omitempty"`
	Benchmarks  []BenchmarkSpec `yaml:"benchmarks"`
}

// BenchmarkSpec declares one benchmark and the workload it runs.
type BenchmarkSpec struct {
	Name      string         `yaml:"name"`
	Workload  string         `yaml:"workload"`
	Reference time.Duration  `yaml:"reference"`
	Params    map[string]any `yaml:"params,omitempty"`

	MinDuration   time.Duration `yaml:"min_duration,omitempty"`
	MinIterations int           `yaml:"min_iterations,omitempty"`

	Setup    []hooks.CommandConfig `yaml:"setup,omitempty"`
	Teardown []hooks.CommandConfig `yaml:"teardown,omitempty"`
}

// LoadSuiteFile loads suites from a YAML file
func LoadSuiteFile(path string) (*SuiteFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	f, err := ParseSuiteFile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// ParseSuiteFile decodes and validates suite YAML.
func ParseSuiteFile(data []byte) (*SuiteFile, error) {
	var f SuiteFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks the structural rules the engine relies on. It reports
// every problem, not just the first.
func (f *SuiteFile) Validate() error {
	if len(f.Suites) == 0 {
		return errors.New("at least one suite is required")
	}

	var errs []error
	suites := make(map[string]bool, len(f.Suites))
	for i, s := range f.Suites {
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("suites[%d]: name is required", i))
		} else if suites[s.Name] {
			errs = append(errs, fmt.Errorf("suites[%d]: duplicate suite name %q", i, s.Name))
		}
		suites[s.Name] = true

		if len(s.Benchmarks) == 0 {
			errs = append(errs, fmt.Errorf("suite %q: at least one benchmark is required", s.Name))
		}

		benchmarks := make(map[string]bool, len(s.Benchmarks))
		for j, b := range s.Benchmarks {
			where := fmt.Sprintf("suite %q benchmarks[%d]", s.Name, j)
			if b.Name == "" {
				errs = append(errs, fmt.Errorf("%s: name is required", where))
			} else if benchmarks[b.Name] {
				errs = append(errs, fmt.Errorf("%s: duplicate benchmark name %q", where, b.Name))
			}
			benchmarks[b.Name] = true

			if b.Workload == "" {
				errs = append(errs, fmt.Errorf("%s: workload is required", where))
			}
			if b.Reference <= 0 {
				errs = append(errs, fmt.Errorf("%s: reference must be positive, got %v", where, b.Reference))
			}
			if b.MinDuration < 0 {
				errs = append(errs, fmt.Errorf("%s: min_duration must not be negative", where))
			}
			if b.MinIterations < 0 {
				errs = append(errs, fmt.Errorf("%s: min_iterations must not be negative", where))
			}
		}
	}
	return errors.Join(errs...)
}

// Benchmark returns the benchmark declared by b, without actions. The
// caller binds the workload.
func (b *BenchmarkSpec) Benchmark() *Benchmark {
	return &Benchmark{
		Name:          b.Name,
		Reference:     b.Reference,
		MinDuration:   b.MinDuration,
		MinIterations: b.MinIterations,
	}
}
