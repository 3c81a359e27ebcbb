package workloads

import (
	"context"
	"fmt"
	"time"

	"github.com/spboyer/scorebench/internal/hooks"
	"github.com/spboyer/scorebench/internal/models"
	"github.com/spboyer/scorebench/internal/utils"
)

// Catalog returns the built-in suites, used when no suite file is given.
// Reference times are per iteration on a mid-range x86-64 machine.
func Catalog() *models.SuiteFile {
	return &models.SuiteFile{
		Suites: []models.SuiteSpec{
			{
				Name:        "Compute",
				Description: "Recursion and tight integer loops",
				Benchmarks: []models.BenchmarkSpec{
					{Name: "Fibonacci", Workload: string(TypeFibonacci), Reference: 500 * time.Microsecond},
					{Name: "Sieve", Workload: string(TypeSieve), Reference: 250 * time.Microsecond},
				},
			},
			{
				Name:        "Text",
				Description: "Pattern matching and document rendering",
				Benchmarks: []models.BenchmarkSpec{
					{Name: "RegExp", Workload: string(TypeRegexp), Reference: 2 * time.Millisecond},
					{Name: "Markdown", Workload: string(TypeMarkdown), Reference: time.Millisecond},
				},
			},
			{
				Name:        "Data",
				Description: "Serialization and compression round trips",
				Benchmarks: []models.BenchmarkSpec{
					{Name: "JSON", Workload: string(TypeJSON), Reference: 400 * time.Microsecond},
					{Name: "YAML", Workload: string(TypeYAML), Reference: 1500 * time.Microsecond},
					{Name: "Zstd", Workload: string(TypeZstd), Reference: time.Millisecond},
				},
			},
			{
				Name:        "Crypto",
				Description: "Hashing, sequential and fanned out",
				Benchmarks: []models.BenchmarkSpec{
					{Name: "SHA256", Workload: string(TypeSHA256), Reference: 500 * time.Microsecond},
					{Name: "FanOutHash", Workload: string(TypeFanOutHash), Reference: 300 * time.Microsecond},
				},
			},
		},
	}
}

// Load binds every benchmark in f to its workload and registers the suites
// in file order. Relative command working directories resolve against
// baseDir.
func Load(ctx context.Context, f *models.SuiteFile, baseDir string) (*models.Registry, error) {
	var reg models.Registry
	for _, s := range f.Suites {
		benchmarks := make([]*models.Benchmark, 0, len(s.Benchmarks))
		for _, spec := range s.Benchmarks {
			b, err := bind(ctx, spec, baseDir)
			if err != nil {
				return nil, fmt.Errorf("suite %q benchmark %q: %w", s.Name, spec.Name, err)
			}
			benchmarks = append(benchmarks, b)
		}
		if _, err := reg.Register(s.Name, benchmarks...); err != nil {
			return nil, err
		}
	}
	return &reg, nil
}

func bind(ctx context.Context, spec models.BenchmarkSpec, baseDir string) (*models.Benchmark, error) {
	params := spec.Params
	if Type(spec.Workload) == TypeCommand {
		params = resolveWorkingDirectory(params, baseDir)
	}

	w, err := Build(ctx, Type(spec.Workload), params)
	if err != nil {
		return nil, err
	}

	b := spec.Benchmark()
	b.Setup = hooks.Action(ctx, "setup", resolveCommands(spec.Setup, baseDir))
	b.Teardown = hooks.Action(ctx, "teardown", resolveCommands(spec.Teardown, baseDir))
	w.Bind(b)
	return b, nil
}

func resolveCommands(cmds []hooks.CommandConfig, baseDir string) []hooks.CommandConfig {
	if len(cmds) == 0 {
		return nil
	}
	out := make([]hooks.CommandConfig, len(cmds))
	for i, c := range cmds {
		c.WorkingDirectory = utils.ResolvePath(c.WorkingDirectory, baseDir)
		out[i] = c
	}
	return out
}

func resolveWorkingDirectory(params map[string]any, baseDir string) map[string]any {
	dir, ok := params["working_directory"].(string)
	if !ok {
		return params
	}
	out := make(map[string]any, len(params))
	for k, v := range params {
		out[k] = v
	}
	out["working_directory"] = utils.ResolvePath(dir, baseDir)
	return out
}
