package orchestration

import (
	"fmt"
	"path/filepath"

	"github.com/spboyer/scorebench/internal/models"
)

// FilterSuites returns suites reduced to the benchmarks matching at least one
// glob pattern. A pattern matches a suite name (selecting the whole suite),
// a bare benchmark name, or "Suite/Benchmark". Suites left without benchmarks
// are dropped. An empty patterns slice returns suites unchanged.
func FilterSuites(suites []*models.Suite, patterns []string) ([]*models.Suite, error) {
	if len(patterns) == 0 {
		return suites, nil
	}

	var matched []*models.Suite
	for _, s := range suites {
		whole, err := matchesAny(patterns, s.Name)
		if err != nil {
			return nil, err
		}
		if whole {
			matched = append(matched, s)
			continue
		}

		var kept []*models.Benchmark
		for _, b := range s.Benchmarks {
			ok, err := matchesAny(patterns, b.Name, s.Name+"/"+b.Name)
			if err != nil {
				return nil, err
			}
			if ok {
				kept = append(kept, b)
			}
		}
		if len(kept) > 0 {
			matched = append(matched, &models.Suite{Name: s.Name, Benchmarks: kept})
		}
	}
	return matched, nil
}

// matchesAny reports whether any of names matches any pattern.
func matchesAny(patterns []string, names ...string) (bool, error) {
	for _, p := range patterns {
		for _, name := range names {
			ok, err := filepath.Match(p, name)
			if err != nil {
				return false, fmt.Errorf("invalid benchmark filter pattern %q: %w", p, err)
			}
			if ok {
				return true, nil
			}
		}
	}
	return false, nil
}
