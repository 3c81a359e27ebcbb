package utils

import (
	"context"
	"log/slog"

	"github.com/spboyer/scorebench/internal/models"
)

// ResultToSlog writes a debug record for a finished benchmark. Optional
// fields are only included when present.
func ResultToSlog(result *models.BenchmarkResult) {
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	attrs := []any{
		"suite", result.Suite,
		"benchmark", result.Name,
		"status", result.Status,
		"iterations", result.Iterations,
		"elapsedMs", result.ElapsedMs,
	}

	if result.Status == models.StatusPassed {
		attrs = append(attrs, "score", result.Score)
	}

	var relErr, ciLower, ciUpper *float64
	if result.Stats != nil {
		relErr = &result.Stats.RelativeError
	}
	if result.ScoreCI != nil {
		ciLower, ciUpper = &result.ScoreCI.Lower, &result.ScoreCI.Upper
	}
	attrs = addIf(attrs, "relativeError", relErr)
	attrs = addIf(attrs, "ciLower", ciLower)
	attrs = addIf(attrs, "ciUpper", ciUpper)
	attrs = addIf(attrs, "phase", nonEmpty(result.Phase))
	attrs = addIf(attrs, "error", nonEmpty(result.Error))

	slog.Debug("Benchmark finished", attrs...)
}

func addIf[T any](attrs []any, name string, v *T) []any {
	if v != nil {
		attrs = append(attrs, name)
		attrs = append(attrs, *v)
	}

	return attrs
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
