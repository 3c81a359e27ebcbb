package reporting

import (
	"fmt"
	"strings"
	"time"

	"github.com/spboyer/scorebench/internal/models"
)

// InterpretScore describes a score relative to the normalization constant,
// which is what a benchmark scores when it runs exactly at reference speed.
func InterpretScore(score, normalization float64) string {
	if normalization <= 0 {
		return "Unknown"
	}
	ratio := score / normalization
	switch {
	case ratio >= 1.1:
		return fmt.Sprintf("Faster than reference (%.2fx)", ratio)
	case ratio > 0.9:
		return fmt.Sprintf("On par with reference (%.2fx)", ratio)
	default:
		return fmt.Sprintf("Slower than reference (%.2fx)", ratio)
	}
}

// InterpretPrecision explains how far a result can be trusted, given the
// relative error of its timing samples.
func InterpretPrecision(relErr float64) string {
	pct := relErr * 100
	switch {
	case pct < 1:
		return fmt.Sprintf("Stable (±%.1f%%)", pct)
	case pct <= 5:
		return fmt.Sprintf("Acceptable (±%.1f%%)", pct)
	default:
		return fmt.Sprintf("Noisy (±%.1f%%). Consider a longer min_duration or a quieter machine.", pct)
	}
}

// FormatSummaryReport produces a plain-language report from a RunOutcome.
func FormatSummaryReport(outcome *models.RunOutcome) string {
	var b strings.Builder

	norm := outcome.Setup.Normalization
	duration := time.Duration(outcome.DurationMs) * time.Millisecond

	b.WriteString("=== Interpretation ===\n\n")

	if outcome.Scored {
		b.WriteString(fmt.Sprintf("Overall Score: %.0f, %s\n", outcome.Score, InterpretScore(outcome.Score, norm)))
	} else {
		b.WriteString("Overall Score: not available, some benchmarks failed\n")
	}
	b.WriteString(fmt.Sprintf("Duration:      %v\n", duration))
	b.WriteString(fmt.Sprintf("Benchmarks:    %d passed, %d errors out of %d total\n",
		outcome.Completed-outcome.Failed(), outcome.Failed(), outcome.Total))

	for _, s := range outcome.Suites {
		b.WriteString(fmt.Sprintf("\n%s:", s.Name))
		if s.Scored {
			b.WriteString(fmt.Sprintf(" %.0f, %s", s.Score, InterpretScore(s.Score, norm)))
		}
		b.WriteString("\n")

		for _, r := range s.Benchmarks {
			if r.Status != models.StatusPassed {
				b.WriteString(fmt.Sprintf("  ✗ %s: %s failed: %s\n", r.Name, r.Phase, r.Error))
				continue
			}
			b.WriteString(fmt.Sprintf("  ✓ %s: %.0f, %s\n", r.Name, r.Score, InterpretScore(r.Score, norm)))
			if r.Stats != nil && r.Stats.Samples > 1 {
				b.WriteString(fmt.Sprintf("    %s\n", InterpretPrecision(r.Stats.RelativeError)))
			}
		}
	}

	return b.String()
}
