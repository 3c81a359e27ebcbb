package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spboyer/scorebench/internal/models"
	"github.com/spboyer/scorebench/internal/orchestration"
	"github.com/spboyer/scorebench/internal/spinner"
)

// formatDuration formats a duration in a consistent, human-readable way.
// This ensures stable output regardless of Go version changes.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(time.Millisecond).String()
}

// formatScore prints large scores as integers and small ones with three
// significant digits.
func formatScore(v float64) string {
	if v >= 100 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.3g", v)
}

// consoleReporter prints the four run notifications. On a terminal the
// progress line is a spinner; elsewhere every step is printed.
type consoleReporter struct {
	out     io.Writer
	tty     bool
	verbose bool

	mu   sync.Mutex
	spin *spinner.Spinner

	nameStyle  lipgloss.Style
	errorStyle lipgloss.Style
	scoreStyle lipgloss.Style
	dimStyle   lipgloss.Style
}

var _ orchestration.Notifier = (*consoleReporter)(nil)

func newConsoleReporter(out io.Writer, tty, verbose bool) *consoleReporter {
	r := lipgloss.NewRenderer(out)
	return &consoleReporter{
		out:        out,
		tty:        tty,
		verbose:    verbose,
		nameStyle:  r.NewStyle().Bold(true),
		errorStyle: r.NewStyle().Foreground(lipgloss.Color("196")),
		scoreStyle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		dimStyle:   r.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

func (c *consoleReporter) OnStep(step orchestration.Step) {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg := fmt.Sprintf("Running: %.0f%% completed.", step.Percent)
	if !c.tty {
		fmt.Fprintln(c.out, msg) //nolint:errcheck
		return
	}

	msg += " " + c.dimStyle.Render(step.Suite+"/"+step.Benchmark)
	if c.spin == nil {
		c.spin = spinner.Start(c.out, msg)
		return
	}
	c.spin.Update(msg)
}

func (c *consoleReporter) OnError(benchmark string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopSpinner()

	line := fmt.Sprintf("%s: %s", c.nameStyle.Render(benchmark), c.errorStyle.Render("*error*"))
	if c.verbose {
		line += " " + c.dimStyle.Render(err.Error())
	}
	fmt.Fprintln(c.out, line) //nolint:errcheck
}

func (c *consoleReporter) OnResult(benchmark string, score float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopSpinner()

	fmt.Fprintf(c.out, "%s: %s\n", c.nameStyle.Render(benchmark), formatScore(score)) //nolint:errcheck
}

func (c *consoleReporter) OnScore(score float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopSpinner()

	fmt.Fprintf(c.out, "\n%s %s\n", c.nameStyle.Render("Score:"), c.scoreStyle.Render(formatScore(score))) //nolint:errcheck
}

// Close stops the spinner if a step is still on screen.
func (c *consoleReporter) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopSpinner()
}

func (c *consoleReporter) stopSpinner() {
	if c.spin != nil {
		c.spin.Stop()
		c.spin = nil
	}
}

// verboseProgressListener prints per-suite and per-benchmark timing details.
func verboseProgressListener(out io.Writer) orchestration.ProgressListener {
	return func(event orchestration.ProgressEvent) {
		switch event.EventType {
		case orchestration.EventRunStart:
			fmt.Fprintf(out, "Starting run with %d benchmark(s)...\n\n", event.Total) //nolint:errcheck
		case orchestration.EventSuiteStart:
			fmt.Fprintf(out, "[%s]\n", event.SuiteName) //nolint:errcheck
		case orchestration.EventBenchmarkComplete:
			r := event.Result
			if r == nil || r.Status != models.StatusPassed {
				return
			}
			fmt.Fprintf(out, "  %s: %d iterations in %s", r.Name, r.Iterations, formatDuration(msDuration(r.ElapsedMs))) //nolint:errcheck
			if r.Stats != nil && r.Stats.Samples > 1 {
				fmt.Fprintf(out, ", %.3fms/iter ±%.1f%% over %d rounds", r.Stats.MeanMs, r.Stats.RelativeError*100, r.Stats.Samples) //nolint:errcheck
			}
			if r.ScoreCI != nil {
				fmt.Fprintf(out, ", score CI%.0f [%s, %s]", r.ScoreCI.ConfidenceLevel*100, formatScore(r.ScoreCI.Lower), formatScore(r.ScoreCI.Upper)) //nolint:errcheck
			}
			fmt.Fprintln(out) //nolint:errcheck
		case orchestration.EventSuiteComplete:
			s := event.Suite
			if s == nil {
				return
			}
			if s.Scored {
				fmt.Fprintf(out, "  suite score %s (%s)\n\n", formatScore(s.Score), formatDuration(msDuration(float64(s.DurationMs)))) //nolint:errcheck
			} else {
				fmt.Fprintf(out, "  suite not scored, %d failed\n\n", s.Failed()) //nolint:errcheck
			}
		case orchestration.EventRunComplete:
			fmt.Fprintf(out, "Run completed in %s\n", formatDuration(time.Duration(event.DurationMs)*time.Millisecond)) //nolint:errcheck
		}
	}
}

func msDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

// FormatGitHubComment formats a RunOutcome as a markdown comment for GitHub PRs
func FormatGitHubComment(outcome *models.RunOutcome) string {
	var b strings.Builder

	duration := time.Duration(outcome.DurationMs) * time.Millisecond

	b.WriteString("## 📊 scorebench Results\n\n")

	statusIcon := "✅ Passed"
	score := formatScore(outcome.Score)
	if !outcome.Success {
		statusIcon = "❌ Failed"
		score = "n/a"
	}

	b.WriteString(fmt.Sprintf("**Status:** %s | **Score:** %s | **Duration:** %s\n\n",
		statusIcon, score, formatDuration(duration)))

	b.WriteString(fmt.Sprintf("- **Benchmarks:** %d total, %d passed, %d errors\n",
		outcome.Total, outcome.Completed-outcome.Failed(), outcome.Failed()))
	b.WriteString(fmt.Sprintf("- **Timer:** min %dms, %d iterations, normalization %s\n\n",
		outcome.Setup.MinDurationMs, outcome.Setup.MinIterations, formatScore(outcome.Setup.Normalization)))

	b.WriteString("### Benchmark Results\n\n")
	b.WriteString("| Suite | Benchmark | Score | ±% | Status |\n")
	b.WriteString("|-------|-----------|-------|----|--------|\n")

	for _, s := range outcome.Suites {
		for _, r := range s.Benchmarks {
			icon := "✅"
			score := formatScore(r.Score)
			if r.Status != models.StatusPassed {
				icon = "❌"
				score = "-"
			}
			relErr := "-"
			if r.Stats != nil && r.Stats.Samples > 1 {
				relErr = fmt.Sprintf("%.1f", r.Stats.RelativeError*100)
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n", s.Name, r.Name, score, relErr, icon))
		}
	}
	b.WriteString("\n")

	b.WriteString("### Suite Scores\n\n")
	for _, s := range outcome.Suites {
		if s.Scored {
			b.WriteString(fmt.Sprintf("- **%s**: %s\n", s.Name, formatScore(s.Score)))
		} else {
			b.WriteString(fmt.Sprintf("- **%s**: not scored (%d failed)\n", s.Name, s.Failed()))
		}
	}
	b.WriteString("\n")

	if outcome.Failed() > 0 {
		b.WriteString("### Failed Benchmarks\n\n")
		for _, s := range outcome.Suites {
			for _, r := range s.Benchmarks {
				if r.Status == models.StatusPassed {
					continue
				}
				b.WriteString(fmt.Sprintf("- ❌ **%s/%s** (%s): %s\n", s.Name, r.Name, r.Phase, r.Error))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n")
	b.WriteString(fmt.Sprintf("**Run:** %s\n", outcome.RunID))

	return b.String()
}
