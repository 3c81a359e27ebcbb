package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spboyer/scorebench/internal/execution"
	"github.com/spboyer/scorebench/internal/models"
	"github.com/spboyer/scorebench/internal/orchestration"
	"github.com/spboyer/scorebench/internal/projectconfig"
	"github.com/spboyer/scorebench/internal/reporting"
	"github.com/spboyer/scorebench/internal/scoring"
	"github.com/spboyer/scorebench/internal/timing"
	"github.com/spboyer/scorebench/internal/wizard"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type runOptions struct {
	suiteFilters  []string
	interactive   bool
	minDuration   time.Duration
	minIterations int
	roundDuration time.Duration
	warmup        int
	normalization float64
	seed          int64
	outputPath    string
	junitPath     string
	verbose       bool
	interpret     bool
	format        string
}

func newRunCommand() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run [suites.yaml]",
		Short: "Run benchmark suites and print their scores",
		Long: `Run every benchmark of every suite, in order, and print a score for each.

Suites are read from the given file, from paths.suites in .scorebench.yaml,
or from the built-in catalog when neither exists. The overall score is only
printed when every benchmark succeeded.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommandE(cmd, args, opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.suiteFilters, "suite", nil, "Run only suites or benchmarks matching this glob, e.g. Data or Text/Reg* (can be repeated)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Pick the suites to run from a list")
	cmd.Flags().DurationVar(&opts.minDuration, "min-duration", 0, "Minimum measured time per benchmark (overrides config)")
	cmd.Flags().IntVar(&opts.minIterations, "min-iterations", 0, "Minimum iterations per benchmark (overrides config)")
	cmd.Flags().DurationVar(&opts.roundDuration, "round-duration", 0, "Target length of one sampling round (overrides config)")
	cmd.Flags().IntVar(&opts.warmup, "warmup", 0, "Untimed iterations before measuring (overrides config)")
	cmd.Flags().Float64Var(&opts.normalization, "normalization", 0, "Score of a benchmark running exactly at reference speed (overrides config)")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "Seed for score confidence intervals (overrides config)")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Output JSON file for results")
	cmd.Flags().StringVar(&opts.junitPath, "junit", "", "Output JUnit XML file for results")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output with timing details")
	cmd.Flags().BoolVar(&opts.interpret, "interpret", false, "Print a plain-language interpretation of the results")
	cmd.Flags().StringVar(&opts.format, "format", "default", "Output format: default, github-comment")

	return cmd
}

func runCommandE(cmd *cobra.Command, args []string, opts *runOptions) error {
	if opts.format != "default" && opts.format != "github-comment" {
		return fmt.Errorf("unknown output format: %s (supported: default, github-comment)", opts.format)
	}

	cfg, err := projectconfig.Load(".")
	if err != nil {
		return err
	}
	if err := applyRunFlags(cmd, cfg, opts); err != nil {
		return err
	}

	src, err := loadSuiteSource(args, cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	suites, err := src.Suites(ctx)
	if err != nil {
		return fmt.Errorf("failed to load suites: %w", err)
	}
	suites, err = orchestration.FilterSuites(suites, opts.suiteFilters)
	if err != nil {
		return err
	}
	if len(suites) == 0 {
		return fmt.Errorf("no benchmarks match %s", strings.Join(opts.suiteFilters, ", "))
	}
	if opts.interactive {
		suites, err = wizard.SelectSuites(cmd.InOrStdin(), cmd.OutOrStdout(), suites)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	outcome := runSuites(out, cfg, suites, opts.verbose || *cfg.Output.Verbose, isTerminal(out))
	if outcome == nil {
		return fmt.Errorf("run produced no outcome")
	}

	switch opts.format {
	case "github-comment":
		fmt.Fprint(out, FormatGitHubComment(outcome)) //nolint:errcheck
	default:
		if opts.interpret {
			fmt.Fprintln(out) //nolint:errcheck
			fmt.Fprint(out, reporting.FormatSummaryReport(outcome)) //nolint:errcheck
		}
	}

	if err := saveOutputs(out, cfg, outcome); err != nil {
		return err
	}

	if !outcome.Success {
		return &RunFailureError{
			Message: fmt.Sprintf("run completed with %d failed benchmark(s) out of %d", outcome.Failed(), outcome.Total),
		}
	}
	return nil
}

// applyRunFlags copies explicitly set flags over the project config.
func applyRunFlags(cmd *cobra.Command, cfg *projectconfig.ProjectConfig, opts *runOptions) error {
	flags := cmd.Flags()
	if flags.Changed("min-duration") {
		cfg.Timer.MinDuration = opts.minDuration
	}
	if flags.Changed("min-iterations") {
		cfg.Timer.MinIterations = opts.minIterations
	}
	if flags.Changed("round-duration") {
		cfg.Timer.RoundDuration = opts.roundDuration
	}
	if flags.Changed("warmup") {
		cfg.Timer.WarmupIterations = &opts.warmup
	}
	if flags.Changed("normalization") {
		cfg.Scoring.Normalization = opts.normalization
	}
	if flags.Changed("seed") {
		cfg.Scoring.Seed = &opts.seed
	}
	if opts.outputPath != "" {
		cfg.Output.JSON = opts.outputPath
	}
	if opts.junitPath != "" {
		cfg.Output.JUnit = opts.junitPath
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid run settings: %w", err)
	}
	return nil
}

// runSuites runs suites with a console reporter on out and returns the
// collected outcome.
func runSuites(out io.Writer, cfg *projectconfig.ProjectConfig, suites []*models.Suite, verbose, tty bool) *models.RunOutcome {
	timer := timing.New(cfg.TimerOptions()...)

	seed := int64(-1)
	if cfg.Scoring.Seed != nil {
		seed = *cfg.Scoring.Seed
	}

	runner := orchestration.NewRunner(
		execution.NewExecutor(timer),
		orchestration.WithScorer(scoring.New(cfg.Scoring.Normalization)),
		orchestration.WithSetup(timer.Setup()),
		orchestration.WithConfidence(cfg.Scoring.ConfidenceLevel, seed),
	)

	var collector reporting.Collector
	runner.OnProgress(collector.Listen)
	if verbose {
		runner.OnProgress(verboseProgressListener(out))
	}

	slog.Debug("Starting run",
		"suites", len(suites),
		"benchmarks", models.CountBenchmarks(suites),
		"min_duration", timer.MinDuration,
		"min_iterations", timer.MinIterations)

	reporter := newConsoleReporter(out, tty, verbose)
	defer reporter.Close()
	runner.RunAll(suites, reporter)

	return collector.Outcome()
}

func saveOutputs(out io.Writer, cfg *projectconfig.ProjectConfig, outcome *models.RunOutcome) error {
	if cfg.Output.JSON != "" {
		if err := reporting.WriteJSON(outcome, cfg.Output.JSON); err != nil {
			return fmt.Errorf("failed to save output: %w", err)
		}
		fmt.Fprintf(out, "\nResults saved to: %s\n", cfg.Output.JSON) //nolint:errcheck
	}
	if cfg.Output.JUnit != "" {
		if err := reporting.WriteJUnitXML(outcome, cfg.Output.JUnit); err != nil {
			return fmt.Errorf("failed to save JUnit report: %w", err)
		}
		fmt.Fprintf(out, "JUnit report saved to: %s\n", cfg.Output.JUnit) //nolint:errcheck
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
