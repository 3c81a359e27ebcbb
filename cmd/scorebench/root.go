package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scorebench",
		Short: "scorebench - run benchmark suites and score them",
		Long: `scorebench runs named benchmarks grouped into suites, times each one,
and turns the time into a score relative to a reference.

Suite scores are the geometric mean of their benchmark scores, and the
overall score is the geometric mean of the suite scores. A run with any
failing benchmark has no overall score.`,
		Version:      version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newValidateCommand())

	return cmd
}

func execute() error {
	// Interrupts cancel command workloads and hooks; the remaining
	// benchmarks then fail fast and the run ends unscored.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCommand()
	return rootCmd.ExecuteContext(ctx)
}
