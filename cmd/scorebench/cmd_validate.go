package main

import (
	"fmt"

	"github.com/spboyer/scorebench/internal/projectconfig"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <suites.yaml>",
		Short: "Check a suite file against the schema and the workload registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			// Hook directories resolve against the suite file's directory, as in run.
			src, err := loadSuiteSource(args, projectconfig.New())
			if err != nil {
				return err
			}

			// Building every workload catches unknown types and bad params.
			if _, err := src.Suites(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d suite(s), %d benchmark(s)\n", path, len(src.File.Suites), countSpecBenchmarks(src.File)) //nolint:errcheck
			return nil
		},
	}
}
