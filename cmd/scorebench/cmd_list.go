package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spboyer/scorebench/internal/models"
	"github.com/spboyer/scorebench/internal/projectconfig"
	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [suites.yaml]",
		Short: "List suites and benchmarks without running them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := projectconfig.Load(".")
			if err != nil {
				return err
			}
			src, err := loadSuiteSource(args, cfg)
			if err != nil {
				return err
			}
			printSuiteTable(cmd.OutOrStdout(), src)
			return nil
		},
	}
}

var listColumns = []string{"SUITE", "BENCHMARK", "WORKLOAD", "REFERENCE"}

// printSuiteTable renders one row per benchmark, in run order.
func printSuiteTable(w io.Writer, src *suiteSource) {
	var rows [][]string
	for _, s := range src.File.Suites {
		for _, b := range s.Benchmarks {
			rows = append(rows, []string{s.Name, b.Name, b.Workload, formatReference(b.Reference)})
		}
	}

	widths := make([]int, len(listColumns))
	for i, c := range listColumns {
		widths[i] = runewidth.StringWidth(c)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	fmt.Fprintf(w, "Suites from %s\n\n", src.Name) //nolint:errcheck
	writeRow(w, listColumns, widths)
	for _, row := range rows {
		writeRow(w, row, widths)
	}
	fmt.Fprintf(w, "\n%d suite(s), %d benchmark(s)\n", len(src.File.Suites), countSpecBenchmarks(src.File)) //nolint:errcheck
}

func writeRow(w io.Writer, cells []string, widths []int) {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		if i == len(cells)-1 {
			padded[i] = cell
			continue
		}
		padded[i] = padRight(cell, widths[i])
	}
	fmt.Fprintln(w, strings.Join(padded, "  ")) //nolint:errcheck
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func formatReference(d time.Duration) string {
	if d < time.Millisecond {
		return d.String()
	}
	return formatDuration(d)
}

func countSpecBenchmarks(f *models.SuiteFile) int {
	n := 0
	for _, s := range f.Suites {
		n += len(s.Benchmarks)
	}
	return n
}
