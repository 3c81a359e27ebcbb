// Package wizard holds the interactive prompts of the run command.
package wizard

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spboyer/scorebench/internal/models"
	"golang.org/x/term"
)

// ErrNothingSelected is returned when the user deselects every suite.
var ErrNothingSelected = errors.New("select at least one suite")

// SelectSuites asks which suites to run. Every suite starts selected and
// the result keeps registration order.
func SelectSuites(in io.Reader, out io.Writer, suites []*models.Suite) ([]*models.Suite, error) {
	if len(suites) == 0 {
		return nil, fmt.Errorf("no suites to select from")
	}

	var selected []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Suites to run").
				Description("Space toggles a suite, enter confirms").
				Options(suiteOptions(suites)...).
				Value(&selected).
				Validate(func(s []string) error {
					if len(s) == 0 {
						return ErrNothingSelected
					}
					return nil
				}),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("suite selection failed: %w", err)
	}

	return pick(suites, selected)
}

func suiteOptions(suites []*models.Suite) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(suites))
	for _, s := range suites {
		label := fmt.Sprintf("%s (%d %s)", s.Name, len(s.Benchmarks), plural(len(s.Benchmarks), "benchmark"))
		opts = append(opts, huh.NewOption(label, s.Name).Selected(true))
	}
	return opts
}

// pick returns the suites whose names are in selected, in suite order.
func pick(suites []*models.Suite, selected []string) ([]*models.Suite, error) {
	want := make(map[string]bool, len(selected))
	for _, name := range selected {
		want[name] = true
	}

	var out []*models.Suite
	for _, s := range suites {
		if want[s.Name] {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, ErrNothingSelected
	}
	return out, nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
