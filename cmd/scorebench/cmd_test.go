package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spboyer/scorebench/internal/models"
	"github.com/spboyer/scorebench/internal/projectconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastTimer keeps end-to-end runs short.
var fastTimer = []string{
	"--min-duration", "1ms",
	"--min-iterations", "2",
	"--round-duration", "1ms",
	"--warmup", "0",
}

const quickSuites = `suites:
  - name: Quick
    benchmarks:
      - name: Fib
        workload: fibonacci
        reference: 1ms
        params:
          n: 5
      - name: Primes
        workload: sieve
        reference: 1ms
        params:
          limit: 100
`

func writeSuites(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suites.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := newRootCommand()

	names := make([]string, 0)
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "run")
	assert.Contains(t, names, "list")
	assert.Contains(t, names, "validate")
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))
}

func TestRunCommand_Flags(t *testing.T) {
	cmd := newRunCommand()

	for _, name := range []string{
		"suite", "interactive", "min-duration", "min-iterations", "round-duration",
		"warmup", "normalization", "seed", "output", "junit", "verbose", "interpret", "format",
	} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %s", name)
	}
	assert.Equal(t, "o", cmd.Flags().Lookup("output").Shorthand)
	assert.Equal(t, "v", cmd.Flags().Lookup("verbose").Shorthand)
	assert.Equal(t, "default", cmd.Flags().Lookup("format").DefValue)
}

func TestRunCommand_AllPass(t *testing.T) {
	path := writeSuites(t, quickSuites)

	out, err := execRoot(t, append([]string{"run", path}, fastTimer...)...)
	require.NoError(t, err)

	assert.Contains(t, out, "Running: 50% completed.\n")
	assert.Contains(t, out, "Fib: ")
	assert.Contains(t, out, "Running: 100% completed.\n")
	assert.Contains(t, out, "Primes: ")
	assert.Contains(t, out, "\nScore: ")
	assert.Less(t, bytes.Index([]byte(out), []byte("Fib: ")), bytes.Index([]byte(out), []byte("Primes: ")))
}

func TestRunCommand_SuiteFilter(t *testing.T) {
	path := writeSuites(t, quickSuites)

	args := append([]string{"run", path, "--suite", "Quick/Fib"}, fastTimer...)
	out, err := execRoot(t, args...)
	require.NoError(t, err)

	assert.Contains(t, out, "Running: 100% completed.\n")
	assert.Contains(t, out, "Fib: ")
	assert.NotContains(t, out, "Primes")
}

func TestRunCommand_FilterMatchesNothing(t *testing.T) {
	path := writeSuites(t, quickSuites)

	_, err := execRoot(t, "run", path, "--suite", "Nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no benchmarks match Nope")
}

func TestRunCommand_UnknownFormat(t *testing.T) {
	_, err := execRoot(t, "run", "--format", "html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format: html")
}

func TestRunCommand_InvalidFlagValue(t *testing.T) {
	path := writeSuites(t, quickSuites)

	_, err := execRoot(t, "run", path, "--normalization", "-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scoring.normalization must be positive")
}

func TestRunCommand_FailureReturnsRunFailureError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses the false command")
	}

	path := writeSuites(t, `suites:
  - name: Mixed
    benchmarks:
      - name: Fib
        workload: fibonacci
        reference: 1ms
        params:
          n: 5
      - name: Broken
        workload: command
        reference: 1ms
        params:
          command: "false"
`)

	out, err := execRoot(t, append([]string{"run", path}, fastTimer...)...)
	require.Error(t, err)

	var runErr *RunFailureError
	require.True(t, errors.As(err, &runErr))
	assert.Equal(t, "run completed with 1 failed benchmark(s) out of 2", runErr.Message)

	assert.Contains(t, out, "Fib: ")
	assert.Contains(t, out, "Broken: *error*")
	assert.NotContains(t, out, "Score:")
}

func TestRunCommand_WritesOutputs(t *testing.T) {
	path := writeSuites(t, quickSuites)
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "out", "results.json")
	junitPath := filepath.Join(dir, "junit.xml")

	args := append([]string{"run", path, "-o", jsonPath, "--junit", junitPath, "--seed", "7"}, fastTimer...)
	out, err := execRoot(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "Results saved to: "+jsonPath)
	assert.Contains(t, out, "JUnit report saved to: "+junitPath)

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var outcome models.RunOutcome
	require.NoError(t, json.Unmarshal(data, &outcome))
	assert.True(t, outcome.Success)
	assert.True(t, outcome.Scored)
	assert.Equal(t, 2, outcome.Total)
	assert.Equal(t, 2, outcome.Completed)
	assert.Equal(t, int64(1), outcome.Setup.MinDurationMs)
	assert.Equal(t, 2, outcome.Setup.MinIterations)
	assert.NotEmpty(t, outcome.RunID)
	require.Len(t, outcome.Suites, 1)
	assert.Len(t, outcome.Suites[0].Benchmarks, 2)

	xml, err := os.ReadFile(junitPath)
	require.NoError(t, err)
	assert.Contains(t, string(xml), `<testsuite name="Quick"`)
}

func TestRunCommand_GitHubCommentFormat(t *testing.T) {
	path := writeSuites(t, quickSuites)

	args := append([]string{"run", path, "--format", "github-comment"}, fastTimer...)
	out, err := execRoot(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "## 📊 scorebench Results")
	assert.Contains(t, out, "| Quick | Fib |")
}

func TestRunCommand_Verbose(t *testing.T) {
	path := writeSuites(t, quickSuites)

	args := append([]string{"run", path, "-v"}, fastTimer...)
	out, err := execRoot(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "Starting run with 2 benchmark(s)...")
	assert.Contains(t, out, "[Quick]")
	assert.Contains(t, out, "suite score ")
	assert.Contains(t, out, "Run completed in ")
}

func TestListCommand(t *testing.T) {
	path := writeSuites(t, quickSuites)

	out, err := execRoot(t, "list", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Suites from "+path)
	assert.Contains(t, out, "SUITE  BENCHMARK  WORKLOAD   REFERENCE\n")
	assert.Contains(t, out, "Quick  Fib        fibonacci  1ms\n")
	assert.Contains(t, out, "Quick  Primes     sieve      1ms\n")
	assert.Contains(t, out, "1 suite(s), 2 benchmark(s)")
}

func TestListCommand_BuiltinCatalog(t *testing.T) {
	out, err := execRoot(t, "list")
	require.NoError(t, err)

	assert.Contains(t, out, "Suites from built-in catalog")
	assert.Contains(t, out, "Fibonacci")
	assert.Contains(t, out, "FanOutHash")
	assert.Contains(t, out, "4 suite(s), 9 benchmark(s)")
}

func TestListCommand_MissingFile(t *testing.T) {
	_, err := execRoot(t, "list", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "suite file:")
}

func TestValidateCommand(t *testing.T) {
	path := writeSuites(t, quickSuites)

	out, err := execRoot(t, "validate", path)
	require.NoError(t, err)
	assert.Equal(t, "✓ "+path+": 1 suite(s), 2 benchmark(s)\n", out)
}

func TestValidateCommand_SchemaError(t *testing.T) {
	path := writeSuites(t, `suites:
  - name: Quick
    benchmarks:
      - name: Fib
        workload: fibonacci
`)

	_, err := execRoot(t, "validate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match the suites schema")
}

func TestValidateCommand_UnknownWorkload(t *testing.T) {
	path := writeSuites(t, `suites:
  - name: Quick
    benchmarks:
      - name: Mystery
        workload: teleport
        reference: 1ms
`)

	_, err := execRoot(t, "validate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'teleport' is not a valid workload type")
}

func TestValidateCommand_BadParams(t *testing.T) {
	path := writeSuites(t, `suites:
  - name: Quick
    benchmarks:
      - name: Fib
        workload: fibonacci
        reference: 1ms
        params:
          n: 99
`)

	_, err := execRoot(t, "validate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "n must be at most 40")
}

func TestValidateCommand_ResolvesAgainstSuiteDirectory(t *testing.T) {
	path := writeSuites(t, quickSuites)
	t.Chdir(t.TempDir())

	src, err := loadSuiteSource([]string{path}, projectconfig.New())
	require.NoError(t, err)
	assert.Equal(t, filepath.Dir(path), src.BaseDir)

	out, err := execRoot(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ "+path)
}

func TestRootCommand_ErrorsPrintedOnce(t *testing.T) {
	cmd := newRootCommand()
	assert.True(t, cmd.SilenceErrors)

	out, err := execRoot(t, "validate", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.NotContains(t, out, "Error:")
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", padRight("ab", 5))
	assert.Equal(t, "abcdef", padRight("abcdef", 3))
	assert.Equal(t, "日本 ", padRight("日本", 5))
}

func TestFormatReference(t *testing.T) {
	assert.Equal(t, "500µs", formatReference(500_000))
	assert.Equal(t, "2ms", formatReference(2_000_000))
	assert.Equal(t, "1.5s", formatReference(1_500_000_000))
}
