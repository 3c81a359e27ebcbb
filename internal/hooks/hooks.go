// Package hooks turns shell command lists from suite files into benchmark
// actions.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"slices"
	"strings"
)

// CommandConfig defines a single command.
type CommandConfig struct {
	Command          string `yaml:"command" json:"command" mapstructure:"command"`
	WorkingDirectory string `yaml:"working_directory,omitempty" json:"working_directory,omitempty" mapstructure:"working_directory"`
	ExitCodes        []int  `yaml:"exit_codes,omitempty" json:"exit_codes,omitempty" mapstructure:"exit_codes"`
}

// Action returns a function that runs cmds in order and fails on the first
// command that fails. label identifies the commands in errors and logs
// (e.g. "setup"). An empty list yields nil.
func Action(ctx context.Context, label string, cmds []CommandConfig) func() error {
	if len(cmds) == 0 {
		return nil
	}
	return func() error {
		return Run(ctx, label, cmds)
	}
}

// Run executes cmds in order.
func Run(ctx context.Context, label string, cmds []CommandConfig) error {
	for i, c := range cmds {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: context canceled: %w", label, err)
		}

		if err := runCommand(ctx, label, i, c); err != nil {
			return err
		}
	}
	return nil
}

func runCommand(ctx context.Context, label string, index int, c CommandConfig) error {
	if strings.TrimSpace(c.Command) == "" {
		return fmt.Errorf("%s[%d]: empty command", label, index)
	}

	parts := strings.Fields(c.Command)
	//nolint:gosec // commands are user-configured in suite YAML, not untrusted input
	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)

	if c.WorkingDirectory != "" {
		cmd.Dir = c.WorkingDirectory
	}

	output, err := cmd.CombinedOutput()
	if len(output) > 0 {
		slog.Debug("Command output", "label", label, "index", index, "output", string(output))
	}

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// command not found, permission denied, ...
			return fmt.Errorf("%s[%d]: %w", label, index, err)
		}
		exitCode = exitErr.ExitCode()
	}

	if !isAcceptableExit(exitCode, c.ExitCodes) {
		if len(c.ExitCodes) == 0 {
			return fmt.Errorf("%s[%d]: command exited with code %d", label, index, exitCode)
		}
		return fmt.Errorf("%s[%d]: command exited with code %d but expected %v", label, index, exitCode, c.ExitCodes)
	}
	return nil
}

// isAcceptableExit checks whether exitCode is in the allowed list.
// An empty allowedCodes list defaults to allowing only exit code 0.
func isAcceptableExit(exitCode int, allowedCodes []int) bool {
	if len(allowedCodes) == 0 {
		return exitCode == 0
	}
	return slices.Contains(allowedCodes, exitCode)
}
