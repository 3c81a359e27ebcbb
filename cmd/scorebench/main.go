package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess   = 0 // Every benchmark passed and the run was scored
	ExitRunFailed = 1 // One or more benchmarks failed
	ExitError     = 2 // Configuration or runtime error
)

// RunFailureError indicates that the run completed, but one or more
// benchmarks failed, so no overall score was produced.
type RunFailureError struct {
	Message string
}

func (e *RunFailureError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var runFailureErr *RunFailureError
		if errors.As(err, &runFailureErr) {
			os.Exit(ExitRunFailed)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
