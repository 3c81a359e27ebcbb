package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spboyer/scorebench/internal/models"
	"github.com/spboyer/scorebench/internal/orchestration"
)

// Collector is a progress listener that keeps the final RunOutcome.
type Collector struct {
	mu      sync.Mutex
	outcome *models.RunOutcome
}

// Listen implements orchestration.ProgressListener.
func (c *Collector) Listen(e orchestration.ProgressEvent) {
	if e.EventType != orchestration.EventRunComplete || e.Outcome == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outcome = e.Outcome
}

// Outcome returns the outcome of the last completed run, or nil.
func (c *Collector) Outcome() *models.RunOutcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcome
}

// WriteJSON writes the outcome as indented JSON, creating parent directories.
func WriteJSON(outcome *models.RunOutcome, path string) error {
	data, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}
