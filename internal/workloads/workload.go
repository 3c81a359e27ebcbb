// Package workloads holds the built-in units of work that suite files bind
// benchmarks to. Workloads are opaque to the engine: they only provide the
// setup, run and teardown actions of the benchmark lifecycle.
package workloads

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spboyer/scorebench/internal/models"
)

type Type string

const (
	TypeFibonacci  Type = "fibonacci"
	TypeSieve      Type = "sieve"
	TypeRegexp     Type = "regexp"
	TypeMarkdown   Type = "markdown"
	TypeJSON       Type = "json"
	TypeYAML       Type = "yaml"
	TypeZstd       Type = "zstd"
	TypeSHA256     Type = "sha256"
	TypeFanOutHash Type = "fanout_hash"
	TypeCommand    Type = "command"
)

// Workload is one configured instance of a workload type. Setup and Teardown
// may be nil.
type Workload struct {
	Setup    models.Action
	Run      models.Action
	Teardown models.Action
}

// Factory builds a workload from the params of a suite file entry.
type Factory func(ctx context.Context, params map[string]any) (*Workload, error)

var (
	registryMu sync.RWMutex
	registry   = map[Type]Factory{
		TypeFibonacci:  newFibonacci,
		TypeSieve:      newSieve,
		TypeRegexp:     newRegexp,
		TypeMarkdown:   newMarkdown,
		TypeJSON:       newJSON,
		TypeYAML:       newYAML,
		TypeZstd:       newZstd,
		TypeSHA256:     newSHA256,
		TypeFanOutHash: newFanOutHash,
		TypeCommand:    newCommand,
	}
)

// Register adds a workload type. Built-in types cannot be replaced.
func Register(t Type, f Factory) error {
	if t == "" {
		return fmt.Errorf("workload type is required")
	}
	if f == nil {
		return fmt.Errorf("workload %q: nil factory", t)
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[t]; exists {
		return fmt.Errorf("workload %q already registered", t)
	}
	registry[t] = f
	return nil
}

// Lookup returns the factory for t.
func Lookup(t Type) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[t]
	return f, ok
}

// Types lists the registered workload types in sorted order.
func Types() []Type {
	registryMu.RLock()
	defer registryMu.RUnlock()

	types := make([]Type, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// Build creates a workload of type t.
func Build(ctx context.Context, t Type, params map[string]any) (*Workload, error) {
	f, ok := Lookup(t)
	if !ok {
		return nil, fmt.Errorf("'%s' is not a valid workload type", t)
	}

	w, err := f(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("workload %s: %w", t, err)
	}
	if w.Run == nil {
		return nil, fmt.Errorf("workload %s: no run action", t)
	}
	return w, nil
}

// Bind copies the workload's actions onto b. Actions already set on b run
// around the workload's own: b.Setup before, b.Teardown after. When the
// workload's setup fails after b.Setup succeeded, b.Teardown runs to undo it.
func (w *Workload) Bind(b *models.Benchmark) {
	hookSetup, hookTeardown := b.Setup, b.Teardown
	b.Run = w.Run
	b.Setup = chain(hookSetup, undoOnError(w.Setup, hookTeardown), false)
	b.Teardown = chain(w.Teardown, hookTeardown, true)
}

// undoOnError runs undo when a fails and returns both errors.
func undoOnError(a, undo models.Action) models.Action {
	if a == nil || undo == nil {
		return a
	}
	return func() error {
		err := a()
		if err != nil {
			return errors.Join(err, undo())
		}
		return nil
	}
}

// chain runs first then second. With always set, second runs even when
// first fails and both errors are returned.
func chain(first, second models.Action, always bool) models.Action {
	switch {
	case first == nil:
		return second
	case second == nil:
		return first
	}
	return func() error {
		err := first()
		if err != nil && !always {
			return err
		}
		return errors.Join(err, second())
	}
}

// decode fills out from params. Unknown keys are rejected so typos in suite
// files surface before a run starts.
func decode(params map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(params); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	return nil
}

// positive rejects non-positive sizes.
func positive(name string, v int) error {
	if v <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, v)
	}
	return nil
}
