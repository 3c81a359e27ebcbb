// Package projectconfig provides the ProjectConfig struct and loader for
// .scorebench.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spboyer/scorebench/internal/timing"
	"github.com/spboyer/scorebench/internal/utils"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up by Load.
const FileName = ".scorebench.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultSuitesFile = "suites.yaml"

	DefaultNormalization   = 1000
	DefaultConfidenceLevel = 0.95
)

// TimerConfig holds the measurement floors.
type TimerConfig struct {
	MinDuration      time.Duration `yaml:"min_duration,omitempty"`
	MinIterations    int           `yaml:"min_iterations,omitempty"`
	RoundDuration    time.Duration `yaml:"round_duration,omitempty"`
	WarmupIterations *int          `yaml:"warmup_iterations,omitempty"`
}

// ScoringConfig holds score normalization and interval settings.
type ScoringConfig struct {
	Normalization   float64 `yaml:"normalization,omitempty"`
	ConfidenceLevel float64 `yaml:"confidence_level,omitempty"`

	// Seed makes score intervals reproducible. Unset is non-deterministic.
	Seed *int64 `yaml:"seed,omitempty"`
}

// PathsConfig holds input file locations.
type PathsConfig struct {
	Suites string `yaml:"suites,omitempty"`
}

// OutputConfig holds result file destinations. Empty means not written.
type OutputConfig struct {
	JSON    string `yaml:"json,omitempty"`
	JUnit   string `yaml:"junit,omitempty"`
	Verbose *bool  `yaml:"verbose,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .scorebench.yaml.
type ProjectConfig struct {
	Timer   TimerConfig   `yaml:"timer,omitempty"`
	Scoring ScoringConfig `yaml:"scoring,omitempty"`
	Paths   PathsConfig   `yaml:"paths,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Timer: TimerConfig{
			MinDuration:      timing.DefaultMinDuration,
			MinIterations:    timing.DefaultMinIterations,
			RoundDuration:    timing.DefaultRoundDuration,
			WarmupIterations: intPtr(timing.DefaultWarmupIterations),
		},
		Scoring: ScoringConfig{
			Normalization:   DefaultNormalization,
			ConfidenceLevel: DefaultConfidenceLevel,
		},
		Paths: PathsConfig{
			Suites: DefaultSuitesFile,
		},
		Output: OutputConfig{
			Verbose: boolPtr(false),
		},
	}
}

// TimerOptions converts the timer section into timing options.
func (c *ProjectConfig) TimerOptions() []timing.Option {
	opts := []timing.Option{
		timing.WithMinDuration(c.Timer.MinDuration),
		timing.WithMinIterations(c.Timer.MinIterations),
		timing.WithRoundDuration(c.Timer.RoundDuration),
	}
	if c.Timer.WarmupIterations != nil {
		opts = append(opts, timing.WithWarmupIterations(*c.Timer.WarmupIterations))
	}
	return opts
}

// Validate rejects values the engine cannot run with.
func (c *ProjectConfig) Validate() error {
	var errs []error
	if c.Timer.MinDuration < 0 {
		errs = append(errs, fmt.Errorf("timer.min_duration must not be negative, got %v", c.Timer.MinDuration))
	}
	if c.Timer.MinIterations < 0 {
		errs = append(errs, fmt.Errorf("timer.min_iterations must not be negative, got %d", c.Timer.MinIterations))
	}
	if c.Timer.RoundDuration < 0 {
		errs = append(errs, fmt.Errorf("timer.round_duration must not be negative, got %v", c.Timer.RoundDuration))
	}
	if c.Timer.WarmupIterations != nil && *c.Timer.WarmupIterations < 0 {
		errs = append(errs, fmt.Errorf("timer.warmup_iterations must not be negative, got %d", *c.Timer.WarmupIterations))
	}
	if c.Scoring.Normalization <= 0 {
		errs = append(errs, fmt.Errorf("scoring.normalization must be positive, got %v", c.Scoring.Normalization))
	}
	if c.Scoring.ConfidenceLevel <= 0 || c.Scoring.ConfidenceLevel >= 1 {
		errs = append(errs, fmt.Errorf("scoring.confidence_level must be in (0, 1), got %v", c.Scoring.ConfidenceLevel))
	}
	return errors.Join(errs...)
}

// Load finds .scorebench.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults. Relative paths
// are resolved against the directory holding the file.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, cfgDir, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	mergeConfig(cfg, &fileCfg)
	cfg.resolvePaths(cfgDir)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", FileName, err)
	}
	return cfg, nil
}

// resolvePaths makes the configured file paths relative to baseDir.
func (c *ProjectConfig) resolvePaths(baseDir string) {
	paths := utils.ResolvePaths([]string{c.Paths.Suites, c.Output.JSON, c.Output.JUnit}, baseDir)
	c.Paths.Suites, c.Output.JSON, c.Output.JUnit = paths[0], paths[1], paths[2]
}

// findConfigFile walks up from dir looking for .scorebench.yaml (max 10
// levels) and returns its content and directory. Returns os.ErrNotExist if
// no config file is found.
func findConfigFile(dir string) ([]byte, string, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for range 10 {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, dir, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, "", os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// Timer
	if src.Timer.MinDuration != 0 {
		dst.Timer.MinDuration = src.Timer.MinDuration
	}
	if src.Timer.MinIterations != 0 {
		dst.Timer.MinIterations = src.Timer.MinIterations
	}
	if src.Timer.RoundDuration != 0 {
		dst.Timer.RoundDuration = src.Timer.RoundDuration
	}
	if src.Timer.WarmupIterations != nil {
		dst.Timer.WarmupIterations = src.Timer.WarmupIterations
	}

	// Scoring
	if src.Scoring.Normalization != 0 {
		dst.Scoring.Normalization = src.Scoring.Normalization
	}
	if src.Scoring.ConfidenceLevel != 0 {
		dst.Scoring.ConfidenceLevel = src.Scoring.ConfidenceLevel
	}
	if src.Scoring.Seed != nil {
		dst.Scoring.Seed = src.Scoring.Seed
	}

	// Paths
	if src.Paths.Suites != "" {
		dst.Paths.Suites = src.Paths.Suites
	}

	// Output
	if src.Output.JSON != "" {
		dst.Output.JSON = src.Output.JSON
	}
	if src.Output.JUnit != "" {
		dst.Output.JUnit = src.Output.JUnit
	}
	if src.Output.Verbose != nil {
		dst.Output.Verbose = src.Output.Verbose
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *int {
	return &i
}
