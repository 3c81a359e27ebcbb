package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spboyer/scorebench/internal/models"
	"github.com/spboyer/scorebench/internal/projectconfig"
	"github.com/spboyer/scorebench/internal/validation"
	"github.com/spboyer/scorebench/internal/workloads"
)

const builtinSource = "built-in catalog"

// suiteSource is a loaded suite file and where it came from.
type suiteSource struct {
	File    *models.SuiteFile
	BaseDir string
	Name    string
}

// loadSuiteSource loads the suites named on the command line, or the
// configured suite file when it exists, or the built-in catalog.
func loadSuiteSource(args []string, cfg *projectconfig.ProjectConfig) (*suiteSource, error) {
	path := ""
	explicit := len(args) > 0
	if explicit {
		path = args[0]
	} else if cfg.Paths.Suites != "" {
		path = cfg.Paths.Suites
	}

	if path == "" {
		return &suiteSource{File: workloads.Catalog(), BaseDir: ".", Name: builtinSource}, nil
	}

	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &suiteSource{File: workloads.Catalog(), BaseDir: ".", Name: builtinSource}, nil
		}
		return nil, fmt.Errorf("suite file: %w", err)
	}

	if err := validateSuiteFile(path); err != nil {
		return nil, err
	}

	f, err := models.LoadSuiteFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load suites: %w", err)
	}

	baseDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolving suite directory: %w", err)
	}
	return &suiteSource{File: f, BaseDir: baseDir, Name: path}, nil
}

// validateSuiteFile checks path against the suites schema.
func validateSuiteFile(path string) error {
	errs, err := validation.ValidateSuiteFile(path)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s does not match the suites schema:\n  %s", path, strings.Join(errs, "\n  "))
	}
	return nil
}

// Suites binds the source's benchmarks to workloads.
func (s *suiteSource) Suites(ctx context.Context) ([]*models.Suite, error) {
	reg, err := workloads.Load(ctx, s.File, s.BaseDir)
	if err != nil {
		return nil, err
	}
	return reg.Suites(), nil
}
