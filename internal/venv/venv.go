package venv

import (
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/stevehiehn/provis/internal/errors"
	"github.com/stevehiehn/provis/internal/runner"
)

// Tools holds resolved paths to the environment's interpreter and installer,
// relative to the project root.
type Tools struct {
	Python string
	Pip    string
}

// ToolPaths returns the platform-specific relative locations of the
// environment's python and pip.
func ToolPaths(name, goos string) Tools {
	if goos == "windows" {
		return Tools{
			Python: filepath.Join(name, "Scripts", "python"),
			Pip:    filepath.Join(name, "Scripts", "pip"),
		}
	}
	return Tools{
		Python: filepath.Join(name, "bin", "python"),
		Pip:    filepath.Join(name, "bin", "pip"),
	}
}

// Builder creates an isolated Python environment inside the current project
// root and installs its package set.
type Builder struct {
	run  runner.Runner
	log  *slog.Logger
	goos string
}

func NewBuilder(run runner.Runner, logger *slog.Logger, goos string) *Builder {
	return &Builder{run: run, log: logger, goos: goos}
}

// Build creates the environment directory if absent (an existing one is an
// idempotent skip) and batch-installs packages through the environment's own
// pip. A missing pip after creation is a soft failure: hook execution has its
// own fallback, so the pipeline continues.
func (b *Builder) Build(name string, packages []string) (Tools, error) {
	tools := ToolPaths(name, b.goos)

	if _, err := os.Stat(name); err == nil {
		b.log.Warn("virtual environment already exists, skipping creation", "name", name)
	} else {
		b.log.Info("creating virtual environment", "name", name)
		res := b.run.Exec([]string{b.interpreter(), "-m", "venv", name}, "")
		if !res.Ok() {
			return tools, errors.NewCommandError("venv",
				"creating environment: "+strings.TrimSpace(res.Stderr))
		}
		b.log.Info("virtual environment created")
	}

	if _, err := os.Stat(tools.Pip); err != nil {
		return tools, errors.NewPreconditionError("venv",
			"pip executable not found at "+tools.Pip,
			"Package installation skipped; hooks fall back to system tools")
	}

	if len(packages) > 0 {
		b.log.Info("installing packages", "packages", strings.Join(packages, ", "))
		// One batch invocation: pip parallelizes internally and a single
		// call gives one clear failure boundary.
		argv := append([]string{tools.Pip, "install"}, packages...)
		if res := b.run.Exec(argv, ""); !res.Ok() {
			return tools, errors.NewCommandError("venv",
				"installing packages: "+strings.TrimSpace(res.Stderr))
		}
		b.log.Info("packages installed")
	}

	return tools, nil
}

// interpreter picks the base interpreter used to create the environment.
func (b *Builder) interpreter() string {
	if b.goos == "windows" {
		return "python"
	}
	if _, err := exec.LookPath("python3"); err == nil {
		return "python3"
	}
	return "python"
}
