package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/stevehiehn/provis/internal/errors"
	"github.com/stevehiehn/provis/internal/hook"
	"github.com/stevehiehn/provis/internal/pkgmgr"
)

// Validate checks a config for structural correctness before the pipeline
// starts: unknown manager keys, structure paths escaping the project root,
// and unrecognized hook placeholders are all rejected up front.
func Validate(c *Config) error {
	for name, pkgs := range c.Packages {
		if !pkgmgr.Known(name) {
			return errors.NewValidationError(
				fmt.Sprintf("unknown package manager %q", name),
				fmt.Sprintf("Supported managers: %s", supportedList()))
		}
		for i, p := range pkgs {
			if strings.TrimSpace(p) == "" {
				return errors.NewValidationError(
					fmt.Sprintf("empty package name at index %d for %q", i, name), "")
			}
		}
	}

	if strings.TrimSpace(c.Project.Path) == "" {
		return errors.NewValidationError("project path is empty", "")
	}

	for _, n := range c.Project.Structure {
		if err := validateNodePath(n.Path); err != nil {
			return err
		}
		if n.Dir && n.Content != "" {
			return errors.NewValidationError(
				fmt.Sprintf("structure entry %q is a directory but declares content", n.Path), "")
		}
	}

	if err := validateNodePath(c.Env.File); err != nil {
		return err
	}

	if c.Venv.Enabled && strings.TrimSpace(c.Venv.Name) == "" {
		return errors.NewValidationError("venv is enabled but has no name", "")
	}

	for i, h := range c.Hooks {
		if unknown := hook.UnknownPlaceholders(h); len(unknown) > 0 {
			return errors.NewValidationError(
				fmt.Sprintf("hook %d uses unknown placeholder %s", i, unknown[0]),
				fmt.Sprintf("Recognized placeholders: %s, %s", hook.PlaceholderPython, hook.PlaceholderPip))
		}
	}

	return nil
}

// validateNodePath rejects paths that could escape the project root.
func validateNodePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.NewValidationError("empty path in project configuration", "")
	}
	if filepath.IsAbs(path) {
		return errors.NewValidationError(
			fmt.Sprintf("path %q is absolute; paths must be relative to the project root", path), "")
	}
	for _, seg := range strings.Split(filepath.ToSlash(path), "/") {
		if seg == ".." {
			return errors.NewValidationError(
				fmt.Sprintf("path %q escapes the project root", path), "")
		}
	}
	return nil
}

func supportedList() string {
	ids := pkgmgr.Supported()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	return strings.Join(names, ", ")
}
