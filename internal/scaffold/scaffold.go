package scaffold

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/stevehiehn/provis/internal/config"
	"github.com/stevehiehn/provis/internal/gitrepo"
)

// GitignoreName is the conventional ignore file, eligible for the template
// override rule.
const GitignoreName = ".gitignore"

// PlaceholderName is the tracking file dropped into empty directories so
// they survive version control.
const PlaceholderName = ".gitkeep"

// Scaffolder creates the project root, initializes version control, and
// materializes the declared file tree.
type Scaffolder struct {
	git *gitrepo.Git
	log *slog.Logger
}

func New(git *gitrepo.Git, logger *slog.Logger) *Scaffolder {
	return &Scaffolder{git: git, log: logger}
}

// Scaffold creates rootPath if absent (an existing directory is reused with
// a warning) and performs the pipeline's single working-directory transition
// into it. On return, success or failure, the process working directory is
// inside rootPath; the orchestrator owns restoration.
//
// invocationRoot is the caller's original directory, consulted for a
// .gitignore template.
func (s *Scaffolder) Scaffold(rootPath string, nodes []config.Node, invocationRoot string) error {
	if _, err := os.Stat(rootPath); os.IsNotExist(err) {
		if err := os.MkdirAll(rootPath, 0o755); err != nil {
			return fmt.Errorf("creating project root: %w", err)
		}
		s.log.Info("created directory", "path", rootPath)
	} else {
		s.log.Warn("directory already exists, using it", "path", rootPath)
	}

	if err := os.Chdir(rootPath); err != nil {
		return fmt.Errorf("entering project root: %w", err)
	}

	if s.git.Available() {
		if err := s.git.Init("."); err != nil {
			return err
		}
	} else {
		s.log.Warn("git is not installed or not in PATH, skipping repository init")
	}

	for _, n := range nodes {
		if err := s.materialize(n, invocationRoot); err != nil {
			return err
		}
	}
	return nil
}

// materialize creates one structure node, never overwriting existing files.
func (s *Scaffolder) materialize(n config.Node, invocationRoot string) error {
	if n.Dir {
		if err := os.MkdirAll(n.Path, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", n.Path, err)
		}
		placeholder := filepath.Join(n.Path, PlaceholderName)
		if _, err := os.Stat(placeholder); os.IsNotExist(err) {
			if err := os.WriteFile(placeholder, nil, 0o644); err != nil {
				return fmt.Errorf("creating placeholder in %s: %w", n.Path, err)
			}
		}
		s.log.Info("created directory", "path", n.Path)
		return nil
	}

	if _, err := os.Stat(n.Path); err == nil {
		s.log.Info("file already exists, keeping it", "path", n.Path)
		return nil
	}

	// Override rule: a .gitignore template at the invocation root wins over
	// declared content.
	if n.Path == GitignoreName {
		template := filepath.Join(invocationRoot, GitignoreName)
		if data, err := os.ReadFile(template); err == nil {
			if err := os.WriteFile(n.Path, data, 0o644); err != nil {
				return fmt.Errorf("copying %s: %w", GitignoreName, err)
			}
			s.log.Info("copied file from invocation root", "path", n.Path)
			return nil
		}
	}

	if dir := filepath.Dir(n.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating parent of %s: %w", n.Path, err)
		}
	}
	content := n.Content
	if content == "" {
		content = fmt.Sprintf("# This is an automatically generated %s file.\n", n.Path)
	}
	if err := os.WriteFile(n.Path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("creating file %s: %w", n.Path, err)
	}
	s.log.Info("created file", "path", n.Path)
	return nil
}
