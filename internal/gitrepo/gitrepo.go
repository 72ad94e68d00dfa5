package gitrepo

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/stevehiehn/provis/internal/errors"
	"github.com/stevehiehn/provis/internal/runner"
)

// Git drives the git CLI for repository init and the finalizing commit. The
// tool is probed as an external executable; its absence downgrades both
// operations to skips.
type Git struct {
	run runner.Runner
	log *slog.Logger
}

func New(run runner.Runner, logger *slog.Logger) *Git {
	return &Git{run: run, log: logger}
}

// Available reports whether the git executable is on the search path.
func (g *Git) Available() bool {
	return runner.LookPath("git")
}

// Init initializes a repository in dir exactly once. An existing .git
// directory makes this a logged skip.
func (g *Git) Init(dir string) error {
	if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
		g.log.Warn("a .git directory already exists, skipping git init")
		return nil
	}
	g.log.Info("initializing git repository")
	if res := g.run.Exec([]string{"git", "-C", dir, "init"}, ""); !res.Ok() {
		return errors.NewCommandError("scaffold", "git init: "+strings.TrimSpace(res.Stderr))
	}
	return nil
}

// Commit stages all working-tree changes in dir and commits only when the
// porcelain status is non-empty, so repeated runs never create empty commits.
// It reports whether a commit was created.
func (g *Git) Commit(dir, message string) (bool, error) {
	if res := g.run.Exec([]string{"git", "-C", dir, "add", "-A"}, ""); !res.Ok() {
		return false, errors.NewCommandError("commit", "git add: "+strings.TrimSpace(res.Stderr))
	}

	status := g.run.Exec([]string{"git", "-C", dir, "status", "--porcelain"}, "")
	if !status.Ok() {
		return false, errors.NewCommandError("commit", "git status: "+strings.TrimSpace(status.Stderr))
	}
	if strings.TrimSpace(status.Stdout) == "" {
		g.log.Info("no changes to commit")
		return false, nil
	}

	g.log.Info("committing changes")
	if res := g.run.Exec([]string{"git", "-C", dir, "commit", "-m", message}, ""); !res.Ok() {
		return false, errors.NewCommandError("commit", "git commit: "+strings.TrimSpace(res.Stderr))
	}
	return true, nil
}
