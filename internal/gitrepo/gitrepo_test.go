package gitrepo

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stevehiehn/provis/internal/log"
	"github.com/stevehiehn/provis/internal/runner"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func testRepo(t *testing.T) (*Git, string) {
	t.Helper()
	requireGit(t)
	dir := t.TempDir()
	g := New(runner.New(), log.Discard())
	if err := g.Init(dir); err != nil {
		t.Fatalf("init: %v", err)
	}
	// Commits need an identity regardless of the host's global config.
	for _, kv := range [][]string{{"user.email", "test@example.com"}, {"user.name", "test"}} {
		if err := exec.Command("git", "-C", dir, "config", kv[0], kv[1]).Run(); err != nil {
			t.Fatalf("git config: %v", err)
		}
	}
	return g, dir
}

func TestInitCreatesRepository(t *testing.T) {
	_, dir := testRepo(t)
	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		t.Fatalf("expected .git directory: %v", err)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	g, dir := testRepo(t)
	if err := g.Init(dir); err != nil {
		t.Fatalf("second init should be a skip, got %v", err)
	}
}

func TestCommitOnlyWhenDirty(t *testing.T) {
	g, dir := testRepo(t)

	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	committed, err := g.Commit(dir, "initial commit")
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if !committed {
		t.Fatal("expected a commit for a dirty tree")
	}

	// Second call with no changes must not create an empty commit.
	committed, err = g.Commit(dir, "again")
	if err != nil {
		t.Fatalf("second commit: %v", err)
	}
	if committed {
		t.Fatal("expected no commit for a clean tree")
	}
}
