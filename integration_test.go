package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stevehiehn/provis/internal/config"
	"github.com/stevehiehn/provis/internal/log"
	"github.com/stevehiehn/provis/internal/pipeline"
	"github.com/stevehiehn/provis/internal/runner"
	"github.com/stevehiehn/provis/internal/testutil"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	t.Setenv("GIT_AUTHOR_NAME", "test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")
}

func loadTestConfig(t *testing.T, yaml string) *config.Config {
	t.Helper()
	cfg, err := config.Load([]byte(yaml))
	if err != nil {
		t.Fatal(err)
	}
	if err := config.Validate(cfg); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func commitCount(t *testing.T, dir string) int {
	t.Helper()
	out, err := exec.Command("git", "-C", dir, "rev-list", "--count", "HEAD").Output()
	if err != nil {
		t.Fatalf("rev-list: %v", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		t.Fatalf("parsing commit count %q: %v", out, err)
	}
	return n
}

func TestProvisionEndToEnd(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	testutil.Chdir(t, dir)

	cfg := loadTestConfig(t, `
project:
  path: demo
  structure:
    - path: README.md
      content: "# demo\n"
    - path: .gitignore
      content: ".venv/\n"
    - path: data
      dir: true
env:
  project:
    APP_ENV: development
hooks:
  - "echo hello > hello.txt"
commit_message: initial setup
`)

	o := pipeline.New(cfg, pipeline.Options{}, runner.New(), log.Discard())
	result := o.Run()

	if result.FailedPhases() != 0 {
		t.Fatalf("expected clean run, got phases %+v", result.Phases)
	}
	if !result.Committed {
		t.Fatal("expected an initial commit")
	}

	// The working directory is back where the run started.
	wd, _ := os.Getwd()
	if wd != dir {
		t.Fatalf("working directory not restored, got %s", wd)
	}

	// Hook output proves shell redirection worked inside the project root.
	data, err := os.ReadFile(filepath.Join("demo", "hello.txt"))
	if err != nil {
		t.Fatalf("expected hook output file: %v", err)
	}
	if strings.TrimSpace(string(data)) != "hello" {
		t.Errorf("unexpected hook output %q", data)
	}

	if _, err := os.Stat(filepath.Join("demo", "data", ".gitkeep")); err != nil {
		t.Errorf("expected directory placeholder: %v", err)
	}

	env, err := os.ReadFile(filepath.Join("demo", ".env"))
	if err != nil {
		t.Fatalf("expected project env file: %v", err)
	}
	if !strings.Contains(string(env), `APP_ENV="development"`) {
		t.Errorf("unexpected env content %q", env)
	}

	if commitCount(t, "demo") != 1 {
		t.Errorf("expected exactly one commit")
	}
}

func TestProvisionRerunCommitsNothing(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	testutil.Chdir(t, dir)

	cfg := loadTestConfig(t, `
project:
  path: demo
  structure:
    - path: README.md
      content: "# demo\n"
    - path: .gitignore
      content: "*.log\n.provis/\n"
commit_message: initial setup
`)

	o := pipeline.New(cfg, pipeline.Options{}, runner.New(), log.Discard())
	first := o.Run()
	if !first.Committed {
		t.Fatal("expected a commit on the first run")
	}

	second := o.Run()
	if second.Committed {
		t.Fatal("second run against a provisioned directory must commit nothing")
	}
	if second.FailedPhases() != 0 {
		t.Fatalf("rerun must be clean, got %+v", second.Phases)
	}
	if commitCount(t, "demo") != 1 {
		t.Errorf("expected at most one non-empty commit across reruns")
	}
}

func TestGitignoreTemplateOverride(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	testutil.Chdir(t, dir)

	template := "*.pyc\n"
	if err := os.WriteFile(".gitignore", []byte(template), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := loadTestConfig(t, `
project:
  path: demo
  structure:
    - path: .gitignore
      content: "declared\n"
`)
	pipeline.New(cfg, pipeline.Options{}, runner.New(), log.Discard()).Run()

	data, err := os.ReadFile(filepath.Join("demo", ".gitignore"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != template {
		t.Errorf("expected invocation-root template to win, got %q", data)
	}
}
