package venv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stevehiehn/provis/internal/log"
	"github.com/stevehiehn/provis/internal/testutil"
)

func TestToolPaths(t *testing.T) {
	unix := ToolPaths(".venv", "linux")
	if unix.Pip != filepath.Join(".venv", "bin", "pip") {
		t.Errorf("unexpected unix pip path %q", unix.Pip)
	}
	win := ToolPaths(".venv", "windows")
	if win.Pip != filepath.Join(".venv", "Scripts", "pip") {
		t.Errorf("unexpected windows pip path %q", win.Pip)
	}
}

func TestExistingVenvSkipsCreation(t *testing.T) {
	testutil.Chdir(t, t.TempDir())
	if err := os.MkdirAll(filepath.Join(".venv", "bin"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(".venv", "bin", "pip"), []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	fake := testutil.NewFakeRunner()
	b := NewBuilder(fake, log.Discard(), "linux")
	if _, err := b.Build(".venv", nil); err != nil {
		t.Fatalf("expected idempotent skip, got %v", err)
	}
	if fake.Called("-m venv") {
		t.Errorf("creation must not rerun for an existing environment, calls: %v", fake.Calls)
	}
}

func TestMissingPipIsSoftFailure(t *testing.T) {
	testutil.Chdir(t, t.TempDir())
	// Creation "succeeds" but leaves no pip behind.
	fake := testutil.NewFakeRunner()
	b := NewBuilder(fake, log.Discard(), "linux")

	tools, err := b.Build(".venv", []string{"requests"})
	if err == nil {
		t.Fatal("expected precondition error for missing pip")
	}
	if tools.Pip == "" {
		t.Error("tool paths should still be resolved for the caller's fallback logic")
	}
	if fake.Called("install") {
		t.Error("package install must not run without pip")
	}
}

func TestBatchInstall(t *testing.T) {
	testutil.Chdir(t, t.TempDir())
	pip := filepath.Join(".venv", "bin", "pip")
	if err := os.MkdirAll(filepath.Dir(pip), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(pip, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	fake := testutil.NewFakeRunner()
	b := NewBuilder(fake, log.Discard(), "linux")
	if _, err := b.Build(".venv", []string{"requests", "numpy"}); err != nil {
		t.Fatalf("build: %v", err)
	}

	want := pip + " install requests numpy"
	if !fake.Called(want) {
		t.Errorf("expected one batch install %q, calls: %v", want, fake.Calls)
	}
}
