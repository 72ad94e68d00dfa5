package testutil

import (
	"strings"

	"github.com/stevehiehn/provis/internal/runner"
)

// FakeRunner scripts command results and records every invocation, keyed by
// the space-joined argv (Exec) or the raw command line (Shell).
type FakeRunner struct {
	Results map[string]*runner.Result
	Default *runner.Result
	Calls   []string
}

func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Results: map[string]*runner.Result{},
		Default: &runner.Result{},
	}
}

func (f *FakeRunner) Exec(argv []string, workDir string) *runner.Result {
	return f.lookup(strings.Join(argv, " "))
}

func (f *FakeRunner) Shell(command, workDir string) *runner.Result {
	return f.lookup(command)
}

func (f *FakeRunner) lookup(key string) *runner.Result {
	f.Calls = append(f.Calls, key)
	if r, ok := f.Results[key]; ok {
		return r
	}
	return f.Default
}

// Called reports whether any recorded invocation contains sub.
func (f *FakeRunner) Called(sub string) bool {
	for _, c := range f.Calls {
		if strings.Contains(c, sub) {
			return true
		}
	}
	return false
}

// Script registers a result for an exact command line.
func (f *FakeRunner) Script(command string, res *runner.Result) {
	f.Results[command] = res
}
