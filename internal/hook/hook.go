package hook

import (
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/stevehiehn/provis/internal/runner"
	"github.com/stevehiehn/provis/internal/venv"
)

// Placeholder tokens recognized in hook command templates.
const (
	PlaceholderPython = "{{RUNTIME_PYTHON}}"
	PlaceholderPip    = "{{RUNTIME_PIP}}"
)

var placeholderRe = regexp.MustCompile(`\{\{([A-Z_]+)\}\}`)

// UnknownPlaceholders returns any {{...}} tokens in s that are not
// recognized hook placeholders, for validation.
func UnknownPlaceholders(s string) []string {
	var unknown []string
	for _, m := range placeholderRe.FindAllString(s, -1) {
		if m != PlaceholderPython && m != PlaceholderPip {
			unknown = append(unknown, m)
		}
	}
	return unknown
}

// Outcome records one executed hook command.
type Outcome struct {
	Command string `json:"command"`
	Success bool   `json:"success"`
	Detail  string `json:"detail,omitempty"`
}

// Executor resolves tool placeholders in user-supplied command templates and
// runs each through the shell, in declared order. Templates may contain shell
// operators, so execution is always shell-interpreting.
type Executor struct {
	run  runner.Runner
	log  *slog.Logger
	goos string
}

func NewExecutor(run runner.Runner, logger *slog.Logger, goos string) *Executor {
	return &Executor{run: run, log: logger, goos: goos}
}

// Run substitutes resolved tool paths into each template and executes it.
// A failing command is logged and the remaining hooks still run; hooks are
// independent unless the operator's own script logic makes them dependent.
func (e *Executor) Run(venvName string, templates []string) []Outcome {
	python, pip := e.resolveTools(venvName)

	outcomes := make([]Outcome, 0, len(templates))
	for _, tmpl := range templates {
		command := strings.ReplaceAll(tmpl, PlaceholderPython, python)
		command = strings.ReplaceAll(command, PlaceholderPip, pip)

		e.log.Info("running hook", "command", command)
		res := e.run.Shell(command, "")
		if !res.Ok() {
			detail := strings.TrimSpace(res.Stderr)
			e.log.Error("hook failed", "command", command, "exit", res.ExitCode, "stderr", detail)
			outcomes = append(outcomes, Outcome{Command: command, Detail: detail})
			continue
		}
		outcomes = append(outcomes, Outcome{Command: command, Success: true})
	}
	return outcomes
}

// resolveTools prefers the virtual environment's tools when they exist on
// disk and falls back to the system-wide names otherwise, so hooks stay
// runnable even when the environment build was skipped or failed.
func (e *Executor) resolveTools(venvName string) (python, pip string) {
	python, pip = "python3", "pip3"
	if e.goos == "windows" {
		python, pip = "python", "pip"
	}
	if venvName == "" {
		return python, pip
	}
	tools := venv.ToolPaths(venvName, e.goos)
	if _, err := os.Stat(tools.Python); err == nil {
		python = tools.Python
	}
	if _, err := os.Stat(tools.Pip); err == nil {
		pip = tools.Pip
	}
	return python, pip
}
