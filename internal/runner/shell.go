package runner

import (
	"bytes"
	"os/exec"
	"runtime"
)

// Result holds the output of an external command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Ok reports whether the command exited zero.
func (r *Result) Ok() bool { return r.ExitCode == 0 }

// Runner executes external commands synchronously with captured output.
// Exec runs an argv directly; Shell runs a command line through the
// platform shell so operators, pipes and redirection work.
type Runner interface {
	Exec(argv []string, workDir string) *Result
	Shell(command, workDir string) *Result
}

// ExecRunner is the real Runner backed by os/exec.
type ExecRunner struct{}

// New returns a Runner backed by os/exec.
func New() *ExecRunner { return &ExecRunner{} }

// Exec runs argv[0] with the remaining arguments, no shell involved.
func (e *ExecRunner) Exec(argv []string, workDir string) *Result {
	if len(argv) == 0 {
		return &Result{ExitCode: 1, Stderr: "empty command"}
	}
	return capture(exec.Command(argv[0], argv[1:]...), workDir)
}

// Shell executes a command via sh -c (cmd /C on Windows) and captures output.
func (e *ExecRunner) Shell(command, workDir string) *Result {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/C", command)
	} else {
		cmd = exec.Command("sh", "-c", command)
	}
	return capture(cmd, workDir)
}

func capture(cmd *exec.Cmd, workDir string) *Result {
	if workDir != "" {
		cmd.Dir = workDir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = 1
		}
	}

	return &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// LookPath reports whether an executable is present on the search path.
func LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
