package pkgmgr

import (
	"log/slog"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/stevehiehn/provis/internal/runner"
)

// Status of a single package after an install pass.
type Status string

const (
	Installed      Status = "installed"
	AlreadyPresent Status = "already-present"
	Failed         Status = "failed"
)

// Outcome records what happened to one package.
type Outcome struct {
	Package string `json:"package"`
	Status  Status `json:"status"`
	Detail  string `json:"detail,omitempty"`
}

// Installer drives a package manager's command templates against a package
// list, checking each package before installing it.
type Installer struct {
	run      runner.Runner
	log      *slog.Logger
	goos     string
	elevated bool
}

// NewInstaller builds an installer for the current host.
func NewInstaller(run runner.Runner, logger *slog.Logger) *Installer {
	return &Installer{
		run:      run,
		log:      logger,
		goos:     runtime.GOOS,
		elevated: os.Geteuid() == 0,
	}
}

// Install processes the package list strictly sequentially: package-manager
// lock files make concurrent invocations unsafe. One failing package is
// recorded and the rest still get their attempt.
func (i *Installer) Install(id ID, packages []string) []Outcome {
	cmds, ok := Lookup(id)
	if !ok || len(packages) == 0 {
		return nil
	}

	// Refresh the package index once per invocation. A failed refresh is
	// logged but does not block individual installs.
	if len(cmds.Update) > 0 {
		i.log.Info("updating package lists", "manager", string(id))
		if res := i.run.Exec(i.elevate(cmds.Update), ""); !res.Ok() {
			i.log.Error("failed to update package lists",
				"manager", string(id), "stderr", strings.TrimSpace(res.Stderr))
		}
	}

	outcomes := make([]Outcome, 0, len(packages))
	for _, pkg := range packages {
		i.log.Info("processing package", "package", pkg)
		if i.isInstalled(cmds, pkg) {
			i.log.Info("already installed, skipping", "package", pkg)
			outcomes = append(outcomes, Outcome{Package: pkg, Status: AlreadyPresent})
			continue
		}

		i.log.Info("not found, attempting install", "package", pkg)
		argv := append(slices.Clone(cmds.Install), pkg)
		res := i.run.Exec(i.elevate(argv), "")
		if !res.Ok() {
			detail := strings.TrimSpace(res.Stderr)
			i.log.Error("failed to install package", "package", pkg, "stderr", detail)
			outcomes = append(outcomes, Outcome{Package: pkg, Status: Failed, Detail: detail})
			continue
		}
		i.log.Info("installed package", "package", pkg)
		outcomes = append(outcomes, Outcome{Package: pkg, Status: Installed})
	}
	return outcomes
}

// isInstalled runs the manager's check command. Name-check managers query by
// the leading token of the package spec; brew and winget take the full spec.
// Brew's listing exits zero regardless, so membership is a substring test on
// its captured output.
func (i *Installer) isInstalled(cmds Commands, pkg string) bool {
	token := pkg
	if !cmds.CheckFullSpec {
		if fields := strings.Fields(pkg); len(fields) > 0 {
			token = fields[0]
		}
	}
	// Check never runs elevated.
	res := i.run.Exec(append(slices.Clone(cmds.Check), token), "")
	if !res.Ok() {
		return false
	}
	if cmds.CheckByOutput {
		return strings.Contains(res.Stdout, token)
	}
	return true
}

// elevate prefixes update/install invocations with sudo when the process is
// not already privileged. Windows elevation is the operator's responsibility.
func (i *Installer) elevate(argv []string) []string {
	if i.elevated || i.goos == "windows" {
		return argv
	}
	return append([]string{"sudo"}, argv...)
}
