package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/google/uuid"

	"github.com/stevehiehn/provis/internal/config"
	"github.com/stevehiehn/provis/internal/envfile"
	"github.com/stevehiehn/provis/internal/gitrepo"
	"github.com/stevehiehn/provis/internal/hook"
	"github.com/stevehiehn/provis/internal/pkgmgr"
	"github.com/stevehiehn/provis/internal/report"
	"github.com/stevehiehn/provis/internal/runner"
	"github.com/stevehiehn/provis/internal/scaffold"
	"github.com/stevehiehn/provis/internal/venv"
)

// Phase names, in execution order.
const (
	PhaseResolve   = "resolve"
	PhaseInstall   = "install"
	PhaseScaffold  = "scaffold"
	PhaseConfigure = "configure"
	PhaseVenv      = "venv"
	PhaseHooks     = "hooks"
	PhaseCommit    = "commit"
)

// Options are the CLI-level overrides applied on top of the configuration.
type Options struct {
	// ProjectPath overrides the configured project path when non-empty.
	ProjectPath string
	// SkipVenv disables the runtime environment phase regardless of config.
	SkipVenv bool
}

// Orchestrator sequences the provisioning phases. It owns the process
// working directory for the span of a run: the single transition into the
// project root happens in the scaffold phase, and restoration of the caller's
// original directory is guaranteed on every exit path.
type Orchestrator struct {
	cfg  *config.Config
	opts Options
	run  runner.Runner
	log  *slog.Logger
	goos string
}

func New(cfg *config.Config, opts Options, run runner.Runner, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{cfg: cfg, opts: opts, run: run, log: logger, goos: runtime.GOOS}
}

// Run executes every phase in order. Phases never abort the run: each
// failure, panics included, is converted into a recorded PhaseResult and the
// next phase still gets its turn (or records its own skip when its
// precondition is gone).
func (o *Orchestrator) Run() *Result {
	result := &Result{RunID: uuid.New().String()}

	startDir, err := os.Getwd()
	if err != nil {
		result.Phases = append(result.Phases, PhaseResult{
			Name: PhaseResolve, Status: Failed,
			Detail: fmt.Sprintf("determining working directory: %v", err),
		})
		return result
	}
	defer func() {
		if err := os.Chdir(startDir); err != nil {
			o.log.Error("failed to restore working directory", "dir", startDir, "err", err)
		}
	}()

	store, err := report.New(result.RunID, startDir)
	if err != nil {
		o.log.Warn("run report disabled", "err", err)
		store = nil
	}

	o.log.Info("starting provisioning run",
		"run_id", result.RunID, "os", o.goos, "arch", runtime.GOARCH)

	projectPath := o.cfg.Project.Path
	if o.opts.ProjectPath != "" {
		projectPath = o.opts.ProjectPath
	}

	// Resolving
	var manager pkgmgr.ID
	o.phase(result, store, PhaseResolve, func() (Status, string) {
		manager = pkgmgr.Detect(o.goos, nil)
		if manager == pkgmgr.None {
			o.log.Error("could not detect a supported package manager")
			return Success, "no supported package manager found"
		}
		o.log.Info("detected package manager", "manager", string(manager))
		return Success, string(manager)
	})
	result.Manager = string(manager)

	// Installing: operates from the caller's original directory.
	o.phase(result, store, PhaseInstall, func() (Status, string) {
		if manager == pkgmgr.None {
			return Skipped, "no package manager detected"
		}
		packages := o.cfg.Packages[string(manager)]
		if len(packages) == 0 {
			o.log.Info("no packages listed for manager, skipping installation",
				"manager", string(manager))
			return Skipped, "no packages configured for " + string(manager)
		}
		o.warnElevation()
		result.Packages = o.installer().Install(manager, packages)
		if n := countFailed(result.Packages); n > 0 {
			return Failed, fmt.Sprintf("%d of %d packages failed", n, len(result.Packages))
		}
		return Success, fmt.Sprintf("%d packages processed", len(result.Packages))
	})

	// Scaffolding: the single working-directory transition.
	entered := false
	o.phase(result, store, PhaseScaffold, func() (Status, string) {
		git := gitrepo.New(o.run, o.log)
		s := scaffold.New(git, o.log)
		if err := s.Scaffold(projectPath, o.cfg.Project.Structure, startDir); err != nil {
			return Failed, err.Error()
		}
		entered = true
		return Success, projectPath
	})

	// Everything below operates inside the project root and must skip when
	// the transition never happened, or it would dirty the caller's own
	// directory.
	notEntered := "project root was not entered"

	// Configuring
	o.phase(result, store, PhaseConfigure, func() (Status, string) {
		if !entered {
			return Skipped, notEntered
		}
		c := envfile.NewConfigurer(o.log, o.goos)
		if err := c.WriteProjectEnv(o.cfg.Env.File, o.cfg.Env.Project); err != nil {
			return Failed, err.Error()
		}
		if err := c.AppendShellProfile(o.cfg.Env.Shell); err != nil {
			return Failed, err.Error()
		}
		return Success, ""
	})

	// BuildingRuntime
	o.phase(result, store, PhaseVenv, func() (Status, string) {
		if !entered {
			return Skipped, notEntered
		}
		if o.opts.SkipVenv {
			return Skipped, "disabled by --no-venv"
		}
		if !o.cfg.Venv.Enabled {
			return Skipped, "disabled by configuration"
		}
		b := venv.NewBuilder(o.run, o.log, o.goos)
		if _, err := b.Build(o.cfg.Venv.Name, o.cfg.Venv.Packages); err != nil {
			o.log.Error("runtime environment build failed", "err", err)
			return Failed, err.Error()
		}
		return Success, o.cfg.Venv.Name
	})

	// RunningHooks
	o.phase(result, store, PhaseHooks, func() (Status, string) {
		if !entered {
			return Skipped, notEntered
		}
		if len(o.cfg.Hooks) == 0 {
			return Skipped, "no hooks declared"
		}
		e := hook.NewExecutor(o.run, o.log, o.goos)
		result.Hooks = e.Run(o.cfg.Venv.Name, o.cfg.Hooks)
		failed := 0
		for _, h := range result.Hooks {
			if !h.Success {
				failed++
			}
		}
		if failed > 0 {
			return Failed, fmt.Sprintf("%d of %d hooks failed", failed, len(result.Hooks))
		}
		return Success, fmt.Sprintf("%d hooks executed", len(result.Hooks))
	})

	// Committing
	o.phase(result, store, PhaseCommit, func() (Status, string) {
		if !entered {
			return Skipped, notEntered
		}
		git := gitrepo.New(o.run, o.log)
		if !git.Available() {
			o.log.Warn("git is not installed or not in PATH, skipping commit")
			return Skipped, "git not available"
		}
		committed, err := git.Commit(".", o.cfg.CommitMessage)
		if err != nil {
			return Failed, err.Error()
		}
		result.Committed = committed
		if !committed {
			return Success, "no changes to commit"
		}
		return Success, "committed"
	})

	if store != nil {
		if err := store.WriteResult(result); err != nil {
			o.log.Warn("failed to write run report", "err", err)
		}
	}
	o.log.Info("automation complete",
		"run_id", result.RunID, "failed_phases", result.FailedPhases())
	return result
}

// phase runs one pipeline phase under a recover guard so that nothing a
// phase does can escape the orchestrator boundary.
func (o *Orchestrator) phase(result *Result, store *report.Store, name string, fn func() (Status, string)) {
	status, detail := Failed, ""
	func() {
		defer func() {
			if r := recover(); r != nil {
				status = Failed
				detail = fmt.Sprintf("panic: %v", r)
				o.log.Error("phase panicked", "phase", name, "panic", r)
			}
		}()
		status, detail = fn()
	}()

	switch status {
	case Failed:
		o.log.Error("phase failed", "phase", name, "detail", detail)
	case Skipped:
		o.log.Info("phase skipped", "phase", name, "detail", detail)
	default:
		o.log.Info("phase complete", "phase", name, "detail", detail)
	}
	if store != nil && status == Failed {
		if err := store.WritePhaseDetail(name, detail); err != nil {
			o.log.Warn("failed to record phase detail", "phase", name, "err", err)
		}
	}
	result.Phases = append(result.Phases, PhaseResult{Name: name, Status: status, Detail: detail})
}

func (o *Orchestrator) installer() *pkgmgr.Installer {
	return pkgmgr.NewInstaller(o.run, o.log)
}

// warnElevation mirrors the operator-facing warnings: sudo may prompt on
// POSIX, and Windows elevation cannot be automated at all.
func (o *Orchestrator) warnElevation() {
	elevated := os.Geteuid() == 0
	if o.goos == "windows" {
		o.log.Warn("not running as Administrator; elevation may be required for installs")
		return
	}
	if !elevated {
		o.log.Warn("not running as root; sudo password may be required for installation")
	}
}

func countFailed(outcomes []pkgmgr.Outcome) int {
	n := 0
	for _, out := range outcomes {
		if out.Status == pkgmgr.Failed {
			n++
		}
	}
	return n
}
