package pipeline

import (
	"github.com/stevehiehn/provis/internal/hook"
	"github.com/stevehiehn/provis/internal/pkgmgr"
)

// Status of one pipeline phase.
type Status string

const (
	Success Status = "success"
	Skipped Status = "skipped"
	Failed  Status = "failed"
)

// PhaseResult is the recorded outcome of a single phase.
type PhaseResult struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Result is the accumulated outcome of a provisioning run. It is always
// returned; no phase error propagates past the orchestrator boundary.
type Result struct {
	RunID     string           `json:"run_id"`
	Manager   string           `json:"manager,omitempty"`
	Phases    []PhaseResult    `json:"phases"`
	Packages  []pkgmgr.Outcome `json:"packages,omitempty"`
	Hooks     []hook.Outcome   `json:"hooks,omitempty"`
	Committed bool             `json:"committed"`
}

// FailedPhases counts phases that recorded a failure.
func (r *Result) FailedPhases() int {
	n := 0
	for _, p := range r.Phases {
		if p.Status == Failed {
			n++
		}
	}
	return n
}
