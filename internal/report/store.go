package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists the audit record of one provisioning run under
// .provis/runs/<run-id> in the invocation directory, next to the project
// root rather than inside it so the project tree stays convergent across
// repeated runs.
type Store struct {
	RunID   string
	BaseDir string
}

// New creates a store for a given run ID, rooted at the invocation dir.
func New(runID, invocationDir string) (*Store, error) {
	base := filepath.Join(invocationDir, ".provis", "runs", runID)
	if err := os.MkdirAll(filepath.Join(base, "phases"), 0o755); err != nil {
		return nil, fmt.Errorf("creating report dir: %w", err)
	}
	return &Store{RunID: runID, BaseDir: base}, nil
}

// WritePhaseDetail persists captured diagnostic text for a phase.
func (s *Store) WritePhaseDetail(phase, detail string) error {
	if detail == "" {
		return nil
	}
	return os.WriteFile(filepath.Join(s.BaseDir, "phases", phase+".txt"), []byte(detail), 0o644)
}

// WriteResult writes the final result JSON.
func (s *Store) WriteResult(result any) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.BaseDir, "result.json"), data, 0o644)
}
