package domain

import (
	"fmt"
	"time"
)

// RunState is the position of a run in the extract → transform → load chain.
type RunState string

const (
	RunStatePending     RunState = "PENDING"
	RunStateExtracted   RunState = "EXTRACTED"
	RunStateTransformed RunState = "TRANSFORMED"
	RunStateLoaded      RunState = "LOADED"
	RunStateFailed      RunState = "FAILED"
)

var nextState = map[RunState]RunState{
	RunStatePending:     RunStateExtracted,
	RunStateExtracted:   RunStateTransformed,
	RunStateTransformed: RunStateLoaded,
}

// IsTerminal reports whether no further transition is possible.
func (s RunState) IsTerminal() bool {
	return s == RunStateLoaded || s == RunStateFailed
}

// CanTransitionTo reports whether next directly follows s. Failed is reachable
// from every non-terminal state.
func (s RunState) CanTransitionTo(next RunState) bool {
	if s.IsTerminal() {
		return false
	}
	if next == RunStateFailed {
		return true
	}
	return nextState[s] == next
}

// Transition returns next, or ErrInvalidTransition when the chain would be broken.
func (s RunState) Transition(next RunState) (RunState, error) {
	if !s.CanTransitionTo(next) {
		return s, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, next)
	}
	return next, nil
}

// RunReport summarizes one pipeline run for the caller and the scheduler.
type RunReport struct {
	RunID         string                 `json:"run_id"`
	ReferenceDate string                 `json:"reference_date"`
	Window        *ActivityWindow        `json:"window,omitempty"`
	State         RunState               `json:"state"`
	FailedStage   string                 `json:"failed_stage,omitempty"`
	Error         string                 `json:"error,omitempty"`
	LedgerRows    int                    `json:"ledger_rows"`
	InWindowRows  int                    `json:"in_window_rows"`
	FlagRows      int                    `json:"flag_rows"`
	Artifacts     map[string]ArtifactRef `json:"artifacts"`
	StartedAt     time.Time              `json:"started_at"`
	FinishedAt    time.Time              `json:"finished_at"`
}
