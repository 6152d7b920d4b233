package deploy

import (
	"github.com/artpar/stackdeploy/internal/core/preflight"
	"github.com/google/uuid"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess = 0
	ExitFailure = 1
)

// =============================================================================
// Stage Transition Planning
// =============================================================================

// NextStage determines whether the run may proceed past the given stage
// result, and to which stage.
//
// Stop is best-effort: a failed Stop still advances to Build, because stale
// state from a previous deploy must not block a fresh one. Build and Start
// are fatal on failure - there is nothing meaningful to run afterwards.
//
// Example:
//
//	next, ok := NextStage(result)
//	if !ok {
//	    // run aborts; remaining stages are recorded as skipped
//	}
func NextStage(result StageResult) (Stage, bool) {
	switch result.Stage {
	case StageStop:
		// Best-effort: always advance.
		return StageBuild, true
	case StageBuild:
		if result.Status == StageFailed {
			return "", false
		}
		return StageStart, true
	case StageStart:
		if result.Status == StageFailed {
			return "", false
		}
		// Last stage; verification takes over.
		return "", true
	default:
		return "", false
	}
}

// SkippedAfter returns StageSkipped results for every stage that follows the
// failed one, so the outcome always accounts for all three stages.
func SkippedAfter(failed Stage) []StageResult {
	var out []StageResult
	seen := false
	for _, s := range Stages() {
		if seen {
			out = append(out, StageResult{
				Stage:  s,
				Status: StageSkipped,
				Reason: "aborted after " + string(failed) + " failure",
			})
		}
		if s == failed {
			seen = true
		}
	}
	return out
}

// =============================================================================
// Deployment Outcome
// =============================================================================

// Outcome aggregates everything that happened during one deploy run. It is
// built up as the run progresses and read exactly once by the reporter; it
// is never persisted.
type Outcome struct {
	// RunID identifies this run in logs.
	RunID string

	Preflight preflight.Result
	Stages    []StageResult
	Health    HealthStatus

	// Cancelled is set when the operator declined the confirmation prompt.
	Cancelled bool
}

// NewOutcome creates an empty outcome with a fresh run ID and pending health.
func NewOutcome() *Outcome {
	return &Outcome{
		RunID:  uuid.NewString(),
		Health: HealthPending,
	}
}

// RecordStage appends a stage result.
func (o *Outcome) RecordStage(r StageResult) {
	o.Stages = append(o.Stages, r)
}

// ResolveHealth transitions health from pending to a terminal state.
// A second resolution is rejected: health is decided exactly once per run.
func (o *Outcome) ResolveHealth(status HealthStatus) error {
	if o.Health.Resolved() {
		return ErrHealthResolved
	}
	if !status.Resolved() {
		return ErrInvalidTransition
	}
	o.Health = status
	return nil
}

// StageFailed reports whether the named stage failed.
func (o *Outcome) StageFailed(stage Stage) bool {
	for _, r := range o.Stages {
		if r.Stage == stage && r.Status == StageFailed {
			return true
		}
	}
	return false
}

// ExitCode maps the final outcome to the process exit code.
//
// An explicit operator decline is a clean no-op, not an error. A failed Stop
// alone does not fail the run (best-effort); everything else that kept the
// stack from coming up healthy does.
func (o *Outcome) ExitCode() int {
	if o.Cancelled {
		return ExitSuccess
	}
	if o.Preflight.Failed() {
		return ExitFailure
	}
	if o.StageFailed(StageBuild) || o.StageFailed(StageStart) {
		return ExitFailure
	}
	if o.Health != HealthHealthy {
		return ExitFailure
	}
	return ExitSuccess
}
