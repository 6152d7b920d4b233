// Package deploy provides the pure state machine for a single deploy run.
// Following ADR-002: Values as Boundaries - this package contains NO I/O.
// The shell executes lifecycle operations and feeds their results back in;
// this package decides what happens next and what exit code the run earns.
package deploy

import "errors"

// =============================================================================
// Errors
// =============================================================================

var (
	ErrHealthResolved    = errors.New("health status already resolved")
	ErrInvalidTransition = errors.New("invalid health transition")
)

// =============================================================================
// Lifecycle Stages
// =============================================================================

// Stage is one of the ordered lifecycle operations of a deploy run.
type Stage string

const (
	StageStop  Stage = "stop"
	StageBuild Stage = "build"
	StageStart Stage = "start"
)

// Stages returns all lifecycle stages in execution order.
func Stages() []Stage {
	return []Stage{StageStop, StageBuild, StageStart}
}

// StageStatus is the outcome of one lifecycle stage.
type StageStatus string

const (
	StageSucceeded StageStatus = "succeeded"
	StageSkipped   StageStatus = "skipped"
	StageFailed    StageStatus = "failed"
)

// StageResult records how one stage resolved.
type StageResult struct {
	Stage  Stage
	Status StageStatus

	// Reason describes a failure or why the stage was skipped.
	Reason string

	// Output is the captured tool output, surfaced on failure.
	Output string
}

// =============================================================================
// Health Status
// =============================================================================

// HealthStatus is the post-start verification result.
type HealthStatus string

const (
	HealthPending   HealthStatus = "pending"
	HealthHealthy   HealthStatus = "healthy"
	HealthUnhealthy HealthStatus = "unhealthy"
	HealthTimedOut  HealthStatus = "timed_out"
)

// Resolved reports whether the status is terminal.
func (h HealthStatus) Resolved() bool {
	return h != HealthPending && h != ""
}
