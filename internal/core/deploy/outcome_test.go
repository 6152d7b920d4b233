package deploy

import (
	"testing"

	"github.com/artpar/stackdeploy/internal/core/preflight"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// NextStage Tests
// =============================================================================

func TestNextStage_StopSucceededAdvancesToBuild(t *testing.T) {
	next, ok := NextStage(StageResult{Stage: StageStop, Status: StageSucceeded})

	assert.True(t, ok)
	assert.Equal(t, StageBuild, next)
}

func TestNextStage_StopFailureIsBestEffort(t *testing.T) {
	next, ok := NextStage(StageResult{Stage: StageStop, Status: StageFailed, Reason: "daemon hiccup"})

	assert.True(t, ok)
	assert.Equal(t, StageBuild, next)
}

func TestNextStage_BuildSucceededAdvancesToStart(t *testing.T) {
	next, ok := NextStage(StageResult{Stage: StageBuild, Status: StageSucceeded})

	assert.True(t, ok)
	assert.Equal(t, StageStart, next)
}

func TestNextStage_BuildFailureAborts(t *testing.T) {
	_, ok := NextStage(StageResult{Stage: StageBuild, Status: StageFailed})

	assert.False(t, ok)
}

func TestNextStage_StartFailureAborts(t *testing.T) {
	_, ok := NextStage(StageResult{Stage: StageStart, Status: StageFailed})

	assert.False(t, ok)
}

func TestNextStage_StartSucceededEndsTheStages(t *testing.T) {
	next, ok := NextStage(StageResult{Stage: StageStart, Status: StageSucceeded})

	assert.True(t, ok)
	assert.Equal(t, Stage(""), next)
}

// =============================================================================
// SkippedAfter Tests
// =============================================================================

func TestSkippedAfter_BuildFailureSkipsStart(t *testing.T) {
	skipped := SkippedAfter(StageBuild)

	require.Len(t, skipped, 1)
	assert.Equal(t, StageStart, skipped[0].Stage)
	assert.Equal(t, StageSkipped, skipped[0].Status)
	assert.Contains(t, skipped[0].Reason, "build")
}

func TestSkippedAfter_StartFailureSkipsNothing(t *testing.T) {
	assert.Empty(t, SkippedAfter(StageStart))
}

// =============================================================================
// Health Resolution Tests
// =============================================================================

func TestResolveHealth_PendingToHealthy(t *testing.T) {
	o := NewOutcome()

	require.NoError(t, o.ResolveHealth(HealthHealthy))
	assert.Equal(t, HealthHealthy, o.Health)
}

func TestResolveHealth_ResolvesExactlyOnce(t *testing.T) {
	o := NewOutcome()

	require.NoError(t, o.ResolveHealth(HealthTimedOut))
	err := o.ResolveHealth(HealthHealthy)

	assert.ErrorIs(t, err, ErrHealthResolved)
	assert.Equal(t, HealthTimedOut, o.Health)
}

func TestResolveHealth_RejectsPendingTarget(t *testing.T) {
	o := NewOutcome()

	assert.ErrorIs(t, o.ResolveHealth(HealthPending), ErrInvalidTransition)
}

// =============================================================================
// ExitCode Tests
// =============================================================================

func healthyOutcome() *Outcome {
	o := NewOutcome()
	o.RecordStage(StageResult{Stage: StageStop, Status: StageSucceeded})
	o.RecordStage(StageResult{Stage: StageBuild, Status: StageSucceeded})
	o.RecordStage(StageResult{Stage: StageStart, Status: StageSucceeded})
	_ = o.ResolveHealth(HealthHealthy)
	return o
}

func TestExitCode_HealthyRunSucceeds(t *testing.T) {
	assert.Equal(t, ExitSuccess, healthyOutcome().ExitCode())
}

func TestExitCode_PreflightFailure(t *testing.T) {
	o := NewOutcome()
	o.Preflight.Append(preflight.Check{Name: "key:OPENAI_API_KEY", Status: preflight.StatusFail})

	assert.Equal(t, ExitFailure, o.ExitCode())
}

func TestExitCode_CancelledIsCleanNoOp(t *testing.T) {
	o := NewOutcome()
	o.Cancelled = true

	assert.Equal(t, ExitSuccess, o.ExitCode())
}

func TestExitCode_BuildFailure(t *testing.T) {
	o := NewOutcome()
	o.RecordStage(StageResult{Stage: StageStop, Status: StageSucceeded})
	o.RecordStage(StageResult{Stage: StageBuild, Status: StageFailed, Reason: "compile error"})
	for _, r := range SkippedAfter(StageBuild) {
		o.RecordStage(r)
	}

	assert.Equal(t, ExitFailure, o.ExitCode())
}

func TestExitCode_StopFailureAloneDoesNotFail(t *testing.T) {
	o := NewOutcome()
	o.RecordStage(StageResult{Stage: StageStop, Status: StageFailed, Reason: "daemon hiccup"})
	o.RecordStage(StageResult{Stage: StageBuild, Status: StageSucceeded})
	o.RecordStage(StageResult{Stage: StageStart, Status: StageSucceeded})
	_ = o.ResolveHealth(HealthHealthy)

	assert.Equal(t, ExitSuccess, o.ExitCode())
}

func TestExitCode_TimedOutFails(t *testing.T) {
	o := NewOutcome()
	o.RecordStage(StageResult{Stage: StageStop, Status: StageSucceeded})
	o.RecordStage(StageResult{Stage: StageBuild, Status: StageSucceeded})
	o.RecordStage(StageResult{Stage: StageStart, Status: StageSucceeded})
	_ = o.ResolveHealth(HealthTimedOut)

	assert.Equal(t, ExitFailure, o.ExitCode())
}

func TestExitCode_UnhealthyFails(t *testing.T) {
	o := NewOutcome()
	o.RecordStage(StageResult{Stage: StageStop, Status: StageSucceeded})
	o.RecordStage(StageResult{Stage: StageBuild, Status: StageSucceeded})
	o.RecordStage(StageResult{Stage: StageStart, Status: StageSucceeded})
	_ = o.ResolveHealth(HealthUnhealthy)

	assert.Equal(t, ExitFailure, o.ExitCode())
}

func TestNewOutcome_HasRunIDAndPendingHealth(t *testing.T) {
	o := NewOutcome()

	assert.NotEmpty(t, o.RunID)
	assert.Equal(t, HealthPending, o.Health)
	assert.False(t, o.Health.Resolved())
}
