// Package runner orchestrates a single deploy run: preflight validation,
// directory bootstrap, the stop/build/start lifecycle, health verification,
// and reporting. It owns the run's Outcome from creation to exit code.
package runner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/artpar/stackdeploy/internal/core/deploy"
	"github.com/artpar/stackdeploy/internal/shell/compose"
	"github.com/artpar/stackdeploy/internal/shell/docker"
	"github.com/artpar/stackdeploy/internal/shell/probe"
)

// =============================================================================
// Options
// =============================================================================

// Options holds everything a run needs to know. Values come from the CLI
// config and are immutable for the duration of the run.
type Options struct {
	// Stack identity.
	Project     string
	ComposeFile string
	WorkDir     string

	// Preflight.
	Platform      string // required runtime.GOOS value, e.g. "linux"
	EnvFile       string
	RequiredTools []string
	DockerGroup   string
	RequiredKeys  []string
	Placeholders  map[string]string

	// Directories created before any lifecycle stage runs.
	Dirs []string

	// Health verification.
	HealthURL     string
	HealthTimeout time.Duration
	PollInterval  time.Duration
	SettleDelay   time.Duration

	// Diagnostics.
	LogTail int

	// AssumeYes skips the confirmation prompt.
	AssumeYes bool
}

// =============================================================================
// Runner
// =============================================================================

// Runner drives one deploy run against its collaborators.
type Runner struct {
	opts    Options
	compose compose.Runner
	docker  docker.Client
	prober  probe.Prober
	logger  *slog.Logger

	// Out receives progress rendering; In answers the confirmation prompt.
	// Both default to the process streams.
	Out io.Writer
	In  io.Reader

	// Interactive enables the confirmation prompt. Defaults to whether
	// stdin is a terminal; tests and CI set it explicitly.
	Interactive bool

	// Gather collects preflight facts. Overridable in tests.
	Gather FactGatherer
}

// New creates a runner. All collaborators are required except logger.
func New(opts Options, c compose.Runner, d docker.Client, p probe.Prober, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		opts:        opts,
		compose:     c,
		docker:      d,
		prober:      p,
		logger:      logger,
		Out:         os.Stdout,
		In:          os.Stdin,
		Interactive: stdinIsTerminal(),
		Gather:      GatherFacts,
	}
}

// Run executes the full deploy state machine and returns the outcome.
// The caller maps Outcome.ExitCode() to the process exit.
func (r *Runner) Run(ctx context.Context) *deploy.Outcome {
	outcome := deploy.NewOutcome()
	logger := r.logger.With("run_id", outcome.RunID)

	r.renderBanner()

	// 1. Preflight: validate before touching anything. The daemon ping
	// lives here because the docker client is a runner collaborator, not
	// something the fact gatherer can reach.
	facts := r.Gather(r.opts)
	pingErr := r.docker.Ping(ctx)
	facts.DaemonReachable = pingErr == nil
	if pingErr != nil {
		facts.DaemonDetail = pingErr.Error()
	}
	outcome.Preflight = EvaluateFacts(r.opts, facts)
	r.renderPreflight(&outcome.Preflight)

	if outcome.Preflight.Failed() {
		logger.Error("preflight failed", "failures", len(outcome.Preflight.Failures()))
		r.renderAborted("preflight checks failed")
		return outcome
	}

	// 2. Bootstrap output directories.
	if err := EnsureDirectories(r.opts.WorkDir, r.opts.Dirs); err != nil {
		logger.Error("directory bootstrap failed", "error", err)
		outcome.Preflight.Append(bootstrapFailure(err))
		r.renderAborted("could not create required directories: " + err.Error())
		return outcome
	}

	// 3. Confirmation gate, before anything is stopped.
	if !r.confirm() {
		outcome.Cancelled = true
		logger.Info("deploy cancelled by operator")
		r.renderCancelled()
		return outcome
	}

	// 4. Lifecycle stages: stop, build, start.
	if aborted := r.runStages(ctx, outcome, logger); aborted {
		r.renderLogsTail(ctx)
		r.renderSummary(outcome, facts.Stack)
		return outcome
	}

	// 5. Health verification.
	status := r.verify(ctx, logger)
	if err := outcome.ResolveHealth(status); err != nil {
		logger.Error("health resolution rejected", "error", err)
	}
	if status != deploy.HealthHealthy {
		r.renderLogsTail(ctx)
	}

	r.renderSummary(outcome, facts.Stack)
	return outcome
}

// =============================================================================
// Lifecycle Stages
// =============================================================================

// runStages executes stop/build/start in order. Returns true when the run
// aborted on a fatal stage failure.
func (r *Runner) runStages(ctx context.Context, outcome *deploy.Outcome, logger *slog.Logger) (aborted bool) {
	stage := deploy.StageStop
	for stage != "" {
		result := r.execStage(ctx, stage, logger)
		outcome.RecordStage(result)
		r.renderStage(result)

		next, ok := deploy.NextStage(result)
		if !ok {
			for _, skipped := range deploy.SkippedAfter(stage) {
				outcome.RecordStage(skipped)
				r.renderStage(skipped)
			}
			return true
		}
		stage = next
	}
	return false
}

// execStage runs one lifecycle operation against the compose CLI.
func (r *Runner) execStage(ctx context.Context, stage deploy.Stage, logger *slog.Logger) deploy.StageResult {
	var (
		res *compose.CommandResult
		err error
	)

	switch stage {
	case deploy.StageStop:
		res, err = r.compose.Down(ctx)
	case deploy.StageBuild:
		res, err = r.compose.Build(ctx)
	case deploy.StageStart:
		res, err = r.compose.Up(ctx)
	}

	if err != nil {
		output := ""
		var cmdErr *compose.CommandError
		if errors.As(err, &cmdErr) {
			output = cmdErr.Output
		}
		if stage == deploy.StageStop {
			// Best-effort: stale state must not block a fresh deploy.
			logger.Warn("stop failed, continuing", "error", err)
		} else {
			logger.Error("stage failed", "stage", stage, "error", err)
		}
		return deploy.StageResult{
			Stage:  stage,
			Status: deploy.StageFailed,
			Reason: err.Error(),
			Output: output,
		}
	}

	logger.Info("stage succeeded", "stage", stage)
	return deploy.StageResult{Stage: stage, Status: deploy.StageSucceeded, Output: res.Output}
}

// =============================================================================
// Health Verification
// =============================================================================

// verify gates on the structured container status first, then polls the
// liveness endpoint until it answers or the timeout expires.
func (r *Runner) verify(ctx context.Context, logger *slog.Logger) deploy.HealthStatus {
	deadline := time.Now().Add(r.opts.HealthTimeout)

	// Status gate: at least one service must report running within the
	// settle window. If nothing ever runs there is no point waiting out
	// the full liveness timeout.
	if !r.waitForRunningService(ctx, logger) {
		logger.Error("no service reached running state", "settle", r.opts.SettleDelay)
		return deploy.HealthUnhealthy
	}

	// Liveness: fixed-interval retries, the wait is a bounded settle, not
	// a recovering remote.
	for {
		err := r.prober.Probe(ctx)
		if err == nil {
			logger.Info("liveness probe succeeded", "url", r.opts.HealthURL)
			return deploy.HealthHealthy
		}
		logger.Debug("liveness probe not ready", "error", err)

		if time.Now().After(deadline) {
			return deploy.HealthTimedOut
		}
		if !r.sleep(ctx, r.opts.PollInterval) {
			return deploy.HealthTimedOut
		}
	}
}

// waitForRunningService polls the structured status listing until a service
// reports running or the settle window closes.
func (r *Runner) waitForRunningService(ctx context.Context, logger *slog.Logger) bool {
	settleDeadline := time.Now().Add(r.opts.SettleDelay)

	for {
		infos, err := r.docker.ListStackContainers(ctx, r.opts.Project)
		if err != nil {
			logger.Warn("status listing failed", "error", err)
		}
		for _, info := range infos {
			if info.Running() {
				logger.Info("service running", "service", info.Service, "status", info.Status)
				return true
			}
		}

		if time.Now().After(settleDeadline) {
			return false
		}
		if !r.sleep(ctx, r.opts.PollInterval) {
			return false
		}
	}
}

// sleep waits for the poll interval, honoring cancellation. Returns false
// when the context ended first.
func (r *Runner) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		d = time.Second
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
