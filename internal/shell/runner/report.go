package runner

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	corecompose "github.com/artpar/stackdeploy/internal/core/compose"
	"github.com/artpar/stackdeploy/internal/core/deploy"
	"github.com/artpar/stackdeploy/internal/core/preflight"
)

// =============================================================================
// Progress Rendering
// =============================================================================

func (r *Runner) renderBanner() {
	fmt.Fprintf(r.Out, "==> Deploying stack %q\n", r.opts.Project)
}

// renderPreflight prints every check in order, hints attached to anything
// that needs operator action.
func (r *Runner) renderPreflight(result *preflight.Result) {
	fmt.Fprintf(r.Out, "\nPreflight checks:\n")
	for _, c := range result.Checks {
		fmt.Fprintf(r.Out, "  [%s] %s\n", statusTag(c.Status), c.Message)
		if c.Hint != "" && c.Status != preflight.StatusPass {
			fmt.Fprintf(r.Out, "         hint: %s\n", c.Hint)
		}
	}
}

func statusTag(s preflight.CheckStatus) string {
	switch s {
	case preflight.StatusPass:
		return "PASS"
	case preflight.StatusWarn:
		return "WARN"
	default:
		return "FAIL"
	}
}

func (r *Runner) renderStage(result deploy.StageResult) {
	switch result.Status {
	case deploy.StageSucceeded:
		fmt.Fprintf(r.Out, "==> %s: ok\n", result.Stage)
	case deploy.StageSkipped:
		fmt.Fprintf(r.Out, "==> %s: skipped (%s)\n", result.Stage, result.Reason)
	case deploy.StageFailed:
		if result.Stage == deploy.StageStop {
			fmt.Fprintf(r.Out, "==> %s: failed, continuing (%s)\n", result.Stage, result.Reason)
		} else {
			fmt.Fprintf(r.Out, "==> %s: FAILED (%s)\n", result.Stage, result.Reason)
		}
		if result.Output != "" {
			fmt.Fprintf(r.Out, "%s\n", indent(lastLines(result.Output, r.opts.LogTail)))
		}
	}
}

func (r *Runner) renderCancelled() {
	fmt.Fprintf(r.Out, "\nDeploy cancelled. Nothing was changed.\n")
}

func (r *Runner) renderAborted(reason string) {
	fmt.Fprintf(r.Out, "\nDeploy aborted: %s\n", reason)
}

// renderLogsTail fetches and prints recent aggregated service logs to aid
// diagnosis of a failed or unhealthy deploy. When the compose CLI cannot
// produce the aggregated view, per-container logs from the engine stand in.
func (r *Runner) renderLogsTail(ctx context.Context) {
	tail := r.opts.LogTail
	if tail <= 0 {
		tail = 50
	}
	logs, err := r.compose.Logs(ctx, tail)
	if err != nil {
		r.logger.Warn("aggregated log fetch failed, falling back to per-container logs", "error", err)
		logs = r.containerLogsTail(ctx, tail)
	}
	if strings.TrimSpace(logs) == "" {
		return
	}
	fmt.Fprintf(r.Out, "\nRecent service logs (last %d lines):\n%s\n", tail, indent(logs))
}

// containerLogsTail collects log tails straight from the engine, one block
// per stack container. Best-effort: anything that fails is skipped.
func (r *Runner) containerLogsTail(ctx context.Context, tail int) string {
	infos, err := r.docker.ListStackContainers(ctx, r.opts.Project)
	if err != nil {
		r.logger.Warn("container listing failed", "error", err)
		return ""
	}

	var b strings.Builder
	for _, info := range infos {
		out, err := r.docker.ContainerLogs(ctx, info.ID, tail)
		if err != nil {
			r.logger.Warn("container log fetch failed", "container", info.Name, "error", err)
			continue
		}
		if strings.TrimSpace(out) == "" {
			continue
		}
		fmt.Fprintf(&b, "--- %s ---\n%s\n", info.Service, strings.TrimRight(out, "\n"))
	}
	return b.String()
}

// =============================================================================
// Final Summary
// =============================================================================

func (r *Runner) renderSummary(outcome *deploy.Outcome, stack *corecompose.Stack) {
	fmt.Fprintf(r.Out, "\nSummary:\n")
	for _, s := range outcome.Stages {
		fmt.Fprintf(r.Out, "  %-5s %s\n", s.Stage, s.Status)
	}
	fmt.Fprintf(r.Out, "  health %s\n", outcome.Health)

	if outcome.ExitCode() == deploy.ExitSuccess && !outcome.Cancelled {
		if stack != nil && len(stack.Services) > 0 {
			labels := make([]string, 0, len(stack.Services))
			for _, svc := range stack.Services {
				labels = append(labels, serviceLabel(svc))
			}
			fmt.Fprintf(r.Out, "\nStack %q is up: %s\n", r.opts.Project, strings.Join(labels, ", "))
			if n := stack.BuildCount(); n > 0 {
				fmt.Fprintf(r.Out, "%d of %d services run locally built images\n", n, len(stack.Services))
			}
		} else {
			fmt.Fprintf(r.Out, "\nStack %q is up.\n", r.opts.Project)
		}
		fmt.Fprintf(r.Out, "Health endpoint: %s\n", r.opts.HealthURL)
	}
	fmt.Fprintf(r.Out, "Follow logs with: docker compose -p %s logs -f\n", r.opts.Project)

	if outcome.Health == deploy.HealthTimedOut || outcome.Health == deploy.HealthUnhealthy {
		// No teardown after failed verification.
		fmt.Fprintf(r.Out, "The stack was left running for inspection.\n")
	}
}

// serviceLabel renders one service for the summary, published host ports
// attached so the operator sees where the stack answers.
func serviceLabel(svc corecompose.Service) string {
	if len(svc.PublishedPorts) == 0 {
		return svc.Name
	}
	ports := make([]string, 0, len(svc.PublishedPorts))
	for _, p := range svc.PublishedPorts {
		ports = append(ports, ":"+strconv.Itoa(p))
	}
	return fmt.Sprintf("%s (%s)", svc.Name, strings.Join(ports, ", "))
}

// =============================================================================
// Text Helpers
// =============================================================================

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n")
}

// lastLines returns the final n lines of s.
func lastLines(s string, n int) string {
	if n <= 0 {
		n = 50
	}
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
