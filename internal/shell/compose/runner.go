// Package compose drives the docker compose CLI for stack lifecycle
// operations. Build/up/down are delegated to the CLI rather than reimplemented
// against the engine API, so the deploy behaves exactly like a hand-run
// `docker compose` would.
package compose

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
)

// =============================================================================
// Runner
// =============================================================================

// Runner executes docker compose commands for one project.
type Runner interface {
	// Down stops and removes a previous instance of the stack.
	Down(ctx context.Context) (*CommandResult, error)

	// Build builds images for every service that declares a build section.
	Build(ctx context.Context) (*CommandResult, error)

	// Up brings the stack up in detached mode.
	Up(ctx context.Context) (*CommandResult, error)

	// Logs returns the last tail lines of aggregated service logs.
	Logs(ctx context.Context, tail int) (string, error)
}

// CommandResult holds the combined output of one compose invocation.
type CommandResult struct {
	Args   []string
	Output string
}

// CommandError is a compose invocation that exited non-zero, carrying the
// captured output for diagnostics.
type CommandError struct {
	Args   []string
	Output string
	Err    error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("docker %s: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// =============================================================================
// CLI Runner
// =============================================================================

// CLIRunner runs docker compose via the docker binary.
type CLIRunner struct {
	project     string
	composeFile string
	workDir     string
	logger      *slog.Logger
}

// NewCLIRunner creates a runner for the given compose project.
func NewCLIRunner(project, composeFile, workDir string, logger *slog.Logger) *CLIRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIRunner{
		project:     project,
		composeFile: composeFile,
		workDir:     workDir,
		logger:      logger,
	}
}

// Down stops and removes the previous stack instance.
// `down` on a stack that was never up exits zero, so "nothing to stop" never
// surfaces as an error here.
func (r *CLIRunner) Down(ctx context.Context) (*CommandResult, error) {
	return r.run(ctx, ComposeArgs(r.project, r.composeFile, "down", "--remove-orphans"))
}

// Build builds all declared service images.
func (r *CLIRunner) Build(ctx context.Context) (*CommandResult, error) {
	return r.run(ctx, ComposeArgs(r.project, r.composeFile, "build"))
}

// Up brings the stack up detached.
func (r *CLIRunner) Up(ctx context.Context) (*CommandResult, error) {
	return r.run(ctx, ComposeArgs(r.project, r.composeFile, "up", "-d"))
}

// Logs returns the last tail lines of aggregated service logs.
func (r *CLIRunner) Logs(ctx context.Context, tail int) (string, error) {
	res, err := r.run(ctx, ComposeArgs(r.project, r.composeFile, "logs", "--no-color", "--tail", strconv.Itoa(tail)))
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

// run executes one docker invocation with combined output capture.
func (r *CLIRunner) run(ctx context.Context, args []string) (*CommandResult, error) {
	r.logger.Debug("running docker", "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, "docker", args...)
	if r.workDir != "" {
		cmd.Dir = r.workDir
	}

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	output := buf.String()

	if err != nil {
		return nil, &CommandError{Args: args, Output: output, Err: err}
	}

	return &CommandResult{Args: args, Output: output}, nil
}

// =============================================================================
// Argument Construction (Pure)
// =============================================================================

// ComposeArgs builds the docker CLI argument list for one compose subcommand.
func ComposeArgs(project, composeFile, subcommand string, extra ...string) []string {
	args := []string{"compose"}
	if project != "" {
		args = append(args, "-p", project)
	}
	if composeFile != "" {
		args = append(args, "-f", composeFile)
	}
	args = append(args, subcommand)
	args = append(args, extra...)
	return args
}
