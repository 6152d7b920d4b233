package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/artpar/stackdeploy/internal/core/deploy"
	"github.com/artpar/stackdeploy/internal/shell/compose"
	"github.com/artpar/stackdeploy/internal/shell/docker"
	"github.com/artpar/stackdeploy/internal/shell/probe"
	"github.com/artpar/stackdeploy/internal/shell/runner"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to config file")
	assumeYes := flag.Bool("yes", false, "Skip the confirmation prompt")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	// Handle version flag
	if *showVersion {
		fmt.Printf("stackdeploy %s (built %s)\n", Version, BuildTime)
		return deploy.ExitSuccess
	}

	// Load configuration
	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return deploy.ExitFailure
	}

	// Setup logger
	logger := SetupLogger(cfg)
	logger.Info("starting deploy",
		"version", Version,
		"stack", cfg.Stack.Name,
	)

	// Connect to Docker for the status/diagnostics client. The daemon not
	// being reachable surfaces through preflight and the status gate, so
	// only client construction itself is fatal here.
	dockerClient, err := docker.NewAPIClient(cfg.Docker.Host)
	if err != nil {
		logger.Error("failed to create docker client", "error", err)
		return deploy.ExitFailure
	}
	defer dockerClient.Close()

	composeRunner := compose.NewCLIRunner(cfg.Stack.Name, cfg.Stack.ComposeFile, cfg.Stack.WorkDir, logger)
	prober := probe.NewHTTPProber(cfg.Health.URL, cfg.Health.AttemptTimeout)

	opts := runner.Options{
		Project:       cfg.Stack.Name,
		ComposeFile:   cfg.Stack.ComposeFile,
		WorkDir:       cfg.Stack.WorkDir,
		Platform:      cfg.Preflight.Platform,
		EnvFile:       cfg.Stack.EnvFile,
		RequiredTools: cfg.Preflight.Tools,
		DockerGroup:   cfg.Preflight.DockerGroup,
		RequiredKeys:  cfg.Preflight.RequiredKeys,
		Placeholders:  cfg.Preflight.Placeholders,
		Dirs:          cfg.Stack.Dirs,
		HealthURL:     cfg.Health.URL,
		HealthTimeout: cfg.Health.Timeout,
		PollInterval:  cfg.Health.Interval,
		SettleDelay:   cfg.Health.SettleDelay,
		LogTail:       cfg.Health.LogTail,
		AssumeYes:     *assumeYes,
	}

	r := runner.New(opts, composeRunner, dockerClient, prober, logger)
	outcome := r.Run(context.Background())

	logger.Info("deploy finished",
		"run_id", outcome.RunID,
		"health", outcome.Health,
		"exit_code", outcome.ExitCode(),
	)

	return outcome.ExitCode()
}
