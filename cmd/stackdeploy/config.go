package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/artpar/stackdeploy/internal/core/preflight"
	"github.com/spf13/viper"
)

// =============================================================================
// Config Types
// =============================================================================

// Config holds all deploy tool configuration.
type Config struct {
	Stack     StackConfig     `mapstructure:"stack"`
	Preflight PreflightConfig `mapstructure:"preflight"`
	Health    HealthConfig    `mapstructure:"health"`
	Docker    DockerConfig    `mapstructure:"docker"`
	Log       LogConfig       `mapstructure:"log"`
}

// StackConfig identifies the compose stack being deployed.
type StackConfig struct {
	// Name is the compose project name.
	Name string `mapstructure:"name"`

	ComposeFile string `mapstructure:"compose_file"`

	// EnvFile is the stack's environment file, checked during preflight.
	EnvFile string `mapstructure:"env_file"`

	// WorkDir is the directory compose commands run from. Empty means the
	// current directory.
	WorkDir string `mapstructure:"work_dir"`

	// Dirs are output/working directories created before deploying.
	Dirs []string `mapstructure:"dirs"`
}

// PreflightConfig holds the environment validation inputs.
type PreflightConfig struct {
	// Platform is the required GOOS value.
	Platform string `mapstructure:"platform"`

	// Tools are executables that must resolve on PATH.
	Tools []string `mapstructure:"tools"`

	// DockerGroup is the group needed to use the runtime without sudo.
	// Empty disables the membership check.
	DockerGroup string `mapstructure:"docker_group"`

	// RequiredKeys must be present and non-placeholder in the env file.
	RequiredKeys []string `mapstructure:"required_keys"`

	// Placeholders maps keys to their known template values.
	Placeholders map[string]string `mapstructure:"placeholders"`
}

// HealthConfig holds post-start verification settings.
type HealthConfig struct {
	URL string `mapstructure:"url"`

	// Timeout is the total wait for the stack to become healthy.
	Timeout time.Duration `mapstructure:"timeout"`

	// Interval is the fixed delay between polls.
	Interval time.Duration `mapstructure:"interval"`

	// SettleDelay is how long the status gate waits for a service to
	// report running.
	SettleDelay time.Duration `mapstructure:"settle_delay"`

	// AttemptTimeout bounds one liveness request.
	AttemptTimeout time.Duration `mapstructure:"attempt_timeout"`

	// LogTail is how many aggregated log lines to show on failure.
	LogTail int `mapstructure:"log_tail"`
}

// DockerConfig holds Docker client configuration.
type DockerConfig struct {
	Host string `mapstructure:"host"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// =============================================================================
// Config Loading
// =============================================================================

// LoadConfig loads configuration from file and environment.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("stack.name", "docpipe")
	v.SetDefault("stack.compose_file", "docker-compose.yml")
	v.SetDefault("stack.env_file", ".env")
	v.SetDefault("stack.work_dir", "")
	v.SetDefault("stack.dirs", []string{"outputs", "logs", "data/uploads"})

	v.SetDefault("preflight.platform", "linux")
	v.SetDefault("preflight.tools", []string{"docker"})
	v.SetDefault("preflight.docker_group", "docker")
	v.SetDefault("preflight.required_keys", preflight.RequiredKeys())
	v.SetDefault("preflight.placeholders", preflight.Placeholders())

	v.SetDefault("health.url", "http://localhost:8000/health")
	v.SetDefault("health.timeout", "120s")
	v.SetDefault("health.interval", "2s")
	v.SetDefault("health.settle_delay", "10s")
	v.SetDefault("health.attempt_timeout", "3s")
	v.SetDefault("health.log_tail", 50)

	v.SetDefault("docker.host", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Load from file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			// Only return error if file was explicitly specified and is invalid
			if _, ok := err.(viper.ConfigParseError); ok {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
			// File not found is OK, we'll use defaults
		}
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("STACKDEPLOY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// =============================================================================
// Logger Setup
// =============================================================================

// SetupLogger creates a logger with the configured level and format.
// Structured logs go to stderr; stdout belongs to the progress report.
func SetupLogger(cfg *Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Log.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
