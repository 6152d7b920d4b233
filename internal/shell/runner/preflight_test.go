package runner

import (
	"testing"

	"github.com/artpar/stackdeploy/internal/core/preflight"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Fact Evaluation Tests
// =============================================================================

func TestEvaluateFacts_FailureMessagesNameResolvedPaths(t *testing.T) {
	opts := Options{
		Project:     "docpipe",
		Platform:    "linux",
		WorkDir:     "/srv/stack",
		ComposeFile: "docker-compose.yml",
		EnvFile:     ".env",
	}
	facts := Facts{
		GOOS:             "linux",
		EnvFileState:     preflight.FileAbsent,
		ComposeFileState: preflight.FileAbsent,
		DaemonReachable:  true,
	}

	result := EvaluateFacts(opts, facts)

	require.Len(t, result.Failures(), 2)
	assert.Contains(t, result.Failures()[0].Message, "/srv/stack/docker-compose.yml")
	assert.Contains(t, result.Failures()[1].Message, "/srv/stack/.env")
}

func TestEvaluateFacts_AbsolutePathsAreNotRejoined(t *testing.T) {
	opts := Options{
		Platform:    "linux",
		WorkDir:     "/srv/stack",
		ComposeFile: "/etc/docpipe/docker-compose.yml",
		EnvFile:     "/etc/docpipe/.env",
	}
	facts := Facts{
		GOOS:             "linux",
		EnvFileState:     preflight.FileAbsent,
		ComposeFileState: preflight.FileAbsent,
		DaemonReachable:  true,
	}

	result := EvaluateFacts(opts, facts)

	require.Len(t, result.Failures(), 2)
	assert.Contains(t, result.Failures()[0].Message, "/etc/docpipe/docker-compose.yml")
	assert.NotContains(t, result.Failures()[0].Message, "/srv/stack")
}
