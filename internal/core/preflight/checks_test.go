package preflight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// =============================================================================
// EvaluatePlatform Tests
// =============================================================================

func TestEvaluatePlatform_Match(t *testing.T) {
	c := EvaluatePlatform("linux", "linux")

	assert.Equal(t, StatusPass, c.Status)
	assert.Equal(t, "platform", c.Name)
}

func TestEvaluatePlatform_Mismatch(t *testing.T) {
	c := EvaluatePlatform("windows", "linux")

	assert.Equal(t, StatusFail, c.Status)
	assert.Contains(t, c.Message, "windows")
	assert.Contains(t, c.Hint, "linux")
}

// =============================================================================
// EvaluateEnvFile Tests
// =============================================================================

func TestEvaluateEnvFile_Present(t *testing.T) {
	c := EvaluateEnvFile(".env", FilePresent)

	assert.Equal(t, StatusPass, c.Status)
}

func TestEvaluateEnvFile_Absent(t *testing.T) {
	c := EvaluateEnvFile(".env", FileAbsent)

	assert.Equal(t, StatusFail, c.Status)
	assert.Contains(t, c.Message, "not found")
	assert.Contains(t, c.Hint, ".env.example")
}

func TestEvaluateEnvFile_UnreadableIsDistinctFromAbsent(t *testing.T) {
	absent := EvaluateEnvFile(".env", FileAbsent)
	unreadable := EvaluateEnvFile(".env", FileUnreadable)

	assert.Equal(t, StatusFail, unreadable.Status)
	assert.NotEqual(t, absent.Message, unreadable.Message)
	assert.Contains(t, unreadable.Message, "not readable")
}

// =============================================================================
// EvaluateComposeFile Tests
// =============================================================================

func TestEvaluateComposeFile_Parsed(t *testing.T) {
	c := EvaluateComposeFile("docker-compose.yml", FilePresent, nil, []string{"api", "worker"})

	assert.Equal(t, StatusPass, c.Status)
	assert.Contains(t, c.Message, "2 services")
}

func TestEvaluateComposeFile_Absent(t *testing.T) {
	c := EvaluateComposeFile("docker-compose.yml", FileAbsent, nil, nil)

	assert.Equal(t, StatusFail, c.Status)
	assert.Contains(t, c.Message, "not found")
}

func TestEvaluateComposeFile_ParseError(t *testing.T) {
	c := EvaluateComposeFile("docker-compose.yml", FilePresent, assert.AnError, nil)

	assert.Equal(t, StatusFail, c.Status)
	assert.Contains(t, c.Message, "did not parse")
}

// =============================================================================
// EvaluateTools Tests
// =============================================================================

func TestEvaluateTools_AllFound(t *testing.T) {
	checks := EvaluateTools([]ToolLookup{
		{Name: "docker", Path: "/usr/bin/docker", Found: true},
		{Name: "curl", Path: "/usr/bin/curl", Found: true},
	})

	assert.Len(t, checks, 2)
	for _, c := range checks {
		assert.Equal(t, StatusPass, c.Status)
	}
}

func TestEvaluateTools_MissingToolFails(t *testing.T) {
	checks := EvaluateTools([]ToolLookup{
		{Name: "docker", Found: false},
	})

	assert.Len(t, checks, 1)
	assert.Equal(t, StatusFail, checks[0].Status)
	assert.Equal(t, "tool:docker", checks[0].Name)
	assert.Contains(t, checks[0].Hint, "install docker")
}

// =============================================================================
// EvaluateDaemon Tests
// =============================================================================

func TestEvaluateDaemon_Reachable(t *testing.T) {
	c := EvaluateDaemon(true, "")

	assert.Equal(t, StatusPass, c.Status)
	assert.Equal(t, "daemon", c.Name)
}

func TestEvaluateDaemon_UnreachableFails(t *testing.T) {
	c := EvaluateDaemon(false, "dial unix /var/run/docker.sock: connect: no such file")

	assert.Equal(t, StatusFail, c.Status)
	assert.Contains(t, c.Message, "docker.sock")
	assert.Contains(t, c.Hint, "DOCKER_HOST")
}

// =============================================================================
// EvaluateGroupMembership Tests
// =============================================================================

func TestEvaluateGroupMembership_Member(t *testing.T) {
	c := EvaluateGroupMembership("alice", "docker", true, false)

	assert.Equal(t, StatusPass, c.Status)
}

func TestEvaluateGroupMembership_NotMemberWarnsOnly(t *testing.T) {
	c := EvaluateGroupMembership("alice", "docker", false, false)

	assert.Equal(t, StatusWarn, c.Status)
	assert.Contains(t, c.Hint, "usermod")
}

func TestEvaluateGroupMembership_LookupFailureWarnsOnly(t *testing.T) {
	c := EvaluateGroupMembership("alice", "docker", false, true)

	assert.Equal(t, StatusWarn, c.Status)
}

// =============================================================================
// EvaluateRequiredKeys Tests
// =============================================================================

func TestEvaluateRequiredKeys_AllSet(t *testing.T) {
	values := map[string]string{
		"AWS_REGION":     "us-east-1",
		"OPENAI_API_KEY": "sk-real-key",
	}

	checks := EvaluateRequiredKeys(values, []string{"AWS_REGION", "OPENAI_API_KEY"}, Placeholders())

	assert.Len(t, checks, 2)
	for _, c := range checks {
		assert.Equal(t, StatusPass, c.Status)
	}
}

func TestEvaluateRequiredKeys_MissingKeyFails(t *testing.T) {
	checks := EvaluateRequiredKeys(map[string]string{}, []string{"DB_PASSWORD"}, nil)

	assert.Len(t, checks, 1)
	assert.Equal(t, StatusFail, checks[0].Status)
	assert.Equal(t, "key:DB_PASSWORD", checks[0].Name)
}

func TestEvaluateRequiredKeys_PlaceholderValueFails(t *testing.T) {
	values := map[string]string{
		"OPENAI_API_KEY": "sk-your-openai-api-key-here",
	}

	checks := EvaluateRequiredKeys(values, []string{"OPENAI_API_KEY"}, Placeholders())

	assert.Len(t, checks, 1)
	assert.Equal(t, StatusFail, checks[0].Status)
	assert.Contains(t, checks[0].Message, "OPENAI_API_KEY")
	assert.Contains(t, checks[0].Message, "placeholder")
}

func TestEvaluateRequiredKeys_AllFailuresReportedTogether(t *testing.T) {
	values := map[string]string{
		"AWS_REGION":     "us-east-1",
		"OPENAI_API_KEY": "",
	}
	required := []string{"AWS_REGION", "OPENAI_API_KEY", "DB_PASSWORD"}

	checks := EvaluateRequiredKeys(values, required, nil)

	assert.Len(t, checks, 3)
	assert.Equal(t, StatusPass, checks[0].Status)
	assert.Equal(t, StatusFail, checks[1].Status)
	assert.Equal(t, StatusFail, checks[2].Status)
}

func TestEvaluateRequiredKeys_EmptyRequiredSetPasses(t *testing.T) {
	checks := EvaluateRequiredKeys(map[string]string{}, nil, nil)

	assert.Empty(t, checks)

	var r Result
	r.Append(checks...)
	assert.False(t, r.Failed())
}

// =============================================================================
// Result Tests
// =============================================================================

func TestResult_FailedAndWarnings(t *testing.T) {
	var r Result
	r.Append(
		Check{Name: "a", Status: StatusPass},
		Check{Name: "b", Status: StatusWarn},
		Check{Name: "c", Status: StatusFail},
	)

	assert.True(t, r.Failed())
	assert.Len(t, r.Failures(), 1)
	assert.Len(t, r.Warnings(), 1)
	assert.Equal(t, "c", r.Failures()[0].Name)
}

func TestResult_WarningsNeverFail(t *testing.T) {
	var r Result
	r.Append(Check{Name: "group:docker", Status: StatusWarn})

	assert.False(t, r.Failed())
}
