package runner

import (
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"runtime"

	corecompose "github.com/artpar/stackdeploy/internal/core/compose"
	"github.com/artpar/stackdeploy/internal/core/preflight"
	"github.com/spf13/viper"
)

// =============================================================================
// Preflight Facts
// =============================================================================

// Facts is everything the shell observed about the host environment.
// Evaluation of these facts is pure (internal/core/preflight).
type Facts struct {
	GOOS string

	EnvFileState preflight.FileState
	EnvValues    map[string]string

	ComposeFileState preflight.FileState
	ComposeParseErr  error

	// Stack is the parsed compose file, nil when parsing failed.
	Stack *corecompose.Stack

	Tools []preflight.ToolLookup

	// DaemonReachable and DaemonDetail are filled in by the runner from a
	// live ping; GatherFacts has no daemon client.
	DaemonReachable bool
	DaemonDetail    string

	Username         string
	GroupMember      bool
	GroupLookupError bool
}

// FactGatherer collects preflight facts for the given options.
type FactGatherer func(opts Options) Facts

// GatherFacts is the production gatherer: it inspects the real host.
// It reads but never mutates anything.
func GatherFacts(opts Options) Facts {
	facts := Facts{
		GOOS:      runtime.GOOS,
		EnvValues: map[string]string{},
	}

	// Environment file and its values.
	envPath := resolvePath(opts.WorkDir, opts.EnvFile)
	facts.EnvFileState = statFile(envPath)
	if facts.EnvFileState == preflight.FilePresent {
		facts.EnvValues = readEnvFile(envPath, opts.RequiredKeys)
	}

	// Compose file and declared services.
	composePath := resolvePath(opts.WorkDir, opts.ComposeFile)
	facts.ComposeFileState = statFile(composePath)
	if facts.ComposeFileState == preflight.FilePresent {
		raw, err := os.ReadFile(composePath)
		if err != nil {
			facts.ComposeFileState = preflight.FileUnreadable
		} else if stack, perr := corecompose.ParseStack(string(raw)); perr != nil {
			facts.ComposeParseErr = perr
		} else {
			facts.Stack = stack
		}
	}

	// Required executables.
	for _, tool := range opts.RequiredTools {
		path, err := exec.LookPath(tool)
		facts.Tools = append(facts.Tools, preflight.ToolLookup{
			Name:  tool,
			Path:  path,
			Found: err == nil,
		})
	}

	// Container runtime group membership.
	facts.Username, facts.GroupMember, facts.GroupLookupError = lookupGroupMembership(opts.DockerGroup)

	return facts
}

// EvaluateFacts turns gathered facts into the ordered preflight result.
// File checks report the same resolved paths GatherFacts inspected, so a
// failure message never names a location that was not actually checked.
func EvaluateFacts(opts Options, facts Facts) preflight.Result {
	var result preflight.Result

	var services []string
	if facts.Stack != nil {
		services = facts.Stack.ServiceNames()
	}

	result.Append(preflight.EvaluatePlatform(facts.GOOS, opts.Platform))
	result.Append(preflight.EvaluateComposeFile(resolvePath(opts.WorkDir, opts.ComposeFile), facts.ComposeFileState, facts.ComposeParseErr, services))
	result.Append(preflight.EvaluateEnvFile(resolvePath(opts.WorkDir, opts.EnvFile), facts.EnvFileState))
	result.Append(preflight.EvaluateTools(facts.Tools)...)
	result.Append(preflight.EvaluateDaemon(facts.DaemonReachable, facts.DaemonDetail))
	if opts.DockerGroup != "" {
		result.Append(preflight.EvaluateGroupMembership(facts.Username, opts.DockerGroup, facts.GroupMember, facts.GroupLookupError))
	}
	// Key checks only make sense against a readable env file; a missing
	// file already failed above and would drown the report in noise.
	if facts.EnvFileState == preflight.FilePresent {
		result.Append(preflight.EvaluateRequiredKeys(facts.EnvValues, opts.RequiredKeys, opts.Placeholders)...)
	}

	return result
}

// bootstrapFailure records a directory bootstrap error as a failed check so
// the outcome carries it like any other preflight failure.
func bootstrapFailure(err error) preflight.Check {
	return preflight.Check{
		Name:    "directories",
		Status:  preflight.StatusFail,
		Message: "could not create required directories: " + err.Error(),
		Hint:    "check ownership and permissions of the deploy directory",
	}
}

// =============================================================================
// Host Inspection Helpers
// =============================================================================

func resolvePath(workDir, path string) string {
	if path == "" || filepath.IsAbs(path) || workDir == "" {
		return path
	}
	return filepath.Join(workDir, path)
}

func statFile(path string) preflight.FileState {
	if _, err := os.Stat(path); err != nil {
		return preflight.FileAbsent
	}
	f, err := os.Open(path)
	if err != nil {
		return preflight.FileUnreadable
	}
	f.Close()
	return preflight.FilePresent
}

// readEnvFile loads the stack's env file through viper and extracts the
// required keys. Viper is case-insensitive, so lookups work regardless of
// key casing in the file.
func readEnvFile(path string, keys []string) map[string]string {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	values := map[string]string{}
	if err := v.ReadInConfig(); err != nil {
		return values
	}
	for _, key := range keys {
		if v.IsSet(key) {
			values[key] = v.GetString(key)
		}
	}
	return values
}

// lookupGroupMembership reports whether the current user belongs to the
// named group.
func lookupGroupMembership(group string) (username string, member bool, lookupFailed bool) {
	u, err := user.Current()
	if err != nil {
		return "", false, true
	}
	username = u.Username

	if group == "" {
		return username, false, false
	}

	g, err := user.LookupGroup(group)
	if err != nil {
		return username, false, true
	}
	gids, err := u.GroupIds()
	if err != nil {
		return username, false, true
	}
	for _, gid := range gids {
		if gid == g.Gid {
			return username, true, false
		}
	}
	return username, false, false
}
