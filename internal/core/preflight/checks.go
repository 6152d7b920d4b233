package preflight

import "fmt"

// =============================================================================
// Check Evaluators (Pure Functions)
// =============================================================================

// EvaluatePlatform checks that the host OS family matches the one the stack
// is built for. goos is runtime.GOOS as seen by the shell.
func EvaluatePlatform(goos, want string) Check {
	if goos != want {
		return Check{
			Name:    "platform",
			Status:  StatusFail,
			Message: fmt.Sprintf("unsupported platform %q, stack requires %s", goos, want),
			Hint:    fmt.Sprintf("deploy from a %s host", want),
		}
	}
	return Check{
		Name:    "platform",
		Status:  StatusPass,
		Message: fmt.Sprintf("platform %s", goos),
	}
}

// EvaluateEnvFile checks the stack's environment file. Absent and unreadable
// are distinct failures so the operator knows whether to create it or fix
// permissions.
func EvaluateEnvFile(path string, state FileState) Check {
	switch state {
	case FileAbsent:
		return Check{
			Name:    "env-file",
			Status:  StatusFail,
			Message: fmt.Sprintf("environment file %s not found", path),
			Hint:    fmt.Sprintf("cp .env.example %s and fill in the values", path),
		}
	case FileUnreadable:
		return Check{
			Name:    "env-file",
			Status:  StatusFail,
			Message: fmt.Sprintf("environment file %s exists but is not readable", path),
			Hint:    fmt.Sprintf("check permissions on %s", path),
		}
	default:
		return Check{
			Name:    "env-file",
			Status:  StatusPass,
			Message: fmt.Sprintf("environment file %s", path),
		}
	}
}

// EvaluateComposeFile checks that the stack's compose file exists and
// parsed into at least one service. parseErr is nil when parsing succeeded.
func EvaluateComposeFile(path string, state FileState, parseErr error, services []string) Check {
	switch {
	case state == FileAbsent:
		return Check{
			Name:    "compose-file",
			Status:  StatusFail,
			Message: fmt.Sprintf("compose file %s not found", path),
			Hint:    "run from the repository root, or point stack.compose_file at it",
		}
	case state == FileUnreadable:
		return Check{
			Name:    "compose-file",
			Status:  StatusFail,
			Message: fmt.Sprintf("compose file %s exists but is not readable", path),
			Hint:    fmt.Sprintf("check permissions on %s", path),
		}
	case parseErr != nil:
		return Check{
			Name:    "compose-file",
			Status:  StatusFail,
			Message: fmt.Sprintf("compose file %s did not parse: %v", path, parseErr),
			Hint:    "fix the compose file before deploying",
		}
	default:
		return Check{
			Name:    "compose-file",
			Status:  StatusPass,
			Message: fmt.Sprintf("compose file %s (%d services)", path, len(services)),
		}
	}
}

// EvaluateTools produces one check per required executable.
func EvaluateTools(lookups []ToolLookup) []Check {
	checks := make([]Check, 0, len(lookups))
	for _, l := range lookups {
		if !l.Found {
			checks = append(checks, Check{
				Name:    "tool:" + l.Name,
				Status:  StatusFail,
				Message: fmt.Sprintf("%s not found on PATH", l.Name),
				Hint:    fmt.Sprintf("install %s and ensure it is on PATH", l.Name),
			})
			continue
		}
		checks = append(checks, Check{
			Name:    "tool:" + l.Name,
			Status:  StatusPass,
			Message: fmt.Sprintf("%s (%s)", l.Name, l.Path),
		})
	}
	return checks
}

// EvaluateDaemon checks that the container runtime daemon answered a ping.
// Having the docker binary on PATH says nothing about the daemon actually
// running, so this is a separate check.
func EvaluateDaemon(reachable bool, detail string) Check {
	if !reachable {
		return Check{
			Name:    "daemon",
			Status:  StatusFail,
			Message: fmt.Sprintf("docker daemon is not reachable: %s", detail),
			Hint:    "start the docker service, or point DOCKER_HOST at a running daemon",
		}
	}
	return Check{
		Name:    "daemon",
		Status:  StatusPass,
		Message: "docker daemon is reachable",
	}
}

// EvaluateGroupMembership checks that the invoking user can talk to the
// container runtime without sudo. This is advisory only: the daemon socket
// may still be accessible (rootless setups, ACLs), so missing membership is
// a warning, never a failure.
func EvaluateGroupMembership(user, group string, member bool, lookupFailed bool) Check {
	if lookupFailed {
		return Check{
			Name:    "group:" + group,
			Status:  StatusWarn,
			Message: fmt.Sprintf("could not determine membership of group %q", group),
			Hint:    fmt.Sprintf("verify %s can use the container runtime without sudo", user),
		}
	}
	if !member {
		return Check{
			Name:    "group:" + group,
			Status:  StatusWarn,
			Message: fmt.Sprintf("user %s is not in group %q", user, group),
			Hint:    fmt.Sprintf("sudo usermod -aG %s %s, then re-login", group, user),
		}
	}
	return Check{
		Name:    "group:" + group,
		Status:  StatusPass,
		Message: fmt.Sprintf("user %s is in group %q", user, group),
	}
}

// EvaluateRequiredKeys produces one check per required configuration key.
// A key fails when it is absent, empty, or still set to its placeholder
// sentinel. Every key is evaluated so the operator sees all missing values
// at once instead of fixing them one deploy at a time.
//
// placeholders maps key name to the known template value shipped in the
// example environment file, e.g. OPENAI_API_KEY -> "sk-your-openai-api-key-here".
func EvaluateRequiredKeys(values map[string]string, required []string, placeholders map[string]string) []Check {
	checks := make([]Check, 0, len(required))
	for _, key := range required {
		v, ok := values[key]
		switch {
		case !ok || v == "":
			checks = append(checks, Check{
				Name:    "key:" + key,
				Status:  StatusFail,
				Message: fmt.Sprintf("%s is not set", key),
				Hint:    fmt.Sprintf("set %s in the environment file", key),
			})
		case placeholders[key] != "" && v == placeholders[key]:
			checks = append(checks, Check{
				Name:    "key:" + key,
				Status:  StatusFail,
				Message: fmt.Sprintf("%s is still the placeholder value", key),
				Hint:    fmt.Sprintf("replace the template value of %s with a real one", key),
			})
		default:
			checks = append(checks, Check{
				Name:    "key:" + key,
				Status:  StatusPass,
				Message: fmt.Sprintf("%s is set", key),
			})
		}
	}
	return checks
}
