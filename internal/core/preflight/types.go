// Package preflight provides pure functions for environment validation.
// Following ADR-002: Values as Boundaries - this package contains NO I/O.
// The shell gathers facts (resolved tools, file state, group membership,
// config values) and this package turns them into check results.
package preflight

// =============================================================================
// Check Types
// =============================================================================

// CheckStatus represents the outcome of a single preflight check.
type CheckStatus string

const (
	StatusPass CheckStatus = "pass"
	StatusFail CheckStatus = "fail"
	StatusWarn CheckStatus = "warn"
)

// Check is the outcome of one named preflight check.
type Check struct {
	// Name identifies the check, e.g. "platform" or "key:OPENAI_API_KEY".
	Name string

	Status CheckStatus

	// Message is the human-readable outcome.
	Message string

	// Hint is an actionable remediation step, set on Fail/Warn.
	Hint string
}

// Result is the ordered sequence of check outcomes for one run.
type Result struct {
	Checks []Check
}

// Append adds checks to the result, preserving order.
func (r *Result) Append(checks ...Check) {
	r.Checks = append(r.Checks, checks...)
}

// Failed reports whether any check failed. Warnings never fail a run.
func (r *Result) Failed() bool {
	for _, c := range r.Checks {
		if c.Status == StatusFail {
			return true
		}
	}
	return false
}

// Failures returns all failed checks, in order.
func (r *Result) Failures() []Check {
	var out []Check
	for _, c := range r.Checks {
		if c.Status == StatusFail {
			out = append(out, c)
		}
	}
	return out
}

// Warnings returns all warning checks, in order.
func (r *Result) Warnings() []Check {
	var out []Check
	for _, c := range r.Checks {
		if c.Status == StatusWarn {
			out = append(out, c)
		}
	}
	return out
}

// =============================================================================
// Gathered Facts
// =============================================================================

// FileState describes what the shell found when it looked for a file.
type FileState string

const (
	FilePresent    FileState = "present"
	FileAbsent     FileState = "absent"
	FileUnreadable FileState = "unreadable"
)

// ToolLookup is the result of resolving one executable on PATH.
type ToolLookup struct {
	Name  string
	Path  string // empty when not found
	Found bool
}
