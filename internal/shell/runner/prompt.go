package runner

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// =============================================================================
// Confirmation Gate
// =============================================================================

// confirm asks the operator for go/no-go before anything is stopped.
// Non-interactive runs and -yes runs proceed without asking.
func (r *Runner) confirm() bool {
	if r.opts.AssumeYes || !r.Interactive {
		return true
	}

	fmt.Fprintf(r.Out, "\nThis will stop, rebuild and restart the %q stack. Continue? [y/N] ", r.opts.Project)

	scanner := bufio.NewScanner(r.In)
	if !scanner.Scan() {
		// EOF on stdin: treat as decline rather than deploying blind.
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

// stdinIsTerminal reports whether stdin is attached to a terminal.
func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
