// Package docker provides a read-only Docker client for inspecting the
// deployed stack. All mutation goes through the compose CLI; this client
// only answers "what is running" and "what did it log".
package docker

import "context"

// =============================================================================
// Container Info
// =============================================================================

// ContainerState represents the container run state.
type ContainerState string

const (
	StateCreated    ContainerState = "created"
	StateRunning    ContainerState = "running"
	StatePaused     ContainerState = "paused"
	StateRestarting ContainerState = "restarting"
	StateRemoving   ContainerState = "removing"
	StateExited     ContainerState = "exited"
	StateDead       ContainerState = "dead"
)

// ContainerInfo is the per-service view of one stack container.
type ContainerInfo struct {
	ID      string
	Name    string
	Service string // compose service name
	Image   string
	State   ContainerState
	Status  string // human status line, e.g. "Up 3 seconds"
}

// Running reports whether the container is in the running state.
func (c ContainerInfo) Running() bool {
	return c.State == StateRunning
}

// =============================================================================
// Client Interface
// =============================================================================

// Client is the read-only view of the container runtime used for status and
// diagnostics.
type Client interface {
	// Ping checks that the daemon is reachable.
	Ping(ctx context.Context) error

	// ListStackContainers lists all containers belonging to the named
	// compose project, including stopped ones.
	ListStackContainers(ctx context.Context, project string) ([]ContainerInfo, error)

	// ContainerLogs returns the last tail lines of one container's output.
	ContainerLogs(ctx context.Context, containerID string, tail int) (string, error)

	Close() error
}

// =============================================================================
// Label Constants
// =============================================================================

// Labels the compose CLI stamps on every container it creates.
const (
	LabelComposeProject = "com.docker.compose.project"
	LabelComposeService = "com.docker.compose.service"
)
