package compose

// =============================================================================
// Stack Types
// =============================================================================

// Service is one declared service of the stack. Only what the deploy tool
// needs: identity, whether an image gets built locally, and the published
// ports worth echoing in the summary.
type Service struct {
	Name string

	// Image is the image reference, empty for build-only services.
	Image string

	// Builds reports whether the service declares a build section, i.e.
	// the build stage produces an image for it.
	Builds bool

	// PublishedPorts lists host ports the service exposes.
	PublishedPorts []int
}

// Stack is the parsed view of the compose file.
type Stack struct {
	Services []Service
}

// ServiceNames returns the declared service names in parse order.
func (s *Stack) ServiceNames() []string {
	names := make([]string, 0, len(s.Services))
	for _, svc := range s.Services {
		names = append(names, svc.Name)
	}
	return names
}

// BuildCount returns how many services build their image locally.
func (s *Stack) BuildCount() int {
	n := 0
	for _, svc := range s.Services {
		if svc.Builds {
			n++
		}
	}
	return n
}
