package compose

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/compose-spec/compose-go/v2/loader"
	"github.com/compose-spec/compose-go/v2/types"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Parser Functions
// =============================================================================

// ParseStack parses Docker Compose YAML into a Stack.
// This is a pure function - no I/O, no side effects.
func ParseStack(yamlContent string) (*Stack, error) {
	if strings.TrimSpace(yamlContent) == "" {
		return nil, ErrEmptyInput
	}

	project, err := loadProject(yamlContent)
	if err != nil {
		return nil, err
	}

	if len(project.Services) == 0 {
		return nil, ErrNoServices
	}

	stack := &Stack{
		Services: make([]Service, 0, len(project.Services)),
	}
	for name, svc := range project.Services {
		stack.Services = append(stack.Services, convertService(name, svc))
	}

	// compose-go hands services back in map order; keep output deterministic.
	sort.Slice(stack.Services, func(i, j int) bool {
		return stack.Services[i].Name < stack.Services[j].Name
	})

	return stack, nil
}

// loadProject loads a compose project using compose-go.
func loadProject(yamlContent string) (*types.Project, error) {
	// Parse YAML into a map first so syntax errors surface as our own error.
	var dict map[string]interface{}
	if err := yaml.Unmarshal([]byte(yamlContent), &dict); err != nil {
		return nil, NewParseError("", "invalid YAML syntax", ErrInvalidYAML)
	}
	if dict == nil {
		return nil, NewParseError("", "invalid YAML syntax", ErrInvalidYAML)
	}

	// The loader rejects a file without services with its own schema error;
	// surface the friendlier sentinel instead.
	if services, ok := dict["services"].(map[string]interface{}); !ok || len(services) == 0 {
		return nil, ErrNoServices
	}

	project, err := loader.LoadWithContext(context.Background(), types.ConfigDetails{
		ConfigFiles: []types.ConfigFile{
			{
				Content: []byte(yamlContent),
				Config:  dict,
			},
		},
	}, func(opts *loader.Options) {
		opts.SetProjectName("stackdeploy-parse", false)
		opts.SkipValidation = false
		opts.SkipInterpolation = true // env interpolation happens at deploy time, not here
		opts.SkipNormalization = true
		opts.SkipExtends = true
	})
	if err != nil {
		return nil, NewParseError("", err.Error(), ErrInvalidYAML)
	}

	return project, nil
}

// convertService extracts the deploy-relevant view of a compose service.
func convertService(name string, svc types.ServiceConfig) Service {
	out := Service{
		Name:   name,
		Image:  svc.Image,
		Builds: svc.Build != nil,
	}

	for _, p := range svc.Ports {
		if p.Published == "" {
			continue
		}
		if published, err := strconv.Atoi(p.Published); err == nil {
			out.PublishedPorts = append(out.PublishedPorts, published)
		}
	}

	return out
}
