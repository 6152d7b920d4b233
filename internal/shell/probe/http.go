// Package probe implements the liveness probe against the stack's exposed
// health endpoint.
package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Prober answers whether the application is reachable right now.
type Prober interface {
	Probe(ctx context.Context) error
}

// =============================================================================
// HTTP Prober
// =============================================================================

// HTTPProber issues a GET against the health URL. Reachability is the
// contract: any response the server managed to produce counts as alive,
// regardless of payload.
type HTTPProber struct {
	URL    string
	Client *http.Client
}

// NewHTTPProber creates a prober with a short per-attempt timeout.
func NewHTTPProber(url string, attemptTimeout time.Duration) *HTTPProber {
	if attemptTimeout <= 0 {
		attemptTimeout = 3 * time.Second
	}
	return &HTTPProber{
		URL: url,
		Client: &http.Client{
			Timeout: attemptTimeout,
		},
	}
}

// Probe performs one liveness attempt.
func (p *HTTPProber) Probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return fmt.Errorf("failed to create probe request: %w", err)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return fmt.Errorf("probe %s: %w", p.URL, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	// 5xx means the server is up but failing; that is not "alive" for a
	// health endpoint.
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("probe %s: status %d", p.URL, resp.StatusCode)
	}

	return nil
}
