// Package probe provides network-layer reachability checks for candidate URLs.
package probe

import (
	"context"
	"net/http"
	"time"
)

// Prober reports whether a transport connection to a URL can be established.
type Prober interface {
	// Reachable returns true when the connection attempt did not raise a
	// network-level error (DNS failure, TCP/TLS handshake failure, refused
	// or blocked connection). It says nothing about the response itself.
	Reachable(ctx context.Context, url string) bool
}

// Options configures the HTTP prober.
type Options struct {
	UserAgent      string
	TimeoutSeconds int
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		UserAgent:      "InkBrowser/1.0 (reachability probe)",
		TimeoutSeconds: 10,
	}
}

// HTTP is a Prober backed by a plain HTTP client.
//
// An HTTP error status (4xx/5xx) still counts as reachable: the probe
// contract only certifies that a transport connection was achievable, not
// that content was served. Some truly broken pages will therefore be
// reported reachable. This mirrors a no-cors fetch, where cross-origin
// responses are opaque and only network errors are observable.
type HTTP struct {
	client *http.Client
	opts   Options
}

// NewHTTP creates an HTTP prober.
func NewHTTP(opts Options) *HTTP {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultOptions().UserAgent
	}
	if opts.TimeoutSeconds <= 0 {
		opts.TimeoutSeconds = DefaultOptions().TimeoutSeconds
	}
	return &HTTP{
		client: &http.Client{
			Timeout: time.Duration(opts.TimeoutSeconds) * time.Second,
		},
		opts: opts,
	}
}

// Reachable implements Prober.
func (h *HTTP) Reachable(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", h.opts.UserAgent)
	req.Header.Set("Cache-Control", "no-store")

	resp, err := h.client.Do(req)
	if err != nil {
		return false
	}
	// The body is never read; the status code is deliberately ignored.
	resp.Body.Close()
	return true
}
