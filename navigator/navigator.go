// Package navigator resolves classified input to a final destination URL,
// probing reachability to choose between https and http variants.
package navigator

import (
	"context"
	"fmt"

	"github.com/MKDHXY/EInk-Browser/omnibox"
	"github.com/MKDHXY/EInk-Browser/probe"
)

// Status describes how a navigation concluded.
type Status string

const (
	// StatusProbing marks a tentative assignment with probes outstanding.
	StatusProbing Status = "probing"
	// StatusSuccess means the assigned URL stands.
	StatusSuccess Status = "success"
	// StatusFallback means the insecure variant was substituted after the
	// secure probe failed.
	StatusFallback Status = "fallback"
	// StatusUnreachable means both transports failed; the secure attempt
	// stays assigned.
	StatusUnreachable Status = "unreachable"
)

// Event is one viewer-surface assignment plus its status narrative.
// A navigation emits a tentative event first when probing is needed,
// then exactly one final event.
type Event struct {
	Generation uint64 `json:"gen"`
	URL        string `json:"url"`
	Status     Status `json:"status"`
	Message    string `json:"message,omitempty"`
	Final      bool   `json:"final"`
}

// Options configures a Resolver.
type Options struct {
	SearchTemplate string // Provider URL with %s for the escaped query
	SearchName     string // Provider display name for status messages
}

// DefaultOptions returns the built-in search provider configuration.
func DefaultOptions() Options {
	return Options{
		SearchTemplate: "https://www.bing.com/search?q=%s",
		SearchName:     "Bing",
	}
}

// Resolver turns classified input into navigation events. It never returns
// an error: every branch terminates in a final Event, and "unreachable" is
// a normal terminal status rather than a failure of the Resolver.
type Resolver struct {
	prober probe.Prober
	opts   Options
}

// New creates a Resolver backed by the given prober.
func New(p probe.Prober, opts Options) *Resolver {
	if opts.SearchTemplate == "" {
		opts.SearchTemplate = DefaultOptions().SearchTemplate
	}
	if opts.SearchName == "" {
		opts.SearchName = DefaultOptions().SearchName
	}
	return &Resolver{prober: p, opts: opts}
}

// Resolve resolves the input, calling emit for the tentative assignment
// (when probing is involved) and returning the final event. emit may be
// nil for callers that only want the final outcome. Probes run
// sequentially: at most two per navigation, never in parallel.
func (r *Resolver) Resolve(ctx context.Context, in omnibox.Input, emit func(Event)) Event {
	if emit == nil {
		emit = func(Event) {}
	}

	if in.IsSearch() {
		return Event{
			URL:     omnibox.SearchURL(r.opts.SearchTemplate, in.Value),
			Status:  StatusSuccess,
			Message: fmt.Sprintf("Searching with %s: %s", r.opts.SearchName, in.Value),
			Final:   true,
		}
	}

	if in.HasScheme {
		// Opaque schemes are not network resources to probe.
		if omnibox.IsOpaque(in.Value) {
			return Event{
				URL:     in.Value,
				Status:  StatusSuccess,
				Message: "Opening: " + in.Value,
				Final:   true,
			}
		}

		if omnibox.IsSecure(in.Value) {
			emit(Event{
				URL:     in.Value,
				Status:  StatusProbing,
				Message: "Opening (https): " + in.Value,
			})
			return r.probeWithFallback(ctx, in.Value)
		}

		// http or any other explicit scheme: used verbatim, caller's call.
		return Event{
			URL:     in.Value,
			Status:  StatusSuccess,
			Message: "Opening: " + in.Value,
			Final:   true,
		}
	}

	// No scheme: assign the secure variant immediately to keep latency low,
	// then let the probe sequence confirm or fall back.
	secure := "https://" + in.Value
	emit(Event{
		URL:     secure,
		Status:  StatusProbing,
		Message: "Trying https: " + secure,
	})
	return r.probeWithFallback(ctx, secure)
}

// probeWithFallback probes the secure URL, falling back to the insecure
// variant on a network-level failure. Both failing leaves the secure
// attempt assigned and reports unreachable.
func (r *Resolver) probeWithFallback(ctx context.Context, secure string) Event {
	if r.prober.Reachable(ctx, secure) {
		return Event{URL: secure, Status: StatusSuccess, Final: true}
	}

	insecure := omnibox.InsecureVariant(secure)
	if r.prober.Reachable(ctx, insecure) {
		return Event{
			URL:     insecure,
			Status:  StatusFallback,
			Message: "https unreachable, switched to http: " + insecure,
			Final:   true,
		}
	}

	return Event{
		URL:     secure,
		Status:  StatusUnreachable,
		Message: "Neither https nor http reachable (bad address or network problem): " + secure,
		Final:   true,
	}
}

// ResolveNewContext returns the URL to open in a separate browsing context.
// No probing: searches go to the provider, scheme-less addresses default
// to https.
func (r *Resolver) ResolveNewContext(in omnibox.Input) string {
	if in.IsSearch() {
		return omnibox.SearchURL(r.opts.SearchTemplate, in.Value)
	}
	if in.HasScheme {
		return in.Value
	}
	return "https://" + in.Value
}
