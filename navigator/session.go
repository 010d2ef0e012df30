package navigator

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/MKDHXY/EInk-Browser/omnibox"
)

// Session owns the viewer state for one shell connection: the single
// currently assigned URL and the generation counter that serializes
// navigation requests.
//
// Each call to Navigate bumps the generation and tags its resolution with
// it. A resolution that finishes after a newer request has started is
// discarded before it can touch the viewer state, so a stale fallback can
// never overwrite a newer navigation. Outstanding probes are not
// cancelled; their results simply stop mattering.
type Session struct {
	resolver *Resolver
	sink     func(Event)
	log      *zap.Logger

	mu      sync.Mutex
	gen     uint64
	current string
}

// NewSession creates a session that forwards applied events to sink.
func NewSession(r *Resolver, sink func(Event), log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{resolver: r, sink: sink, log: log}
}

// Current returns the viewer's currently assigned URL. The embedded
// content's own internal navigation is not tracked here.
func (s *Session) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Navigate classifies raw input and resolves it asynchronously. Empty or
// whitespace-only input is a no-op and returns false. Events reach the
// sink in assignment order: tentative first, then the final event, each
// tagged with this request's generation.
func (s *Session) Navigate(ctx context.Context, raw string) bool {
	in, ok := omnibox.Classify(raw)
	if !ok {
		return false
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	go func() {
		final := s.resolver.Resolve(ctx, in, func(e Event) {
			s.apply(gen, e)
		})
		s.apply(gen, final)
	}()
	return true
}

// NewContext classifies raw input for opening in a separate browsing
// context. Returns the destination URL, or "" for a no-op input. The
// viewer state is untouched.
func (s *Session) NewContext(raw string) string {
	in, ok := omnibox.Classify(raw)
	if !ok {
		return ""
	}
	return s.resolver.ResolveNewContext(in)
}

// apply commits an event to the viewer state unless its generation has
// been superseded, in which case the event is dropped. The sink runs
// under the session lock so events leave in assignment order.
func (s *Session) apply(gen uint64, e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.log.Debug("discarding stale navigation result",
			zap.Uint64("gen", gen),
			zap.String("url", e.URL))
		return
	}
	s.current = e.URL

	e.Generation = gen
	if s.sink != nil {
		s.sink(e)
	}
}
