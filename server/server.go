// Package server exposes the shell over a loopback HTTP listener: the
// embedded shell document, a websocket for navigation events, and a small
// JSON API.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"

	"github.com/MKDHXY/EInk-Browser/favourites"
	"github.com/MKDHXY/EInk-Browser/navigator"
	"github.com/MKDHXY/EInk-Browser/omnibox"
	"github.com/MKDHXY/EInk-Browser/ui"
)

// Config holds server configuration.
type Config struct {
	Host     string
	Port     int
	MaxConns int    // Concurrent connection cap on the listener
	HomeURL  string // Initial viewer address baked into the shell document
	Search   string // Search provider display name shown in the shell hint
}

// Server serves the shell and bridges it to the navigator.
type Server struct {
	cfg      Config
	resolver *navigator.Resolver
	favs     *favourites.Store
	log      *zap.Logger
	router   chi.Router
	httpSrv  *http.Server

	// OnViewerFinal, when set, observes every final viewer assignment.
	// Used to persist the session state.
	OnViewerFinal func(url string)
}

// New creates a server around the given resolver and favourites store.
func New(cfg Config, resolver *navigator.Resolver, favs *favourites.Store, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		cfg:      cfg,
		resolver: resolver,
		favs:     favs,
		log:      log,
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// The shell is same-origin; CORS only needs to admit loopback tools.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", s.handleShell)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/ws", s.handleWS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/classify", s.handleClassify)
		r.Get("/resolve", s.handleResolve)
		r.Route("/favourites", func(r chi.Router) {
			r.Get("/", s.handleFavouritesList)
			r.Post("/", s.handleFavouritesAdd)
			r.Delete("/", s.handleFavouritesRemove)
		})
	})

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// URL returns the address the shell is reachable at.
func (s *Server) URL() string {
	return fmt.Sprintf("http://%s:%d/", s.cfg.Host, s.cfg.Port)
}

// handleShell serves the embedded shell document.
func (s *Server) handleShell(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := ui.RenderShell(w, ui.Params{HomeURL: s.cfg.HomeURL, SearchName: s.cfg.Search}); err != nil {
		s.log.Error("rendering shell", zap.Error(err))
	}
}

// handleClassify echoes the classification of an input, for diagnostics.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	in, ok := omnibox.Classify(r.URL.Query().Get("input"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "empty input"})
		return
	}
	kind := "address"
	if in.IsSearch() {
		kind = "search"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"kind":      kind,
		"value":     in.Value,
		"hasScheme": in.HasScheme,
	})
}

// handleResolve runs the full classify-and-resolve pipeline to completion
// and returns the final outcome. Unlike the websocket path there is no
// tentative assignment to report.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	in, ok := omnibox.Classify(r.URL.Query().Get("input"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "empty input"})
		return
	}
	final := s.resolver.Resolve(r.Context(), in, nil)
	writeJSON(w, http.StatusOK, final)
}

func (s *Server) handleFavouritesList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.favs.List())
}

func (s *Server) handleFavouritesAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL   string `json:"url"`
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "url required"})
		return
	}
	added := s.favs.Add(req.URL, req.Title)
	if added {
		if err := s.favs.Save(); err != nil {
			s.log.Warn("saving favourites", zap.Error(err))
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"added": added})
}

func (s *Server) handleFavouritesRemove(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "url required"})
		return
	}
	removed := s.favs.Remove(url)
	if removed {
		if err := s.favs.Save(); err != nil {
			s.log.Warn("saving favourites", zap.Error(err))
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

// Start listens on the configured loopback address and serves until
// Shutdown. The listener caps concurrent connections.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	if s.cfg.MaxConns > 0 {
		ln = netutil.LimitListener(ln, s.cfg.MaxConns)
	}

	s.httpSrv = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.log.Info("shell listening", zap.String("url", s.URL()))
	if err := s.httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv != nil {
		return s.httpSrv.Shutdown(ctx)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
