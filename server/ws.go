package server

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/MKDHXY/EInk-Browser/navigator"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// The shell is only ever served from loopback.
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		return strings.Contains(origin, "://localhost") ||
			strings.Contains(origin, "://127.0.0.1")
	},
}

// wsRequest is what the shell sends: navigate in place, or resolve a URL
// for a separate browsing context.
type wsRequest struct {
	Type  string `json:"type"` // "navigate" or "open"
	Input string `json:"input"`
}

// wsAssign is a viewer assignment pushed to the shell.
type wsAssign struct {
	Type string `json:"type"` // "assign"
	navigator.Event
}

// wsOpen answers an "open" request with the destination URL.
type wsOpen struct {
	Type string `json:"type"` // "open"
	URL  string `json:"url"`
}

// handleWS upgrades the connection and runs one navigator session per
// shell. Assignment events are written from resolver goroutines, so
// writes go through a mutex.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	log := s.log.With(zap.String("conn", id))
	log.Info("shell connected")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var writeMu sync.Mutex
	send := func(v any) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(v); err != nil {
			log.Debug("websocket write failed", zap.Error(err))
		}
	}

	sess := navigator.NewSession(s.resolver, func(e navigator.Event) {
		send(wsAssign{Type: "assign", Event: e})
		if e.Final && s.OnViewerFinal != nil {
			s.OnViewerFinal(e.URL)
		}
	}, log)

	for {
		var req wsRequest
		if err := conn.ReadJSON(&req); err != nil {
			log.Info("shell disconnected", zap.Error(err))
			return
		}

		switch req.Type {
		case "navigate":
			sess.Navigate(ctx, req.Input)
		case "open":
			if url := sess.NewContext(req.Input); url != "" {
				send(wsOpen{Type: "open", URL: url})
			}
		default:
			log.Debug("unknown message type", zap.String("type", req.Type))
		}
	}
}
