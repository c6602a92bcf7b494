package handler

import (
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/gorilla/websocket"

	"github.com/fsr-protokoll/editor/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// sessionEvent is one message on the /session/events stream.
type sessionEvent struct {
	Type    string         `json:"type"`
	Session domain.Session `json:"session"`
}

// streamEvents handles GET /session/events. After the upgrade it sends the
// current snapshot, then one snapshot per applied mutation. A slow client
// only ever gets the latest snapshot; intermediate ones are dropped.
func (s *Server) streamEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		s.logger.WarnContext(r.Context(), "handler: websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	updates := make(chan domain.Session, 1)
	unsubscribe := s.session.Subscribe(func(snap domain.Session) {
		for {
			select {
			case updates <- snap:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})
	defer unsubscribe()

	// The client sends nothing; reading only serves close frames and pongs.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	send := func(snap domain.Session) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(sessionEvent{Type: "snapshot", Session: snap}) == nil
	}
	if !send(s.session.Snapshot()) {
		return
	}
	for {
		select {
		case <-closed:
			return
		case snap := <-updates:
			if !send(snap) {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// checkOrigin accepts same-host pages, requests without an Origin header
// (the CLI, curl) and the configured CORS origins.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if slices.Contains(s.origins, origin) || slices.Contains(s.origins, "*") {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host == r.Host
}
