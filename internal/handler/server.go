// Package handler implements the HTTP handlers for the Protokoll API.
// All handlers are methods on Server. Methods are split into files by area
// (health.go, session.go, flows.go, etc.) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/fsr-protokoll/editor/internal/domain"
	"github.com/fsr-protokoll/editor/internal/service"
)

// Server serves the editor's HTTP API.
type Server struct {
	editor   *service.Editor
	session  *service.Session
	members  domain.Roster
	origins  []string
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewServer constructs the Server with all its dependencies. allowedOrigins
// is the CORS list; it also gates websocket upgrades.
func NewServer(editor *service.Editor, members domain.Roster, allowedOrigins []string, logger *slog.Logger) *Server {
	s := &Server{
		editor:  editor,
		session: editor.Session(),
		members: members,
		origins: allowedOrigins,
		logger:  logger,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// Routes mounts every endpoint on r. Global middleware is the caller's job.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.getHealth)
	r.Get("/openapi.yaml", s.getOpenAPI)

	r.Route("/session", func(r chi.Router) {
		r.Get("/", s.getSession)
		r.Get("/events", s.streamEvents)

		r.Put("/attendees/{kind}", s.putAttendees)
		r.Put("/protocolant", s.putProtocolant)
		r.Patch("/meta", s.patchMeta)
		r.Post("/meta/now/{field}", s.postStampNow)

		r.Post("/topics", s.postTopic)
		r.Post("/topics/move", s.postMoveTopic)
		r.Patch("/topics/{id}", s.patchTopic)
		r.Delete("/topics/{id}", s.deleteTopic)
		r.Post("/topics/{id}/points", s.postPoint)
		r.Put("/topics/{id}/points/{index}", s.putPoint)
		r.Delete("/topics/{id}/points/{index}", s.deletePoint)

		r.Post("/reset", s.postReset)
		r.Post("/import", s.postImport)
		r.Get("/export", s.getExport)
		r.Post("/publish", s.postPublish)
	})

	r.Get("/roster", s.getRoster)
	r.Get("/language", s.getLanguage)
	r.Put("/language", s.putLanguage)
}

// Handler returns a chi router with every endpoint mounted and no middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Routes(r)
	return r
}
