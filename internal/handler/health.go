package handler

import (
	"net/http"

	"github.com/fsr-protokoll/editor/spec"
)

type healthResponse struct {
	Status string `json:"status"`
	State  string `json:"state"`
}

// getHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} and the session's load state.
func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", State: s.session.State().String()})
}

// getOpenAPI serves the embedded API description.
func (s *Server) getOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}
