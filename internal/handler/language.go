package handler

import (
	"net/http"

	"github.com/fsr-protokoll/editor/internal/i18n"
)

type languageResponse struct {
	Language  i18n.Language   `json:"language"`
	Available []i18n.Language `json:"available"`
}

type languageRequest struct {
	Language string `json:"language"`
}

// getLanguage handles GET /language.
func (s *Server) getLanguage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, languageResponse{Language: s.editor.Language(r.Context()), Available: i18n.Languages})
}

// putLanguage handles PUT /language. Unknown languages fall back to German,
// the stored value is returned.
func (s *Server) putLanguage(w http.ResponseWriter, r *http.Request) {
	var body languageRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	lang := s.editor.SetLanguage(r.Context(), body.Language)
	writeJSON(w, http.StatusOK, languageResponse{Language: lang, Available: i18n.Languages})
}
