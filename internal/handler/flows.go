package handler

import (
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/fsr-protokoll/editor/internal/domain"
	"github.com/fsr-protokoll/editor/internal/service"
)

type flowResponse struct {
	Session domain.Session `json:"session"`
	Notices []noticeBody   `json:"notices"`
}

type publishRequest struct {
	Confirm  bool    `json:"confirm"`
	Password *string `json:"password"`
}

type publishResponse struct {
	Result  service.PublishResult `json:"result"`
	Notices []noticeBody          `json:"notices"`
}

// postReset handles POST /session/reset?confirm=true.
func (s *Server) postReset(w http.ResponseWriter, r *http.Request) {
	dlg := &requestDialog{confirmed: confirmed(r)}
	if err := s.editor.Reset(r.Context(), dlg); err != nil {
		s.writeError(w, r, err, dlg)
		return
	}
	s.writeFlow(w, dlg)
}

// postImport handles POST /session/import. The document is the raw body or,
// for multipart/form-data, the part named "file". Replacing a session that
// has topics needs ?confirm=true.
func (s *Server) postImport(w http.ResponseWriter, r *http.Request) {
	dlg := &requestDialog{confirmed: confirmed(r)}

	body := io.Reader(r.Body)
	if mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mediaType == "multipart/form-data" {
		file, _, err := r.FormFile("file")
		if err != nil {
			s.writeError(w, r, invalid("multipart body needs a %q part", "file"), nil)
			return
		}
		defer file.Close()
		body = file
	}

	if err := s.editor.Import(r.Context(), dlg, body); err != nil {
		s.writeError(w, r, err, dlg)
		return
	}
	s.writeFlow(w, dlg)
}

// getExport handles GET /session/export. The document is sent as an
// attachment under its localized file name.
func (s *Server) getExport(w http.ResponseWriter, r *http.Request) {
	export, err := s.editor.Export(r.Context())
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	w.Header().Set("Content-Type", export.ContentType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": export.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(export.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(export.Content)
}

// postPublish handles POST /session/publish. The body carries the user's
// answer to the confirmation and the password prompt; a missing answer
// yields 409 with the question to ask.
func (s *Server) postPublish(w http.ResponseWriter, r *http.Request) {
	var body publishRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	dlg := &requestDialog{confirmed: body.Confirm || confirmed(r), password: body.Password}

	result, err := s.editor.Send(r.Context(), dlg)
	if err != nil {
		s.writeError(w, r, err, dlg)
		return
	}
	writeJSON(w, http.StatusOK, publishResponse{Result: result, Notices: notices(dlg)})
}

func (s *Server) writeFlow(w http.ResponseWriter, dlg *requestDialog) {
	writeJSON(w, http.StatusOK, flowResponse{Session: s.session.Snapshot(), Notices: notices(dlg)})
}

// confirmed reads the ?confirm= query flag.
func confirmed(r *http.Request) bool {
	ok, _ := strconv.ParseBool(strings.TrimSpace(r.URL.Query().Get("confirm")))
	return ok
}

func notices(dlg *requestDialog) []noticeBody {
	if n := dlg.noticeBodies(); n != nil {
		return n
	}
	return []noticeBody{}
}
