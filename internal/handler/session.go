package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/fsr-protokoll/editor/internal/domain"
)

type namesRequest struct {
	Names []string `json:"names"`
}

type metaRequest struct {
	Date  *metaDate `json:"date"`
	Start *string   `json:"start"`
	End   *string   `json:"end"`
}

// metaDate is a calendar date in YYYY-MM-DD form, or "" to clear the date.
type metaDate struct {
	openapi_types.Date
	clear bool
}

func (d *metaDate) UnmarshalJSON(b []byte) error {
	if string(b) == `""` {
		d.clear = true
		return nil
	}
	if err := d.Date.UnmarshalJSON(b); err != nil {
		return invalid("date must be YYYY-MM-DD")
	}
	return nil
}

// patch returns the value to store, or nil when the field was omitted.
func (d *metaDate) patch() *string {
	if d == nil {
		return nil
	}
	v := ""
	if !d.clear {
		v = d.Time.Format(openapi_types.DateFormat)
	}
	return &v
}

type titleRequest struct {
	Title *string `json:"title"`
}

type pointRequest struct {
	Value *string `json:"value"`
}

// moveRequest moves by index (from, to) or, at the end of a drag, by id
// (id, over).
type moveRequest struct {
	From *int   `json:"from"`
	To   *int   `json:"to"`
	ID   string `json:"id"`
	Over string `json:"over"`
}

type topicCreated struct {
	Topic   domain.Topic   `json:"topic"`
	Session domain.Session `json:"session"`
}

// getSession handles GET /session.
func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	s.writeSnapshot(w, http.StatusOK)
}

// putAttendees handles PUT /session/attendees/{kind}.
func (s *Server) putAttendees(w http.ResponseWriter, r *http.Request) {
	kind := domain.AttendeeKind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		s.writeError(w, r, invalid("attendee kind must be %q or %q", domain.AttendeeFSR, domain.AttendeeGuest), nil)
		return
	}
	var body namesRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	s.session.SetAttendees(kind, body.Names)
	s.writeSnapshot(w, http.StatusOK)
}

// putProtocolant handles PUT /session/protocolant. Extra names are dropped.
func (s *Server) putProtocolant(w http.ResponseWriter, r *http.Request) {
	var body namesRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	s.session.SetProtocolant(body.Names)
	s.writeSnapshot(w, http.StatusOK)
}

// patchMeta handles PATCH /session/meta. Omitted fields are kept; an empty
// date clears it.
func (s *Server) patchMeta(w http.ResponseWriter, r *http.Request) {
	var body metaRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	s.session.SetMeta(domain.MetaPatch{Date: body.Date.patch(), Start: body.Start, End: body.End})
	s.writeSnapshot(w, http.StatusOK)
}

// postStampNow handles POST /session/meta/now/{field}.
func (s *Server) postStampNow(w http.ResponseWriter, r *http.Request) {
	field := domain.TimeField(chi.URLParam(r, "field"))
	if !field.Valid() {
		s.writeError(w, r, invalid("field must be %q or %q", domain.FieldStart, domain.FieldEnd), nil)
		return
	}
	s.session.StampNow(field)
	s.writeSnapshot(w, http.StatusOK)
}

// postTopic handles POST /session/topics.
func (s *Server) postTopic(w http.ResponseWriter, r *http.Request) {
	topic := s.session.AddTopic(r.Context())
	writeJSON(w, http.StatusCreated, topicCreated{Topic: topic, Session: s.session.Snapshot()})
}

// patchTopic handles PATCH /session/topics/{id}.
func (s *Server) patchTopic(w http.ResponseWriter, r *http.Request) {
	var body titleRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	if body.Title == nil {
		s.writeError(w, r, invalid("title is required"), nil)
		return
	}
	s.session.UpdateTopicTitle(chi.URLParam(r, "id"), *body.Title)
	s.writeSnapshot(w, http.StatusOK)
}

// deleteTopic handles DELETE /session/topics/{id}.
func (s *Server) deleteTopic(w http.ResponseWriter, r *http.Request) {
	s.session.RemoveTopic(chi.URLParam(r, "id"))
	s.writeSnapshot(w, http.StatusOK)
}

// postPoint handles POST /session/topics/{id}/points.
func (s *Server) postPoint(w http.ResponseWriter, r *http.Request) {
	s.session.AddPoint(chi.URLParam(r, "id"))
	s.writeSnapshot(w, http.StatusOK)
}

// putPoint handles PUT /session/topics/{id}/points/{index}.
func (s *Server) putPoint(w http.ResponseWriter, r *http.Request) {
	index, err := pointIndex(r)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	var body pointRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	if body.Value == nil {
		s.writeError(w, r, invalid("value is required"), nil)
		return
	}
	s.session.UpdatePoint(chi.URLParam(r, "id"), index, *body.Value)
	s.writeSnapshot(w, http.StatusOK)
}

// deletePoint handles DELETE /session/topics/{id}/points/{index}.
func (s *Server) deletePoint(w http.ResponseWriter, r *http.Request) {
	index, err := pointIndex(r)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	s.session.RemovePoint(chi.URLParam(r, "id"), index)
	s.writeSnapshot(w, http.StatusOK)
}

// postMoveTopic handles POST /session/topics/move.
func (s *Server) postMoveTopic(w http.ResponseWriter, r *http.Request) {
	var body moveRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	switch {
	case body.From != nil && body.To != nil:
		s.session.MoveTopic(*body.From, *body.To)
	case body.ID != "" && body.Over != "":
		s.session.MoveTopicOnto(body.ID, body.Over)
	default:
		s.writeError(w, r, invalid("either from and to or id and over are required"), nil)
		return
	}
	s.writeSnapshot(w, http.StatusOK)
}

func (s *Server) writeSnapshot(w http.ResponseWriter, code int) {
	writeJSON(w, code, s.session.Snapshot())
}

func pointIndex(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid("point index %q is not a number", raw)
	}
	return index, nil
}
