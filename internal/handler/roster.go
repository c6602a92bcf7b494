package handler

import (
	"net/http"

	"github.com/fsr-protokoll/editor/internal/domain"
	"github.com/fsr-protokoll/editor/internal/roster"
)

// rosterKindProtocolant picks from the FSR roster, like the attendee kind
// "fsr", but excludes the current minute taker instead.
const rosterKindProtocolant = "protocolant"

type rosterResponse struct {
	FSR         []domain.Member `json:"fsr"`
	Associated  []domain.Member `json:"associated"`
	Suggestions []string        `json:"suggestions,omitempty"`
}

// getRoster handles GET /roster. With ?kind=fsr|guest|protocolant it also
// returns the names matching ?q= that are not selected yet for that field.
func (s *Server) getRoster(w http.ResponseWriter, r *http.Request) {
	resp := rosterResponse{FSR: orEmpty(s.members.FSR), Associated: orEmpty(s.members.Associated)}

	kind := r.URL.Query().Get("kind")
	if kind != "" {
		snap := s.session.Snapshot()
		var members []domain.Member
		var selected []string
		switch kind {
		case string(domain.AttendeeFSR):
			members, selected = s.members.FSR, snap.FSRMembers
		case string(domain.AttendeeGuest):
			members, selected = s.members.Associated, snap.Guests
		case rosterKindProtocolant:
			members, selected = s.members.FSR, snap.Protocolant
		default:
			s.writeError(w, r, invalid("kind must be one of fsr, guest, protocolant"), nil)
			return
		}
		resp.Suggestions = roster.Suggest(members, r.URL.Query().Get("q"), selected)
	}
	writeJSON(w, http.StatusOK, resp)
}

func orEmpty(members []domain.Member) []domain.Member {
	if members == nil {
		return []domain.Member{}
	}
	return members
}
