// Package domain contains the core data types for the Protokoll editor.
// This package has zero external dependencies and is imported by every other
// internal package (codec, repo, service, handler).
package domain

import (
	"slices"
	"time"
)

// Defaults applied whenever a session is created empty or a document omits
// its meeting times.
const (
	DefaultStart = "16:30"
	DefaultEnd   = "17:30"
)

// DateLayout is the canonical calendar date form used in the model and the
// exported document.
const DateLayout = "2006-01-02"

// AttendeeKind selects one of the two attendee lists of a session.
type AttendeeKind string

const (
	AttendeeFSR   AttendeeKind = "fsr"
	AttendeeGuest AttendeeKind = "guest"
)

// Valid reports whether k names a known attendee list.
func (k AttendeeKind) Valid() bool {
	return k == AttendeeFSR || k == AttendeeGuest
}

// TimeField selects Meta.Start or Meta.End for the "now" stamp.
type TimeField string

const (
	FieldStart TimeField = "start"
	FieldEnd   TimeField = "end"
)

// Valid reports whether f names a time field.
func (f TimeField) Valid() bool {
	return f == FieldStart || f == FieldEnd
}

// ClockLayout is the form written by the "now" stamp.
const ClockLayout = "15:04:05"

// Meta holds the meeting details shown next to the attendance lists.
// Start and End are kept as entered (HH:MM or HH:MM:SS).
type Meta struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// MetaPatch is a partial Meta; nil fields are left untouched by a merge.
type MetaPatch struct {
	Date  *string
	Start *string
	End   *string
}

// Apply merges the patch into m and reports whether anything was set.
func (p MetaPatch) Apply(m *Meta) bool {
	changed := false
	if p.Date != nil {
		m.Date = *p.Date
		changed = true
	}
	if p.Start != nil {
		m.Start = *p.Start
		changed = true
	}
	if p.End != nil {
		m.End = *p.End
		changed = true
	}
	return changed
}

// Topic is one agenda item. ID is assigned once when the topic is created
// (by import or by "add topic") and is the only key used to address it;
// titles are not unique inside a session.
type Topic struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Points []string `json:"points"`
}

// Session is the complete editable state of one meeting record.
// Protocolant holds zero or one name; it is a list so the same tag-selection
// contract serves both attendee lists and the minute taker.
type Session struct {
	FSRMembers  []string `json:"fsrMembers"`
	Guests      []string `json:"guests"`
	Protocolant []string `json:"protocolant"`
	Meta        Meta     `json:"meta"`
	Topics      []Topic  `json:"topics"`
}

// NewSession returns the empty session used on first load and after reset.
func NewSession(now time.Time) Session {
	return Session{
		FSRMembers:  []string{},
		Guests:      []string{},
		Protocolant: []string{},
		Meta: Meta{
			Date:  Today(now),
			Start: DefaultStart,
			End:   DefaultEnd,
		},
		Topics: []Topic{},
	}
}

// Today formats the UTC calendar date of now.
func Today(now time.Time) string {
	return now.UTC().Format(DateLayout)
}

// Clone returns a deep copy so callers can never alias the owner's slices.
// Nil slices come back as empty slices.
func (s Session) Clone() Session {
	out := Session{
		FSRMembers:  cloneStrings(s.FSRMembers),
		Guests:      cloneStrings(s.Guests),
		Protocolant: cloneStrings(s.Protocolant),
		Meta:        s.Meta,
		Topics:      make([]Topic, len(s.Topics)),
	}
	for i, t := range s.Topics {
		out.Topics[i] = Topic{ID: t.ID, Title: t.Title, Points: cloneStrings(t.Points)}
	}
	return out
}

// TopicIndex returns the position of the topic with the given id, or -1.
func (s Session) TopicIndex(id string) int {
	return slices.IndexFunc(s.Topics, func(t Topic) bool { return t.ID == id })
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return slices.Clone(in)
}
