package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fsr-protokoll/editor/internal/domain"
	"github.com/fsr-protokoll/editor/internal/i18n"
	"github.com/fsr-protokoll/editor/internal/repo"
)

// State is the lifecycle position of a Session.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	}
	return "uninitialized"
}

// saveTimeout bounds one autosave.
const saveTimeout = 5 * time.Second

// Session is the single owner of the editable meeting record.
//
// Every mutation runs under one mutex, so concurrent HTTP requests are
// applied one at a time. Mutations are ignored until Load has finished.
// After each applied mutation the model is saved and subscribers are
// notified; a failed save is logged and the edit stands. Operations that
// address a missing topic or point are silent no-ops.
type Session struct {
	repo   repo.SessionRepo
	langs  *Languages
	logger *slog.Logger
	now    func() time.Time
	newID  func() string

	mu    sync.Mutex
	state State
	model domain.Session
	seq   uint64 // bumped under mu for every published snapshot

	subMu   sync.Mutex
	subs    map[int]func(domain.Session)
	nextSub int

	// deliverMu serializes notify; delivered is the newest seq handed out.
	deliverMu sync.Mutex
	delivered uint64
}

// SessionOption customizes a Session.
type SessionOption func(*Session)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// WithIDs replaces the topic id source, for tests.
func WithIDs(newID func() string) SessionOption {
	return func(s *Session) { s.newID = newID }
}

// NewSession constructs an uninitialized Session. Call Load before use.
func NewSession(r repo.SessionRepo, langs *Languages, logger *slog.Logger, opts ...SessionOption) *Session {
	s := &Session{
		repo:   r,
		langs:  langs,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
		subs:   make(map[int]func(domain.Session)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.model = domain.NewSession(s.now())
	return s
}

// Load reads the stored session and moves to Ready. A missing or unreadable
// snapshot yields a fresh session. Calling Load again is a no-op.
func (s *Session) Load(ctx context.Context) {
	s.mu.Lock()
	if s.state != StateUninitialized {
		s.mu.Unlock()
		return
	}
	s.state = StateLoading
	s.mu.Unlock()

	model, err := s.repo.Load(ctx, s.now())
	if err != nil {
		s.logger.Error("session: load failed, starting empty", "error", err)
		model = domain.NewSession(s.now())
	}

	s.mu.Lock()
	s.model = model.Clone()
	s.state = StateReady
	snap := s.model.Clone()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	s.notify(seq, snap)
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns a deep copy of the model.
func (s *Session) Snapshot() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Clone()
}

// Subscribe registers fn to receive a snapshot after applied mutations.
// Snapshots arrive in mutation order; under concurrent edits an older one
// is skipped once a newer one has been delivered, so the last snapshot fn
// sees is always the current model. fn runs outside the session lock but
// must not block for long or mutate the session. The returned function
// removes the subscription.
func (s *Session) Subscribe(fn func(domain.Session)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// ---- attendees and meta ----------------------------------------------------

// SetAttendees replaces the FSR or guest list.
func (s *Session) SetAttendees(kind domain.AttendeeKind, names []string) {
	s.mutate("set_attendees", func(m *domain.Session) bool {
		switch kind {
		case domain.AttendeeFSR:
			m.FSRMembers = cloneNames(names)
		case domain.AttendeeGuest:
			m.Guests = cloneNames(names)
		default:
			return false
		}
		return true
	})
}

// SetProtocolant replaces the minute taker; only the first name is kept.
func (s *Session) SetProtocolant(names []string) {
	s.mutate("set_protocolant", func(m *domain.Session) bool {
		p := cloneNames(names)
		if len(p) > 1 {
			p = p[:1]
		}
		m.Protocolant = p
		return true
	})
}

// SetMeta merges patch into the meeting details.
func (s *Session) SetMeta(patch domain.MetaPatch) {
	s.mutate("set_meta", func(m *domain.Session) bool {
		return patch.Apply(&m.Meta)
	})
}

// StampNow writes the current UTC time of day into Start or End.
func (s *Session) StampNow(field domain.TimeField) {
	stamp := s.now().UTC().Format(domain.ClockLayout)
	s.mutate("stamp_now", func(m *domain.Session) bool {
		switch field {
		case domain.FieldStart:
			m.Meta.Start = stamp
		case domain.FieldEnd:
			m.Meta.End = stamp
		default:
			return false
		}
		return true
	})
}

// ---- topics ----------------------------------------------------------------

// AddTopic appends a topic with the title for the current language and one
// empty point, and returns it. Before Load it returns the zero Topic.
func (s *Session) AddTopic(ctx context.Context) domain.Topic {
	title := i18n.T(s.langs.Current(ctx), i18n.SessionNewTopic)
	var added domain.Topic
	s.mutate("add_topic", func(m *domain.Session) bool {
		added = domain.Topic{ID: s.newID(), Title: title, Points: []string{""}}
		m.Topics = append(m.Topics, domain.Topic{ID: added.ID, Title: title, Points: []string{""}})
		return true
	})
	return added
}

// UpdateTopicTitle renames the topic with the given id.
func (s *Session) UpdateTopicTitle(id, title string) {
	s.mutateTopic("update_topic_title", id, func(t *domain.Topic) bool {
		t.Title = title
		return true
	})
}

// RemoveTopic deletes the topic with the given id.
func (s *Session) RemoveTopic(id string) {
	s.mutate("remove_topic", func(m *domain.Session) bool {
		i := m.TopicIndex(id)
		if i < 0 {
			return false
		}
		m.Topics = append(m.Topics[:i], m.Topics[i+1:]...)
		return true
	})
}

// AddPoint appends an empty point to the topic.
func (s *Session) AddPoint(id string) {
	s.mutateTopic("add_point", id, func(t *domain.Topic) bool {
		t.Points = append(t.Points, "")
		return true
	})
}

// UpdatePoint sets the point at index.
func (s *Session) UpdatePoint(id string, index int, value string) {
	s.mutateTopic("update_point", id, func(t *domain.Topic) bool {
		if index < 0 || index >= len(t.Points) {
			return false
		}
		t.Points[index] = value
		return true
	})
}

// RemovePoint deletes the point at index.
func (s *Session) RemovePoint(id string, index int) {
	s.mutateTopic("remove_point", id, func(t *domain.Topic) bool {
		if index < 0 || index >= len(t.Points) {
			return false
		}
		t.Points = append(t.Points[:index], t.Points[index+1:]...)
		return true
	})
}

// MoveTopic moves the topic at oldIndex so that it ends up at newIndex.
// An out of range oldIndex is a no-op; newIndex is clamped.
func (s *Session) MoveTopic(oldIndex, newIndex int) {
	s.mutate("move_topic", func(m *domain.Session) bool {
		return moveTopic(m, oldIndex, newIndex)
	})
}

// MoveTopicOnto moves the topic movedID to the position currently held by
// overID, as at the end of a drag. Unknown or equal ids are a no-op.
func (s *Session) MoveTopicOnto(movedID, overID string) {
	s.mutate("move_topic", func(m *domain.Session) bool {
		if movedID == overID {
			return false
		}
		from, to := m.TopicIndex(movedID), m.TopicIndex(overID)
		if from < 0 || to < 0 {
			return false
		}
		return moveTopic(m, from, to)
	})
}

func moveTopic(m *domain.Session, from, to int) bool {
	n := len(m.Topics)
	if from < 0 || from >= n {
		return false
	}
	to = max(0, min(to, n-1))
	if from == to {
		return false
	}
	moved := m.Topics[from]
	m.Topics = append(m.Topics[:from], m.Topics[from+1:]...)
	m.Topics = append(m.Topics[:to], append([]domain.Topic{moved}, m.Topics[to:]...)...)
	return true
}

// ---- whole-session operations ----------------------------------------------

// Replace swaps in an imported session.
func (s *Session) Replace(next domain.Session) {
	s.mutate("replace", func(m *domain.Session) bool {
		*m = next.Clone()
		return true
	})
}

// Reset clears the stored snapshot and starts over with today's defaults.
// Confirmation is the caller's job.
func (s *Session) Reset() {
	s.mutate("reset", func(m *domain.Session) bool {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := s.repo.Clear(ctx); err != nil {
			s.logger.Error("session: clear failed", "error", err)
		}
		*m = domain.NewSession(s.now())
		return true
	})
}

// ---- internals -------------------------------------------------------------

// mutate applies fn under the lock when the session is Ready. fn reports
// whether it changed anything; only then is the model saved and published.
func (s *Session) mutate(op string, fn func(m *domain.Session) bool) {
	s.mu.Lock()
	if s.state != StateReady {
		state := s.state
		s.mu.Unlock()
		s.logger.Warn("session: mutation ignored before load", "op", op, "state", state.String())
		return
	}
	if !fn(&s.model) {
		s.mu.Unlock()
		return
	}
	snap := s.model.Clone()
	s.save(op, snap)
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	s.notify(seq, snap)
}

func (s *Session) mutateTopic(op, id string, fn func(t *domain.Topic) bool) {
	s.mutate(op, func(m *domain.Session) bool {
		i := m.TopicIndex(id)
		if i < 0 {
			return false
		}
		return fn(&m.Topics[i])
	})
}

// save runs under s.mu so snapshots reach the store in mutation order.
func (s *Session) save(op string, snap domain.Session) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := s.repo.Save(ctx, snap); err != nil {
		s.logger.Error("session: save failed", "op", op, "error", err)
	}
}

// notify hands snap to every subscriber unless a newer snapshot already
// went out, in which case snap is stale and dropped.
func (s *Session) notify(seq uint64, snap domain.Session) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()
	if seq <= s.delivered {
		return
	}
	s.delivered = seq

	s.subMu.Lock()
	fns := make([]func(domain.Session), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap.Clone())
	}
}

func cloneNames(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}
