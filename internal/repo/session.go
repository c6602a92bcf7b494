package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fsr-protokoll/editor/internal/domain"
)

// SessionKey is the slot holding the session snapshot. The name and the JSON
// layout below match what the browser editor kept in local storage, so a
// snapshot can be moved between the two.
const SessionKey = "fsr-protocol-data"

// SessionRepo persists the single editable session.
type SessionRepo interface {
	// Save writes a full snapshot of s.
	Save(ctx context.Context, s domain.Session) error

	// Load returns the stored session. When nothing is stored it returns a
	// fresh session for now. A snapshot that cannot be read is an error;
	// callers fall back to a fresh session.
	Load(ctx context.Context, now time.Time) (domain.Session, error)

	// Clear removes the snapshot.
	Clear(ctx context.Context) error
}

type snapshot struct {
	FSRMembers   []string       `json:"fsrMembers"`
	Guests       []string       `json:"guests"`
	Protocolant  []string       `json:"protocolant"`
	Meta         *snapshotMeta  `json:"meta"`
	SessionItems []snapshotItem `json:"sessionItems"`
}

type snapshotMeta struct {
	Date  string `json:"Date"`
	Start string `json:"Start"`
	Ende  string `json:"Ende"`
}

type snapshotItem struct {
	ID     string   `json:"id"`
	Topic  string   `json:"topic"`
	Points []string `json:"points"`
}

type slotSessionRepo struct {
	slots SlotStore
}

// NewSessionRepo constructs a SessionRepo storing its snapshot in slots.
func NewSessionRepo(slots SlotStore) SessionRepo {
	return &slotSessionRepo{slots: slots}
}

func (r *slotSessionRepo) Save(ctx context.Context, s domain.Session) error {
	snap := snapshot{
		FSRMembers:   s.FSRMembers,
		Guests:       s.Guests,
		Protocolant:  s.Protocolant,
		Meta:         &snapshotMeta{Date: s.Meta.Date, Start: s.Meta.Start, Ende: s.Meta.End},
		SessionItems: make([]snapshotItem, len(s.Topics)),
	}
	for i, t := range s.Topics {
		snap.SessionItems[i] = snapshotItem{ID: t.ID, Topic: t.Title, Points: t.Points}
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("repo.SessionRepo.Save: %w", err)
	}
	if err := r.slots.Put(ctx, SessionKey, string(raw)); err != nil {
		return fmt.Errorf("repo.SessionRepo.Save: %w", err)
	}
	return nil
}

func (r *slotSessionRepo) Load(ctx context.Context, now time.Time) (domain.Session, error) {
	raw, err := r.slots.Get(ctx, SessionKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewSession(now), nil
		}
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.Load: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.Load: decode snapshot: %w", err)
	}
	return fromSnapshot(snap, now), nil
}

func (r *slotSessionRepo) Clear(ctx context.Context) error {
	if err := r.slots.Delete(ctx, SessionKey); err != nil {
		return fmt.Errorf("repo.SessionRepo.Clear: %w", err)
	}
	return nil
}

// fromSnapshot fills every missing field with its default individually.
func fromSnapshot(snap snapshot, now time.Time) domain.Session {
	s := domain.NewSession(now)
	if snap.FSRMembers != nil {
		s.FSRMembers = snap.FSRMembers
	}
	if snap.Guests != nil {
		s.Guests = snap.Guests
	}
	if len(snap.Protocolant) > 0 {
		s.Protocolant = snap.Protocolant[:1]
	}
	if m := snap.Meta; m != nil {
		if m.Date != "" {
			s.Meta.Date = m.Date
		}
		if m.Start != "" {
			s.Meta.Start = m.Start
		}
		if m.Ende != "" {
			s.Meta.End = m.Ende
		}
	}
	for _, item := range snap.SessionItems {
		t := domain.Topic{ID: item.ID, Title: item.Topic, Points: item.Points}
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if t.Points == nil {
			t.Points = []string{}
		}
		s.Topics = append(s.Topics, t)
	}
	return s
}
