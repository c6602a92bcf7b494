package service_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/fsr-protokoll/editor/internal/domain"
	"github.com/fsr-protokoll/editor/internal/i18n"
	"github.com/fsr-protokoll/editor/internal/repo"
	"github.com/fsr-protokoll/editor/internal/service"
)

// mockSessionRepo is a hand-written test double for repo.SessionRepo.
// Each method is a function field; unset fields fall back to an in-memory
// snapshot so tests only override what they care about.
type mockSessionRepo struct {
	save  func(ctx context.Context, s domain.Session) error
	load  func(ctx context.Context, now time.Time) (domain.Session, error)
	clear func(ctx context.Context) error

	mu     sync.Mutex
	saved  []domain.Session
	clears int
}

func (m *mockSessionRepo) Save(ctx context.Context, s domain.Session) error {
	m.mu.Lock()
	m.saved = append(m.saved, s)
	m.mu.Unlock()
	if m.save != nil {
		return m.save(ctx, s)
	}
	return nil
}
func (m *mockSessionRepo) Load(ctx context.Context, now time.Time) (domain.Session, error) {
	if m.load != nil {
		return m.load(ctx, now)
	}
	return domain.NewSession(now), nil
}
func (m *mockSessionRepo) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.clears++
	m.mu.Unlock()
	if m.clear != nil {
		return m.clear(ctx)
	}
	return nil
}

func (m *mockSessionRepo) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saved)
}

func (m *mockSessionRepo) lastSaved() domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved[len(m.saved)-1]
}

// compile-time check: mockSessionRepo must satisfy repo.SessionRepo.
var _ repo.SessionRepo = (*mockSessionRepo)(nil)

// ---- helpers ---------------------------------------------------------------

var fixedNow = time.Date(2026, 2, 7, 15, 4, 5, 0, time.UTC)

var ctx = context.Background()

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seqIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newLanguages(t *testing.T, lang i18n.Language) *service.Languages {
	t.Helper()
	return service.NewLanguages(repo.NewLanguageRepo(repo.NewMemorySlotStore()), string(lang), discardLogger())
}

// newLoadedSession returns a Ready session over r with a fixed clock and
// predictable ids.
func newLoadedSession(t *testing.T, r repo.SessionRepo) *service.Session {
	t.Helper()
	s := service.NewSession(r, newLanguages(t, i18n.German), discardLogger(),
		service.WithClock(func() time.Time { return fixedNow }),
		service.WithIDs(seqIDs()),
	)
	s.Load(context.Background())
	return s
}

func titles(s domain.Session) []string {
	out := make([]string, len(s.Topics))
	for i, t := range s.Topics {
		out[i] = t.Title
	}
	return out
}

// scriptedDialog answers every question with the configured values and
// records what was shown.
type scriptedDialog struct {
	confirm   bool
	password  string
	promptOK  bool
	questions []service.Question
	notices   []service.Notice
	prompts   []service.PromptRequest
}

var _ service.Dialog = (*scriptedDialog)(nil)

func (d *scriptedDialog) Confirm(_ context.Context, q service.Question) bool {
	d.questions = append(d.questions, q)
	return d.confirm
}

func (d *scriptedDialog) Alert(_ context.Context, n service.Notice) {
	d.notices = append(d.notices, n)
}

func (d *scriptedDialog) Prompt(_ context.Context, p service.PromptRequest) (string, bool) {
	d.prompts = append(d.prompts, p)
	return d.password, d.promptOK
}

// clipboardFunc adapts a function to service.Clipboard.
type clipboardFunc func(ctx context.Context) (string, error)

func (f clipboardFunc) ReadText(ctx context.Context) (string, error) { return f(ctx) }
