package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fsr-protokoll/editor/internal/domain"
	"github.com/fsr-protokoll/editor/internal/handler"
	"github.com/fsr-protokoll/editor/internal/i18n"
	"github.com/fsr-protokoll/editor/internal/repo"
	"github.com/fsr-protokoll/editor/internal/service"
)

// mockSender is a test double for service.Sender.
// Set only the send field when a test publishes.
type mockSender struct {
	send func(ctx context.Context, content []byte, dateLabel, password string, lang i18n.Language) (service.PublishResult, error)
}

func (m *mockSender) Send(ctx context.Context, content []byte, dateLabel, password string, lang i18n.Language) (service.PublishResult, error) {
	return m.send(ctx, content, dateLabel, password, lang)
}

// compile-time check: mockSender must satisfy service.Sender.
var _ service.Sender = (*mockSender)(nil)

// ---- helpers ---------------------------------------------------------------

var fixedNow = time.Date(2026, 2, 7, 15, 4, 5, 0, time.UTC)

var testMembers = domain.Roster{
	FSR:        []domain.Member{{Name: "Alice", Aliases: []string{"Ali"}}, {Name: "Bob", Aliases: []string{}}},
	Associated: []domain.Member{{Name: "Carol", Aliases: []string{}}},
}

type fixture struct {
	http    http.Handler
	session *service.Session
	slots   *repo.MemorySlotStore
}

// newFixture wires a real Editor over an in-memory slot store, the way
// main.go wires it over a real one.
func newFixture(t *testing.T, sender service.Sender) fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	slots := repo.NewMemorySlotStore()
	langs := service.NewLanguages(repo.NewLanguageRepo(slots), "de", logger)
	session := service.NewSession(repo.NewSessionRepo(slots), langs, logger,
		service.WithClock(func() time.Time { return fixedNow }))
	session.Load(context.Background())
	if sender == nil {
		sender = &mockSender{send: func(context.Context, []byte, string, string, i18n.Language) (service.PublishResult, error) {
			t.Fatal("unexpected publish")
			return service.PublishResult{}, nil
		}}
	}
	editor := service.NewEditor(session, sender, logger)
	srv := handler.NewServer(editor, testMembers, []string{"http://localhost:3000"}, logger)
	return fixture{http: srv.Handler(), session: session, slots: slots}
}

func (f fixture) do(t *testing.T, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	f.http.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) domain.Session {
	t.Helper()
	var s domain.Session
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&s))
	return s
}

type errorResponse struct {
	Error struct {
		Code     string `json:"code"`
		Message  string `json:"message"`
		Question *struct {
			Title       string `json:"title"`
			Message     string `json:"message"`
			Destructive bool   `json:"destructive"`
			Hidden      bool   `json:"hidden"`
		} `json:"question"`
		Notices []struct {
			Title   string `json:"title"`
			Message string `json:"message"`
		} `json:"notices"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var e errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&e))
	return e
}

// addTopic creates a topic through the API and returns its id.
func (f fixture) addTopic(t *testing.T) string {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/session/topics", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var body struct {
		Topic domain.Topic `json:"topic"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Topic.ID
}

func jsonDecode(rec *httptest.ResponseRecorder, v any) error {
	return json.NewDecoder(rec.Body).Decode(v)
}
