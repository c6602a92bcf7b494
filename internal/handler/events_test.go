package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsr-protokoll/editor/internal/domain"
)

type sessionEvent struct {
	Type    string         `json:"type"`
	Session domain.Session `json:"session"`
}

func dialEvents(t *testing.T, srv *httptest.Server, origin string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/session/events"
	return websocket.DefaultDialer.Dial(url, header)
}

// TestStreamEvents_sendsSnapshotAfterMutation verifies that a subscriber
// first receives the current state, then the state after each change.
func TestStreamEvents_sendsSnapshotAfterMutation(t *testing.T) {
	f := newFixture(t, nil)
	srv := httptest.NewServer(f.http)
	defer srv.Close()

	conn, _, err := dialEvents(t, srv, "http://localhost:3000")
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var ev sessionEvent
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "snapshot", ev.Type)
	assert.Empty(t, ev.Session.Topics)

	f.session.SetAttendees(domain.AttendeeFSR, []string{"Alice"})

	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, []string{"Alice"}, ev.Session.FSRMembers)
}

func TestStreamEvents_rejectsForeignOrigin(t *testing.T) {
	f := newFixture(t, nil)
	srv := httptest.NewServer(f.http)
	defer srv.Close()

	_, resp, err := dialEvents(t, srv, "http://evil.example.com")

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
