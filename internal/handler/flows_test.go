package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsr-protokoll/editor/internal/domain"
	"github.com/fsr-protokoll/editor/internal/i18n"
	"github.com/fsr-protokoll/editor/internal/service"
)

const importDoc = `FSR: [Alice, Bob]
Protokollant: Eve
Date: 2026-03-01
Sitzung:
  Budget: [ok]
`

// ---- reset -----------------------------------------------------------------

func TestPostReset_needsConfirmation(t *testing.T) {
	f := newFixture(t, nil)
	f.addTopic(t)

	rec := f.do(t, http.MethodPost, "/session/reset", nil)

	require.Equal(t, http.StatusConflict, rec.Code)
	e := decodeError(t, rec)
	assert.Equal(t, "confirmation_required", e.Error.Code)
	require.NotNil(t, e.Error.Question)
	assert.Equal(t, i18n.T(i18n.German, i18n.ResetTitle), e.Error.Question.Title)
	assert.True(t, e.Error.Question.Destructive)
	assert.Len(t, f.session.Snapshot().Topics, 1)
}

func TestPostReset_confirmed(t *testing.T) {
	f := newFixture(t, nil)
	f.addTopic(t)

	rec := f.do(t, http.MethodPost, "/session/reset?confirm=true", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, f.session.Snapshot().Topics)
}

// ---- import ----------------------------------------------------------------

func TestPostImport_rawBody(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, http.MethodPost, "/session/import", strings.NewReader(importDoc))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Session domain.Session `json:"session"`
		Notices []any          `json:"notices"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, []string{"Alice", "Bob"}, body.Session.FSRMembers)
	assert.Equal(t, "2026-03-01", body.Session.Meta.Date)
	assert.Empty(t, body.Notices)
}

func TestPostImport_multipart(t *testing.T) {
	f := newFixture(t, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "Protokoll_2026-03-01.yaml")
	require.NoError(t, err)
	_, err = part.Write([]byte(importDoc))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/session/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	f.http.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Eve"}, f.session.Snapshot().Protocolant)
}

func TestPostImport_overwriteNeedsConfirmation(t *testing.T) {
	f := newFixture(t, nil)
	f.addTopic(t)

	rec := f.do(t, http.MethodPost, "/session/import", strings.NewReader(importDoc))
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodPost, "/session/import?confirm=true", strings.NewReader(importDoc))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Budget", f.session.Snapshot().Topics[0].Title)
}

// TestPostImport_invalidDocument verifies that a rejected document keeps the
// session and reports the localized read error.
func TestPostImport_invalidDocument(t *testing.T) {
	f := newFixture(t, nil)
	before := f.session.Snapshot()

	rec := f.do(t, http.MethodPost, "/session/import", strings.NewReader("- just\n- a list\n"))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	e := decodeError(t, rec)
	assert.Equal(t, "invalid_document", e.Error.Code)
	assert.Equal(t, i18n.T(i18n.German, i18n.YAMLReadError), e.Error.Message)
	require.Len(t, e.Error.Notices, 1)
	assert.Equal(t, before, f.session.Snapshot())
}

// ---- export ----------------------------------------------------------------

func TestGetExport(t *testing.T) {
	f := newFixture(t, nil)
	f.do(t, http.MethodPost, "/session/import", strings.NewReader(importDoc))

	rec := f.do(t, http.MethodGet, "/session/export", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/yaml; charset=utf-8", rec.Header().Get("Content-Type"))
	_, params, err := mime.ParseMediaType(rec.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, "Protokoll_2026-03-01.yaml", params["filename"])
	assert.Contains(t, rec.Body.String(), "Date: 2026-03-01\n")
	assert.Contains(t, rec.Body.String(), "Sitzung:\n  Budget:\n    - ok\n")
}

// ---- publish ---------------------------------------------------------------

func TestPostPublish_asksForConfirmationThenPassword(t *testing.T) {
	sender := &mockSender{send: func(context.Context, []byte, string, string, i18n.Language) (service.PublishResult, error) {
		t.Fatal("sent without answers")
		return service.PublishResult{}, nil
	}}
	f := newFixture(t, sender)

	rec := f.do(t, http.MethodPost, "/session/publish", jsonBody(t, map[string]any{}))
	require.Equal(t, http.StatusConflict, rec.Code)
	e := decodeError(t, rec)
	require.NotNil(t, e.Error.Question)
	assert.False(t, e.Error.Question.Hidden)

	rec = f.do(t, http.MethodPost, "/session/publish", jsonBody(t, map[string]any{"confirm": true}))
	require.Equal(t, http.StatusConflict, rec.Code)
	e = decodeError(t, rec)
	require.NotNil(t, e.Error.Question)
	assert.True(t, e.Error.Question.Hidden)
	assert.Equal(t, i18n.T(i18n.German, i18n.DiscordPasswordTitle), e.Error.Question.Title)
}

func TestPostPublish_success(t *testing.T) {
	var gotPassword, gotDate string
	sender := &mockSender{send: func(_ context.Context, content []byte, dateLabel, password string, lang i18n.Language) (service.PublishResult, error) {
		gotPassword, gotDate = password, dateLabel
		return service.PublishResult{Success: true, Message: i18n.T(lang, i18n.DiscordSent)}, nil
	}}
	f := newFixture(t, sender)

	rec := f.do(t, http.MethodPost, "/session/publish", jsonBody(t, map[string]any{"confirm": true, "password": "pw"}))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Result  service.PublishResult `json:"result"`
		Notices []struct {
			Title string `json:"title"`
		} `json:"notices"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Result.Success)
	require.Len(t, body.Notices, 1)
	assert.Equal(t, i18n.T(i18n.German, i18n.SuccessTitle), body.Notices[0].Title)
	assert.Equal(t, "pw", gotPassword)
	assert.Equal(t, "2026-02-07", gotDate)
}

// TestPostPublish_errorMapping verifies the status code of every publish
// failure and that the localized message reaches the client.
func TestPostPublish_errorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotConfigured, http.StatusServiceUnavailable, "not_configured"},
		{domain.ErrMissingCredential, http.StatusUnauthorized, "missing_credential"},
		{domain.ErrInvalidCredential, http.StatusForbidden, "invalid_credential"},
		{&domain.DeliveryError{StatusCode: 400, StatusText: "Bad Request"}, http.StatusBadGateway, "delivery_failed"},
		{domain.ErrNetwork, http.StatusGatewayTimeout, "network_error"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			sender := &mockSender{send: func(context.Context, []byte, string, string, i18n.Language) (service.PublishResult, error) {
				return service.PublishResult{Success: false, Message: "localized " + tc.code}, fmt.Errorf("service.Publisher.Send: %w", tc.err)
			}}
			f := newFixture(t, sender)

			rec := f.do(t, http.MethodPost, "/session/publish", jsonBody(t, map[string]any{"confirm": true, "password": ""}))

			require.Equal(t, tc.status, rec.Code)
			e := decodeError(t, rec)
			assert.Equal(t, tc.code, e.Error.Code)
			assert.Equal(t, "localized "+tc.code, e.Error.Message)
		})
	}
}
