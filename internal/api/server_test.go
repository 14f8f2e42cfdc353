package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MikeSquared-Agency/datebook/internal/auth"
	"github.com/MikeSquared-Agency/datebook/internal/chatlog"
	"github.com/MikeSquared-Agency/datebook/internal/notify"
	"github.com/MikeSquared-Agency/datebook/internal/testutil"

	"github.com/stretchr/testify/require"
)

type stubBot struct {
	answer       string
	err          error
	lastUserKey  string
	lastQuestion string
}

func (b *stubBot) Respond(_ context.Context, userKey, question string) (string, error) {
	b.lastUserKey = userKey
	b.lastQuestion = question
	if b.err != nil {
		return "", b.err
	}
	return b.answer, nil
}

func newTestServer(t *testing.T, bot Responder) (*Server, *chatlog.Logger) {
	t.Helper()
	logs := chatlog.New(t.TempDir())
	tokens := auth.NewTokens("test-secret", time.Hour)
	return NewServer(bot, testutil.NewMockUserStore(), tokens, logs, nil, 0), logs
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, &stubBot{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "ok", body["status"])
	require.Equal(t, "datebook", body["service"])
}

func TestChat(t *testing.T) {
	bot := &stubBot{answer: "You have the following events: Standup on March 3, 2025"}
	srv, logs := newTestServer(t, bot)

	payload := `{"user_id":"cookie-1","question":"what is on my calendar?"}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, bot.answer, body["answer"])
	require.Equal(t, "cookie-1", bot.lastUserKey)
	require.Equal(t, "what is on my calendar?", bot.lastQuestion)

	// Both sides of the exchange land in today's CSV log.
	today := time.Now().Format("2006-01-02")
	require.True(t, logs.Exists(today))
	data, err := os.ReadFile(logs.PathFor(today))
	require.NoError(t, err)
	require.Contains(t, string(data), "what is on my calendar?")
	require.Contains(t, string(data), bot.answer)
}

func TestChatMissingFields(t *testing.T) {
	bot := &stubBot{answer: "hi"}
	srv, _ := newTestServer(t, bot)

	for _, payload := range []string{
		`{"question":"hello"}`,
		`{"user_id":"cookie-1"}`,
		`not json`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code, "payload %s", payload)
	}
	require.Empty(t, bot.lastQuestion)
}

func TestChatBotFailure(t *testing.T) {
	srv, _ := newTestServer(t, &stubBot{err: errors.New("db down")})

	payload := `{"user_id":"cookie-1","question":"hello"}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "internal error", body["error"])
}

func TestChatPublishesTurnEvent(t *testing.T) {
	var gotSubject string
	var gotData []byte
	publish := func(subject string, data []byte) error {
		gotSubject = subject
		gotData = data
		return nil
	}
	logs := chatlog.New(t.TempDir())
	tokens := auth.NewTokens("test-secret", time.Hour)
	srv := NewServer(&stubBot{answer: "No events found."}, testutil.NewMockUserStore(), tokens, logs, publish, 0)

	payload := `{"user_id":"cookie-9","question":"anything tomorrow?"}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, notify.SubjectTurnCompleted, gotSubject)
	var evt notify.TurnCompletedEvent
	require.NoError(t, json.Unmarshal(gotData, &evt))
	require.Equal(t, "cookie-9", evt.UserKey)
	require.Equal(t, "anything tomorrow?", evt.Question)
	require.Equal(t, "No events found.", evt.Answer)
}

func TestChatLogsDownload(t *testing.T) {
	srv, logs := newTestServer(t, &stubBot{})

	at := time.Date(2025, 3, 3, 10, 30, 0, 0, time.UTC)
	require.NoError(t, logs.Record("cookie-1", at, chatlog.FromUser, "hello"))

	req := httptest.NewRequest(http.MethodGet, "/api/chat/logs?date=2025-03-03", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), filepath.Base(logs.PathFor("2025-03-03")))
	require.Contains(t, rec.Body.String(), "hello")
}

func TestChatLogsMissingDay(t *testing.T) {
	srv, _ := newTestServer(t, &stubBot{})

	req := httptest.NewRequest(http.MethodGet, "/api/chat/logs?date=1999-01-01", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "No logs exist for the given date.", body["message"])
}

func TestChatLogsBadDate(t *testing.T) {
	srv, _ := newTestServer(t, &stubBot{})

	for _, target := range []string{"/api/chat/logs", "/api/chat/logs?date=March+3"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code, "target %s", target)
	}
}
