package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"rpg-server/internal/metrics"
	"rpg-server/internal/repository"
	"rpg-server/internal/service"
	"rpg-server/internal/session"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	srv      *httptest.Server
	sessions *SessionHandler
	metrics  *metrics.Metrics
	cancel   context.CancelFunc
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	m := metrics.New()
	deps := session.Dependencies{
		Game:    service.NewGameService(service.NewRoller(1), service.Rules{}, zap.NewNop()),
		Saves:   repository.NewFileSaveRepository(t.TempDir(), zap.NewNop()),
		Metrics: m,
		Logger:  zap.NewNop(),
	}
	sessions := NewSessionHandler(ctx, deps, zap.NewNop())
	srv := httptest.NewServer(NewServer(sessions, m, zap.NewNop()))
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return &testServer{srv: srv, sessions: sessions, metrics: m, cancel: cancel}
}

func (ts *testServer) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func (ts *testServer) activeSessions(t *testing.T) float64 {
	t.Helper()
	families, err := ts.metrics.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "rpg_active_sessions" {
			return mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	return 0
}

// readUntil читает сообщения, пока накопленный вывод не содержит want.
func readUntil(t *testing.T, conn *websocket.Conn, want string) string {
	t.Helper()
	var out strings.Builder
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for !strings.Contains(out.String(), want) {
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err, "output so far: %q", out.String())
		out.Write(msg)
	}
	return out.String()
}

func send(t *testing.T, conn *websocket.Conn, line string) {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(line)))
}

func TestWebSocketSession(t *testing.T) {
	ts := newTestServer(t)
	conn := ts.dial(t)

	out := readUntil(t, conn, "Choose (1-2): ")
	assert.Contains(t, out, "Welcome to the CLI-Based RPG Game!")

	send(t, conn, "1")
	readUntil(t, conn, "Enter character name: ")
	send(t, conn, "Aria")
	readUntil(t, conn, "Choose mode (normal/easy/hardcore): ")
	send(t, conn, "easy")
	out = readUntil(t, conn, "> ")
	assert.Contains(t, out, "Hello, Aria! Your easy adventure begins now.")

	send(t, conn, "6")
	out = readUntil(t, conn, "> ")
	assert.Contains(t, out, "Aria's Stats:")
	assert.Contains(t, out, "Health: 150/150")

	send(t, conn, "9")
	readUntil(t, conn, "Thanks for playing!")

	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "unexpected error: %v", err)
	assert.Eventually(t, func() bool { return ts.activeSessions(t) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestWebSocketClientDisconnectEndsSession(t *testing.T) {
	ts := newTestServer(t)
	conn := ts.dial(t)
	readUntil(t, conn, "Choose (1-2): ")
	assert.Equal(t, 1.0, ts.activeSessions(t))

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return ts.activeSessions(t) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestWebSocketShutdownClosesSessions(t *testing.T) {
	ts := newTestServer(t)
	conn := ts.dial(t)
	readUntil(t, conn, "Choose (1-2): ")

	ts.cancel()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "unexpected error: %v", err)

	done := make(chan struct{})
	go func() {
		ts.sessions.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sessions did not finish after shutdown")
	}
}

func TestWebSocketRefusedAfterShutdown(t *testing.T) {
	ts := newTestServer(t)
	ts.cancel()

	url := "ws" + strings.TrimPrefix(ts.srv.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Zero(t, ts.activeSessions(t))
}

func TestWebSocketRefusedAfterWait(t *testing.T) {
	ts := newTestServer(t)
	ts.sessions.Wait()

	url := "ws" + strings.TrimPrefix(ts.srv.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	rec := httptest.NewRecorder()
	NewServer(ts.sessions, ts.metrics, zap.NewNop()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "rpg_active_sessions")
}
