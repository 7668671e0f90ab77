package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/metrics"
	"github.com/litescript/ls-orrery/internal/sim"
)

type wireMessage struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

type harness struct {
	srv     *Server
	http    *httptest.Server
	metrics *metrics.Collector
	cancel  context.CancelFunc
	done    chan error
}

func startServer(t *testing.T, opts Options) *harness {
	t.Helper()
	if opts.Interval == 0 {
		opts.Interval = 10 * time.Millisecond
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewCollector()
	}
	s := NewServer(sim.New(catalog.Default()), opts)
	hs := httptest.NewServer(s.Handler())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	h := &harness{srv: s, http: hs, metrics: opts.Metrics, cancel: cancel, done: done}
	t.Cleanup(func() {
		cancel()
		<-done
		hs.Close()
	})
	return h
}

func (h *harness) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(h.http.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads messages until match returns true or the deadline passes.
func readUntil(t *testing.T, conn *websocket.Conn, match func(wireMessage) bool) wireMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		var m wireMessage
		require.NoError(t, conn.ReadJSON(&m))
		if match(m) {
			return m
		}
	}
}

func TestServer_BroadcastsFrames(t *testing.T) {
	h := startServer(t, Options{})
	conn := h.dial(t)

	m := readUntil(t, conn, func(m wireMessage) bool { return m.Type == TypeFrame })

	var f sim.Frame
	require.NoError(t, json.Unmarshal(m.Data, &f))
	assert.Len(t, f.Bodies, 9)
	assert.Equal(t, "steady", f.CameraState)
}

func TestServer_FocusCommandProducesEvents(t *testing.T) {
	h := startServer(t, Options{})
	conn := h.dial(t)
	readUntil(t, conn, func(m wireMessage) bool { return m.Type == TypeFrame })

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"focusOn","id":"mars"}`)))

	var ev sim.Event
	m := readUntil(t, conn, func(m wireMessage) bool { return m.Type == TypeEvent })
	require.NoError(t, json.Unmarshal(m.Data, &ev))
	assert.Equal(t, sim.EventFocusStarted, ev.Kind)
	assert.Equal(t, catalog.Mars, ev.Body)

	// Transition lasts 1.5s of wall-clock ticks.
	m = readUntil(t, conn, func(m wireMessage) bool {
		if m.Type != TypeEvent {
			return false
		}
		var e sim.Event
		_ = json.Unmarshal(m.Data, &e)
		return e.Kind == sim.EventFocusComplete
	})
	require.NoError(t, json.Unmarshal(m.Data, &ev))
	assert.Equal(t, catalog.Mars, ev.Body)

	rec := httptest.NewRecorder()
	h.metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `orrery_focus_completions_total{body="mars"} 1`)
	assert.Contains(t, rec.Body.String(), `orrery_commands_total{result="ok",type="focusOn"} 1`)
}

func TestServer_RejectsUnknownCommandAndBody(t *testing.T) {
	h := startServer(t, Options{})
	conn := h.dial(t)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"warp"}`)))
	m := readUntil(t, conn, func(m wireMessage) bool { return m.Type == TypeError })
	assert.Contains(t, m.Error, "unknown command")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"focusOn","id":"pluto"}`)))
	m = readUntil(t, conn, func(m wireMessage) bool { return m.Type == TypeError })
	assert.Contains(t, m.Error, "unknown body")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	m = readUntil(t, conn, func(m wireMessage) bool { return m.Type == TypeError })
	assert.Contains(t, m.Error, "decode command")
}

func TestServer_RateLimitsCommands(t *testing.T) {
	h := startServer(t, Options{CommandRate: 0.001, CommandBurst: 1})
	conn := h.dial(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"togglePlay"}`)))
	}

	limited := 0
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for limited < 2 {
		var m wireMessage
		require.NoError(t, conn.ReadJSON(&m))
		if m.Type == TypeError {
			assert.Contains(t, m.Error, "rate limited")
			limited++
		}
	}
}

func TestServer_FrameEndpoint(t *testing.T) {
	h := startServer(t, Options{})

	// Wait for the first published frame.
	require.Eventually(t, func() bool { return h.srv.Store().HasData() }, 3*time.Second, 5*time.Millisecond)

	resp, err := http.Get(h.http.URL + "/frame")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var f sim.Frame
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&f))
	assert.Greater(t, f.Tick, uint64(0))
}

func TestServer_ClientGauge(t *testing.T) {
	h := startServer(t, Options{})
	conn := h.dial(t)
	readUntil(t, conn, func(m wireMessage) bool { return m.Type == TypeFrame })

	assert.Equal(t, 1, h.srv.clientCount())

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return h.srv.clientCount() == 0 }, 3*time.Second, 5*time.Millisecond)
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	h := startServer(t, Options{})
	conn := h.dial(t)
	readUntil(t, conn, func(m wireMessage) bool { return m.Type == TypeFrame })

	h.cancel()
	select {
	case err := <-h.done:
		assert.NoError(t, err)
		h.done <- err // let Cleanup's receive succeed
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
