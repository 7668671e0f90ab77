// Package stream runs the engine loop headless and fans frames out to
// WebSocket clients. Clients send commands back on the same socket.
//
// One goroutine (Run) owns the engine. Each client has a reader goroutine
// that decodes commands onto a shared channel, and a writer goroutine that
// drains its own outbound queue.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/metrics"
	"github.com/litescript/ls-orrery/internal/sim"
	"github.com/litescript/ls-orrery/internal/state"
)

// Message types on the wire.
const (
	TypeFrame = "frame"
	TypeEvent = "event"
	TypeError = "error"
)

const (
	defaultInterval = time.Second / 30
	sendQueueLen    = 16
	writeWait       = 5 * time.Second
	maxMessageSize  = 4096
)

// Message is the server -> client envelope.
type Message struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Options configures a Server. Zero values fall back to defaults.
type Options struct {
	Interval     time.Duration
	CommandRate  float64 // commands per second per client
	CommandBurst int

	Store   *state.Manager
	Metrics *metrics.Collector
	Logger  *logging.Logger
}

type client struct {
	id      int
	conn    *websocket.Conn
	send    chan []byte
	limiter *rate.Limiter
}

type inbound struct {
	from *client
	cmd  sim.Command
}

// Server owns the engine once Run starts.
type Server struct {
	engine   *sim.Engine
	store    *state.Manager
	metrics  *metrics.Collector
	log      *logging.Logger
	hot      zerolog.Logger
	interval time.Duration
	limit    rate.Limit
	burst    int
	upgrader websocket.Upgrader

	ch   chan inbound
	done chan struct{}

	mu      sync.RWMutex
	clients map[*client]struct{}
	nextID  int
}

// NewServer wraps engine. The caller must not touch engine after Run starts.
func NewServer(engine *sim.Engine, opts Options) *Server {
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	if opts.CommandRate <= 0 {
		opts.CommandRate = 20
	}
	if opts.CommandBurst < 1 {
		opts.CommandBurst = 1
	}
	if opts.Store == nil {
		opts.Store = state.NewManager(state.DefaultConfig())
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &Server{
		engine:   engine,
		store:    opts.Store,
		metrics:  opts.Metrics,
		log:      opts.Logger,
		hot:      opts.Logger.Sampled(),
		interval: opts.Interval,
		limit:    rate.Limit(opts.CommandRate),
		burst:    opts.CommandBurst,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		ch:      make(chan inbound),
		done:    make(chan struct{}),
		clients: make(map[*client]struct{}),
	}
}

// Store returns the frame store the loop publishes to.
func (s *Server) Store() *state.Manager {
	return s.store
}

// Run drives the engine until ctx is cancelled. It returns nil on a clean
// shutdown.
func (s *Server) Run(ctx context.Context) error {
	defer s.closeAll()
	defer close(s.done)

	s.store.SetFrameInterval(s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("stream loop running at %v per tick", s.interval)
	past := time.Now()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("stream loop stopping")
			return nil
		case in := <-s.ch:
			s.apply(in)
		case now := <-ticker.C:
			dt := now.Sub(past)
			past = now
			s.step(dt)
		}
	}
}

func (s *Server) apply(in inbound) {
	kind := string(in.cmd.Kind)
	if err := s.engine.Apply(in.cmd); err != nil {
		s.metrics.RecordCommand(kind, metrics.ResultRejected)
		s.log.Warn("client %d: %v", in.from.id, err)
		s.sendTo(in.from, Message{Type: TypeError, Error: err.Error()})
		return
	}
	s.metrics.RecordCommand(kind, metrics.ResultOK)
	s.log.Debug("client %d: %s", in.from.id, in.cmd)
	s.flushEvents()
}

func (s *Server) step(dt time.Duration) {
	start := time.Now()
	f := s.engine.Tick(dt)
	took := time.Since(start)

	s.metrics.RecordTick(took)
	s.store.Update(f, took, nil)
	s.flushEvents()
	s.broadcast(Message{Type: TypeFrame, Data: f})
	s.metrics.RecordBroadcast()
}

func (s *Server) flushEvents() {
	evs := s.engine.Drain()
	if len(evs) == 0 {
		return
	}
	s.store.Record(evs...)
	for _, e := range evs {
		if e.Kind == sim.EventFocusComplete {
			s.metrics.RecordFocusComplete(string(e.Body))
		}
		s.broadcast(Message{Type: TypeEvent, Data: e})
	}
}

// broadcast marshals once and queues for every client. A client whose
// queue is full misses this message.
func (s *Server) broadcast(m Message) {
	data, err := json.Marshal(m)
	if err != nil {
		s.log.Error("marshal %s: %v", m.Type, err)
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for c := range s.clients {
		select {
		case c.send <- data:
		default:
			s.hot.Debug().Int("client", c.id).Str("type", m.Type).Msg("send queue full, dropped")
		}
	}
}

func (s *Server) sendTo(c *client, m Message) {
	data, err := json.Marshal(m)
	if err != nil {
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.clients[c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// Handler returns the HTTP routes: /ws for the stream, /frame and /events
// for one-shot JSON reads of the latest state.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", s)
	mux.HandleFunc("/frame", s.serveFrame)
	mux.HandleFunc("/events", s.serveEvents)
	return mux
}

func (s *Server) serveFrame(w http.ResponseWriter, r *http.Request) {
	f, ok := s.store.Frame()
	if !ok {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, f)
}

func (s *Server) serveEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.store.RecentEvents(20))
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ServeHTTP upgrades to a WebSocket and serves one client until it
// disconnects or the loop stops.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	select {
	case <-s.done:
		http.Error(w, "stream stopped", http.StatusServiceUnavailable)
		return
	default:
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade: %v", err)
		return
	}
	c := s.register(conn)
	s.log.Info("client %d connected from %s", c.id, r.RemoteAddr)

	if f, ok := s.store.Frame(); ok {
		s.sendTo(c, Message{Type: TypeFrame, Data: f})
	}

	go s.writer(c)
	s.reader(c)
}

func (s *Server) register(conn *websocket.Conn) *client {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c := &client{
		id:      s.nextID,
		conn:    conn,
		send:    make(chan []byte, sendQueueLen),
		limiter: rate.NewLimiter(s.limit, s.burst),
	}
	s.clients[c] = struct{}{}
	s.metrics.ClientConnected()
	return c
}

// unregister is safe to call more than once.
func (s *Server) unregister(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; !ok {
		return
	}
	delete(s.clients, c)
	close(c.send)
	s.metrics.ClientDisconnected()
}

func (s *Server) clientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) closeAll() {
	s.mu.RLock()
	all := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		all = append(all, c)
	}
	s.mu.RUnlock()
	for _, c := range all {
		s.unregister(c)
	}
}

func (s *Server) reader(c *client) {
	defer s.unregister(c)
	c.conn.SetReadLimit(maxMessageSize)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug("client %d read: %v", c.id, err)
			}
			s.log.Info("client %d disconnected", c.id)
			return
		}

		cmd, err := sim.ParseCommand(data)
		if err != nil {
			result := metrics.ResultInvalid
			if errors.Is(err, sim.ErrUnknownCommand) {
				result = metrics.ResultRejected
			}
			s.metrics.RecordCommand("unknown", result)
			s.sendTo(c, Message{Type: TypeError, Error: err.Error()})
			continue
		}
		if !c.limiter.Allow() {
			s.metrics.RecordCommand(string(cmd.Kind), metrics.ResultLimited)
			s.sendTo(c, Message{Type: TypeError, Error: fmt.Sprintf("rate limited: %s", cmd.Kind)})
			continue
		}

		select {
		case s.ch <- inbound{from: c, cmd: cmd}:
		case <-s.done:
			return
		}
	}
}

func (s *Server) writer(c *client) {
	defer c.conn.Close()
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.log.Debug("client %d write: %v", c.id, err)
			s.unregister(c)
			// Drain until unregister closes the queue.
			for range c.send {
			}
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
}
