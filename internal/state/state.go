// Package state provides thread-safe publication of simulation frames and
// events for readers outside the engine goroutine.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-orrery/internal/sim"
)

// Entry is a simulation event stamped with the wall time it was recorded.
type Entry struct {
	sim.Event
	Timestamp time.Time `json:"timestamp"`
}

// Manager holds the latest frame and a ring buffer of recent events.
// The engine owner is the only writer; any goroutine may read.
type Manager struct {
	mu sync.RWMutex

	// Current state
	current      *sim.Frame
	lastUpdate   time.Time
	lastError    error
	tickDuration time.Duration
	published    uint64

	// Event log (ring buffer)
	events       []Entry
	maxEvents    int
	eventWriteAt int

	// Configuration
	frameInterval time.Duration
}

// Config holds configuration for the state manager.
type Config struct {
	MaxEvents     int
	FrameInterval time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEvents:     50,
		FrameInterval: time.Second / 60,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		maxEvents:     maxEvents,
		events:        make([]Entry, 0, maxEvents),
		frameInterval: cfg.FrameInterval,
	}
}

// Update publishes a new frame. The manager keeps its own copy.
func (m *Manager) Update(f sim.Frame, tickDuration time.Duration, err error) {
	cp := f.Clone()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastUpdate = time.Now()
	m.lastError = err
	m.tickDuration = tickDuration
	m.current = &cp
	m.published++
}

// Record appends events to the ring buffer.
func (m *Manager) Record(events ...sim.Event) {
	if len(events) == 0 {
		return
	}
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range events {
		m.addEvent(Entry{Event: e, Timestamp: now})
	}
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Entry) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Frame        *sim.Frame
	LastUpdate   time.Time
	LastError    error
	TickDuration time.Duration
	Published    uint64
	Events       []Entry
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var f *sim.Frame
	if m.current != nil {
		cp := m.current.Clone()
		f = &cp
	}

	return Snapshot{
		Frame:        f,
		LastUpdate:   m.lastUpdate,
		LastError:    m.lastError,
		TickDuration: m.tickDuration,
		Published:    m.published,
		Events:       m.getEventsOrdered(),
	}
}

// Frame returns a copy of the latest frame.
func (m *Manager) Frame() (sim.Frame, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return sim.Frame{}, false
	}
	return m.current.Clone(), true
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Entry {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Entry, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Entry, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// FrameInterval returns the configured tick interval.
func (m *Manager) FrameInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.frameInterval
}

// SetFrameInterval updates the tick interval.
func (m *Manager) SetFrameInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frameInterval = d
}

// HasData returns true once at least one frame has been published.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}
