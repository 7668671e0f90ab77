package sim

import (
	"fmt"
	"time"

	"github.com/litescript/ls-orrery/internal/catalog"
)

// EventKind classifies a simulation event.
type EventKind string

const (
	EventFocusStarted  EventKind = "focusStarted"
	EventFocusComplete EventKind = "focusComplete"
	EventReset         EventKind = "reset"
	EventPaused        EventKind = "paused"
	EventResumed       EventKind = "resumed"
	EventThemeChanged  EventKind = "themeChanged"
)

// Event is a discrete notification produced by Apply or Tick. At is the
// simulation clock, not wall time.
type Event struct {
	Kind EventKind      `json:"kind"`
	Body catalog.BodyID `json:"id,omitempty"`
	Tick uint64         `json:"tick"`
	At   time.Duration  `json:"at"`
}

func (e Event) String() string {
	if e.Body != "" {
		return fmt.Sprintf("%s %s @%d", e.Kind, e.Body, e.Tick)
	}
	return fmt.Sprintf("%s @%d", e.Kind, e.Tick)
}
