package effects

import "time"

// Feedback durations.
const (
	PressDuration = 150 * time.Millisecond
	LabelDuration = 1500 * time.Millisecond
)

// Feedback labels shown after bulk speed actions.
const (
	LabelSynced = "Synced!"
	LabelReset  = "Reset!"
)

// Flash is a temporary state on a control. Seq identifies the trigger so a
// stale expiry timer cannot clear a newer flash.
type Flash struct {
	Label string
	Until time.Time
	Seq   int
}

// Feedback tracks flashes by control name.
type Feedback struct {
	flashes map[string]Flash
	seq     int
}

// NewFeedback returns an empty tracker.
func NewFeedback() *Feedback {
	return &Feedback{flashes: make(map[string]Flash)}
}

// Trigger starts (or restarts) a flash and returns its sequence number for
// the expiry timer.
func (f *Feedback) Trigger(key, label string, now time.Time, d time.Duration) int {
	f.seq++
	f.flashes[key] = Flash{Label: label, Until: now.Add(d), Seq: f.seq}
	return f.seq
}

// Expire clears key only if seq is still the current flash.
func (f *Feedback) Expire(key string, seq int) bool {
	fl, ok := f.flashes[key]
	if !ok || fl.Seq != seq {
		return false
	}
	delete(f.flashes, key)
	return true
}

// Active reports whether key is flashing at now.
func (f *Feedback) Active(key string, now time.Time) bool {
	fl, ok := f.flashes[key]
	return ok && now.Before(fl.Until)
}

// Label returns the flash label for key, or def when none is active.
func (f *Feedback) Label(key, def string, now time.Time) string {
	if fl, ok := f.flashes[key]; ok && now.Before(fl.Until) && fl.Label != "" {
		return fl.Label
	}
	return def
}
