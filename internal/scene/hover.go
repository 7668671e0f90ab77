package scene

import "github.com/litescript/ls-orrery/internal/catalog"

// HoverChange tells the presentation layer what to do after a pointer move.
type HoverChange struct {
	// Show is the body whose tooltip should be visible, if any.
	Show catalog.BodyID
	// Hide is set when the pointer left every body.
	Hide bool
	// Unhighlight is the previously hovered body whose highlight must clear.
	Unhighlight catalog.BodyID
	// Changed reports whether the hovered body differs from before.
	Changed bool
}

// HoverTracker remembers the hovered body between pointer events.
type HoverTracker struct {
	current catalog.BodyID
}

// Current returns the hovered body, or "" when none.
func (h *HoverTracker) Current() catalog.BodyID {
	return h.current
}

// Update records the result of resolving the pointer position.
func (h *HoverTracker) Update(body catalog.BodyID, ok bool) HoverChange {
	if !ok || body == "" {
		ch := HoverChange{Hide: true, Unhighlight: h.current, Changed: h.current != ""}
		h.current = ""
		return ch
	}
	if body == h.current {
		return HoverChange{Show: body}
	}
	ch := HoverChange{Show: body, Unhighlight: h.current, Changed: true}
	h.current = body
	return ch
}

// Clear forgets the hovered body without reporting a change.
func (h *HoverTracker) Clear() {
	h.current = ""
}
