package sim

import (
	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/catalog"
)

// Bounds for user-supplied multipliers. Out-of-range input is clamped, not
// rejected.
const (
	MaxSpeed = 10.0
	MaxScale = 5.0

	DefaultSpeed = 1.0
	DefaultScale = 1.0
)

// Theme is the cosmetic colour scheme. The engine only stores it.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme maps user input to a theme, defaulting to dark.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}

// Toggled returns the other theme.
func (t Theme) Toggled() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// Control is the mutable parameter set read by the updater every tick.
// Only Engine.Apply mutates the engine's copy.
type Control struct {
	GlobalSpeed float64                    `json:"globalSpeed"`
	BodySpeed   map[catalog.BodyID]float64 `json:"bodySpeed"`
	Scale       float64                    `json:"scale"`
	Playing     bool                       `json:"playing"`
	Focused     catalog.BodyID             `json:"focused,omitempty"` // empty = overview
	Theme       Theme                      `json:"theme"`
}

// NewControl returns defaults with a 1.0 multiplier for every planet.
func NewControl(cat *catalog.Catalog) Control {
	c := Control{
		GlobalSpeed: DefaultSpeed,
		BodySpeed:   make(map[catalog.BodyID]float64),
		Scale:       DefaultScale,
		Playing:     true,
		Theme:       ThemeDark,
	}
	for _, p := range cat.Planets() {
		c.BodySpeed[p.ID] = DefaultSpeed
	}
	return c
}

// Multiplier returns the per-body speed multiplier, 1.0 when unset.
func (c Control) Multiplier(id catalog.BodyID) float64 {
	if m, ok := c.BodySpeed[id]; ok {
		return m
	}
	return DefaultSpeed
}

// Clone returns a deep copy safe to hand to other goroutines.
func (c Control) Clone() Control {
	out := c
	out.BodySpeed = make(map[catalog.BodyID]float64, len(c.BodySpeed))
	for k, v := range c.BodySpeed {
		out.BodySpeed[k] = v
	}
	return out
}

// sanitize clamps a multiplier: negative and non-finite input become 0.
func sanitize(v, max float64) float64 {
	if !astro.IsFinite(v) || v < 0 {
		return 0
	}
	return astro.Clamp(v, 0, max)
}

func (c *Control) setGlobalSpeed(v float64) {
	c.GlobalSpeed = sanitize(v, MaxSpeed)
}

func (c *Control) setScale(v float64) {
	c.Scale = sanitize(v, MaxScale)
}

func (c *Control) togglePlay() {
	c.Playing = !c.Playing
}

// setBodySpeed reports false for ids without a multiplier slot.
func (c *Control) setBodySpeed(id catalog.BodyID, v float64) bool {
	if _, ok := c.BodySpeed[id]; !ok {
		return false
	}
	c.BodySpeed[id] = sanitize(v, MaxSpeed)
	return true
}

func (c *Control) resetBodySpeeds() {
	for id := range c.BodySpeed {
		c.BodySpeed[id] = DefaultSpeed
	}
}

func (c *Control) syncAllToGlobal() {
	for id := range c.BodySpeed {
		c.BodySpeed[id] = c.GlobalSpeed
	}
}

func (c *Control) toggleTheme() {
	c.Theme = c.Theme.Toggled()
}

// restoreDefaults is the control half of a full simulation reset. Play state
// and theme are left as the user set them.
func (c *Control) restoreDefaults() {
	c.GlobalSpeed = DefaultSpeed
	c.Scale = DefaultScale
	c.Focused = ""
	c.resetBodySpeeds()
}
