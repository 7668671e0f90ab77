// Package catalog holds the static table of bodies the orrery animates.
//
// The catalog is built once at package initialisation and never mutated.
// Rates are designer-assigned multipliers relative to Earth, not physical
// angular velocities.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownBody is returned when an id does not name a catalog body.
var ErrUnknownBody = errors.New("unknown body")

// BodyID is a stable body identifier such as "mars" or "earth.moon".
type BodyID string

// Canonical body ids.
const (
	Sun     BodyID = "sun"
	Mercury BodyID = "mercury"
	Venus   BodyID = "venus"
	Earth   BodyID = "earth"
	Mars    BodyID = "mars"
	Jupiter BodyID = "jupiter"
	Saturn  BodyID = "saturn"
	Uranus  BodyID = "uranus"
	Neptune BodyID = "neptune"
	Moon    BodyID = "earth.moon"

	// Overview is the pseudo-id for the wide shot; it never names a body.
	Overview BodyID = "overview"
)

// Kind classifies a body.
type Kind int

const (
	KindStar Kind = iota
	KindPlanet
	KindSatellite
)

func (k Kind) String() string {
	switch k {
	case KindStar:
		return "star"
	case KindPlanet:
		return "planet"
	case KindSatellite:
		return "satellite"
	default:
		return "unknown"
	}
}

// Info is display-only text; the animation core never reads it.
type Info struct {
	Distance    string `json:"distance"`
	Diameter    string `json:"diameter"`
	Period      string `json:"period"`
	Temperature string `json:"temperature"`
	Description string `json:"description"`
}

// Body is one catalog entry.
type Body struct {
	ID   BodyID
	Name string
	Kind Kind

	OrbitalDistance     float64 // radius of the circular orbit around the parent
	RelativeOrbitalRate float64 // Earth = 1.0
	Radius              float64 // visual size, not to scale
	AxialTilt           float64 // radians
	AxialRotationRate   float64 // radians per tick at 1x; negative is retrograde

	HasRings bool
	HasSpot  bool // surface storm feature rendered as its own primitive

	Satellite *Body

	Color string // hex display colour
	Info  Info
}

// Parent returns the id of the body this one orbits, or "" for the sun.
func (b Body) Parent() BodyID {
	switch b.Kind {
	case KindPlanet:
		return Sun
	case KindSatellite:
		if i := strings.LastIndexByte(string(b.ID), '.'); i > 0 {
			return b.ID[:i]
		}
	}
	return ""
}

// Catalog is an ordered, read-only set of bodies with O(1) lookup.
type Catalog struct {
	bodies []Body
	index  map[BodyID]*Body
}

// New builds a catalog from top-level bodies. Satellites are indexed too.
func New(bodies []Body) (*Catalog, error) {
	c := &Catalog{
		bodies: make([]Body, len(bodies)),
		index:  make(map[BodyID]*Body, len(bodies)*2),
	}
	copy(c.bodies, bodies)

	for i := range c.bodies {
		b := &c.bodies[i]
		if err := c.add(b); err != nil {
			return nil, err
		}
		if b.Satellite != nil {
			sat := *b.Satellite
			b.Satellite = &sat
			if err := c.add(b.Satellite); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

func (c *Catalog) add(b *Body) error {
	if b.ID == "" {
		return fmt.Errorf("catalog: body %q has empty id", b.Name)
	}
	if _, dup := c.index[b.ID]; dup {
		return fmt.Errorf("catalog: duplicate body id %q", b.ID)
	}
	c.index[b.ID] = b
	return nil
}

// Get returns the body for id, including satellites.
func (c *Catalog) Get(id BodyID) (Body, bool) {
	b, ok := c.index[id]
	if !ok {
		return Body{}, false
	}
	return *b, true
}

// Lookup is Get with an error suitable for wrapping.
func (c *Catalog) Lookup(id BodyID) (Body, error) {
	b, ok := c.Get(id)
	if !ok {
		return Body{}, fmt.Errorf("%w: %q", ErrUnknownBody, id)
	}
	return b, nil
}

// Has reports whether id names a catalog body.
func (c *Catalog) Has(id BodyID) bool {
	_, ok := c.index[id]
	return ok
}

// Bodies returns the top-level bodies in catalog order (sun first).
func (c *Catalog) Bodies() []Body {
	out := make([]Body, len(c.bodies))
	copy(out, c.bodies)
	return out
}

// Planets returns the planets in order of distance from the sun.
func (c *Catalog) Planets() []Body {
	out := make([]Body, 0, len(c.bodies))
	for _, b := range c.bodies {
		if b.Kind == KindPlanet {
			out = append(out, b)
		}
	}
	return out
}

// Len returns the number of top-level bodies.
func (c *Catalog) Len() int {
	return len(c.bodies)
}

// ParseID normalises user input ("Mars", " MARS ") to a BodyID.
// Names and ids both match; the result is not validated against a catalog.
func ParseID(s string) BodyID {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "none":
		return Overview
	case "moon":
		return Moon
	}
	return BodyID(s)
}

var defaultCatalog = func() *Catalog {
	c, err := New(canonicalBodies)
	if err != nil {
		panic(err)
	}
	return c
}()

// Default returns the process-wide canonical catalog.
func Default() *Catalog {
	return defaultCatalog
}
