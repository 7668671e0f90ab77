// Package scene resolves pointer rays to catalog bodies.
//
// Every renderable primitive (planet sphere, ring, moon, surface spot) gets
// an id at construction time and an entry in a primitive -> owning body map,
// so a hit on a sub-primitive resolves to its body in O(1).
package scene

import (
	"fmt"
	"math"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/catalog"
)

// PrimitiveID names one renderable primitive, e.g. "saturn.ring".
type PrimitiveID string

// Shape is the intersection model used for a primitive.
type Shape int

const (
	ShapeSphere Shape = iota
	ShapeAnnulus
)

// Sub-primitive suffixes.
const (
	suffixRing = ".ring"
	suffixSpot = ".spot"
)

// RingID returns the primitive id of a body's ring.
func RingID(body catalog.BodyID) PrimitiveID {
	return PrimitiveID(string(body) + suffixRing)
}

// SpotID returns the primitive id of a body's surface spot.
func SpotID(body catalog.BodyID) PrimitiveID {
	return PrimitiveID(string(body) + suffixSpot)
}

// Primitive is one pickable piece of geometry.
type Primitive struct {
	ID    PrimitiveID
	Owner catalog.BodyID
	Shape Shape
}

// Geometry is the world placement of a primitive for the current frame.
// Spheres use Center and Radius; annuli use Center, Normal, Inner, Outer.
type Geometry struct {
	Center astro.Vec3
	Radius float64
	Normal astro.Vec3
	Inner  float64
	Outer  float64
}

// Hit describes the nearest intersection along a ray.
type Hit struct {
	Primitive PrimitiveID
	Body      catalog.BodyID
	Distance  float64
}

// Scene is the set of pickable primitives. Geometry is replaced each frame
// by the engine; the primitive table itself never changes.
type Scene struct {
	prims  []Primitive
	owners map[PrimitiveID]int
	geom   []Geometry
	placed []bool
}

// New builds the primitive table from the catalog.
func New(cat *catalog.Catalog) *Scene {
	s := &Scene{owners: make(map[PrimitiveID]int)}
	for _, b := range cat.Bodies() {
		s.add(PrimitiveID(b.ID), b.ID, ShapeSphere)
		if b.HasRings {
			s.add(RingID(b.ID), b.ID, ShapeAnnulus)
		}
		if b.HasSpot {
			s.add(SpotID(b.ID), b.ID, ShapeSphere)
		}
		if b.Satellite != nil {
			// Moons resolve to the body they orbit.
			s.add(PrimitiveID(b.Satellite.ID), b.ID, ShapeSphere)
		}
	}
	s.geom = make([]Geometry, len(s.prims))
	s.placed = make([]bool, len(s.prims))
	return s
}

func (s *Scene) add(id PrimitiveID, owner catalog.BodyID, shape Shape) {
	s.owners[id] = len(s.prims)
	s.prims = append(s.prims, Primitive{ID: id, Owner: owner, Shape: shape})
}

// Primitives returns the primitive table in construction order.
func (s *Scene) Primitives() []Primitive {
	out := make([]Primitive, len(s.prims))
	copy(out, s.prims)
	return out
}

// Owner returns the body a primitive belongs to.
func (s *Scene) Owner(id PrimitiveID) (catalog.BodyID, bool) {
	i, ok := s.owners[id]
	if !ok {
		return "", false
	}
	return s.prims[i].Owner, true
}

// Place sets the current geometry of a primitive.
func (s *Scene) Place(id PrimitiveID, g Geometry) error {
	i, ok := s.owners[id]
	if !ok {
		return fmt.Errorf("scene: unknown primitive %q", id)
	}
	s.geom[i] = g
	s.placed[i] = true
	return nil
}

// Hit returns the nearest primitive the ray intersects in front of its
// origin. Unplaced primitives are skipped.
func (s *Scene) Hit(ray astro.Ray) (Hit, bool) {
	best := Hit{Distance: math.Inf(1)}
	found := false

	for i, p := range s.prims {
		if !s.placed[i] {
			continue
		}
		g := s.geom[i]

		var t float64
		switch p.Shape {
		case ShapeAnnulus:
			t = intersectAnnulus(ray, g.Center, g.Normal, g.Inner, g.Outer)
		default:
			t = intersectSphere(ray, g.Center, g.Radius)
		}
		if t < 0 || t >= best.Distance {
			continue
		}
		best = Hit{Primitive: p.ID, Body: p.Owner, Distance: t}
		found = true
	}
	return best, found
}

// Resolve returns the body owning the nearest hit, if any.
func (s *Scene) Resolve(ray astro.Ray) (catalog.BodyID, bool) {
	h, ok := s.Hit(ray)
	if !ok {
		return "", false
	}
	return h.Body, true
}
