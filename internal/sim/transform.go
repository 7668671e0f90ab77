package sim

import (
	"math"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/catalog"
)

// Geometry proportions relative to a body's catalog radius.
const (
	RenderScale     = 0.5 // catalog radius -> rendered sphere radius
	RingInnerFactor = 1.4
	RingOuterFactor = 2.5
	SpotSizeFactor  = 0.1
	SpotLift        = 1.01 // spot sits just above the surface
)

// Spot placement on the body surface, in the body's local frame.
var (
	spotPhi   = math.Pi / 4
	spotTheta = math.Pi / 6
)

// Transform is the per-body, per-tick output handed to renderers.
type Transform struct {
	ID            catalog.BodyID `json:"id"`
	OrbitalAngle  float64        `json:"orbitalAngle"`
	AxialAngle    float64        `json:"axialAngle"`
	EffectiveTilt float64        `json:"effectiveTilt"`
	Position      astro.Vec3     `json:"position"`
	Radius        float64        `json:"radius"`
	Scale         float64        `json:"scale"`

	Satellite *SatelliteTransform `json:"satellite,omitempty"`
	Ring      *RingTransform      `json:"ring,omitempty"`
	Spot      *SpotTransform      `json:"spot,omitempty"`
}

// SatelliteTransform places a moon around its parent.
type SatelliteTransform struct {
	ID           catalog.BodyID `json:"id"`
	OrbitalAngle float64        `json:"orbitalAngle"`
	AxialAngle   float64        `json:"axialAngle"`
	Position     astro.Vec3     `json:"position"`
	Radius       float64        `json:"radius"`
}

// RingTransform is a flat annulus in the body's equatorial plane.
type RingTransform struct {
	Angle  float64    `json:"angle"`
	Center astro.Vec3 `json:"center"`
	Normal astro.Vec3 `json:"normal"`
	Inner  float64    `json:"inner"`
	Outer  float64    `json:"outer"`
}

// SpotTransform is a small surface feature that turns with the body.
type SpotTransform struct {
	Position astro.Vec3 `json:"position"`
	Radius   float64    `json:"radius"`
}

// place computes world geometry for body b from its state. animTime drives
// the wobble; scale only affects planet spheres and what is attached to
// their surface.
func place(b catalog.Body, s OrbitalState, animTime, scale float64) Transform {
	tilt := EffectiveTilt(b, animTime)

	// local -> world: tilt about X, then carry around the orbit.
	toWorld := func(v astro.Vec3) astro.Vec3 {
		return v.RotateX(tilt).RotateY(s.OrbitalAngle)
	}

	pos := astro.Vec3{X: b.OrbitalDistance}.RotateY(s.OrbitalAngle)

	bodyScale := scale
	if b.Kind == catalog.KindStar {
		bodyScale = 1
	}
	radius := b.Radius * bodyScale
	if b.Kind != catalog.KindStar {
		radius *= RenderScale
	}

	t := Transform{
		ID:            b.ID,
		OrbitalAngle:  s.OrbitalAngle,
		AxialAngle:    s.AxialAngle,
		EffectiveTilt: tilt,
		Position:      pos,
		Radius:        radius,
		Scale:         bodyScale,
	}

	if sat := b.Satellite; sat != nil {
		offset := astro.Vec3{X: sat.OrbitalDistance}.RotateY(s.SatelliteOrbitalAngle)
		t.Satellite = &SatelliteTransform{
			ID:           sat.ID,
			OrbitalAngle: s.SatelliteOrbitalAngle,
			AxialAngle:   s.SatelliteAxialAngle,
			Position:     pos.Add(toWorld(offset)),
			Radius:       sat.Radius * RenderScale,
		}
	}

	if b.HasRings {
		base := b.Radius * RenderScale
		t.Ring = &RingTransform{
			Angle:  s.RingAngle,
			Center: pos,
			Normal: toWorld(astro.Vec3{Y: 1}).Normalized(),
			Inner:  base * RingInnerFactor,
			Outer:  base * RingOuterFactor,
		}
	}

	if b.HasSpot {
		lift := radius * SpotLift
		local := astro.Vec3{
			X: lift * math.Sin(spotPhi) * math.Cos(spotTheta),
			Y: lift * math.Sin(spotPhi) * math.Sin(spotTheta),
			Z: lift * math.Cos(spotPhi),
		}
		t.Spot = &SpotTransform{
			Position: pos.Add(toWorld(local.RotateY(s.AxialAngle))),
			Radius:   radius * SpotSizeFactor,
		}
	}

	return t
}
