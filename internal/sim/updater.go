package sim

import (
	"math"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/catalog"
)

// Animation constants. Rates are radians added per tick at 1x speed; they
// calibrate visual pacing and are not physical units.
const (
	BaseOrbitRate      = 0.001
	SatelliteOrbitRate = 0.05
	RingRotateRate     = 0.001

	WobbleAmplitude = 0.002
	WobbleFreqBase  = 0.5
	WobbleFreqScale = 0.1

	StarfieldYawRate   = 0.0001
	StarfieldPitchRate = 0.00005
)

// OrbitalState is the accumulated animation state of one body.
type OrbitalState struct {
	OrbitalAngle          float64
	AxialAngle            float64
	SatelliteOrbitalAngle float64
	SatelliteAxialAngle   float64
	RingAngle             float64
}

// Updater owns every body's OrbitalState and advances it once per tick.
//
// Increments are per call, not per elapsed second, so perceived speed
// follows the frame rate.
type Updater struct {
	bodies []catalog.Body
	states []OrbitalState
	index  map[catalog.BodyID]int

	starYaw   float64
	starPitch float64
}

// NewUpdater creates zeroed state for every top-level catalog body.
func NewUpdater(cat *catalog.Catalog) *Updater {
	bodies := cat.Bodies()
	u := &Updater{
		bodies: bodies,
		states: make([]OrbitalState, len(bodies)),
		index:  make(map[catalog.BodyID]int, len(bodies)),
	}
	for i, b := range bodies {
		u.index[b.ID] = i
	}
	return u
}

// Advance applies one tick. It is a no-op while paused and reports whether
// any state moved. deltaTimeSeconds is accepted for callers that track it
// but does not scale the increments.
func (u *Updater) Advance(deltaTimeSeconds float64, ctrl *Control) bool {
	if ctrl == nil || !ctrl.Playing {
		return false
	}
	g := ctrl.GlobalSpeed

	for i := range u.bodies {
		b := &u.bodies[i]
		s := &u.states[i]

		omega := BaseOrbitRate * b.RelativeOrbitalRate * g * ctrl.Multiplier(b.ID)
		s.OrbitalAngle = astro.WrapAngle(s.OrbitalAngle + omega)
		s.AxialAngle = astro.WrapAngle(s.AxialAngle + b.AxialRotationRate*g)

		if b.Satellite != nil {
			// Tidal lock: spin and orbit receive the same delta and wrap
			// together, so they never drift apart.
			d := SatelliteOrbitRate * g
			s.SatelliteOrbitalAngle = astro.WrapAngle(s.SatelliteOrbitalAngle + d)
			s.SatelliteAxialAngle = astro.WrapAngle(s.SatelliteAxialAngle + d)
		}
		if b.HasRings {
			s.RingAngle = astro.WrapAngle(s.RingAngle + RingRotateRate*g)
		}
	}

	u.starYaw = astro.WrapAngle(u.starYaw + StarfieldYawRate*g)
	u.starPitch = astro.WrapAngle(u.starPitch + StarfieldPitchRate*g)
	return true
}

// State returns the accumulated state of a top-level body.
func (u *Updater) State(id catalog.BodyID) (OrbitalState, bool) {
	i, ok := u.index[id]
	if !ok {
		return OrbitalState{}, false
	}
	return u.states[i], true
}

// Starfield returns the backdrop rotation (yaw about Y, pitch about X).
func (u *Updater) Starfield() (yaw, pitch float64) {
	return u.starYaw, u.starPitch
}

// Reset zeroes every angle.
func (u *Updater) Reset() {
	for i := range u.states {
		u.states[i] = OrbitalState{}
	}
	u.starYaw, u.starPitch = 0, 0
}

// EffectiveTilt is the axial tilt plus the cosmetic wobble at animation
// time t (seconds). It never feeds back into OrbitalState.
func EffectiveTilt(b catalog.Body, t float64) float64 {
	return b.AxialTilt + WobbleAmplitude*math.Sin(t*WobbleFreqBase+b.OrbitalDistance*WobbleFreqScale)
}
