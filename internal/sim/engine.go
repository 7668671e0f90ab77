// Package sim is the animation core: control state, the per-tick transform
// updater and the engine that composes them with the camera director and
// the picking scene.
//
// An Engine has a single writer. The TUI update loop or the stream loop
// owns it; other goroutines read published Frames.
package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/camera"
	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/scene"
)

// Pulse constants for the sun glow and orbit lines.
const (
	SunPulseFreq   = 2.0
	SunPulseAmp    = 0.1
	OrbitPulseFreq = 0.5
	OrbitPulseStep = 0.5
	OrbitPulseAmp  = 0.1
	OrbitPulseBase = 0.3
)

// maxPendingEvents bounds the undrained queue; the oldest events drop first.
const maxPendingEvents = 64

// Engine owns all mutable simulation state.
type Engine struct {
	cat      *catalog.Catalog
	planets  []catalog.BodyID
	ctrl     Control
	updater  *Updater
	director *camera.Director
	scene    *scene.Scene

	simClock  time.Duration // always advances; drives the camera
	animClock time.Duration // advances only while playing
	tick      uint64

	frame   Frame
	fps     fpsMeter
	pending []Event
}

// Option configures a new engine.
type Option func(*Engine)

// WithSettings seeds the starting speed, scale and theme. Values are
// sanitised the same way commands are.
func WithSettings(speed, scale float64, theme Theme) Option {
	return func(e *Engine) {
		e.ctrl.setGlobalSpeed(speed)
		e.ctrl.setScale(scale)
		if theme != "" {
			e.ctrl.Theme = theme
		}
	}
}

// WithPaused starts the engine with playback stopped.
func WithPaused() Option {
	return func(e *Engine) {
		e.ctrl.Playing = false
	}
}

// New builds an engine over cat with every angle at zero and the camera on
// the overview pose.
func New(cat *catalog.Catalog, opts ...Option) *Engine {
	e := &Engine{
		cat:      cat,
		ctrl:     NewControl(cat),
		updater:  NewUpdater(cat),
		director: camera.NewDirector(),
		scene:    scene.New(cat),
	}
	for _, p := range cat.Planets() {
		e.planets = append(e.planets, p.ID)
	}
	for _, opt := range opts {
		opt(e)
	}
	e.frame = e.buildFrame()
	return e
}

// Catalog returns the catalog the engine animates.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}

// Control returns a copy of the current control state.
func (e *Engine) Control() Control {
	return e.ctrl.Clone()
}

// Frame returns the most recent frame. The returned value shares nothing
// with the engine.
func (e *Engine) Frame() Frame {
	return e.frame.Clone()
}

// State returns the accumulated orbital state of a top-level body.
func (e *Engine) State(id catalog.BodyID) (OrbitalState, bool) {
	return e.updater.State(id)
}

// CameraState reports whether a focus transition is in flight.
func (e *Engine) CameraState() camera.State {
	return e.director.State()
}

// Drain returns and clears events produced since the last call.
func (e *Engine) Drain() []Event {
	ev := e.pending
	e.pending = nil
	return ev
}

func (e *Engine) emit(kind EventKind, body catalog.BodyID) {
	if len(e.pending) >= maxPendingEvents {
		e.pending = e.pending[1:]
	}
	e.pending = append(e.pending, Event{Kind: kind, Body: body, Tick: e.tick, At: e.simClock})
}

// Apply is the only way to change control state. Invalid ids leave the state
// untouched and return an error wrapping catalog.ErrUnknownBody.
func (e *Engine) Apply(cmd Command) error {
	switch cmd.Kind {
	case CmdSetGlobalSpeed:
		e.ctrl.setGlobalSpeed(cmd.Value)
	case CmdSetScale:
		e.ctrl.setScale(cmd.Value)
		e.frame = e.buildFrame()
	case CmdTogglePlay:
		e.ctrl.togglePlay()
		if e.ctrl.Playing {
			e.emit(EventResumed, "")
		} else {
			e.emit(EventPaused, "")
		}
	case CmdSetBodySpeed:
		if !e.ctrl.setBodySpeed(cmd.Body, cmd.Value) {
			return fmt.Errorf("set speed of %q: %w", cmd.Body, catalog.ErrUnknownBody)
		}
	case CmdResetAll:
		e.ctrl.resetBodySpeeds()
	case CmdSyncAllToGlobal:
		e.ctrl.syncAllToGlobal()
	case CmdFocusOn:
		return e.focusOn(cmd.Body)
	case CmdReset:
		e.reset()
	case CmdToggleTheme:
		e.ctrl.toggleTheme()
		e.emit(EventThemeChanged, "")
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Kind)
	}
	e.frame.Control = e.ctrl.Clone()
	return nil
}

func (e *Engine) focusOn(id catalog.BodyID) error {
	if id == "" || id == catalog.Overview {
		e.ctrl.Focused = ""
		e.director.FocusOn(camera.Target{Body: catalog.Overview, Pose: camera.OverviewPose}, e.simClock)
		e.emit(EventFocusStarted, catalog.Overview)
		e.frame.Control = e.ctrl.Clone()
		return nil
	}

	pose, err := e.focusPose(id)
	if err != nil {
		return fmt.Errorf("focus on %q: %w", id, err)
	}
	e.ctrl.Focused = id
	e.director.FocusOn(camera.Target{Body: id, Pose: pose}, e.simClock)
	e.emit(EventFocusStarted, id)
	e.frame.Control = e.ctrl.Clone()
	return nil
}

// focusPose frames the body where it is right now. The camera does not
// follow it afterwards.
func (e *Engine) focusPose(id catalog.BodyID) (camera.Pose, error) {
	b, err := e.cat.Lookup(id)
	if err != nil {
		return camera.Pose{}, err
	}

	if b.Kind == catalog.KindSatellite {
		parent, ok := e.frame.Body(b.Parent())
		if !ok || parent.Satellite == nil {
			return camera.Pose{}, catalog.ErrUnknownBody
		}
		return camera.FocusPose(parent.Satellite.Position, b.Radius), nil
	}

	t, ok := e.frame.Body(id)
	if !ok {
		return camera.Pose{}, catalog.ErrUnknownBody
	}
	return camera.FocusPose(t.Position, b.Radius), nil
}

// reset restores angles, multipliers, scale, focus and the overview camera.
// Play state, theme and the clocks carry on.
func (e *Engine) reset() {
	e.updater.Reset()
	e.director.Reset()
	e.ctrl.restoreDefaults()
	e.emit(EventReset, "")
	e.frame = e.buildFrame()
}

// Tick advances the simulation by one frame. dt moves the clocks (camera
// interpolation, wobble, pulses); orbital increments are per tick. Negative
// dt is treated as zero.
func (e *Engine) Tick(dt time.Duration) Frame {
	if dt < 0 {
		dt = 0
	}
	e.tick++
	e.simClock += dt
	if e.ctrl.Playing {
		e.animClock += dt
	}

	e.updater.Advance(dt.Seconds(), &e.ctrl)

	if _, done := e.director.Update(e.simClock); done != nil {
		e.emit(EventFocusComplete, done.Body)
	}

	fps := e.fps.observe(dt)
	e.frame = e.buildFrame()
	e.frame.FPS = fps
	return e.frame.Clone()
}

// buildFrame places every body for the current state and refreshes the
// picking geometry.
func (e *Engine) buildFrame() Frame {
	anim := e.animClock.Seconds()
	bodies := e.cat.Bodies()

	f := Frame{
		Tick:     e.tick,
		Elapsed:  e.simClock,
		AnimTime: e.animClock,
		Bodies:   make([]Transform, 0, len(bodies)),
		Camera:   e.director.Pose(),
		Control:  e.ctrl.Clone(),
		SunPulse: math.Sin(anim*SunPulseFreq)*SunPulseAmp + 1,
		FPS:      e.frame.FPS,
	}
	f.CameraState = e.director.State().String()
	if tr, ok := e.director.Transition(); ok {
		f.CameraTarget = string(tr.Body)
		f.TransitionProgress = tr.Progress(e.simClock)
	} else {
		f.TransitionProgress = 1
	}
	f.StarfieldYaw, f.StarfieldPitch = e.updater.Starfield()

	for _, b := range bodies {
		s, _ := e.updater.State(b.ID)
		t := place(b, s, anim, e.ctrl.Scale)
		f.Bodies = append(f.Bodies, t)
		e.placeScene(t)
	}

	f.OrbitPulse = make([]float64, len(e.planets))
	for i := range e.planets {
		f.OrbitPulse[i] = math.Sin(anim*OrbitPulseFreq+float64(i)*OrbitPulseStep)*OrbitPulseAmp + OrbitPulseBase
	}
	return f
}

func (e *Engine) placeScene(t Transform) {
	// Primitive ids come from the same catalog, so Place cannot miss.
	_ = e.scene.Place(scene.PrimitiveID(t.ID), scene.Geometry{Center: t.Position, Radius: t.Radius})
	if s := t.Satellite; s != nil {
		_ = e.scene.Place(scene.PrimitiveID(s.ID), scene.Geometry{Center: s.Position, Radius: s.Radius})
	}
	if r := t.Ring; r != nil {
		_ = e.scene.Place(scene.RingID(t.ID), scene.Geometry{
			Center: r.Center,
			Normal: r.Normal,
			Inner:  r.Inner,
			Outer:  r.Outer,
		})
	}
	if sp := t.Spot; sp != nil {
		_ = e.scene.Place(scene.SpotID(t.ID), scene.Geometry{Center: sp.Position, Radius: sp.Radius})
	}
}

// ResolveHit returns the body under a world ray for the current frame.
func (e *Engine) ResolveHit(ray astro.Ray) (catalog.BodyID, bool) {
	return e.scene.Resolve(ray)
}

// ResolveScreen casts a ray through viewport coordinates from the current
// camera pose.
func (e *Engine) ResolveScreen(x, y float64, vp camera.Viewport) (catalog.BodyID, bool) {
	pr := camera.NewProjector(e.director.Pose(), camera.DefaultFOVDeg, vp)
	return e.ResolveHit(pr.Ray(x, y))
}
