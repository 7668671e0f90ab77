package sim

import (
	"time"

	"github.com/litescript/ls-orrery/internal/camera"
	"github.com/litescript/ls-orrery/internal/catalog"
)

// Frame is the read-only snapshot produced by each tick. Renderers draw it;
// nothing they do flows back into the engine except through commands.
type Frame struct {
	Tick    uint64        `json:"tick"`
	Elapsed time.Duration `json:"elapsed"`
	// AnimTime is the clock driving wobble and pulses; it stops while paused.
	AnimTime time.Duration `json:"animTime"`

	Bodies []Transform `json:"bodies"`

	Camera             camera.Pose `json:"camera"`
	CameraState        string      `json:"cameraState"`
	CameraTarget       string      `json:"cameraTarget,omitempty"`
	TransitionProgress float64     `json:"transitionProgress"`

	Control Control `json:"control"`

	SunPulse       float64   `json:"sunPulse"`
	OrbitPulse     []float64 `json:"orbitPulse"` // one per planet, catalog order
	StarfieldYaw   float64   `json:"starfieldYaw"`
	StarfieldPitch float64   `json:"starfieldPitch"`

	FPS float64 `json:"fps"`
}

// Body returns the transform for a top-level body.
func (f Frame) Body(id catalog.BodyID) (Transform, bool) {
	for _, t := range f.Bodies {
		if t.ID == id {
			return t, true
		}
	}
	return Transform{}, false
}

// Clone copies the slices and control map so the frame can cross goroutines.
func (f Frame) Clone() Frame {
	out := f
	out.Bodies = make([]Transform, len(f.Bodies))
	for i, t := range f.Bodies {
		out.Bodies[i] = t.clone()
	}
	out.OrbitPulse = append([]float64(nil), f.OrbitPulse...)
	out.Control = f.Control.Clone()
	return out
}

func (t Transform) clone() Transform {
	out := t
	if t.Satellite != nil {
		s := *t.Satellite
		out.Satellite = &s
	}
	if t.Ring != nil {
		r := *t.Ring
		out.Ring = &r
	}
	if t.Spot != nil {
		s := *t.Spot
		out.Spot = &s
	}
	return out
}

// fpsMeter counts ticks over simulated time and publishes a rate once per
// second of accumulated dt.
type fpsMeter struct {
	frames  int
	elapsed time.Duration
	fps     float64
}

func (m *fpsMeter) observe(dt time.Duration) float64 {
	m.frames++
	m.elapsed += dt
	if m.elapsed >= time.Second {
		m.fps = float64(m.frames) / m.elapsed.Seconds()
		m.frames = 0
		m.elapsed = 0
	}
	return m.fps
}
