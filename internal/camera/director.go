// Package camera drives where the orrery is viewed from: a steady pose, a
// timed eased focus transition between poses, and the pinhole projection
// renderers and picking share.
package camera

import (
	"time"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/catalog"
)

// TransitionDuration is how long every focus transition takes on the
// simulation clock. It is not configurable per call.
const TransitionDuration = 1500 * time.Millisecond

// FocusDistanceFactor scales a body's radius into the camera offset used
// when focusing on it.
const FocusDistanceFactor = 5.0

// Pose is a camera position plus the point it looks at.
type Pose struct {
	Position astro.Vec3 `json:"position"`
	LookAt   astro.Vec3 `json:"lookAt"`
}

// OverviewPose is the wide shot of the whole system.
var OverviewPose = Pose{
	Position: astro.Vec3{X: 0, Y: 50, Z: 100},
	LookAt:   astro.Vec3{},
}

// FocusPose returns the pose for viewing a body at worldPos with the given
// radius: offset along +Z, looking at the body.
func FocusPose(worldPos astro.Vec3, radius float64) Pose {
	return Pose{
		Position: worldPos.Add(astro.Vec3{Z: radius * FocusDistanceFactor}),
		LookAt:   worldPos,
	}
}

// Lerp interpolates both position and look-at.
func (p Pose) Lerp(to Pose, t float64) Pose {
	return Pose{
		Position: p.Position.Lerp(to.Position, t),
		LookAt:   p.LookAt.Lerp(to.LookAt, t),
	}
}

// State is the director's mode.
type State int

const (
	Steady State = iota
	Transitioning
)

func (s State) String() string {
	if s == Transitioning {
		return "transitioning"
	}
	return "steady"
}

// Target is a focus request resolved to a concrete pose.
type Target struct {
	Body catalog.BodyID // catalog.Overview for the wide shot
	Pose Pose
}

// Transition is an in-flight interpolation between two poses.
type Transition struct {
	Body     catalog.BodyID
	Start    Pose
	Target   Pose
	Started  time.Duration
	Duration time.Duration
}

// Progress returns linear progress in [0,1] at simulation time now.
func (t Transition) Progress(now time.Duration) float64 {
	if t.Duration <= 0 {
		return 1
	}
	return astro.Clamp01(float64(now-t.Started) / float64(t.Duration))
}

// PoseAt returns the eased pose at simulation time now.
func (t Transition) PoseAt(now time.Duration) Pose {
	return t.Start.Lerp(t.Target, astro.EaseOutCubic(t.Progress(now)))
}

// Completion is emitted exactly once when a transition reaches its target.
type Completion struct {
	Body catalog.BodyID
	Pose Pose
	At   time.Duration
}

// Director owns the camera pose. It is not safe for concurrent use; the
// engine that owns it is the single writer.
type Director struct {
	pose       Pose
	transition *Transition
}

// NewDirector returns a director resting on the overview pose.
func NewDirector() *Director {
	return &Director{pose: OverviewPose}
}

// Pose returns the pose computed by the last Update (or set by Reset).
func (d *Director) Pose() Pose {
	return d.pose
}

// State reports whether a transition is in flight.
func (d *Director) State() State {
	if d.transition != nil {
		return Transitioning
	}
	return Steady
}

// Transition returns a copy of the in-flight transition, if any.
func (d *Director) Transition() (Transition, bool) {
	if d.transition == nil {
		return Transition{}, false
	}
	return *d.transition, true
}

// FocusOn starts a transition toward target from wherever the camera is at
// time now. An in-flight transition is superseded without completing.
func (d *Director) FocusOn(target Target, now time.Duration) {
	start := d.pose
	if d.transition != nil {
		start = d.transition.PoseAt(now)
	}
	d.pose = start
	d.transition = &Transition{
		Body:     target.Body,
		Start:    start,
		Target:   target.Pose,
		Started:  now,
		Duration: TransitionDuration,
	}
}

// Update advances the interpolation to now and returns the current pose.
// The completion is non-nil only on the update that finishes a transition.
func (d *Director) Update(now time.Duration) (Pose, *Completion) {
	if d.transition == nil {
		return d.pose, nil
	}

	tr := d.transition
	if tr.Progress(now) < 1 {
		d.pose = tr.PoseAt(now)
		return d.pose, nil
	}

	d.pose = tr.Target
	d.transition = nil
	return d.pose, &Completion{Body: tr.Body, Pose: tr.Target, At: now}
}

// Reset snaps to the overview pose and drops any transition silently.
func (d *Director) Reset() {
	d.pose = OverviewPose
	d.transition = nil
}
