package camera

import (
	"math"

	"github.com/litescript/ls-orrery/internal/astro"
)

// DefaultFOVDeg is the vertical field of view used by the renderers.
const DefaultFOVDeg = 60.0

// nearPlane discards points too close to (or behind) the eye.
const nearPlane = 0.1

var worldUp = astro.Vec3{Y: 1}

// Viewport describes a character-cell (or pixel) surface. CellAspect is the
// height/width ratio of one cell; terminals are roughly 2.
type Viewport struct {
	Width      int
	Height     int
	CellAspect float64
}

// Projector maps world points to viewport coordinates and viewport
// coordinates back to world rays. Both directions use the same basis so a
// projected point always lies on the ray cast through its screen position.
type Projector struct {
	eye     astro.Vec3
	forward astro.Vec3
	right   astro.Vec3
	up      astro.Vec3
	tanHalf float64
	aspect  float64
	vp      Viewport
}

// NewProjector builds a pinhole projector for a pose.
func NewProjector(p Pose, fovDeg float64, vp Viewport) Projector {
	if vp.CellAspect <= 0 {
		vp.CellAspect = 1
	}
	if vp.Width < 1 {
		vp.Width = 1
	}
	if vp.Height < 1 {
		vp.Height = 1
	}

	fwd := p.LookAt.Sub(p.Position).Normalized()
	if fwd == (astro.Vec3{}) {
		fwd = astro.Vec3{Z: -1}
	}
	right := fwd.Cross(worldUp)
	if right.Norm() < 1e-6 {
		right = astro.Vec3{X: 1} // looking straight up or down
	}
	right = right.Normalized()
	up := right.Cross(fwd).Normalized()

	return Projector{
		eye:     p.Position,
		forward: fwd,
		right:   right,
		up:      up,
		tanHalf: math.Tan(astro.DegToRad(fovDeg) / 2),
		aspect:  float64(vp.Width) / (float64(vp.Height) * vp.CellAspect),
		vp:      vp,
	}
}

// Viewport returns the surface the projector targets.
func (pr Projector) Viewport() Viewport {
	return pr.vp
}

// Eye returns the camera position.
func (pr Projector) Eye() astro.Vec3 {
	return pr.eye
}

// Project maps a world point to viewport coordinates (x right, y down).
// ok is false for points behind the near plane. depth is the distance along
// the viewing axis.
func (pr Projector) Project(v astro.Vec3) (x, y, depth float64, ok bool) {
	d := v.Sub(pr.eye)
	depth = d.Dot(pr.forward)
	if depth <= nearPlane {
		return 0, 0, depth, false
	}

	ndcX := d.Dot(pr.right) / depth / (pr.tanHalf * pr.aspect)
	ndcY := d.Dot(pr.up) / depth / pr.tanHalf

	x = (ndcX + 1) / 2 * float64(pr.vp.Width)
	y = (1 - ndcY) / 2 * float64(pr.vp.Height)
	return x, y, depth, true
}

// Ray returns the world ray through viewport coordinates (x, y).
// Pass cell centres (col+0.5, row+0.5) for character grids.
func (pr Projector) Ray(x, y float64) astro.Ray {
	ndcX := 2*x/float64(pr.vp.Width) - 1
	ndcY := 1 - 2*y/float64(pr.vp.Height)

	dir := pr.forward.
		Add(pr.right.Scale(ndcX * pr.tanHalf * pr.aspect)).
		Add(pr.up.Scale(ndcY * pr.tanHalf))
	return astro.NewRay(pr.eye, dir)
}

// RadiusRows converts a world radius at the given depth into viewport rows.
// Multiply by CellAspect for columns.
func (pr Projector) RadiusRows(radius, depth float64) float64 {
	if depth <= nearPlane {
		return 0
	}
	return radius / depth / pr.tanHalf * float64(pr.vp.Height) / 2
}
