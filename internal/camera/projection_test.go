package camera

import (
	"math"
	"testing"

	"github.com/litescript/ls-orrery/internal/astro"
)

func testViewport() Viewport {
	return Viewport{Width: 120, Height: 40, CellAspect: 2}
}

func TestProject_LookAtIsCentre(t *testing.T) {
	pr := NewProjector(OverviewPose, DefaultFOVDeg, testViewport())
	x, y, depth, ok := pr.Project(OverviewPose.LookAt)
	if !ok {
		t.Fatal("look-at point not projectable")
	}
	if math.Abs(x-60) > 1e-9 || math.Abs(y-20) > 1e-9 {
		t.Errorf("look-at projected to (%v, %v), want (60, 20)", x, y)
	}
	wantDepth := OverviewPose.Position.Norm()
	if math.Abs(depth-wantDepth) > 1e-9 {
		t.Errorf("depth = %v, want %v", depth, wantDepth)
	}
}

func TestProject_BehindCamera(t *testing.T) {
	pr := NewProjector(OverviewPose, DefaultFOVDeg, testViewport())
	if _, _, _, ok := pr.Project(astro.Vec3{Y: 100, Z: 200}); ok {
		t.Error("point behind the camera should not project")
	}
}

func TestRay_RoundTripsProjection(t *testing.T) {
	pr := NewProjector(OverviewPose, DefaultFOVDeg, testViewport())
	points := []astro.Vec3{
		{X: 40},
		{X: -70, Z: 10},
		{X: 20, Y: 3, Z: -15},
	}
	for _, p := range points {
		x, y, depth, ok := pr.Project(p)
		if !ok {
			t.Fatalf("%+v not projectable", p)
		}
		ray := pr.Ray(x, y)
		// Closest approach of the ray to p should be ~0.
		toP := p.Sub(ray.Origin)
		along := toP.Dot(ray.Dir)
		miss := astro.Distance(ray.At(along), p)
		if miss > 1e-6 {
			t.Errorf("ray through projection of %+v misses by %v (depth %v)", p, miss, depth)
		}
	}
}

func TestNewProjector_StraightDown(t *testing.T) {
	pose := Pose{Position: astro.Vec3{Y: 100}, LookAt: astro.Vec3{}}
	pr := NewProjector(pose, DefaultFOVDeg, testViewport())
	x, y, _, ok := pr.Project(astro.Vec3{})
	if !ok || math.IsNaN(x) || math.IsNaN(y) {
		t.Errorf("top-down projection failed: (%v, %v, %v)", x, y, ok)
	}
}

func TestRadiusRows_ShrinksWithDepth(t *testing.T) {
	pr := NewProjector(OverviewPose, DefaultFOVDeg, testViewport())
	near := pr.RadiusRows(1, 10)
	far := pr.RadiusRows(1, 100)
	if near <= far {
		t.Errorf("near radius %v should exceed far radius %v", near, far)
	}
	if pr.RadiusRows(1, 0) != 0 {
		t.Error("radius at zero depth should be 0")
	}
}
