package scene

import (
	"math"
	"testing"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/catalog"
)

// placeSaturn puts Saturn and its ring at (95,0,0) with an upright ring.
func placeSaturn(t *testing.T, s *Scene) {
	t.Helper()
	r := 9.45 * 0.5
	if err := s.Place(PrimitiveID(catalog.Saturn), Geometry{Center: astro.Vec3{X: 95}, Radius: r}); err != nil {
		t.Fatal(err)
	}
	err := s.Place(RingID(catalog.Saturn), Geometry{
		Center: astro.Vec3{X: 95},
		Normal: astro.Vec3{Y: 1},
		Inner:  r * 1.4,
		Outer:  r * 2.5,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestNew_OwnerMap(t *testing.T) {
	s := New(catalog.Default())

	tests := []struct {
		prim PrimitiveID
		want catalog.BodyID
	}{
		{"sun", catalog.Sun},
		{"mars", catalog.Mars},
		{"saturn.ring", catalog.Saturn},
		{"jupiter.spot", catalog.Jupiter},
		{"earth.moon", catalog.Earth},
	}
	for _, tt := range tests {
		t.Run(string(tt.prim), func(t *testing.T) {
			got, ok := s.Owner(tt.prim)
			if !ok {
				t.Fatalf("Owner(%q) not found", tt.prim)
			}
			if got != tt.want {
				t.Errorf("Owner(%q) = %q, want %q", tt.prim, got, tt.want)
			}
		})
	}

	if _, ok := s.Owner("pluto"); ok {
		t.Error("Owner(pluto) should not exist")
	}
	// 9 bodies + ring + spot + moon
	if n := len(s.Primitives()); n != 12 {
		t.Errorf("len(Primitives) = %d, want 12", n)
	}
}

func TestPlace_UnknownPrimitive(t *testing.T) {
	s := New(catalog.Default())
	if err := s.Place("pluto", Geometry{Radius: 1}); err == nil {
		t.Error("expected error for unknown primitive")
	}
}

func TestResolve_RingOnlyHitsSaturn(t *testing.T) {
	s := New(catalog.Default())
	placeSaturn(t, s)

	// Straight down through the ring, outside the sphere.
	ray := astro.NewRay(astro.Vec3{X: 104, Y: 10}, astro.Vec3{Y: -1})

	h, ok := s.Hit(ray)
	if !ok {
		t.Fatal("expected a hit")
	}
	if h.Primitive != RingID(catalog.Saturn) {
		t.Errorf("Primitive = %q, want saturn.ring", h.Primitive)
	}
	if h.Body != catalog.Saturn {
		t.Errorf("Body = %q, want saturn", h.Body)
	}
	if math.Abs(h.Distance-10) > 1e-9 {
		t.Errorf("Distance = %v, want 10", h.Distance)
	}
}

func TestResolve_RingGapMisses(t *testing.T) {
	s := New(catalog.Default())
	placeSaturn(t, s)

	// Between the sphere surface (4.725) and the ring's inner edge (6.615).
	ray := astro.NewRay(astro.Vec3{X: 95 + 5.5, Y: 10}, astro.Vec3{Y: -1})
	if id, ok := s.Resolve(ray); ok {
		t.Errorf("Resolve = %q, want miss", id)
	}
}

func TestResolve_NearestWins(t *testing.T) {
	s := New(catalog.Default())
	_ = s.Place(PrimitiveID(catalog.Earth), Geometry{Center: astro.Vec3{X: 40}, Radius: 0.5})
	_ = s.Place(PrimitiveID(catalog.Moon), Geometry{Center: astro.Vec3{X: 42}, Radius: 0.135})
	_ = s.Place(PrimitiveID(catalog.Mars), Geometry{Center: astro.Vec3{X: 50}, Radius: 0.265})

	// From beyond Mars looking back toward the sun: Mars is nearest.
	ray := astro.NewRay(astro.Vec3{X: 60}, astro.Vec3{X: -1})
	id, ok := s.Resolve(ray)
	if !ok || id != catalog.Mars {
		t.Errorf("Resolve = %q,%v, want mars", id, ok)
	}

	// From between Mars and the Moon: the Moon is hit first and resolves to Earth.
	ray = astro.NewRay(astro.Vec3{X: 45}, astro.Vec3{X: -1})
	h, ok := s.Hit(ray)
	if !ok {
		t.Fatal("expected a hit")
	}
	if h.Primitive != PrimitiveID(catalog.Moon) || h.Body != catalog.Earth {
		t.Errorf("Hit = %+v, want earth.moon owned by earth", h)
	}
}

func TestResolve_BehindOriginIgnored(t *testing.T) {
	s := New(catalog.Default())
	_ = s.Place(PrimitiveID(catalog.Sun), Geometry{Radius: 8})

	ray := astro.NewRay(astro.Vec3{X: 20}, astro.Vec3{X: 1})
	if id, ok := s.Resolve(ray); ok {
		t.Errorf("Resolve = %q, want miss", id)
	}
}

func TestResolve_UnplacedSkipped(t *testing.T) {
	s := New(catalog.Default())
	ray := astro.NewRay(astro.Vec3{Z: 100}, astro.Vec3{Z: -1})
	if id, ok := s.Resolve(ray); ok {
		t.Errorf("Resolve on empty scene = %q", id)
	}
}

func TestIntersectSphere(t *testing.T) {
	tests := []struct {
		name   string
		origin astro.Vec3
		dir    astro.Vec3
		want   float64
	}{
		{"front", astro.Vec3{Z: 10}, astro.Vec3{Z: -1}, 9},
		{"inside", astro.Vec3{}, astro.Vec3{X: 1}, 1},
		{"miss", astro.Vec3{X: 2, Z: 10}, astro.Vec3{Z: -1}, -1},
		{"behind", astro.Vec3{Z: 10}, astro.Vec3{Z: 1}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := intersectSphere(astro.NewRay(tt.origin, tt.dir), astro.Vec3{}, 1)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("intersectSphere = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntersectAnnulus_EdgeOn(t *testing.T) {
	ray := astro.NewRay(astro.Vec3{X: -10}, astro.Vec3{X: 1})
	if got := intersectAnnulus(ray, astro.Vec3{}, astro.Vec3{Y: 1}, 1, 2); got != -1 {
		t.Errorf("edge-on = %v, want -1", got)
	}
}
