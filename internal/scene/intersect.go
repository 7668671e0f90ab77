package scene

import (
	"math"

	"github.com/litescript/ls-orrery/internal/astro"
)

// intersectSphere returns the closest positive t where ray hits the sphere,
// or -1 if it misses.
func intersectSphere(ray astro.Ray, center astro.Vec3, r float64) float64 {
	if r <= 0 {
		return -1
	}
	// Shift so the sphere sits at the origin, then solve
	// t^2 + b t + c = 0 with |D| = 1.
	o := ray.Origin.Sub(center)
	b := 2.0 * o.Dot(ray.Dir)
	c := o.Dot(o) - r*r

	disc := b*b - 4.0*c
	if disc < 0 {
		return -1
	}

	sq := math.Sqrt(disc)
	t1 := (-b - sq) / 2.0
	t2 := (-b + sq) / 2.0

	if t1 > 0 {
		return t1
	}
	if t2 > 0 {
		return t2 // origin inside the sphere
	}
	return -1
}

// intersectAnnulus returns t where ray crosses the flat ring between inner
// and outer radii, or -1. Both faces are pickable.
func intersectAnnulus(ray astro.Ray, center, normal astro.Vec3, inner, outer float64) float64 {
	denom := ray.Dir.Dot(normal)
	if math.Abs(denom) < 1e-12 {
		return -1 // edge-on
	}
	t := center.Sub(ray.Origin).Dot(normal) / denom
	if t <= 0 {
		return -1
	}
	d := astro.Distance(ray.At(t), center)
	if d < inner || d > outer {
		return -1
	}
	return t
}
