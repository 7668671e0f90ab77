package astro

import (
	"math"
	"testing"
)

const eps = 1e-9

func vecNear(a, b Vec3, tol float64) bool {
	return Distance(a, b) <= tol
}

func TestVec3_Basics(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: -4, Y: 0.5, Z: 2}

	if got := a.Add(b); got != (Vec3{X: -3, Y: 2.5, Z: 5}) {
		t.Errorf("Add = %+v", got)
	}
	if got := a.Sub(b); got != (Vec3{X: 5, Y: 1.5, Z: 1}) {
		t.Errorf("Sub = %+v", got)
	}
	if got := a.Dot(b); got != 3 {
		t.Errorf("Dot = %v, want 3", got)
	}
	if got := (Vec3{X: 1}).Cross(Vec3{Y: 1}); got != (Vec3{Z: 1}) {
		t.Errorf("X cross Y = %+v, want Z", got)
	}
	if got := (Vec3{}).Normalized(); got != (Vec3{}) {
		t.Errorf("zero Normalized = %+v, want zero", got)
	}
}

func TestVec3_LerpEndpointsExact(t *testing.T) {
	a := Vec3{X: 0.1, Y: 0.2, Z: 0.3}
	b := Vec3{X: 123.456, Y: -7.89, Z: 1e-7}

	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0) = %+v, want %+v", got, a)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %+v, want %+v", got, b)
	}
	mid := Vec3{X: 2, Y: 4, Z: 6}.Lerp(Vec3{}, 0.5)
	if !vecNear(mid, Vec3{X: 1, Y: 2, Z: 3}, eps) {
		t.Errorf("Lerp(0.5) = %+v", mid)
	}
}

func TestVec3_Rotations(t *testing.T) {
	tests := []struct {
		name string
		got  Vec3
		want Vec3
	}{
		{"Y quarter turn", Vec3{X: 1}.RotateY(math.Pi / 2), Vec3{Z: -1}},
		{"Y half turn", Vec3{X: 1}.RotateY(math.Pi), Vec3{X: -1}},
		{"X quarter turn", Vec3{Y: 1}.RotateX(math.Pi / 2), Vec3{Z: 1}},
		{"X leaves X alone", Vec3{X: 3}.RotateX(1.234), Vec3{X: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !vecNear(tt.got, tt.want, eps) {
				t.Errorf("got %+v, want %+v", tt.got, tt.want)
			}
		})
	}
}

func TestVec3_IsFinite(t *testing.T) {
	if !(Vec3{X: 1}).IsFinite() {
		t.Error("finite vector reported non-finite")
	}
	if (Vec3{Y: math.NaN()}).IsFinite() {
		t.Error("NaN vector reported finite")
	}
	if (Vec3{Z: math.Inf(-1)}).IsFinite() {
		t.Error("Inf vector reported finite")
	}
}
