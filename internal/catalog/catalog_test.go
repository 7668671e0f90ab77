package catalog

import (
	"errors"
	"testing"
)

func TestDefault_CanonicalScope(t *testing.T) {
	c := Default()

	if c.Len() != 9 {
		t.Fatalf("Len() = %d, want 9 (sun + eight planets)", c.Len())
	}
	if got := len(c.Planets()); got != 8 {
		t.Errorf("Planets() = %d, want 8", got)
	}

	bodies := c.Bodies()
	if bodies[0].ID != Sun || bodies[0].Kind != KindStar {
		t.Errorf("first body = %q (%v), want sun", bodies[0].ID, bodies[0].Kind)
	}
	if bodies[0].OrbitalDistance != 0 {
		t.Errorf("sun orbital distance = %v, want 0", bodies[0].OrbitalDistance)
	}

	var ringed, satellites []BodyID
	for _, b := range bodies {
		if b.HasRings {
			ringed = append(ringed, b.ID)
		}
		if b.Satellite != nil {
			satellites = append(satellites, b.Satellite.ID)
		}
	}
	if len(ringed) != 1 || ringed[0] != Saturn {
		t.Errorf("ringed bodies = %v, want [saturn]", ringed)
	}
	if len(satellites) != 1 || satellites[0] != Moon {
		t.Errorf("satellites = %v, want [earth.moon]", satellites)
	}
}

func TestDefault_PlanetOrder(t *testing.T) {
	want := []BodyID{Mercury, Venus, Earth, Mars, Jupiter, Saturn, Uranus, Neptune}
	planets := Default().Planets()
	for i, id := range want {
		if planets[i].ID != id {
			t.Errorf("planet %d = %q, want %q", i, planets[i].ID, id)
		}
		if i > 0 && planets[i].OrbitalDistance <= planets[i-1].OrbitalDistance {
			t.Errorf("%q is not farther than %q", planets[i].ID, planets[i-1].ID)
		}
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		id   BodyID
		want string
		ok   bool
	}{
		{Earth, "Earth", true},
		{Moon, "Moon", true},
		{Sun, "Sun", true},
		{"pluto", "", false},
		{Overview, "", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			b, ok := Default().Get(tt.id)
			if ok != tt.ok || b.Name != tt.want {
				t.Errorf("Get(%q) = %q, %v; want %q, %v", tt.id, b.Name, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestLookup_UnknownWrapsSentinel(t *testing.T) {
	_, err := Default().Lookup("vulcan")
	if !errors.Is(err, ErrUnknownBody) {
		t.Errorf("Lookup(vulcan) error = %v, want ErrUnknownBody", err)
	}
}

func TestVenusIsRetrograde(t *testing.T) {
	v, _ := Default().Get(Venus)
	if v.AxialRotationRate >= 0 {
		t.Errorf("venus axial rate = %v, want negative", v.AxialRotationRate)
	}
}

func TestParent(t *testing.T) {
	c := Default()
	moon, _ := c.Get(Moon)
	mars, _ := c.Get(Mars)
	sun, _ := c.Get(Sun)

	if moon.Parent() != Earth {
		t.Errorf("moon parent = %q, want earth", moon.Parent())
	}
	if mars.Parent() != Sun {
		t.Errorf("mars parent = %q, want sun", mars.Parent())
	}
	if sun.Parent() != "" {
		t.Errorf("sun parent = %q, want empty", sun.Parent())
	}
}

func TestBodies_ReturnsCopy(t *testing.T) {
	c := Default()
	bodies := c.Bodies()
	bodies[1].RelativeOrbitalRate = 999

	again, _ := c.Get(Mercury)
	if again.RelativeOrbitalRate == 999 {
		t.Error("mutating Bodies() result changed the catalog")
	}
}

func TestNew_RejectsDuplicates(t *testing.T) {
	_, err := New([]Body{{ID: "a", Name: "A"}, {ID: "a", Name: "B"}})
	if err == nil {
		t.Error("expected error for duplicate id")
	}
	_, err = New([]Body{{Name: "nameless"}})
	if err == nil {
		t.Error("expected error for empty id")
	}
}

func TestParseID(t *testing.T) {
	tests := map[string]BodyID{
		"Mars":     Mars,
		"  SATURN": Saturn,
		"moon":     Moon,
		"":         Overview,
		"overview": Overview,
	}
	for in, want := range tests {
		if got := ParseID(in); got != want {
			t.Errorf("ParseID(%q) = %q, want %q", in, got, want)
		}
	}
}
