// Package effects holds cosmetic, timer-driven state: shooting stars and
// button feedback labels. None of it feeds back into the simulation.
package effects

import (
	"math/rand"
	"time"
)

// Shooting star timing.
const (
	SpawnInterval = 5 * time.Second
	SpawnChance   = 0.3
	MinLifetime   = 2 * time.Second
	MaxLifetime   = 5 * time.Second
	RemoveAfter   = 5 * time.Second
)

// Streak is how far (in screen fractions) a star travels over its lifetime.
const Streak = 0.3

// ShootingStar is a screen-space streak. X and Y are fractions of the
// viewport; it moves down and to the left.
type ShootingStar struct {
	ID       int
	X, Y     float64
	Born     time.Time
	Lifetime time.Duration
}

// Progress is 0 at birth and 1 when the streak finishes.
func (s ShootingStar) Progress(now time.Time) float64 {
	if s.Lifetime <= 0 {
		return 1
	}
	p := float64(now.Sub(s.Born)) / float64(s.Lifetime)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Position returns the head of the streak. ok is false once it has finished.
func (s ShootingStar) Position(now time.Time) (x, y float64, ok bool) {
	p := s.Progress(now)
	if p >= 1 {
		return 0, 0, false
	}
	return s.X - Streak*p, s.Y + Streak*p, true
}

// Sky schedules shooting stars. It is driven by the caller's timer; it never
// starts goroutines.
type Sky struct {
	rng    *rand.Rand
	stars  []ShootingStar
	nextID int
}

// NewSky uses rng for every random decision. Pass a seeded source in tests.
func NewSky(rng *rand.Rand) *Sky {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Sky{rng: rng}
}

// Roll is called once per SpawnInterval. With probability SpawnChance it
// adds a star at a random position and reports true.
func (s *Sky) Roll(now time.Time) bool {
	s.Expire(now)
	if s.rng.Float64() >= SpawnChance {
		return false
	}
	s.nextID++
	life := MinLifetime + time.Duration(s.rng.Float64()*float64(MaxLifetime-MinLifetime))
	s.stars = append(s.stars, ShootingStar{
		ID:       s.nextID,
		X:        s.rng.Float64(),
		Y:        s.rng.Float64(),
		Born:     now,
		Lifetime: life,
	})
	return true
}

// Expire drops stars older than RemoveAfter.
func (s *Sky) Expire(now time.Time) {
	kept := s.stars[:0]
	for _, st := range s.stars {
		if now.Sub(st.Born) < RemoveAfter {
			kept = append(kept, st)
		}
	}
	s.stars = kept
}

// Active returns stars still drawing at now.
func (s *Sky) Active(now time.Time) []ShootingStar {
	var out []ShootingStar
	for _, st := range s.stars {
		if _, _, ok := st.Position(now); ok {
			out = append(out, st)
		}
	}
	return out
}

// Len counts stars not yet removed, including finished ones.
func (s *Sky) Len() int {
	return len(s.stars)
}
