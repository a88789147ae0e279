package engine

import (
	"math/rand/v2"

	"github.com/opd-ai/go-tanks/pkg/physics"
)

const shakeEpsilon = 1e-9

// Shake produces a decaying random camera offset. A new Trigger replaces
// whatever shake is running.
type Shake struct {
	power    float64
	duration float64
	elapsed  float64
	active   bool
	rng      *rand.Rand
}

// NewShake creates an idle shake drawing offsets from rng
func NewShake(rng *rand.Rand) *Shake {
	return &Shake{rng: rng}
}

// Trigger starts a shake of the given power lasting duration seconds
func (s *Shake) Trigger(power, duration float64) {
	if duration <= 0 {
		return
	}
	s.power = power
	s.duration = duration
	s.elapsed = 0
	s.active = true
}

// Active reports whether a shake is running
func (s *Shake) Active() bool {
	return s.active
}

// Tick advances the shake and returns this frame's offset. The offset is
// zero once elapsed reaches the duration.
func (s *Shake) Tick(deltaTime float64) physics.Vector2D {
	if !s.active {
		return physics.Vector2D{}
	}

	s.elapsed += deltaTime
	if s.elapsed >= s.duration-shakeEpsilon {
		s.active = false
		return physics.Vector2D{}
	}

	p := s.power * (s.duration - s.elapsed) / s.duration
	return physics.Vector2D{
		X: (s.rng.Float64()*2 - 1) * p,
		Y: (s.rng.Float64()*2 - 1) * p,
	}
}
