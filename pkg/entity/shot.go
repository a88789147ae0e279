// pkg/entity/shot.go
package entity

import (
	"github.com/opd-ai/go-tanks/pkg/physics"
)

// ShotDamage is the damage every shot carries
const ShotDamage = 1000

// Shot is a projectile flying in a straight line. It remembers the side
// that fired it but holds no pointer back to the tank.
type Shot struct {
	Entity
	Side   Side
	Speed  float64
	Angle  float64 // direction of travel, fixed at spawn
	Damage int
	Active bool
}

// NewShot creates an active shot centered on position
func NewShot(id ID, side Side, position physics.Vector2D, width, height, speed, angle float64, damage int) *Shot {
	angle = physics.NormalizeAngle(angle)
	return &Shot{
		Entity: Entity{
			ID:          id,
			Position:    position,
			Width:       width,
			Height:      height,
			Orientation: angle,
		},
		Side:   side,
		Speed:  speed,
		Angle:  angle,
		Damage: damage,
		Active: true,
	}
}

// Velocity returns the constant velocity of the shot
func (s *Shot) Velocity() physics.Vector2D {
	return physics.FromHeading(s.Angle, s.Speed)
}

// Update moves the shot along its angle
func (s *Shot) Update(deltaTime float64) {
	if !s.Active {
		return
	}
	s.Position = s.Position.MulAdd(s.Velocity(), deltaTime)
}

// OffField reports whether the shot center left the field grown by margin
func (s *Shot) OffField(field physics.Rect, margin float64) bool {
	return !field.Grow(margin).Contains(s.Position)
}

// Intersects reports whether the shot overlaps r
func (s *Shot) Intersects(r physics.Rect) bool {
	return s.Bounds().Overlaps(r)
}

// Render draws the shot
func (s *Shot) Render(r Renderer) {
	r.RenderShot(s)
}
