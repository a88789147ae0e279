package steering

import (
	"github.com/opd-ai/go-tanks/pkg/physics"
)

// Arrive steers a unit towards a target and slows it down inside the
// deceleration radius so it comes to rest at the target instead of overshooting.
type Arrive struct {
	Target             Location
	ArrivalTolerance   float64
	DecelerationRadius float64
	TimeToTarget       float64
}

// NewArrive creates an arrive policy with the default tuning
func NewArrive(target Location) *Arrive {
	return &Arrive{
		Target:             target,
		ArrivalTolerance:   64,
		DecelerationRadius: 160,
		TimeToTarget:       0.1,
	}
}

// Steer implements Policy
func (a *Arrive) Steer(u *Unit) Acceleration {
	if a.Target == nil {
		return Acceleration{}
	}

	timeToTarget := a.TimeToTarget
	if timeToTarget <= 0 {
		timeToTarget = 0.1
	}

	toTarget := a.Target.GetPosition().Sub(u.Position)
	distance := toTarget.Length()
	if distance <= a.ArrivalTolerance || distance == 0 {
		// Inside the tolerance: brake to a stop rather than drift.
		return Acceleration{
			Linear: u.Velocity.Scale(-1 / timeToTarget).Limit(u.MaxLinearAcceleration),
		}
	}

	targetSpeed := u.MaxLinearSpeed
	if distance <= a.DecelerationRadius {
		targetSpeed *= distance / a.DecelerationRadius
	}

	desired := toTarget.Scale(targetSpeed / distance)

	linear := desired.Sub(u.Velocity).Scale(1 / timeToTarget).Limit(u.MaxLinearAcceleration)

	return Acceleration{Linear: linear}
}

// Point is a fixed Location
type Point physics.Vector2D

// GetPosition implements Location
func (p Point) GetPosition() physics.Vector2D {
	return physics.Vector2D(p)
}
