// Package steering implements the steering integrator used by autonomous
// tanks: a unit with linear and angular velocity driven by a pluggable policy.
package steering

import (
	"github.com/opd-ai/go-tanks/pkg/physics"
)

// Acceleration is the output of a steering policy
type Acceleration struct {
	Linear  physics.Vector2D
	Angular float64
}

// IsZero reports whether both components are zero
func (a Acceleration) IsZero() bool {
	return a.Linear == (physics.Vector2D{}) && a.Angular == 0
}

// Policy computes the acceleration a unit should apply this frame
type Policy interface {
	Steer(u *Unit) Acceleration
}

// Location is anything with a position that a policy can steer towards.
// The unit never owns its location.
type Location interface {
	GetPosition() physics.Vector2D
}

// Limits bound a unit's motion
type Limits struct {
	MaxLinearSpeed           float64
	MaxLinearAcceleration    float64
	MaxAngularSpeed          float64 // radians per second
	MaxAngularAcceleration   float64
	ZeroLinearSpeedThreshold float64
}

// DefaultLimits returns the limits autonomous tanks start with
func DefaultLimits() Limits {
	return Limits{
		MaxLinearSpeed:           64,
		MaxLinearAcceleration:    32,
		MaxAngularSpeed:          physics.Radians(128),
		MaxAngularAcceleration:   32,
		ZeroLinearSpeedThreshold: 0.001,
	}
}

// Unit is a steerable body. Orientation is in radians and always kept in
// [0, 2π); when IndependentFacing is false it follows the heading of travel.
type Unit struct {
	Limits
	Position          physics.Vector2D
	Velocity          physics.Vector2D
	Orientation       float64
	AngularVelocity   float64
	IndependentFacing bool
	Policy            Policy
}

// NewUnit creates a unit at rest
func NewUnit(position physics.Vector2D, orientation float64, limits Limits, policy Policy) *Unit {
	return &Unit{
		Limits:      limits,
		Position:    position,
		Orientation: physics.NormalizeAngle(orientation),
		Policy:      policy,
	}
}

// Step asks the policy for an acceleration and integrates it over dt
func (u *Unit) Step(dt float64) {
	var acc Acceleration
	if u.Policy != nil {
		acc = u.Policy.Steer(u)
	}
	u.Apply(acc, dt)
}

// Apply integrates one frame: position from the current velocity first, then
// velocity from the acceleration (capped at MaxLinearSpeed), then orientation.
func (u *Unit) Apply(acc Acceleration, dt float64) {
	u.Position = u.Position.MulAdd(u.Velocity, dt)
	u.Velocity = u.Velocity.MulAdd(acc.Linear, dt).Limit(u.MaxLinearSpeed)

	if u.IndependentFacing {
		u.Orientation = physics.NormalizeAngle(u.Orientation + u.AngularVelocity*dt)
		u.AngularVelocity = clamp(u.AngularVelocity+acc.Angular*dt, u.MaxAngularSpeed)
		return
	}

	// A (near) zero velocity has no heading; keep facing where we were.
	if u.Velocity.IsZero(u.ZeroLinearSpeedThreshold) {
		return
	}
	heading := physics.NormalizeAngle(u.Velocity.Heading())
	if heading != u.Orientation {
		u.AngularVelocity = (heading - u.Orientation) * dt
		u.Orientation = heading
	}
}

// Speed returns the magnitude of the current velocity
func (u *Unit) Speed() float64 {
	return u.Velocity.Length()
}

func clamp(v, limit float64) float64 {
	if limit <= 0 {
		return v
	}
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
