package steering

import (
	"math"
	"testing"

	"github.com/opd-ai/go-tanks/pkg/physics"
)

func TestUnit_Apply_IntegrationOrder(t *testing.T) {
	u := NewUnit(physics.Vector2D{}, 0, DefaultLimits(), nil)
	u.Velocity = physics.Vector2D{X: 10, Y: 0}

	u.Apply(Acceleration{Linear: physics.Vector2D{X: 0, Y: 10}}, 1)

	// Position uses the velocity from before this frame's acceleration.
	if u.Position != (physics.Vector2D{X: 10, Y: 0}) {
		t.Errorf("Position = %v, expected (10, 0)", u.Position)
	}
	if u.Velocity != (physics.Vector2D{X: 10, Y: 10}) {
		t.Errorf("Velocity = %v, expected (10, 10)", u.Velocity)
	}
}

func TestUnit_Apply_LimitsSpeed(t *testing.T) {
	u := NewUnit(physics.Vector2D{}, 0, DefaultLimits(), nil)

	for i := 0; i < 100; i++ {
		u.Apply(Acceleration{Linear: physics.Vector2D{X: 0, Y: 1000}}, 0.1)
	}

	if u.Speed() > u.MaxLinearSpeed+1e-9 {
		t.Errorf("Speed() = %v exceeds max %v", u.Speed(), u.MaxLinearSpeed)
	}
}

func TestUnit_Apply_FacesDirectionOfTravel(t *testing.T) {
	tests := []struct {
		name     string
		velocity physics.Vector2D
		expected float64
	}{
		{"up", physics.Vector2D{X: 0, Y: 5}, 0},
		{"left", physics.Vector2D{X: -5, Y: 0}, math.Pi / 2},
		{"down", physics.Vector2D{X: 0, Y: -5}, math.Pi},
		{"right", physics.Vector2D{X: 5, Y: 0}, 3 * math.Pi / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewUnit(physics.Vector2D{}, 1, DefaultLimits(), nil)
			u.Velocity = tt.velocity
			u.Apply(Acceleration{}, 0.016)
			if math.Abs(u.Orientation-tt.expected) > 1e-9 {
				t.Errorf("Orientation = %v, expected %v", u.Orientation, tt.expected)
			}
		})
	}
}

func TestUnit_Apply_ZeroVelocityKeepsOrientation(t *testing.T) {
	u := NewUnit(physics.Vector2D{}, 1.25, DefaultLimits(), nil)
	u.Velocity = physics.Vector2D{X: 0.0001, Y: 0}

	u.Apply(Acceleration{}, 0.016)

	if u.Orientation != 1.25 {
		t.Errorf("Orientation = %v, expected unchanged 1.25", u.Orientation)
	}
	if math.IsNaN(u.Orientation) || math.IsNaN(u.AngularVelocity) {
		t.Error("orientation update produced NaN")
	}
}

func TestUnit_Apply_IndependentFacing(t *testing.T) {
	u := NewUnit(physics.Vector2D{}, 0, DefaultLimits(), nil)
	u.IndependentFacing = true
	u.Velocity = physics.Vector2D{X: 5, Y: 0}
	u.AngularVelocity = 1

	u.Apply(Acceleration{Angular: 2}, 0.5)

	if math.Abs(u.Orientation-0.5) > 1e-9 {
		t.Errorf("Orientation = %v, expected 0.5", u.Orientation)
	}
	if math.Abs(u.AngularVelocity-2) > 1e-9 {
		t.Errorf("AngularVelocity = %v, expected 2", u.AngularVelocity)
	}
}

func TestUnit_Step_NilPolicyCoasts(t *testing.T) {
	u := NewUnit(physics.Vector2D{X: 1, Y: 1}, 0, DefaultLimits(), nil)
	u.Velocity = physics.Vector2D{X: 0, Y: 2}

	u.Step(1)

	if u.Position != (physics.Vector2D{X: 1, Y: 3}) {
		t.Errorf("Position = %v, expected (1, 3)", u.Position)
	}
}
