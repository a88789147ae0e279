// pkg/physics/vector_test.go
package physics

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestVector2D_Arithmetic(t *testing.T) {
	tests := []struct {
		name     string
		got      Vector2D
		expected Vector2D
	}{
		{"add", Vector2D{X: 3, Y: 4}.Add(Vector2D{X: 1, Y: 2}), Vector2D{X: 4, Y: 6}},
		{"sub", Vector2D{X: 5, Y: -3}.Sub(Vector2D{X: -2, Y: 7}), Vector2D{X: 7, Y: -10}},
		{"scale", Vector2D{X: 2, Y: -1}.Scale(3), Vector2D{X: 6, Y: -3}},
		{"mul_add", Vector2D{X: 1, Y: 1}.MulAdd(Vector2D{X: 2, Y: 4}, 0.5), Vector2D{X: 2, Y: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %v, expected %v", tt.got, tt.expected)
			}
		})
	}
}

func TestVector2D_Normalize(t *testing.T) {
	t.Run("unit_length", func(t *testing.T) {
		n := Vector2D{X: 3, Y: 4}.Normalize()
		if !almostEqual(n.Length(), 1) {
			t.Errorf("Normalize().Length() = %v, expected 1", n.Length())
		}
	})

	t.Run("zero_vector_stays_zero", func(t *testing.T) {
		n := Vector2D{}.Normalize()
		if n != (Vector2D{}) {
			t.Errorf("Normalize() of zero = %v, expected zero", n)
		}
		if math.IsNaN(n.X) || math.IsNaN(n.Y) {
			t.Error("Normalize() of zero produced NaN")
		}
	})
}

func TestVector2D_Limit(t *testing.T) {
	tests := []struct {
		name     string
		v        Vector2D
		max      float64
		expected float64
	}{
		{"over_limit", Vector2D{X: 30, Y: 40}, 10, 10},
		{"under_limit", Vector2D{X: 3, Y: 4}, 10, 5},
		{"at_limit", Vector2D{X: 6, Y: 8}, 10, 10},
		{"zero", Vector2D{}, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Limit(tt.max).Length()
			if !almostEqual(got, tt.expected) {
				t.Errorf("Limit(%v).Length() = %v, expected %v", tt.max, got, tt.expected)
			}
		})
	}
}

func TestVector2D_IsZero(t *testing.T) {
	if !(Vector2D{X: 0.0005, Y: 0}).IsZero(0.001) {
		t.Error("expected vector below threshold to be zero")
	}
	if (Vector2D{X: 0.01, Y: 0}).IsZero(0.001) {
		t.Error("expected vector above threshold to be non-zero")
	}
}

func TestFromHeading_Convention(t *testing.T) {
	tests := []struct {
		name     string
		heading  float64
		expected Vector2D
	}{
		{"up", 0, Vector2D{X: 0, Y: 1}},
		{"left", math.Pi / 2, Vector2D{X: -1, Y: 0}},
		{"down", math.Pi, Vector2D{X: 0, Y: -1}},
		{"right", 3 * math.Pi / 2, Vector2D{X: 1, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromHeading(tt.heading, 1)
			if !almostEqual(got.X, tt.expected.X) || !almostEqual(got.Y, tt.expected.Y) {
				t.Errorf("FromHeading(%v) = %v, expected %v", tt.heading, got, tt.expected)
			}
		})
	}
}

func TestHeading_InvertsFromHeading(t *testing.T) {
	for _, h := range []float64{0, 0.3, 1.2, 2.5, -2.0} {
		v := FromHeading(h, 7)
		back := NormalizeAngle(v.Heading())
		if !almostEqual(back, NormalizeAngle(h)) {
			t.Errorf("Heading(FromHeading(%v)) = %v", h, back)
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		expected float64
	}{
		{"zero", 0, 0},
		{"full_turn", 2 * math.Pi, 0},
		{"negative", -math.Pi / 2, 3 * math.Pi / 2},
		{"over_two_turns", 5 * math.Pi, math.Pi},
		{"inside", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeAngle(tt.in)
			if !almostEqual(got, tt.expected) {
				t.Errorf("NormalizeAngle(%v) = %v, expected %v", tt.in, got, tt.expected)
			}
			if got < 0 || got >= 2*math.Pi {
				t.Errorf("NormalizeAngle(%v) = %v out of [0, 2π)", tt.in, got)
			}
		})
	}
}

func TestDegreesRadians(t *testing.T) {
	if !almostEqual(Degrees(math.Pi), 180) {
		t.Errorf("Degrees(π) = %v", Degrees(math.Pi))
	}
	if !almostEqual(Radians(90), math.Pi/2) {
		t.Errorf("Radians(90) = %v", Radians(90))
	}
}
