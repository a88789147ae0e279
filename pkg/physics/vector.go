// pkg/physics/vector.go
package physics

import "math"

// Vector2D represents a 2D vector with x and y components
type Vector2D struct {
	X float64
	Y float64
}

// Add returns the sum of two vectors
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference between two vectors
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale multiplies the vector by a scalar value
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{X: v.X * factor, Y: v.Y * factor}
}

// MulAdd returns v + other*factor.
func (v Vector2D) MulAdd(other Vector2D, factor float64) Vector2D {
	return Vector2D{X: v.X + other.X*factor, Y: v.Y + other.Y*factor}
}

// Length returns the magnitude of the vector
func (v Vector2D) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared returns magnitude squared (optimization for comparisons)
func (v Vector2D) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to itself.
func (v Vector2D) Normalize() Vector2D {
	length := v.Length()
	if length == 0 {
		return Vector2D{}
	}
	return Vector2D{X: v.X / length, Y: v.Y / length}
}

// Limit caps the magnitude of the vector at max, keeping its direction.
func (v Vector2D) Limit(max float64) Vector2D {
	lenSq := v.LengthSquared()
	if lenSq > max*max {
		return v.Scale(max / math.Sqrt(lenSq))
	}
	return v
}

// IsZero reports whether the vector's magnitude is at most epsilon.
func (v Vector2D) IsZero(epsilon float64) bool {
	return v.LengthSquared() <= epsilon*epsilon
}

// Distance returns the distance between two vectors
func (v Vector2D) Distance(other Vector2D) float64 {
	return v.Sub(other).Length()
}

// Dot returns the dot product of two vectors
func (v Vector2D) Dot(other Vector2D) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Heading returns the angle of the vector in radians, where 0 points along +Y
// and angles grow counter-clockwise. It is the inverse of FromHeading.
func (v Vector2D) Heading() float64 {
	return math.Atan2(-v.X, v.Y)
}

// FromHeading creates a vector of the given magnitude pointing along heading
// (radians, 0 along +Y, counter-clockwise).
func FromHeading(heading float64, magnitude float64) Vector2D {
	return Vector2D{
		X: -magnitude * math.Sin(heading),
		Y: magnitude * math.Cos(heading),
	}
}

// NormalizeAngle wraps an angle in radians into [0, 2π).
func NormalizeAngle(angle float64) float64 {
	a := math.Mod(angle, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}
