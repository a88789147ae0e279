package physics

// Rect is an axis-aligned rectangle anchored at its lower-left corner.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// RectFromCenter builds the rectangle of the given size centered on c.
func RectFromCenter(c Vector2D, width, height float64) Rect {
	return Rect{
		X:      c.X - width/2,
		Y:      c.Y - height/2,
		Width:  width,
		Height: height,
	}
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vector2D {
	return Vector2D{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Overlaps reports whether two rectangles share interior area.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Contains reports whether point lies inside the rectangle (edges included).
func (r Rect) Contains(point Vector2D) bool {
	return point.X >= r.X && point.X <= r.X+r.Width &&
		point.Y >= r.Y && point.Y <= r.Y+r.Height
}

// Grow returns the rectangle extended by margin on every side.
func (r Rect) Grow(margin float64) Rect {
	return Rect{
		X:      r.X - margin,
		Y:      r.Y - margin,
		Width:  r.Width + 2*margin,
		Height: r.Height + 2*margin,
	}
}
