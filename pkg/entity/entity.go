// pkg/entity/entity.go
package entity

import (
	"sync/atomic"

	"github.com/opd-ai/go-tanks/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

// Side identifies which army a tank or shot belongs to
type Side int

const (
	Allied Side = iota
	Hostile
)

// String returns the side name used in logs and events
func (s Side) String() string {
	switch s {
	case Allied:
		return "Allied"
	case Hostile:
		return "Hostile"
	default:
		return "Unknown"
	}
}

// Opposes reports whether two sides are enemies
func (s Side) Opposes(other Side) bool {
	return s != other
}

// Object is the interface shared by everything the battle can draw
type Object interface {
	GetID() ID
	GetPosition() physics.Vector2D
	Bounds() physics.Rect
	Render(r Renderer)
}

// Entity contains the geometry common to tanks and shots. Position is the
// center; the bounding rectangle is always derived, never stored.
type Entity struct {
	ID          ID
	Position    physics.Vector2D
	Width       float64
	Height      float64
	Orientation float64 // radians in [0, 2π)
}

// GetID returns the entity's unique identifier
func (e *Entity) GetID() ID {
	return e.ID
}

// GetPosition returns the entity's center
func (e *Entity) GetPosition() physics.Vector2D {
	return e.Position
}

// Bounds returns the axis-aligned rectangle around the entity
func (e *Entity) Bounds() physics.Rect {
	return physics.RectFromCenter(e.Position, e.Width, e.Height)
}

// SetOrientation sets the orientation, wrapping it into [0, 2π)
func (e *Entity) SetOrientation(radians float64) {
	e.Orientation = physics.NormalizeAngle(radians)
}

// OrientationDegrees is the orientation as renderers expect it
func (e *Entity) OrientationDegrees() float64 {
	return physics.Degrees(e.Orientation)
}

var nextID atomic.Uint64

// GenerateID generates a unique ID for entities
func GenerateID() ID {
	return ID(nextID.Add(1))
}
