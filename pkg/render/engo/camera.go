// pkg/render/engo/camera.go
package engo

import (
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-tanks/pkg/physics"
)

// cameraPriority runs the camera after the battle step and before drawing
const cameraPriority = 10

// CameraSystem maps the battlefield onto the window. World y grows
// upwards and screen y downwards, so the y axis is flipped; the camera
// shake offset is added in world units before scaling.
type CameraSystem struct {
	field physics.Rect
	scale float64
	shake physics.Vector2D

	// source supplies the shake offset once per frame
	source func() physics.Vector2D
}

// NewCameraSystem creates a camera showing field at scale pixels per unit
func NewCameraSystem(field physics.Rect, scale float64) *CameraSystem {
	if scale <= 0 {
		scale = 1
	}
	return &CameraSystem{
		field: field,
		scale: scale,
	}
}

// Follow makes the camera read its shake offset from source every frame
func (cs *CameraSystem) Follow(source func() physics.Vector2D) {
	cs.source = source
}

// Priority implements ecs.Prioritizer
func (cs *CameraSystem) Priority() int {
	return cameraPriority
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {}

// Update pulls the current shake offset
func (cs *CameraSystem) Update(dt float32) {
	if cs.source != nil {
		cs.shake = cs.source()
	}
}

// SetShake sets the offset directly
func (cs *CameraSystem) SetShake(offset physics.Vector2D) {
	cs.shake = offset
}

// Shake returns the offset applied to the current frame
func (cs *CameraSystem) Shake() physics.Vector2D {
	return cs.shake
}

// Scale returns pixels per world unit
func (cs *CameraSystem) Scale() float64 {
	return cs.scale
}

// ScreenSize returns the window size needed to show the whole field
func (cs *CameraSystem) ScreenSize() (int, int) {
	return int(math.Ceil(cs.field.Width * cs.scale)), int(math.Ceil(cs.field.Height * cs.scale))
}

// WorldToScreen converts world coordinates to screen coordinates
func (cs *CameraSystem) WorldToScreen(worldPos physics.Vector2D) engo.Point {
	x := (worldPos.X - cs.field.X + cs.shake.X) * cs.scale
	y := (cs.field.Y + cs.field.Height - worldPos.Y - cs.shake.Y) * cs.scale
	return engo.Point{X: float32(x), Y: float32(y)}
}

// ScreenToWorld converts screen coordinates to world coordinates
func (cs *CameraSystem) ScreenToWorld(screenPos engo.Point) physics.Vector2D {
	return physics.Vector2D{
		X: float64(screenPos.X)/cs.scale + cs.field.X - cs.shake.X,
		Y: cs.field.Y + cs.field.Height - float64(screenPos.Y)/cs.scale - cs.shake.Y,
	}
}

// RotationDegrees converts a counter-clockwise world orientation in radians
// to engo's clockwise screen rotation in degrees, in [0, 360).
func RotationDegrees(orientation float64) float32 {
	deg := math.Mod(-physics.Degrees(orientation), 360)
	if deg < 0 {
		deg += 360
	}
	return float32(deg)
}

// Place sizes and positions space so that a w x h world rectangle rotated
// by orientation is centered on center. Engo rotates sprites around their
// top-left corner, so the corner is moved to compensate.
func (cs *CameraSystem) Place(space *common.SpaceComponent, center physics.Vector2D, w, h, orientation float64) {
	space.Width = float32(w * cs.scale)
	space.Height = float32(h * cs.scale)
	space.Rotation = RotationDegrees(orientation)

	c := cs.WorldToScreen(center)
	sin, cos := math.Sincos(float64(space.Rotation) * math.Pi / 180)
	sw, sh := float64(space.Width), float64(space.Height)
	dx := (sw*cos - sh*sin) / 2
	dy := (sw*sin + sh*cos) / 2

	space.Position = engo.Point{
		X: c.X - float32(dx),
		Y: c.Y - float32(dy),
	}
}
