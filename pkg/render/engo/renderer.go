// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-tanks/pkg/entity"
	"github.com/opd-ai/go-tanks/pkg/physics"
)

// Draw order, back to front
const (
	zBackground float32 = iota
	zTrack
	zTank
	zShot
	zExplosion
	zHUD
)

// rendererPriority draws after the camera has picked up this frame's shake
const rendererPriority = 0

// spriteSystem is the part of common.RenderSystem the renderer uses
type spriteSystem interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

// layer separates id spaces; a shot and a tank never share a sprite
type layer int

const (
	layerTrack layer = iota
	layerTank
	layerShot
	layerExplosion
)

type spriteKey struct {
	layer layer
	id    entity.ID
}

// sprite is one entity registered with the render system. The components
// live here so their addresses stay valid while the system holds them.
type sprite struct {
	basic  ecs.BasicEntity
	render common.RenderComponent
	space  common.SpaceComponent
	seen   bool
}

var opaque = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// EngoRenderer implements entity.Renderer by keeping one engo sprite per
// battle entity. Sprites not drawn between Clear and Present are removed.
type EngoRenderer struct {
	system  spriteSystem
	camera  *CameraSystem
	assets  TextureSource
	sprites map[spriteKey]*sprite

	background *sprite
	draw       func(entity.Renderer)
}

// NewEngoRenderer creates a new renderer adding sprites to system
func NewEngoRenderer(system spriteSystem, camera *CameraSystem, assets TextureSource) *EngoRenderer {
	r := &EngoRenderer{
		system:  system,
		camera:  camera,
		assets:  assets,
		sprites: make(map[spriteKey]*sprite),
	}
	r.addBackground()
	return r
}

// Source sets what the renderer draws on every Update, usually Battle.Render
func (r *EngoRenderer) Source(draw func(entity.Renderer)) {
	r.draw = draw
}

// Priority implements ecs.Prioritizer
func (r *EngoRenderer) Priority() int {
	return rendererPriority
}

// Update draws the source once per engo frame
func (r *EngoRenderer) Update(dt float32) {
	if r.draw != nil {
		r.draw(r)
	}
}

// Remove satisfies the ecs.System interface
func (r *EngoRenderer) Remove(basic ecs.BasicEntity) {}

func (r *EngoRenderer) addBackground() {
	s := &sprite{basic: ecs.NewBasic()}
	s.render = common.RenderComponent{Drawable: r.assets.Background(), Color: opaque}
	s.render.SetZIndex(zBackground)
	r.fit(s, r.camera.field.Center(), r.camera.field.Width, r.camera.field.Height, 0)
	r.system.Add(&s.basic, &s.render, &s.space)
	r.background = s
}

// Clear implements entity.Renderer
func (r *EngoRenderer) Clear() {
	for _, s := range r.sprites {
		s.seen = false
	}
	r.fit(r.background, r.camera.field.Center(), r.camera.field.Width, r.camera.field.Height, 0)
}

// Present implements entity.Renderer
func (r *EngoRenderer) Present() {
	for key, s := range r.sprites {
		if !s.seen {
			r.system.Remove(s.basic)
			delete(r.sprites, key)
		}
	}
}

// Len returns the number of live entity sprites, background excluded
func (r *EngoRenderer) Len() int {
	return len(r.sprites)
}

// getOrCreate returns the sprite for key, registering a new one on first use
func (r *EngoRenderer) getOrCreate(key spriteKey, z float32) *sprite {
	if s, exists := r.sprites[key]; exists {
		s.seen = true
		return s
	}

	s := &sprite{basic: ecs.NewBasic(), seen: true}
	s.render.Color = opaque
	s.render.SetZIndex(z)
	r.sprites[key] = s
	r.system.Add(&s.basic, &s.render, &s.space)
	return s
}

// fit places s over a world rectangle and scales its texture to cover it
func (r *EngoRenderer) fit(s *sprite, center physics.Vector2D, w, h, orientation float64) {
	r.camera.Place(&s.space, center, w, h, orientation)
	s.render.Scale = engo.Point{X: 1, Y: 1}
	if d := s.render.Drawable; d != nil && d.Width() > 0 && d.Height() > 0 {
		s.render.Scale = engo.Point{
			X: s.space.Width / d.Width(),
			Y: s.space.Height / d.Height(),
		}
	}
}

// RenderTrack implements entity.Renderer
func (r *EngoRenderer) RenderTrack(track *entity.TrackPrint) {
	s := r.getOrCreate(spriteKey{layerTrack, track.ID}, zTrack)
	s.render.Drawable = r.assets.Track()
	s.render.Color = color.NRGBA{R: 255, G: 255, B: 255, A: uint8(255 * track.Alpha())}
	r.fit(s, track.Footprint.Center(), track.Footprint.Width, track.Footprint.Height, track.Orientation)
}

// RenderTank implements entity.Renderer
func (r *EngoRenderer) RenderTank(tank *entity.Tank) {
	s := r.getOrCreate(spriteKey{layerTank, tank.ID}, zTank)
	s.render.Drawable = r.assets.Tank(tank.Side, tank.Variant())
	r.fit(s, tank.Position, tank.Width, tank.Height, tank.Orientation)
}

// RenderShot implements entity.Renderer
func (r *EngoRenderer) RenderShot(shot *entity.Shot) {
	s := r.getOrCreate(spriteKey{layerShot, shot.ID}, zShot)
	s.render.Drawable = r.assets.Shot(shot.Side)
	// shot textures point up the image while angle 0 points up the world
	r.fit(s, shot.Position, shot.Width, shot.Height, shot.Angle)
}

// RenderExplosion implements entity.Renderer
func (r *EngoRenderer) RenderExplosion(explosion *entity.Explosion) {
	s := r.getOrCreate(spriteKey{layerExplosion, explosion.ID}, zExplosion)
	s.render.Drawable = r.assets.Explosion(explosion.Kind, explosion.Frame())
	size := explosionSize(explosion.Kind)
	r.fit(s, explosion.Position, size, size, 0)
}

// explosionSize is the on-field size of an explosion in world units
func explosionSize(kind entity.ExplosionKind) float64 {
	if kind == entity.SmokeExplosion {
		return 32
	}
	return 64
}

var _ entity.Renderer = (*EngoRenderer)(nil)
