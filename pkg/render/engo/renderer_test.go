package engo

import (
	"image/color"
	"testing"

	"github.com/opd-ai/go-tanks/pkg/entity"
	"github.com/opd-ai/go-tanks/pkg/physics"
)

func newTestRenderer() (*EngoRenderer, *fakeSystem, *fakeTextures) {
	system := newFakeSystem()
	textures := newFakeTextures()
	return NewEngoRenderer(system, NewCameraSystem(testField, 1), textures), system, textures
}

func testTank(side entity.Side) *entity.Tank {
	return entity.NewTank(entity.GenerateID(), side, entity.TankStats{Width: 42, Height: 46},
		physics.Vector2D{X: 240, Y: 200}, 0)
}

func TestNewEngoRenderer_AddsBackground(t *testing.T) {
	r, system, textures := newTestRenderer()

	if len(system.entities) != 1 {
		t.Fatalf("system holds %d entities, want the background only", len(system.entities))
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
	if r.background.render.Drawable != textures.background {
		t.Error("background sprite does not use the background texture")
	}
	if r.background.space.Width != 480 || r.background.space.Height != 800 {
		t.Errorf("background size = %vx%v, want the field", r.background.space.Width, r.background.space.Height)
	}
}

func TestEngoRenderer_FrameLifecycle(t *testing.T) {
	r, system, textures := newTestRenderer()
	tank := testTank(entity.Allied)
	shot := entity.NewShot(entity.GenerateID(), entity.Allied, physics.Vector2D{X: 240, Y: 250}, 8, 26, 650, 0, 1000)

	r.Clear()
	r.RenderTank(tank)
	r.RenderShot(shot)
	r.Present()

	if r.Len() != 2 {
		t.Fatalf("Len() = %d after drawing a tank and a shot, want 2", r.Len())
	}
	tankSprite := r.sprites[spriteKey{layerTank, tank.ID}]
	if tankSprite.render.Drawable != textures.tank {
		t.Error("tank sprite uses the wrong texture")
	}

	// Next frame the shot is gone; its sprite is removed.
	r.Clear()
	r.RenderTank(tank)
	r.Present()

	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
	if system.removed != 1 {
		t.Errorf("system removed %d sprites, want 1", system.removed)
	}
	if r.sprites[spriteKey{layerTank, tank.ID}] != tankSprite {
		t.Error("tank sprite was recreated instead of reused")
	}

	tank.Dead = true
	r.Clear()
	r.RenderTank(tank)
	r.Present()
	if tankSprite.render.Drawable != textures.wreck {
		t.Error("destroyed tank should switch to the wreck texture")
	}
}

func TestEngoRenderer_SameIDDifferentLayers(t *testing.T) {
	r, _, _ := newTestRenderer()

	tank := testTank(entity.Allied)
	shot := entity.NewShot(tank.ID, entity.Allied, physics.Vector2D{}, 8, 26, 650, 0, 1000)

	r.Clear()
	r.RenderTank(tank)
	r.RenderShot(shot)
	r.Present()

	if r.Len() != 2 {
		t.Errorf("Len() = %d, want separate sprites per layer", r.Len())
	}
}

func TestEngoRenderer_TrackFades(t *testing.T) {
	r, _, _ := newTestRenderer()
	track := entity.NewTrackPrint(entity.GenerateID(), physics.Rect{X: 219, Y: 177, Width: 42, Height: 46}, 0, 4)
	track.Update(1)

	r.Clear()
	r.RenderTrack(track)
	r.Present()

	s := r.sprites[spriteKey{layerTrack, track.ID}]
	c, ok := s.render.Color.(color.NRGBA)
	if !ok {
		t.Fatalf("track color is %T, want color.NRGBA", s.render.Color)
	}
	// a quarter of its lifetime gone
	if c.A != 191 {
		t.Errorf("track alpha = %d, want 191", c.A)
	}
}

func TestEngoRenderer_ExplosionTextures(t *testing.T) {
	r, system, textures := newTestRenderer()
	kill := entity.NewExplosion(entity.GenerateID(), entity.KillExplosion, physics.Vector2D{X: 100, Y: 100}, 5, 0.125)
	smoke := entity.NewExplosion(entity.GenerateID(), entity.SmokeExplosion, physics.Vector2D{X: 100, Y: 100}, 5, 0.05)

	r.Clear()
	r.RenderExplosion(kill)
	r.RenderExplosion(smoke)
	r.Present()

	ks := r.sprites[spriteKey{layerExplosion, kill.ID}]
	ss := r.sprites[spriteKey{layerExplosion, smoke.ID}]
	if ks.render.Drawable != textures.explosion || ss.render.Drawable != textures.smoke {
		t.Error("explosions use the wrong textures")
	}
	if ks.space.Width != 64 || ss.space.Width != 32 {
		t.Errorf("explosion widths = %v/%v, want 64/32", ks.space.Width, ss.space.Width)
	}
	if len(system.entities) != 3 {
		t.Errorf("system holds %d entities, want background plus 2 explosions", len(system.entities))
	}
}

func TestEngoRenderer_Source(t *testing.T) {
	r, _, _ := newTestRenderer()
	tank := testTank(entity.Hostile)

	r.Source(func(target entity.Renderer) {
		target.Clear()
		target.RenderTank(tank)
		target.Present()
	})
	r.Update(0.016)

	if r.Len() != 1 {
		t.Errorf("Len() = %d after Update, want 1", r.Len())
	}
}
