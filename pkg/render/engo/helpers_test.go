package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-tanks/pkg/entity"
	"github.com/opd-ai/go-tanks/pkg/physics"
)

// fakeSystem records sprites the way common.RenderSystem would hold them
type fakeSystem struct {
	entities map[uint64]*common.RenderComponent
	spaces   map[uint64]*common.SpaceComponent
	removed  int
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{
		entities: make(map[uint64]*common.RenderComponent),
		spaces:   make(map[uint64]*common.SpaceComponent),
	}
}

func (f *fakeSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	f.entities[basic.ID()] = render
	f.spaces[basic.ID()] = space
}

func (f *fakeSystem) Remove(basic ecs.BasicEntity) {
	if _, ok := f.entities[basic.ID()]; ok {
		f.removed++
	}
	delete(f.entities, basic.ID())
	delete(f.spaces, basic.ID())
}

// fakeTextures hands out one distinct drawable per texture kind
type fakeTextures struct {
	tank, wreck, shot, explosion, smoke, track, background common.Drawable
}

func newFakeTextures() *fakeTextures {
	return &fakeTextures{
		tank:       &common.Rectangle{BorderWidth: 1},
		wreck:      &common.Rectangle{BorderWidth: 2},
		shot:       &common.Rectangle{BorderWidth: 3},
		explosion:  &common.Rectangle{BorderWidth: 4},
		smoke:      &common.Rectangle{BorderWidth: 5},
		track:      &common.Rectangle{BorderWidth: 6},
		background: &common.Rectangle{BorderWidth: 7},
	}
}

func (f *fakeTextures) Tank(side entity.Side, variant entity.Variant) common.Drawable {
	if variant == entity.VariantDestroyed {
		return f.wreck
	}
	return f.tank
}

func (f *fakeTextures) Shot(side entity.Side) common.Drawable { return f.shot }

func (f *fakeTextures) Explosion(kind entity.ExplosionKind, frame int) common.Drawable {
	if kind == entity.SmokeExplosion {
		return f.smoke
	}
	return f.explosion
}

func (f *fakeTextures) Track() common.Drawable      { return f.track }
func (f *fakeTextures) Background() common.Drawable { return f.background }

var testField = physics.Rect{Width: 480, Height: 800}

func almostEqual(a, b, tolerance float64) bool {
	d := a - b
	return d < tolerance && d > -tolerance
}
