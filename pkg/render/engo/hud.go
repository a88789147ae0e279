// pkg/render/engo/hud.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-tanks/pkg/engine"
	"github.com/opd-ai/go-tanks/pkg/entity"
	"github.com/opd-ai/go-tanks/pkg/physics"
)

const (
	hudPriority = -10

	// health bar geometry in world units
	barHeight = 5.0
	barGap    = 6.0
)

var (
	barBackColor = color.NRGBA{R: 0, G: 0, B: 0, A: 160}
	healthGood   = color.NRGBA{R: 60, G: 200, B: 60, A: 255}
	healthHurt   = color.NRGBA{R: 230, G: 200, B: 40, A: 255}
	healthLow    = color.NRGBA{R: 220, G: 50, B: 40, A: 255}

	victoryTint = color.NRGBA{R: 40, G: 160, B: 40, A: 90}
	defeatTint  = color.NRGBA{R: 160, G: 30, B: 30, A: 90}
	drawTint    = color.NRGBA{R: 80, G: 80, B: 80, A: 90}
	pausedTint  = color.NRGBA{R: 0, G: 0, B: 0, A: 120}
)

// healthBar is the backing and fill rectangles above one tank
type healthBar struct {
	back *sprite
	fill *sprite
}

// HUDSystem draws the heads-up display: a health bar above every live tank
// and a tinted overlay when the battle is paused or over.
type HUDSystem struct {
	system spriteSystem
	camera *CameraSystem
	bars   map[entity.ID]*healthBar
	banner *sprite

	source func() *engine.BattleState
}

// NewHUDSystem creates a new HUD system adding its rectangles to system
func NewHUDSystem(system spriteSystem, camera *CameraSystem) *HUDSystem {
	return &HUDSystem{
		system: system,
		camera: camera,
		bars:   make(map[entity.ID]*healthBar),
	}
}

// Follow makes the HUD show the state returned by source every frame
func (hud *HUDSystem) Follow(source func() *engine.BattleState) {
	hud.source = source
}

// Priority implements ecs.Prioritizer
func (hud *HUDSystem) Priority() int {
	return hudPriority
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update refreshes the HUD from the followed state
func (hud *HUDSystem) Update(dt float32) {
	if hud.source != nil {
		hud.Show(hud.source())
	}
}

// Show syncs the HUD with state
func (hud *HUDSystem) Show(state *engine.BattleState) {
	if state == nil {
		return
	}

	present := make(map[entity.ID]bool, len(state.Tanks))
	for _, ts := range state.Tanks {
		present[ts.ID] = true
		hud.showBar(ts)
	}
	for id, bar := range hud.bars {
		if !present[id] {
			hud.system.Remove(bar.back.basic)
			hud.system.Remove(bar.fill.basic)
			delete(hud.bars, id)
		}
	}

	hud.showBanner(state)
}

func (hud *HUDSystem) newRect(c color.Color, z float32) *sprite {
	s := &sprite{basic: ecs.NewBasic()}
	s.render = common.RenderComponent{
		Drawable: common.Rectangle{BorderWidth: 0, BorderColor: color.Transparent},
		Color:    c,
	}
	s.render.SetZIndex(z)
	hud.system.Add(&s.basic, &s.render, &s.space)
	return s
}

func (hud *HUDSystem) showBar(ts engine.TankState) {
	bar, exists := hud.bars[ts.ID]
	if !exists {
		bar = &healthBar{
			back: hud.newRect(barBackColor, zHUD),
			fill: hud.newRect(healthGood, zHUD+0.5),
		}
		hud.bars[ts.ID] = bar
	}

	hidden := ts.Variant == entity.VariantDestroyed
	bar.back.render.Hidden = hidden
	bar.fill.render.Hidden = hidden
	if hidden {
		return
	}

	back, fill := barRects(ts)
	hud.camera.Place(&bar.back.space, back.Center(), back.Width, back.Height, 0)
	hud.camera.Place(&bar.fill.space, fill.Center(), fill.Width, fill.Height, 0)
	bar.fill.render.Color = barColor(healthFraction(ts))
}

func (hud *HUDSystem) showBanner(state *engine.BattleState) {
	tint, visible := outcomeTint(state)
	if hud.banner == nil {
		if !visible {
			return
		}
		hud.banner = hud.newRect(tint, zHUD+1)
	}

	hud.banner.render.Hidden = !visible
	hud.banner.render.Color = tint
	w, h := hud.camera.ScreenSize()
	hud.banner.space = common.SpaceComponent{
		Position: engo.Point{},
		Width:    float32(w),
		Height:   float32(h),
	}
}

// healthFraction is the remaining health in [0, 1]
func healthFraction(ts engine.TankState) float64 {
	if ts.MaxHealth <= 0 || ts.Health <= 0 {
		return 0
	}
	return min(float64(ts.Health)/float64(ts.MaxHealth), 1)
}

// barColor picks the fill color for a health fraction
func barColor(fraction float64) color.Color {
	switch {
	case fraction > 0.5:
		return healthGood
	case fraction > 0.25:
		return healthHurt
	default:
		return healthLow
	}
}

// barRects returns the world rectangles of a tank's health bar backing and
// fill. The bar spans the tank's width just above it, filled from the left.
func barRects(ts engine.TankState) (back, fill physics.Rect) {
	back = physics.Rect{
		X:      ts.Position.X - ts.Width/2,
		Y:      ts.Position.Y + ts.Height/2 + barGap,
		Width:  ts.Width,
		Height: barHeight,
	}
	fill = back
	fill.Width = back.Width * healthFraction(ts)
	return back, fill
}

// outcomeTint returns the overlay color for a paused or finished battle
func outcomeTint(state *engine.BattleState) (color.Color, bool) {
	if state.Status == engine.BattleStatusEnded {
		switch state.Winner {
		case entity.Allied:
			return victoryTint, true
		case entity.Hostile:
			return defeatTint, true
		default:
			return drawTint, true
		}
	}
	if state.Paused {
		return pausedTint, true
	}
	return color.Transparent, false
}
