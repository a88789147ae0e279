// pkg/entity/effect.go
package entity

import (
	"github.com/opd-ai/go-tanks/pkg/physics"
)

// ExplosionKind selects the animation an explosion plays
type ExplosionKind int

const (
	KillExplosion ExplosionKind = iota
	SmokeExplosion
)

// String returns the kind name
func (k ExplosionKind) String() string {
	switch k {
	case KillExplosion:
		return "Kill"
	case SmokeExplosion:
		return "Smoke"
	default:
		return "Unknown"
	}
}

// Explosion is a fixed-position animation that expires after its frames play
type Explosion struct {
	ID            ID
	Kind          ExplosionKind
	Position      physics.Vector2D
	Frames        int
	FrameInterval float64
	Elapsed       float64
}

// NewExplosion creates an explosion at position
func NewExplosion(id ID, kind ExplosionKind, position physics.Vector2D, frames int, frameInterval float64) *Explosion {
	if frames < 1 {
		frames = 1
	}
	return &Explosion{
		ID:            id,
		Kind:          kind,
		Position:      position,
		Frames:        frames,
		FrameInterval: frameInterval,
	}
}

// Duration is the total animation length
func (e *Explosion) Duration() float64 {
	return float64(e.Frames) * e.FrameInterval
}

// Update ages the explosion
func (e *Explosion) Update(deltaTime float64) {
	e.Elapsed += deltaTime
}

// Finished reports whether the animation has played out
func (e *Explosion) Finished() bool {
	return e.Elapsed > e.Duration()
}

// Frame returns the current animation frame
func (e *Explosion) Frame() int {
	if e.FrameInterval <= 0 {
		return e.Frames - 1
	}
	frame := int(e.Elapsed / e.FrameInterval)
	if frame >= e.Frames {
		frame = e.Frames - 1
	}
	return frame
}

// Progress returns elapsed/duration clamped to [0, 1]
func (e *Explosion) Progress() float64 {
	d := e.Duration()
	if d <= 0 || e.Elapsed >= d {
		return 1
	}
	return e.Elapsed / d
}

// Render draws the explosion
func (e *Explosion) Render(r Renderer) {
	r.RenderExplosion(e)
}

// TrackPrint is a tread mark left behind a moving tank
type TrackPrint struct {
	ID          ID
	Footprint   physics.Rect
	Orientation float64
	Elapsed     float64
	MaxDuration float64
}

// NewTrackPrint creates a fresh print covering footprint
func NewTrackPrint(id ID, footprint physics.Rect, orientation, maxDuration float64) *TrackPrint {
	return &TrackPrint{
		ID:          id,
		Footprint:   footprint,
		Orientation: physics.NormalizeAngle(orientation),
		MaxDuration: maxDuration,
	}
}

// Update ages the print
func (p *TrackPrint) Update(deltaTime float64) {
	p.Elapsed += deltaTime
}

// Faded reports whether the print has outlived its duration
func (p *TrackPrint) Faded() bool {
	return p.Elapsed > p.MaxDuration
}

// Alpha is the remaining opacity, fading linearly to zero
func (p *TrackPrint) Alpha() float64 {
	if p.MaxDuration <= 0 || p.Elapsed >= p.MaxDuration {
		return 0
	}
	return 1 - p.Elapsed/p.MaxDuration
}

// Render draws the print
func (p *TrackPrint) Render(r Renderer) {
	r.RenderTrack(p)
}
