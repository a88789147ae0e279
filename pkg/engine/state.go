package engine

import (
	"github.com/opd-ai/go-tanks/pkg/entity"
	"github.com/opd-ai/go-tanks/pkg/physics"
)

// BattleState is a copy of everything a renderer needs for one frame
type BattleState struct {
	Tick        uint64
	Status      BattleStatus
	Winner      entity.Side
	Paused      bool
	Field       physics.Rect
	ShakeOffset physics.Vector2D
	Tanks       []TankState
	Shots       []ShotState
	Explosions  []ExplosionState
	Tracks      []TrackState
}

// TankState contains the visible state of a tank
type TankState struct {
	ID          entity.ID
	Side        entity.Side
	Control     entity.Control
	Position    physics.Vector2D
	Orientation float64 // radians
	Width       float64
	Height      float64
	Variant     entity.Variant
	Health      int
	MaxHealth   int
	Moving      bool
}

// ShotState contains the visible state of a shot
type ShotState struct {
	ID       entity.ID
	Side     entity.Side
	Position physics.Vector2D
	Angle    float64
	Width    float64
	Height   float64
}

// ExplosionState contains the visible state of an explosion
type ExplosionState struct {
	ID       entity.ID
	Kind     entity.ExplosionKind
	Position physics.Vector2D
	Frame    int
	Progress float64
}

// TrackState contains the visible state of a tread mark
type TrackState struct {
	ID          entity.ID
	Footprint   physics.Rect
	Orientation float64
	Alpha       float64
}

// Snapshot returns a copy of the current battle state
func (b *Battle) Snapshot() *BattleState {
	state := &BattleState{
		Tick:        b.Tick,
		Status:      b.status,
		Winner:      b.winner,
		Paused:      b.paused,
		Field:       b.Field,
		ShakeOffset: b.shakeOffset,
		Tanks:       b.getTankStates(),
		Explosions:  b.getExplosionStates(),
	}
	state.Shots, state.Tracks = b.getShotAndTrackStates()
	return state
}

// getTankStates returns the state of every tank, player first
func (b *Battle) getTankStates() []TankState {
	states := make([]TankState, 0, len(b.tanks))
	for _, t := range b.tanks {
		states = append(states, TankState{
			ID:          t.ID,
			Side:        t.Side,
			Control:     t.Control,
			Position:    t.Position,
			Orientation: t.Orientation,
			Width:       t.Width,
			Height:      t.Height,
			Variant:     t.Variant(),
			Health:      t.Health,
			MaxHealth:   t.Stats.Health,
			Moving:      t.Moving,
		})
	}
	return states
}

func (b *Battle) getShotAndTrackStates() ([]ShotState, []TrackState) {
	var shots []ShotState
	var tracks []TrackState
	for _, t := range b.tanks {
		for _, s := range t.Shots {
			if !s.Active {
				continue
			}
			shots = append(shots, ShotState{
				ID:       s.ID,
				Side:     s.Side,
				Position: s.Position,
				Angle:    s.Angle,
				Width:    s.Width,
				Height:   s.Height,
			})
		}
		for _, p := range t.Tracks {
			tracks = append(tracks, TrackState{
				ID:          p.ID,
				Footprint:   p.Footprint,
				Orientation: p.Orientation,
				Alpha:       p.Alpha(),
			})
		}
	}
	return shots, tracks
}

func (b *Battle) getExplosionStates() []ExplosionState {
	states := make([]ExplosionState, 0, len(b.explosions))
	for _, e := range b.explosions {
		states = append(states, ExplosionState{
			ID:       e.ID,
			Kind:     e.Kind,
			Position: e.Position,
			Frame:    e.Frame(),
			Progress: e.Progress(),
		})
	}
	return states
}

// Render draws the battle: tread marks under tanks, then shots and
// explosions on top.
func (b *Battle) Render(r entity.Renderer) {
	r.Clear()
	for _, t := range b.tanks {
		for _, p := range t.Tracks {
			p.Render(r)
		}
	}
	for _, t := range b.tanks {
		t.Render(r)
	}
	for _, t := range b.tanks {
		for _, s := range t.Shots {
			if s.Active {
				s.Render(r)
			}
		}
	}
	for _, e := range b.explosions {
		e.Render(r)
	}
	r.Present()
}
