// pkg/entity/tank.go
package entity

import (
	"math"

	"github.com/opd-ai/go-tanks/pkg/physics"
	"github.com/opd-ai/go-tanks/pkg/steering"
)

const (
	// DefaultHealth is the health every tank starts with
	DefaultHealth = 800
	// DefaultArmor is subtracted from every hit
	DefaultArmor = 500
	// TravelLength is the distance a tank covers between two tread marks
	TravelLength = 64.0
	// DefaultTrackLifetime is how long a tread mark stays visible, in seconds
	DefaultTrackLifetime = 5.0
)

// Control selects who drives a tank
type Control int

const (
	PlayerControlled Control = iota
	Autonomous
)

// String returns the control name
func (c Control) String() string {
	switch c {
	case PlayerControlled:
		return "Player"
	case Autonomous:
		return "Autonomous"
	default:
		return "Unknown"
	}
}

// Variant is the visual state renderers pick a texture by
type Variant int

const (
	VariantNormal Variant = iota
	VariantDestroyed
)

// TankStats contains the fixed characteristics of a tank
type TankStats struct {
	Width         float64
	Height        float64
	Speed         float64 // units per second, forward
	TurnRate      float64 // radians per second
	FireInterval  float64 // seconds between shots
	ShotWidth     float64
	ShotHeight    float64
	ShotSpeed     float64
	Health        int
	Armor         int
	TrackLifetime float64
}

// Tank is a player or autonomous combatant. It owns the shots it fired and
// the tread marks it left; the steering unit exists only for autonomous tanks.
type Tank struct {
	Entity
	Side    Side
	Control Control
	Stats   TankStats
	Health  int
	Armor   int
	Dead    bool
	Moving  bool
	Shots   []*Shot
	Tracks  []*TrackPrint

	sinceLastShot  float64
	sinceLastTrack float64
	unit           *steering.Unit
}

// NewTank creates a player-controlled tank centered on position
func NewTank(id ID, side Side, stats TankStats, position physics.Vector2D, orientation float64) *Tank {
	if stats.Health <= 0 {
		stats.Health = DefaultHealth
	}
	if stats.TrackLifetime <= 0 {
		stats.TrackLifetime = DefaultTrackLifetime
	}

	return &Tank{
		Entity: Entity{
			ID:          id,
			Position:    position,
			Width:       stats.Width,
			Height:      stats.Height,
			Orientation: physics.NormalizeAngle(orientation),
		},
		Side:    side,
		Control: PlayerControlled,
		Stats:   stats,
		Health:  stats.Health,
		Armor:   stats.Armor,
	}
}

// NewAutonomousTank creates a tank driven by a steering policy. The unit
// faces opposite to the tank's sprite, so its orientation is offset by π.
func NewAutonomousTank(id ID, side Side, stats TankStats, position physics.Vector2D, orientation float64, limits steering.Limits, policy steering.Policy) *Tank {
	t := NewTank(id, side, stats, position, orientation)
	t.Control = Autonomous
	if stats.Speed > 0 {
		limits.MaxLinearSpeed = stats.Speed
	}
	t.unit = steering.NewUnit(position, orientation-math.Pi, limits, policy)
	return t
}

// Unit returns the steering unit, nil for player tanks
func (t *Tank) Unit() *steering.Unit {
	return t.unit
}

// SetPosition moves the tank center and keeps the steering unit in step
func (t *Tank) SetPosition(p physics.Vector2D) {
	t.Position = p
	if t.unit != nil {
		t.unit.Position = p
	}
}

// ReverseSpeed is the speed when backing up
func (t *Tank) ReverseSpeed() float64 {
	return t.Stats.Speed / 2
}

// Forward is the unit vector the tank drives along
func (t *Tank) Forward() physics.Vector2D {
	return physics.FromHeading(t.Orientation+math.Pi, 1)
}

// Update advances the tank's timers and, for autonomous tanks, steering
func (t *Tank) Update(deltaTime float64) {
	if t.Dead {
		return
	}

	t.sinceLastShot += deltaTime
	t.sinceLastTrack += deltaTime

	if t.unit == nil {
		t.Moving = false
		return
	}

	t.unit.Step(deltaTime)
	t.Position = t.unit.Position
	t.SetOrientation(t.unit.Orientation + math.Pi)

	speed := t.unit.Speed()
	t.Moving = speed > t.unit.ZeroLinearSpeedThreshold
	if t.Moving {
		t.layTrack(speed)
	}
}

// CanFire reports whether the weapon has cooled down
func (t *Tank) CanFire() bool {
	return t.sinceLastShot >= t.Stats.FireInterval
}

// Fire spawns a shot from the tank's muzzle. It returns nil when the tank is
// dead or still cooling down, leaving the cooldown untouched.
func (t *Tank) Fire() *Shot {
	if t.Dead || !t.CanFire() {
		return nil
	}

	angle := physics.NormalizeAngle(t.Orientation + math.Pi)
	dir := physics.FromHeading(angle, 1)
	muzzle := t.Position.Add(physics.Vector2D{
		X: dir.X * t.Width / 2,
		Y: dir.Y * t.Height / 2,
	})

	shot := NewShot(GenerateID(), t.Side, muzzle, t.Stats.ShotWidth, t.Stats.ShotHeight, t.Stats.ShotSpeed, angle, ShotDamage)
	t.Shots = append(t.Shots, shot)
	t.sinceLastShot = 0

	return shot
}

// TakeDamage applies a hit reduced by armor. It returns true only on the
// hit that destroys the tank; dead tanks ignore damage.
func (t *Tank) TakeDamage(amount int) bool {
	if t.Dead {
		return false
	}

	effective := amount - t.Armor
	if effective <= 0 {
		return false
	}

	t.Health -= effective
	if t.Health <= 0 {
		t.Dead = true
		t.Moving = false
		return true
	}
	return false
}

// Move relocates the tank unless it is dead or the new footprint would
// overlap a live opposing tank.
func (t *Tank) Move(to physics.Vector2D, blockers []*Tank) bool {
	if t.Dead {
		return false
	}

	candidate := physics.RectFromCenter(to, t.Width, t.Height)
	for _, b := range blockers {
		if b == nil || b == t || b.Dead || !b.Side.Opposes(t.Side) {
			continue
		}
		if candidate.Overlaps(b.Bounds()) {
			return false
		}
	}

	t.SetPosition(to)
	return true
}

// Drive moves the tank forward at Speed or backward at ReverseSpeed
func (t *Tank) Drive(deltaTime float64, reverse bool, blockers []*Tank) bool {
	speed := t.Stats.Speed
	dir := t.Forward()
	if reverse {
		speed = t.ReverseSpeed()
		dir = dir.Scale(-1)
	}

	if !t.Move(t.Position.MulAdd(dir, speed*deltaTime), blockers) {
		return false
	}

	t.Moving = true
	t.LeaveTrack(reverse)
	return true
}

// Rotate turns the tank; direction +1 is counter-clockwise, -1 clockwise
func (t *Tank) Rotate(deltaTime, direction float64) {
	if t.Dead {
		return
	}
	t.SetOrientation(t.Orientation + direction*t.Stats.TurnRate*deltaTime)
}

// LeaveTrack lays a tread mark if the tank travelled far enough since the
// last one and no visible mark already covers its footprint.
func (t *Tank) LeaveTrack(reverse bool) bool {
	speed := t.Stats.Speed
	if reverse {
		speed = t.ReverseSpeed()
	}
	return t.layTrack(speed)
}

func (t *Tank) layTrack(speed float64) bool {
	if speed <= 0 || t.sinceLastTrack < TravelLength/speed {
		return false
	}

	footprint := t.Bounds()
	for _, p := range t.Tracks {
		if !p.Faded() && p.Footprint.Overlaps(footprint) {
			return false
		}
	}

	t.Tracks = append(t.Tracks, NewTrackPrint(GenerateID(), footprint, t.Orientation, t.Stats.TrackLifetime))
	t.sinceLastTrack = 0
	return true
}

// AgeTracks fades the tank's tread marks and drops the faded ones
func (t *Tank) AgeTracks(deltaTime float64) {
	n := 0
	for _, p := range t.Tracks {
		p.Update(deltaTime)
		if !p.Faded() {
			t.Tracks[n] = p
			n++
		}
	}
	clear(t.Tracks[n:])
	t.Tracks = t.Tracks[:n]
}

// ActiveShots returns the shots still in flight
func (t *Tank) ActiveShots() []*Shot {
	active := make([]*Shot, 0, len(t.Shots))
	for _, s := range t.Shots {
		if s.Active {
			active = append(active, s)
		}
	}
	return active
}

// SweepShots removes deactivated shots
func (t *Tank) SweepShots() {
	n := 0
	for _, s := range t.Shots {
		if s.Active {
			t.Shots[n] = s
			n++
		}
	}
	clear(t.Shots[n:])
	t.Shots = t.Shots[:n]
}

// Variant returns the visual state of the tank
func (t *Tank) Variant() Variant {
	if t.Dead {
		return VariantDestroyed
	}
	return VariantNormal
}

// Render draws the tank
func (t *Tank) Render(r Renderer) {
	r.RenderTank(t)
}
