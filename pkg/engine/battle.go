// pkg/engine/battle.go
package engine

import (
	"context"
	"math"
	"math/rand/v2"

	"go.opentelemetry.io/otel/metric"

	"github.com/opd-ai/go-tanks/pkg/config"
	"github.com/opd-ai/go-tanks/pkg/entity"
	"github.com/opd-ai/go-tanks/pkg/event"
	"github.com/opd-ai/go-tanks/pkg/logging"
	"github.com/opd-ai/go-tanks/pkg/physics"
)

// BattleStatus is the lifecycle state of a battle
type BattleStatus int

const (
	BattleStatusActive BattleStatus = iota
	BattleStatusEnded
)

// String returns the status name
func (s BattleStatus) String() string {
	switch s {
	case BattleStatusActive:
		return "active"
	case BattleStatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// NoWinner is the winner of a battle that has not ended, or ended with
// both sides destroyed.
const NoWinner entity.Side = -1

// Battle owns every tank, shot and effect and advances them frame by frame.
// It is not safe for concurrent use.
type Battle struct {
	Config   *config.GameConfig
	Field    physics.Rect
	Tick     uint64
	EventBus *event.Bus

	status BattleStatus
	winner entity.Side

	player     *entity.Tank
	enemies    []*entity.Tank
	tanks      []*entity.Tank // player first, then enemies
	explosions []*entity.Explosion

	shake       *Shake
	shakeOffset physics.Vector2D
	paused      bool

	id      string
	ctx     context.Context
	sounds  SoundPlayer
	logger  *logging.Logger
	rng     *rand.Rand
	meter   metric.Meter
	metrics *battleMetrics
}

// Option customizes a Battle
type Option func(*Battle)

// WithSounds sets the sound player
func WithSounds(s SoundPlayer) Option {
	return func(b *Battle) { b.sounds = s }
}

// WithEventBus publishes battle events on bus
func WithEventBus(bus *event.Bus) Option {
	return func(b *Battle) { b.EventBus = bus }
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(b *Battle) { b.logger = l }
}

// WithRand sets the random source used by the camera shake
func WithRand(r *rand.Rand) Option {
	return func(b *Battle) { b.rng = r }
}

// WithMeter records metrics on m instead of the global meter
func WithMeter(m metric.Meter) Option {
	return func(b *Battle) { b.meter = m }
}

// WithBattleID sets the id attached to every log line
func WithBattleID(id string) Option {
	return func(b *Battle) { b.id = id }
}

// NewBattle creates a battle from cfg; a nil cfg means the defaults.
func NewBattle(cfg *config.GameConfig, opts ...Option) (*Battle, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, logging.WrapError(err, "creating battle")
	}

	b := &Battle{
		Config: cfg,
		Field:  cfg.Field.FieldRect(),
		status: BattleStatusActive,
		winner: NoWinner,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.applyDefaults()

	metrics, err := newBattleMetrics(b.meter)
	if err != nil {
		return nil, logging.WrapError(err, "creating battle metrics")
	}
	b.metrics = metrics

	b.ctx = logging.WithBattleID(context.Background(), b.id)
	b.id = logging.GetBattleID(b.ctx)
	b.shake = NewShake(b.rng)
	b.initTanks()

	b.logger.Info(b.ctx, "battle started", "enemies", len(b.enemies))
	b.EventBus.Publish(event.NewBattleEvent(event.BattleStarted, b, b.id, int(NoWinner), b.Tick))

	return b, nil
}

func (b *Battle) applyDefaults() {
	if b.sounds == nil {
		b.sounds = NopSounds{}
	}
	if b.EventBus == nil {
		b.EventBus = event.NewEventBus()
	}
	if b.logger == nil {
		b.logger = logging.NewNopLogger()
	}
	if b.rng == nil {
		seed := b.Config.Sim.Seed
		b.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	if b.meter == nil {
		b.meter = meter()
	}
}

// initTanks creates the player and the autonomous enemies pursuing it
func (b *Battle) initTanks() {
	cfg := b.Config
	trackLifetime := cfg.Effects.TrackLifetime

	b.player = entity.NewTank(entity.GenerateID(), entity.Allied,
		cfg.Player.Stats(trackLifetime), cfg.Player.Position(), cfg.Player.Orientation())
	b.tanks = append(b.tanks, b.player)

	limits := cfg.Steering.Limits()
	for _, ec := range cfg.Enemies {
		enemy := entity.NewAutonomousTank(entity.GenerateID(), entity.Hostile,
			ec.Stats(trackLifetime), ec.Position(), ec.Orientation(),
			limits, cfg.Steering.Arrive(b.player))
		b.enemies = append(b.enemies, enemy)
		b.tanks = append(b.tanks, enemy)
	}
}

// Update advances the battle by deltaTime seconds using the player's intent.
// Nothing happens while paused or for a non-positive deltaTime; larger steps
// are clamped to the configured maximum.
func (b *Battle) Update(deltaTime float64, in Intent) {
	if b.paused || deltaTime <= 0 {
		return
	}
	deltaTime = math.Min(deltaTime, b.Config.Sim.MaxDeltaTime)

	b.updatePlayer(deltaTime, in)
	b.updateEnemies(deltaTime)
	b.updateShots(deltaTime)

	spawned := b.resolveHits(detectHits(b.tanks))
	b.cleanupInactiveShots()
	b.expireEffects(deltaTime, spawned)

	b.checkOutcome()

	b.Tick++
	b.shakeOffset = b.shake.Tick(deltaTime)
	b.metrics.setLiveShots(b.liveShotCount())
}

// updatePlayer applies the intent to the player tank
func (b *Battle) updatePlayer(deltaTime float64, in Intent) {
	p := b.player
	p.Update(deltaTime)
	if p.Dead {
		return
	}

	if dir := in.Rotation(); dir != 0 {
		p.Rotate(deltaTime, dir)
	}
	if move, reverse := in.Drive(); move {
		p.Drive(deltaTime, reverse, b.enemies)
	}
	b.clampToField(p)

	if in.Fire && p.CanFire() {
		b.fire(p)
	}
}

// updateEnemies steers every autonomous tank and fires when ready
func (b *Battle) updateEnemies(deltaTime float64) {
	for _, e := range b.enemies {
		e.Update(deltaTime)
		if e.Dead {
			continue
		}
		b.clampToField(e)
		if e.CanFire() {
			b.fire(e)
		}
	}
}

// fire shoots from t and reports it
func (b *Battle) fire(t *entity.Tank) {
	shot := t.Fire()
	if shot == nil {
		return
	}

	b.sounds.Play(CueShot)
	b.metrics.shotFired(b.ctx, t.Side)
	if t.Control == entity.PlayerControlled {
		b.shake.Trigger(b.Config.Shake.FirePower, b.Config.Shake.FireDuration)
	}

	b.EventBus.Publish(event.NewShotEvent(b, uint64(t.ID), uint64(shot.ID), int(t.Side), shot.Position.X, shot.Position.Y))
	b.logger.Debug(b.ctx, "shot fired", "tank_id", uint64(t.ID), "side", t.Side.String())
}

// updateShots moves every shot and retires those that left the field
func (b *Battle) updateShots(deltaTime float64) {
	margin := b.Config.Field.ShotMargin
	for _, t := range b.tanks {
		for _, s := range t.Shots {
			if !s.Active {
				continue
			}
			s.Update(deltaTime)
			if s.OffField(b.Field, margin) {
				s.Active = false
			}
		}
	}
}

// cleanupInactiveShots drops retired shots from every tank
func (b *Battle) cleanupInactiveShots() {
	for _, t := range b.tanks {
		t.SweepShots()
	}
}

// expireEffects ages existing explosions and tread marks, then adds the
// explosions spawned this frame so they are drawn before they age.
func (b *Battle) expireEffects(deltaTime float64, spawned []*entity.Explosion) {
	n := 0
	for _, e := range b.explosions {
		e.Update(deltaTime)
		if !e.Finished() {
			b.explosions[n] = e
			n++
		}
	}
	clear(b.explosions[n:])
	b.explosions = append(b.explosions[:n], spawned...)

	for _, t := range b.tanks {
		t.AgeTracks(deltaTime)
	}
}

func (b *Battle) newExplosion(kind entity.ExplosionKind, at physics.Vector2D) *entity.Explosion {
	fx := b.Config.Effects
	if kind == entity.KillExplosion {
		return entity.NewExplosion(entity.GenerateID(), kind, at, fx.KillFrames, fx.KillFrameInterval)
	}
	return entity.NewExplosion(entity.GenerateID(), kind, at, fx.SmokeFrames, fx.SmokeFrameInterval)
}

// clampToField keeps the tank's footprint inside the battlefield
func (b *Battle) clampToField(t *entity.Tank) {
	halfW, halfH := t.Width/2, t.Height/2
	pos := t.Position
	pos.X = math.Max(b.Field.X+halfW, math.Min(pos.X, b.Field.X+b.Field.Width-halfW))
	pos.Y = math.Max(b.Field.Y+halfH, math.Min(pos.Y, b.Field.Y+b.Field.Height-halfH))
	if pos != t.Position {
		t.SetPosition(pos)
	}
}

// checkOutcome ends the battle once a side has no live tanks
func (b *Battle) checkOutcome() {
	if b.status != BattleStatusActive {
		return
	}

	alliedAlive := !b.player.Dead
	hostileAlive := false
	for _, e := range b.enemies {
		if !e.Dead {
			hostileAlive = true
			break
		}
	}

	switch {
	case alliedAlive && hostileAlive:
		return
	case alliedAlive:
		b.winner = entity.Allied
	case hostileAlive:
		b.winner = entity.Hostile
	default:
		b.winner = NoWinner
	}
	b.status = BattleStatusEnded

	b.logger.Info(b.ctx, "battle ended", "winner", b.winner.String(), "tick", b.Tick)
	b.EventBus.Publish(event.NewBattleEvent(event.BattleEnded, b, b.id, int(b.winner), b.Tick))
}

func (b *Battle) liveShotCount() int {
	n := 0
	for _, t := range b.tanks {
		n += len(t.Shots)
	}
	return n
}

// SetPaused pauses or resumes the simulation
func (b *Battle) SetPaused(paused bool) {
	if b.paused == paused {
		return
	}
	b.paused = paused
	b.logger.Debug(b.ctx, "battle paused", "paused", paused)
}

// Paused reports whether the simulation is paused
func (b *Battle) Paused() bool {
	return b.paused
}

// Status returns whether the battle is still running
func (b *Battle) Status() BattleStatus {
	return b.status
}

// Winner returns the winning side, NoWinner while active or on a draw
func (b *Battle) Winner() entity.Side {
	return b.winner
}

// Player returns the player's tank
func (b *Battle) Player() *entity.Tank {
	return b.player
}

// Enemies returns the autonomous tanks
func (b *Battle) Enemies() []*entity.Tank {
	return b.enemies
}

// Tanks returns every tank, player first
func (b *Battle) Tanks() []*entity.Tank {
	return b.tanks
}

// Explosions returns the explosions currently playing
func (b *Battle) Explosions() []*entity.Explosion {
	return b.explosions
}

// ShakeOffset is the camera offset computed on the last update
func (b *Battle) ShakeOffset() physics.Vector2D {
	return b.shakeOffset
}

// ID returns the battle id used in logs and events
func (b *Battle) ID() string {
	return b.id
}

// Context returns a context carrying the battle id
func (b *Battle) Context() context.Context {
	return b.ctx
}

// Close releases the metric callback
func (b *Battle) Close() error {
	return b.metrics.close()
}
