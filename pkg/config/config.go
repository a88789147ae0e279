// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/opd-ai/go-tanks/pkg/entity"
	"github.com/opd-ai/go-tanks/pkg/physics"
	"github.com/opd-ai/go-tanks/pkg/steering"
)

// EnvPrefix prefixes every environment override, e.g. TANKS_FIELD_WIDTH
const EnvPrefix = "TANKS"

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// GameConfig contains configuration for a tank battle
type GameConfig struct {
	Field    FieldConfig    `json:"field" mapstructure:"field"`
	Player   TankConfig     `json:"player" mapstructure:"player"`
	Enemies  []TankConfig   `json:"enemies" mapstructure:"enemies"`
	Steering SteeringConfig `json:"steering" mapstructure:"steering"`
	Effects  EffectsConfig  `json:"effects" mapstructure:"effects"`
	Shake    ShakeConfig    `json:"shake" mapstructure:"shake"`
	Sim      SimConfig      `json:"sim" mapstructure:"sim"`
}

// FieldConfig describes the battlefield in logical units
type FieldConfig struct {
	Width      float64 `json:"width" mapstructure:"width"`
	Height     float64 `json:"height" mapstructure:"height"`
	ShotMargin float64 `json:"shotMargin" mapstructure:"shotMargin"`
}

// TankConfig describes one tank. X and Y are the spawn center; angles are
// in degrees and converted once when the tank is built.
type TankConfig struct {
	X               float64 `json:"x" mapstructure:"x"`
	Y               float64 `json:"y" mapstructure:"y"`
	AngleDegrees    float64 `json:"angleDegrees" mapstructure:"angleDegrees"`
	Width           float64 `json:"width" mapstructure:"width"`
	Height          float64 `json:"height" mapstructure:"height"`
	Speed           float64 `json:"speed" mapstructure:"speed"`
	TurnRateDegrees float64 `json:"turnRateDegrees" mapstructure:"turnRateDegrees"`
	FireInterval    float64 `json:"fireInterval" mapstructure:"fireInterval"`
	ShotWidth       float64 `json:"shotWidth" mapstructure:"shotWidth"`
	ShotHeight      float64 `json:"shotHeight" mapstructure:"shotHeight"`
	ShotSpeed       float64 `json:"shotSpeed" mapstructure:"shotSpeed"`
	Health          int     `json:"health" mapstructure:"health"`
	Armor           int     `json:"armor" mapstructure:"armor"`
}

// SteeringConfig tunes the arrive behavior of autonomous tanks
type SteeringConfig struct {
	MaxLinearAcceleration    float64 `json:"maxLinearAcceleration" mapstructure:"maxLinearAcceleration"`
	MaxAngularSpeedDegrees   float64 `json:"maxAngularSpeedDegrees" mapstructure:"maxAngularSpeedDegrees"`
	MaxAngularAcceleration   float64 `json:"maxAngularAcceleration" mapstructure:"maxAngularAcceleration"`
	ZeroLinearSpeedThreshold float64 `json:"zeroLinearSpeedThreshold" mapstructure:"zeroLinearSpeedThreshold"`
	ArrivalTolerance         float64 `json:"arrivalTolerance" mapstructure:"arrivalTolerance"`
	DecelerationRadius       float64 `json:"decelerationRadius" mapstructure:"decelerationRadius"`
	TimeToTarget             float64 `json:"timeToTarget" mapstructure:"timeToTarget"`
}

// EffectsConfig sets explosion animation timings and tread mark lifetime
type EffectsConfig struct {
	KillFrames         int     `json:"killFrames" mapstructure:"killFrames"`
	KillFrameInterval  float64 `json:"killFrameInterval" mapstructure:"killFrameInterval"`
	SmokeFrames        int     `json:"smokeFrames" mapstructure:"smokeFrames"`
	SmokeFrameInterval float64 `json:"smokeFrameInterval" mapstructure:"smokeFrameInterval"`
	TrackLifetime      float64 `json:"trackLifetime" mapstructure:"trackLifetime"`
}

// ShakeConfig sets the camera shake pulses
type ShakeConfig struct {
	FirePower    float64 `json:"firePower" mapstructure:"firePower"`
	FireDuration float64 `json:"fireDuration" mapstructure:"fireDuration"`
	KillPower    float64 `json:"killPower" mapstructure:"killPower"`
	KillDuration float64 `json:"killDuration" mapstructure:"killDuration"`
}

// SimConfig holds frame-stepping settings
type SimConfig struct {
	MaxDeltaTime float64 `json:"maxDeltaTime" mapstructure:"maxDeltaTime"`
	Seed         uint64  `json:"seed" mapstructure:"seed"`
}

// DefaultConfig returns the classic one-on-one battle
func DefaultConfig() *GameConfig {
	const width, height = 480.0, 800.0

	return &GameConfig{
		Field: FieldConfig{
			Width:      width,
			Height:     height,
			ShotMargin: 64,
		},
		Player: TankConfig{
			X:               width / 2,
			Y:               height / 4,
			AngleDegrees:    180,
			Width:           42,
			Height:          46,
			Speed:           64,
			TurnRateDegrees: 128,
			FireInterval:    3.5,
			ShotWidth:       8,
			ShotHeight:      26,
			ShotSpeed:       650,
			Health:          entity.DefaultHealth,
			Armor:           entity.DefaultArmor,
		},
		Enemies: []TankConfig{
			{
				X:               width / 2,
				Y:               height * 3 / 4,
				AngleDegrees:    0,
				Width:           38,
				Height:          46,
				Speed:           64,
				TurnRateDegrees: 128,
				FireInterval:    4,
				ShotWidth:       21,
				ShotHeight:      38,
				ShotSpeed:       800,
				Health:          entity.DefaultHealth,
				Armor:           entity.DefaultArmor,
			},
		},
		Steering: SteeringConfig{
			MaxLinearAcceleration:    32,
			MaxAngularSpeedDegrees:   128,
			MaxAngularAcceleration:   32,
			ZeroLinearSpeedThreshold: 0.001,
			ArrivalTolerance:         64,
			DecelerationRadius:       160,
			TimeToTarget:             0.1,
		},
		Effects: EffectsConfig{
			KillFrames:         5,
			KillFrameInterval:  0.125,
			SmokeFrames:        5,
			SmokeFrameInterval: 0.05,
			TrackLifetime:      entity.DefaultTrackLifetime,
		},
		Shake: ShakeConfig{
			FirePower:    1.5,
			FireDuration: 0.1,
			KillPower:    4,
			KillDuration: 0.2,
		},
		Sim: SimConfig{
			MaxDeltaTime: 0.1,
			Seed:         1,
		},
	}
}

// Load reads configuration from an optional JSON or YAML file on top of the
// defaults, then applies TANKS_* environment overrides and validates.
func Load(path string) (*GameConfig, error) {
	defaults := DefaultConfig()

	v := viper.New()
	setDefaults(v, defaults)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := defaults
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every scalar key so env overrides can reach it
func setDefaults(v *viper.Viper, d *GameConfig) {
	v.SetDefault("field.width", d.Field.Width)
	v.SetDefault("field.height", d.Field.Height)
	v.SetDefault("field.shotMargin", d.Field.ShotMargin)

	setTankDefaults(v, "player", d.Player)
	v.SetDefault("enemies", d.Enemies)

	v.SetDefault("steering.maxLinearAcceleration", d.Steering.MaxLinearAcceleration)
	v.SetDefault("steering.maxAngularSpeedDegrees", d.Steering.MaxAngularSpeedDegrees)
	v.SetDefault("steering.maxAngularAcceleration", d.Steering.MaxAngularAcceleration)
	v.SetDefault("steering.zeroLinearSpeedThreshold", d.Steering.ZeroLinearSpeedThreshold)
	v.SetDefault("steering.arrivalTolerance", d.Steering.ArrivalTolerance)
	v.SetDefault("steering.decelerationRadius", d.Steering.DecelerationRadius)
	v.SetDefault("steering.timeToTarget", d.Steering.TimeToTarget)

	v.SetDefault("effects.killFrames", d.Effects.KillFrames)
	v.SetDefault("effects.killFrameInterval", d.Effects.KillFrameInterval)
	v.SetDefault("effects.smokeFrames", d.Effects.SmokeFrames)
	v.SetDefault("effects.smokeFrameInterval", d.Effects.SmokeFrameInterval)
	v.SetDefault("effects.trackLifetime", d.Effects.TrackLifetime)

	v.SetDefault("shake.firePower", d.Shake.FirePower)
	v.SetDefault("shake.fireDuration", d.Shake.FireDuration)
	v.SetDefault("shake.killPower", d.Shake.KillPower)
	v.SetDefault("shake.killDuration", d.Shake.KillDuration)

	v.SetDefault("sim.maxDeltaTime", d.Sim.MaxDeltaTime)
	v.SetDefault("sim.seed", d.Sim.Seed)
}

func setTankDefaults(v *viper.Viper, prefix string, t TankConfig) {
	v.SetDefault(prefix+".x", t.X)
	v.SetDefault(prefix+".y", t.Y)
	v.SetDefault(prefix+".angleDegrees", t.AngleDegrees)
	v.SetDefault(prefix+".width", t.Width)
	v.SetDefault(prefix+".height", t.Height)
	v.SetDefault(prefix+".speed", t.Speed)
	v.SetDefault(prefix+".turnRateDegrees", t.TurnRateDegrees)
	v.SetDefault(prefix+".fireInterval", t.FireInterval)
	v.SetDefault(prefix+".shotWidth", t.ShotWidth)
	v.SetDefault(prefix+".shotHeight", t.ShotHeight)
	v.SetDefault(prefix+".shotSpeed", t.ShotSpeed)
	v.SetDefault(prefix+".health", t.Health)
	v.SetDefault(prefix+".armor", t.Armor)
}

// Validate checks that sizes, speeds and timings are usable. The returned
// error wraps ErrInvalidConfig and names every offending field.
func (c *GameConfig) Validate() error {
	var problems []string
	positive := func(name string, value float64) {
		if value <= 0 {
			problems = append(problems, fmt.Sprintf("%s must be positive, got %v", name, value))
		}
	}
	nonNegative := func(name string, value float64) {
		if value < 0 {
			problems = append(problems, fmt.Sprintf("%s must not be negative, got %v", name, value))
		}
	}

	positive("field.width", c.Field.Width)
	positive("field.height", c.Field.Height)
	nonNegative("field.shotMargin", c.Field.ShotMargin)

	tank := func(prefix string, t TankConfig) {
		positive(prefix+".width", t.Width)
		positive(prefix+".height", t.Height)
		positive(prefix+".speed", t.Speed)
		nonNegative(prefix+".turnRateDegrees", t.TurnRateDegrees)
		positive(prefix+".fireInterval", t.FireInterval)
		positive(prefix+".shotWidth", t.ShotWidth)
		positive(prefix+".shotHeight", t.ShotHeight)
		positive(prefix+".shotSpeed", t.ShotSpeed)
		positive(prefix+".health", float64(t.Health))
		nonNegative(prefix+".armor", float64(t.Armor))
	}
	tank("player", c.Player)
	if len(c.Enemies) == 0 {
		problems = append(problems, "enemies must list at least one tank")
	}
	for i, e := range c.Enemies {
		tank(fmt.Sprintf("enemies[%d]", i), e)
	}

	positive("steering.maxLinearAcceleration", c.Steering.MaxLinearAcceleration)
	nonNegative("steering.arrivalTolerance", c.Steering.ArrivalTolerance)
	positive("steering.decelerationRadius", c.Steering.DecelerationRadius)
	positive("steering.timeToTarget", c.Steering.TimeToTarget)

	positive("effects.killFrames", float64(c.Effects.KillFrames))
	positive("effects.killFrameInterval", c.Effects.KillFrameInterval)
	positive("effects.smokeFrames", float64(c.Effects.SmokeFrames))
	positive("effects.smokeFrameInterval", c.Effects.SmokeFrameInterval)
	positive("effects.trackLifetime", c.Effects.TrackLifetime)

	nonNegative("shake.firePower", c.Shake.FirePower)
	nonNegative("shake.fireDuration", c.Shake.FireDuration)
	nonNegative("shake.killPower", c.Shake.KillPower)
	nonNegative("shake.killDuration", c.Shake.KillDuration)

	positive("sim.maxDeltaTime", c.Sim.MaxDeltaTime)

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// FieldRect is the battlefield as a rectangle anchored at the origin
func (f FieldConfig) FieldRect() physics.Rect {
	return physics.Rect{Width: f.Width, Height: f.Height}
}

// Position is the spawn center
func (t TankConfig) Position() physics.Vector2D {
	return physics.Vector2D{X: t.X, Y: t.Y}
}

// Orientation is the spawn orientation in radians
func (t TankConfig) Orientation() float64 {
	return physics.Radians(t.AngleDegrees)
}

// Stats converts the config into tank stats
func (t TankConfig) Stats(trackLifetime float64) entity.TankStats {
	return entity.TankStats{
		Width:         t.Width,
		Height:        t.Height,
		Speed:         t.Speed,
		TurnRate:      physics.Radians(t.TurnRateDegrees),
		FireInterval:  t.FireInterval,
		ShotWidth:     t.ShotWidth,
		ShotHeight:    t.ShotHeight,
		ShotSpeed:     t.ShotSpeed,
		Health:        t.Health,
		Armor:         t.Armor,
		TrackLifetime: trackLifetime,
	}
}

// Limits converts the config into steering limits. The linear speed limit is
// taken from each tank's own speed when it is built.
func (s SteeringConfig) Limits() steering.Limits {
	limits := steering.DefaultLimits()
	limits.MaxLinearAcceleration = s.MaxLinearAcceleration
	limits.MaxAngularSpeed = physics.Radians(s.MaxAngularSpeedDegrees)
	limits.MaxAngularAcceleration = s.MaxAngularAcceleration
	limits.ZeroLinearSpeedThreshold = s.ZeroLinearSpeedThreshold
	return limits
}

// Arrive builds an arrive policy towards target with the configured tuning
func (s SteeringConfig) Arrive(target steering.Location) *steering.Arrive {
	a := steering.NewArrive(target)
	a.ArrivalTolerance = s.ArrivalTolerance
	a.DecelerationRadius = s.DecelerationRadius
	a.TimeToTarget = s.TimeToTarget
	return a
}

// SaveConfig saves a configuration to a file as JSON
func SaveConfig(config *GameConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
