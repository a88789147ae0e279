// pkg/render/engo/scene.go
package engo

import (
	"context"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-tanks/pkg/config"
	"github.com/opd-ai/go-tanks/pkg/engine"
	"github.com/opd-ai/go-tanks/pkg/logging"
)

// battlePriority steps the simulation right after input is sampled
const battlePriority = 20

// GameScene represents the battle scene in Engo
type GameScene struct {
	cfg       *config.GameConfig
	assetsDir string
	scale     float64
	logger    *logging.Logger
	options   []engine.Option

	battle   *engine.Battle
	renderer *EngoRenderer
	camera   *CameraSystem
	input    *InputSystem
	hud      *HUDSystem
	sounds   *SoundBoard
	err      error
}

// NewGameScene creates a new game scene. Extra battle options are applied
// after the scene's own sound and logger options.
func NewGameScene(cfg *config.GameConfig, assetsDir string, scale float64, logger *logging.Logger, opts ...engine.Option) *GameScene {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if scale <= 0 {
		scale = 1
	}
	return &GameScene{
		cfg:       cfg,
		assetsDir: assetsDir,
		scale:     scale,
		logger:    logger,
		options:   opts,
		sounds:    NewSoundBoard(logger),
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GameScene"
}

// RunOptions returns the window options that fit the field at the scene's scale
func (scene *GameScene) RunOptions() engo.RunOptions {
	w, h := NewCameraSystem(scene.cfg.Field.FieldRect(), scene.scale).ScreenSize()
	return engo.RunOptions{
		Title:        "Tanks",
		Width:        w,
		Height:       h,
		NotResizable: true,
		VSync:        true,
	}
}

// Preload is called before the scene starts (required by Engo)
func (scene *GameScene) Preload() {
	if scene.assetsDir != "" {
		engo.Files.SetRoot(scene.assetsDir)
	}
	scene.sounds.Load(scene.assetsDir)
}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, _ := u.(*ecs.World)
	ctx := context.Background()

	SetupInputBindings()

	battle, err := scene.newBattle()
	if err != nil {
		scene.err = err
		scene.logger.Error(ctx, "failed to start battle", err)
		engo.Exit()
		return
	}
	scene.battle = battle

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)
	world.AddSystem(&common.AudioSystem{})

	assets := NewAssetManager(scene.cfg, scene.assetsDir, scene.logger)
	if err := assets.LoadAssets(); err != nil {
		scene.logger.Error(ctx, "failed to load assets", err)
	}

	scene.camera = NewCameraSystem(battle.Field, scene.scale)
	scene.camera.Follow(battle.ShakeOffset)
	scene.input = NewInputSystem()
	scene.renderer = NewEngoRenderer(renderSystem, scene.camera, assets)
	scene.renderer.Source(battle.Render)
	scene.hud = NewHUDSystem(renderSystem, scene.camera)
	scene.hud.Follow(battle.Snapshot)

	world.AddSystem(scene.input)
	world.AddSystem(&battleSystem{scene: scene})
	world.AddSystem(scene.camera)
	world.AddSystem(scene.renderer)
	world.AddSystem(scene.hud)
}

func (scene *GameScene) newBattle() (*engine.Battle, error) {
	opts := append([]engine.Option{
		engine.WithSounds(scene.sounds),
		engine.WithLogger(scene.logger),
	}, scene.options...)
	return engine.NewBattle(scene.cfg, opts...)
}

// Battle returns the running battle, nil before Setup
func (scene *GameScene) Battle() *engine.Battle {
	return scene.battle
}

// Err returns the error that stopped the scene from starting
func (scene *GameScene) Err() error {
	return scene.err
}

// step advances the battle by one engo frame
func (scene *GameScene) step(dt float64, in engine.Intent, pauseToggled bool) {
	b := scene.battle
	if b == nil {
		return
	}
	if pauseToggled {
		b.SetPaused(!b.Paused())
	}
	b.Update(dt, in)

	p := b.Player()
	scene.sounds.SetEngineRunning(!b.Paused() && !p.Dead && p.Moving)
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *GameScene) Exit() {
	scene.sounds.SetEngineRunning(false)
	if scene.battle == nil {
		return
	}
	state := scene.battle.Snapshot()
	scene.logger.Info(scene.battle.Context(), "scene exiting",
		"status", state.Status.String(),
		"tick", state.Tick,
	)
	if err := scene.battle.Close(); err != nil {
		scene.logger.Warn(scene.battle.Context(), "failed to close battle", "error", err)
	}
}

// battleSystem feeds the sampled input to the battle every frame
type battleSystem struct {
	scene *GameScene
}

func (bs *battleSystem) Priority() int { return battlePriority }

func (bs *battleSystem) Remove(basic ecs.BasicEntity) {}

func (bs *battleSystem) Update(dt float32) {
	in := bs.scene.input
	bs.scene.step(float64(dt), in.Intent(), in.PauseToggled())
}

// Camera returns the scene camera, nil before Setup
func (scene *GameScene) Camera() *CameraSystem {
	return scene.camera
}
