// pkg/render/engo/scene_test.go
package engo

import (
	"testing"

	"github.com/opd-ai/go-tanks/pkg/config"
	"github.com/opd-ai/go-tanks/pkg/engine"
)

func newTestScene(t *testing.T) *GameScene {
	t.Helper()
	scene := NewGameScene(config.DefaultConfig(), "", 1, nil)
	b, err := scene.newBattle()
	if err != nil {
		t.Fatalf("newBattle() error = %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })
	scene.battle = b
	return scene
}

func TestNewGameScene_Defaults(t *testing.T) {
	scene := NewGameScene(nil, "", 0, nil)

	if scene.Type() != "GameScene" {
		t.Errorf("Type() = %q, want GameScene", scene.Type())
	}
	if scene.cfg == nil || scene.logger == nil || scene.sounds == nil {
		t.Fatal("NewGameScene left defaults unset")
	}
	if scene.scale != 1 {
		t.Errorf("scale = %v, want 1", scene.scale)
	}
	if scene.Battle() != nil {
		t.Error("Battle() should be nil before Setup")
	}
}

func TestGameScene_RunOptions(t *testing.T) {
	tests := []struct {
		scale        float64
		wantW, wantH int
	}{
		{1, 480, 800},
		{0.75, 360, 600},
	}

	for _, tt := range tests {
		opts := NewGameScene(nil, "", tt.scale, nil).RunOptions()
		if opts.Width != tt.wantW || opts.Height != tt.wantH {
			t.Errorf("scale %v: window %dx%d, want %dx%d", tt.scale, opts.Width, opts.Height, tt.wantW, tt.wantH)
		}
		if opts.Title != "Tanks" {
			t.Errorf("Title = %q", opts.Title)
		}
	}
}

func TestGameScene_Step(t *testing.T) {
	scene := newTestScene(t)
	b := scene.Battle()

	scene.step(1.0/60, engine.Intent{Forward: true}, false)
	if b.Tick != 1 {
		t.Fatalf("Tick = %d, want 1", b.Tick)
	}
	if !scene.sounds.EngineRunning() {
		t.Error("engine sound should run while the player drives")
	}

	scene.step(1.0/60, engine.Intent{}, true)
	if !b.Paused() {
		t.Fatal("pause toggle ignored")
	}
	if b.Tick != 1 {
		t.Errorf("Tick = %d while paused, want 1", b.Tick)
	}
	if scene.sounds.EngineRunning() {
		t.Error("engine sound should stop while paused")
	}

	scene.step(1.0/60, engine.Intent{}, true)
	if b.Paused() || b.Tick != 2 {
		t.Errorf("Paused/Tick = %v/%d after resuming, want false/2", b.Paused(), b.Tick)
	}
}

func TestGameScene_StepBeforeSetup(t *testing.T) {
	scene := NewGameScene(nil, "", 1, nil)
	scene.step(1.0/60, engine.Intent{Fire: true}, true)
	if scene.Battle() != nil {
		t.Error("step created a battle")
	}
}

func TestGameScene_NewBattleInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Player.Speed = -1

	if _, err := NewGameScene(cfg, "", 1, nil).newBattle(); err == nil {
		t.Error("newBattle() accepted an invalid config")
	}
}
