package engine

import (
	"testing"

	"github.com/opd-ai/go-tanks/pkg/config"
	"github.com/opd-ai/go-tanks/pkg/entity"
	"github.com/opd-ai/go-tanks/pkg/event"
)

const frame = 1.0 / 60

// recordingSounds remembers every cue it was asked to play
type recordingSounds struct {
	cues []Cue
}

func (r *recordingSounds) Play(c Cue) {
	r.cues = append(r.cues, c)
}

func (r *recordingSounds) count(c Cue) int {
	n := 0
	for _, cue := range r.cues {
		if cue == c {
			n++
		}
	}
	return n
}

// eventLog collects published events by type
type eventLog struct {
	byType map[event.Type][]event.Event
}

func newEventLog(bus *event.Bus) *eventLog {
	l := &eventLog{byType: make(map[event.Type][]event.Event)}
	for _, typ := range []event.Type{
		event.BattleStarted, event.BattleEnded, event.ShotFired, event.TankHit, event.TankDestroyed,
	} {
		bus.Subscribe(typ, func(e event.Event) {
			l.byType[e.GetType()] = append(l.byType[e.GetType()], e)
		})
	}
	return l
}

func (l *eventLog) count(typ event.Type) int {
	return len(l.byType[typ])
}

// duelConfig puts one enemy straight ahead of the player. The enemy is too
// slow to move and never fires unless a test changes that.
func duelConfig() *config.GameConfig {
	cfg := config.DefaultConfig()
	cfg.Enemies[0].X = 240
	cfg.Enemies[0].Y = 300
	cfg.Enemies[0].Speed = 0.0001
	cfg.Enemies[0].FireInterval = 1000
	cfg.Player.FireInterval = 0.5
	return cfg
}

func newTestBattle(t *testing.T, cfg *config.GameConfig, opts ...Option) *Battle {
	t.Helper()
	b, err := NewBattle(cfg, opts...)
	if err != nil {
		t.Fatalf("NewBattle() error = %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func countExplosions(state *BattleState, kind entity.ExplosionKind) int {
	n := 0
	for _, e := range state.Explosions {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
