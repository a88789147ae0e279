package engine

import (
	"github.com/opd-ai/go-tanks/pkg/entity"
	"github.com/opd-ai/go-tanks/pkg/event"
)

// hit pairs a shot with the tank it struck
type hit struct {
	shot   *entity.Shot
	target *entity.Tank
}

// detectHits finds, for every active shot, the first opposing tank it
// overlaps. It does not modify anything.
func detectHits(tanks []*entity.Tank) []hit {
	var hits []hit
	for _, shooter := range tanks {
		for _, shot := range shooter.Shots {
			if !shot.Active {
				continue
			}
			if target := firstTarget(shot, tanks); target != nil {
				hits = append(hits, hit{shot: shot, target: target})
			}
		}
	}
	return hits
}

func firstTarget(shot *entity.Shot, tanks []*entity.Tank) *entity.Tank {
	for _, t := range tanks {
		if !t.Side.Opposes(shot.Side) {
			continue
		}
		if shot.Intersects(t.Bounds()) {
			return t
		}
	}
	return nil
}

// resolveHits applies every hit and returns the explosions it spawned
func (b *Battle) resolveHits(hits []hit) []*entity.Explosion {
	var spawned []*entity.Explosion

	for _, h := range hits {
		h.shot.Active = false
		b.metrics.hit(b.ctx, h.target.Side)

		if h.target.Dead {
			b.sounds.Play(CueHit)
			b.publishHit(event.TankHit, h, 0)
			continue
		}

		if h.target.TakeDamage(h.shot.Damage) {
			spawned = append(spawned, b.newExplosion(entity.KillExplosion, h.target.Position))
			b.sounds.Play(CueExplosion)
			b.shake.Trigger(b.Config.Shake.KillPower, b.Config.Shake.KillDuration)
			b.metrics.kill(b.ctx, h.target.Side)
			b.publishHit(event.TankDestroyed, h, h.shot.Damage)
			b.logger.Info(b.ctx, "tank destroyed",
				"tank_id", uint64(h.target.ID),
				"side", h.target.Side.String(),
				"tick", b.Tick,
			)
			continue
		}

		spawned = append(spawned, b.newExplosion(entity.SmokeExplosion, h.shot.Position))
		b.sounds.Play(CueHit)
		b.publishHit(event.TankHit, h, h.shot.Damage)
		b.logger.Debug(b.ctx, "tank hit",
			"tank_id", uint64(h.target.ID),
			"health", h.target.Health,
		)
	}

	return spawned
}

func (b *Battle) publishHit(eventType event.Type, h hit, damage int) {
	b.EventBus.Publish(event.NewHitEvent(eventType, b,
		uint64(h.shot.ID), uint64(h.target.ID), int(h.target.Side), damage, h.target.Health))
}
