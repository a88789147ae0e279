// pkg/render/null.go
package render

import (
	"context"

	"github.com/opd-ai/go-tanks/pkg/entity"
	"github.com/opd-ai/go-tanks/pkg/logging"
)

// NullRenderer is an entity.Renderer that only logs what it was asked to
// draw. It is used by headless runs and tests.
type NullRenderer struct {
	logger *logging.Logger
	ctx    context.Context
	frames int
}

// NewNullRenderer creates a new NullRenderer logging at debug level.
// A nil logger discards everything.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &NullRenderer{
		logger: logger,
		ctx:    context.Background(),
	}
}

// WithContext returns a copy logging with ctx, so the battle id is attached
func (d *NullRenderer) WithContext(ctx context.Context) *NullRenderer {
	c := *d
	c.ctx = ctx
	return &c
}

// Frames returns how many frames have been presented
func (d *NullRenderer) Frames() int {
	return d.frames
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(d.ctx, "Clear called")
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.frames++
	d.logger.Debug(d.ctx, "Present called", "frame", d.frames)
}

// RenderTrack implements entity.Renderer.
func (d *NullRenderer) RenderTrack(track *entity.TrackPrint) {
	if track == nil {
		d.logger.Debug(d.ctx, "RenderTrack called with nil track")
		return
	}
	d.logger.Debug(d.ctx, "RenderTrack called",
		"track_id", uint64(track.ID),
		"alpha", track.Alpha(),
	)
}

// RenderTank implements entity.Renderer.
func (d *NullRenderer) RenderTank(tank *entity.Tank) {
	if tank == nil {
		d.logger.Debug(d.ctx, "RenderTank called with nil tank")
		return
	}
	d.logger.Debug(d.ctx, "RenderTank called",
		"tank_id", uint64(tank.ID),
		"side", tank.Side.String(),
		"x", tank.Position.X,
		"y", tank.Position.Y,
		"health", tank.Health,
		"dead", tank.Dead,
	)
}

// RenderShot implements entity.Renderer.
func (d *NullRenderer) RenderShot(shot *entity.Shot) {
	if shot == nil {
		d.logger.Debug(d.ctx, "RenderShot called with nil shot")
		return
	}
	d.logger.Debug(d.ctx, "RenderShot called",
		"shot_id", uint64(shot.ID),
		"side", shot.Side.String(),
	)
}

// RenderExplosion implements entity.Renderer.
func (d *NullRenderer) RenderExplosion(explosion *entity.Explosion) {
	if explosion == nil {
		d.logger.Debug(d.ctx, "RenderExplosion called with nil explosion")
		return
	}
	d.logger.Debug(d.ctx, "RenderExplosion called",
		"explosion_id", uint64(explosion.ID),
		"kind", explosion.Kind.String(),
		"frame", explosion.Frame(),
	)
}

var _ entity.Renderer = (*NullRenderer)(nil)
