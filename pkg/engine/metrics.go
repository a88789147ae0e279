package engine

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/opd-ai/go-tanks/pkg/entity"
)

const instrumentationName = "github.com/opd-ai/go-tanks/pkg/engine"

// meter returns the global meter, a no-op unless a provider is installed
func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// battleMetrics holds the battle's OTel instruments
type battleMetrics struct {
	shots        metric.Int64Counter
	hits         metric.Int64Counter
	kills        metric.Int64Counter
	liveShots    metric.Int64ObservableGauge
	registration metric.Registration

	live atomic.Int64
}

func newBattleMetrics(m metric.Meter) (*battleMetrics, error) {
	bm := &battleMetrics{}

	var err error

	bm.shots, err = m.Int64Counter(
		"tanks.shots.fired",
		metric.WithDescription("Total shots fired"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating shots counter: %w", err)
	}

	bm.hits, err = m.Int64Counter(
		"tanks.hits",
		metric.WithDescription("Total shots that struck a tank"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating hits counter: %w", err)
	}

	bm.kills, err = m.Int64Counter(
		"tanks.kills",
		metric.WithDescription("Total tanks destroyed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating kills counter: %w", err)
	}

	bm.liveShots, err = m.Int64ObservableGauge(
		"tanks.shots.live",
		metric.WithDescription("Shots currently in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating live shots gauge: %w", err)
	}

	bm.registration, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			o.ObserveInt64(bm.liveShots, bm.live.Load())
			return nil
		},
		bm.liveShots,
	)
	if err != nil {
		return nil, fmt.Errorf("registering live shots callback: %w", err)
	}

	return bm, nil
}

func sideAttr(side entity.Side) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("side", side.String()))
}

func (bm *battleMetrics) shotFired(ctx context.Context, side entity.Side) {
	bm.shots.Add(ctx, 1, sideAttr(side))
}

// hit is recorded against the side that was struck
func (bm *battleMetrics) hit(ctx context.Context, side entity.Side) {
	bm.hits.Add(ctx, 1, sideAttr(side))
}

func (bm *battleMetrics) kill(ctx context.Context, side entity.Side) {
	bm.kills.Add(ctx, 1, sideAttr(side))
}

func (bm *battleMetrics) setLiveShots(n int) {
	bm.live.Store(int64(n))
}

func (bm *battleMetrics) close() error {
	if bm.registration == nil {
		return nil
	}
	return bm.registration.Unregister()
}
