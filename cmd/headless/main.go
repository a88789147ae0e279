// cmd/headless/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/opd-ai/go-tanks/pkg/config"
	"github.com/opd-ai/go-tanks/pkg/engine"
	"github.com/opd-ai/go-tanks/pkg/event"
	"github.com/opd-ai/go-tanks/pkg/logging"
	"github.com/opd-ai/go-tanks/pkg/render"
)

// scripts drive the player without a keyboard
var scripts = map[string]engine.Intent{
	"idle":   {},
	"rotate": {RotateLeft: true, Fire: true},
	"charge": {Forward: true, Fire: true},
}

func main() {
	logger := logging.NewLogger()

	configPath := flag.String("config", "", "Path to configuration file")
	frames := flag.Int("frames", 3600, "Number of frames to simulate")
	dt := flag.Float64("dt", 1.0/60, "Seconds per frame")
	script := flag.String("script", "charge", "Player script: idle, rotate or charge")
	every := flag.Int("every", 0, "Print the field every N frames (0 disables)")
	cols := flag.Int("cols", 48, "Terminal columns")
	rows := flag.Int("rows", 40, "Terminal rows")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	intent, ok := scripts[*script]
	if !ok {
		logger.Error(ctx, "Unknown script", fmt.Errorf("script %q", *script))
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		os.Exit(1)
	}

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	bus := event.NewEventBus()
	tally := make(map[event.Type]int)
	for _, typ := range []event.Type{
		event.BattleStarted, event.BattleEnded, event.ShotFired, event.TankHit, event.TankDestroyed,
	} {
		bus.Subscribe(typ, func(e event.Event) { tally[e.GetType()]++ })
	}

	battle, err := engine.NewBattle(cfg,
		engine.WithEventBus(bus),
		engine.WithLogger(logger),
		engine.WithMeter(provider.Meter("headless")),
	)
	if err != nil {
		logger.Error(ctx, "Failed to create battle", err)
		os.Exit(1)
	}
	defer battle.Close()

	terminal := render.NewTerminalRenderer(os.Stdout, battle.Field, *cols, *rows)

	frame := 0
	for ; frame < *frames && ctx.Err() == nil; frame++ {
		battle.Update(*dt, intent)
		if *every > 0 && frame%*every == 0 {
			battle.Render(terminal)
		}
	}
	if *every > 0 {
		battle.Render(terminal)
	}
	if err := terminal.Err(); err != nil {
		logger.Warn(battle.Context(), "Terminal output failed", "error", err)
	}

	winner := "none"
	if battle.Winner() != engine.NoWinner {
		winner = battle.Winner().String()
	}
	logger.Info(battle.Context(), "Headless run finished",
		"frames", frame,
		"status", battle.Status().String(),
		"winner", winner,
		"player_health", battle.Player().Health,
		"shots_fired", tally[event.ShotFired],
		"hits", tally[event.TankHit],
		"kills", tally[event.TankDestroyed],
	)
	// ctx may already be cancelled by a signal
	logMetrics(context.Background(), logger, reader)
}

// logMetrics logs the final value of every battle counter and gauge
func logMetrics(ctx context.Context, logger *logging.Logger, reader *sdkmetric.ManualReader) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		logger.Warn(ctx, "Failed to collect metrics", "error", err)
		return
	}

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			var total int64
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					total += dp.Value
				}
			case metricdata.Gauge[int64]:
				for _, dp := range data.DataPoints {
					total += dp.Value
				}
			default:
				continue
			}
			logger.Info(ctx, "Metric", "name", m.Name, "value", total)
		}
	}
}
