// cmd/tanks/main.go
package main

import (
	"context"
	"flag"
	"os"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-tanks/pkg/config"
	"github.com/opd-ai/go-tanks/pkg/logging"
	engorender "github.com/opd-ai/go-tanks/pkg/render/engo"
)

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	scale := flag.Float64("scale", 1, "Window pixels per world unit")
	assetsDir := flag.String("assets", "assets", "Directory with PNG textures and WAV sounds")
	flag.Parse()

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	gameConfig, err := loadConfig(ctx, logger, *configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", *configPath,
		)
		os.Exit(1)
	}

	if _, err := os.Stat(*assetsDir); err != nil {
		logger.Info(ctx, "Assets directory not found, using procedural textures and no sound",
			"assets", *assetsDir,
		)
		*assetsDir = ""
	}

	scene := engorender.NewGameScene(gameConfig, *assetsDir, *scale, logger)
	engo.Run(scene.RunOptions(), scene)

	if err := scene.Err(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads path when it exists; otherwise only defaults and
// TANKS_* environment overrides apply.
func loadConfig(ctx context.Context, logger *logging.Logger, path string) (*config.GameConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		return config.Load("")
	}
	return config.Load(path)
}
