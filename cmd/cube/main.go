package main

import (
	"errors"
	"flag"
	"io/fs"
	"runtime"

	"umbra/internal/logger"
	"umbra/pkg/config"
	"umbra/pkg/engine"
	"umbra/pkg/game"
)

func init() {
	// GLFW requires the program to be running on the main thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "cube.yaml", "Path to configuration file")
	logLevel := flag.String("log-level", "", "Override the configured log level")
	flag.Parse()

	cfg, cfgErr := config.LoadConfig(*configPath)
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	log := logger.NewLogger(cfg.Log.Level)
	defer log.Close()

	if cfgErr != nil {
		if !errors.Is(cfgErr, fs.ErrNotExist) {
			log.Fatalf("Failed to load configuration: %v", cfgErr)
		}
		log.Warnf("%v, using defaults", cfgErr)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	demo, err := game.NewCubeDemo(cfg)
	if err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}

	host, err := engine.NewEngine(cfg, log.With("engine"), demo)
	if err != nil {
		log.Fatalf("Failed to initialize engine: %v", err)
	}

	log.Info("Rotating cube, press Esc to quit")
	host.Run()
}
