package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"math/rand"
	"runtime"
	"time"

	"umbra/internal/logger"
	"umbra/pkg/audio"
	"umbra/pkg/config"
	"umbra/pkg/engine"
	"umbra/pkg/game"
)

func init() {
	// GLFW requires the program to be running on the main thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	logLevel := flag.String("log-level", "", "Override the configured log level")
	writeConfig := flag.Bool("write-config", false, "Write the default configuration to -config and exit")
	flag.Parse()

	if *writeConfig {
		log := logger.NewLogger("info")
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			log.Fatalf("Failed to write configuration: %v", err)
		}
		log.Infof("Default configuration written to %s", *configPath)
		return
	}

	// Чтение конфигурации
	cfg, cfgErr := config.LoadConfig(*configPath)
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	log := logger.NewLogger(cfg.Log.Level)
	if cfg.Log.File != "" {
		multi, err := logger.NewMultiLogger(cfg.Log.Level, cfg.Log.File)
		if err != nil {
			log.Warnf("Logging to console only: %v", err)
		} else {
			log = multi
		}
	}
	defer log.Close()

	switch {
	case cfgErr == nil:
	case errors.Is(cfgErr, fs.ErrNotExist):
		log.Warnf("%v, using defaults", cfgErr)
	default:
		log.Fatalf("Failed to load configuration: %v", cfgErr)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	log.Info("Starting umbra...")

	// A nil *audio.Track must not reach the session as a non-nil Sound
	var sound game.Sound
	if cfg.Audio.Enabled {
		graph := audio.NewGraph(cfg.Audio.SampleRate, cfg.Audio.Volume)
		track := audio.NewTrack(graph, audio.MakeDistortionCurve(cfg.Audio.Distortion, cfg.Audio.CurveSamples))
		track.Load(context.Background(), cfg.Audio.Asset)
		sound = track

		audioEngine, err := engine.NewAudioEngine(cfg.Audio, graph)
		if err != nil {
			log.Warnf("Audio output unavailable: %v", err)
		} else {
			defer audioEngine.Shutdown()
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	horror, err := game.NewHorror(cfg, sound, rng, log.With("game"))
	if err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}

	// Инициализация игрового движка
	host, err := engine.NewEngine(cfg, log.With("engine"), horror)
	if err != nil {
		log.Fatalf("Failed to initialize game engine: %v", err)
	}

	// Запуск игрового цикла
	log.Info("Engine initialized, starting game loop...")
	host.Run()
}
