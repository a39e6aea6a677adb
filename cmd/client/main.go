package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"dice-conquest/internal/client"
	"dice-conquest/internal/config"
	"dice-conquest/internal/database"
	"dice-conquest/internal/game"
	"dice-conquest/internal/logger"
)

func main() {
	configPath := flag.String("config", "", "Config file (json, yaml or toml)")
	seed := flag.Int64("seed", 0, "Seed for the first map; 0 picks one from the clock")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logger.Init(cfg.Log.Level, cfg.Log.Dev, cfg.Log.File)

	opts := cfg.GameOptions()
	if *seed != 0 {
		opts.Seed = *seed
	}

	if cfg.History.Path != "" {
		db, err := database.New(cfg.History.Path)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.History.Path).Msg("Failed to open match journal")
		}
		defer db.Close()
		opts.Listeners = append(opts.Listeners, database.NewRecorder(db, "client").Record)
	}

	engine, err := game.New(opts)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create game")
	}

	ebiten.SetWindowSize(cfg.View.Width, cfg.View.Height)
	ebiten.SetWindowTitle("Dice Conquest")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(client.NewGame(cfg, engine)); err != nil {
		log.Error().Err(err).Msg("Game exited with error")
	}
}
