package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"dice-conquest/internal/config"
	"dice-conquest/internal/database"
	"dice-conquest/internal/game"
	"dice-conquest/internal/logger"
	"dice-conquest/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Config file (json, yaml or toml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logger.Init(cfg.Log.Level, cfg.Log.Dev, cfg.Log.File)

	// Use PORT env var if set, for hosts that assign the port
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
		log.Info().Str("port", port).Msg("Using PORT from environment")
	}

	opts := cfg.GameOptions()
	opts.Settings.Autoplay = true

	var db *database.DB
	if cfg.History.Path != "" {
		db, err = database.New(cfg.History.Path)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.History.Path).Msg("Failed to open match journal")
		}
		defer db.Close()
		opts.Listeners = append(opts.Listeners, database.NewRecorder(db, "server").Record)
	}

	engine, err := game.New(opts)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create game")
	}

	srv := server.New(server.Config{Addr: cfg.Server.Addr, DB: db})
	runner := server.NewRunner(engine, srv.Hub(), cfg.Server.Tick, cfg.Server.RestartDelay)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("Runner stopped")
		}
	}()

	go func() {
		if err := srv.Start(ctx); err != nil {
			log.Error().Err(err).Msg("Server error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}

	log.Info().Int("games", runner.Games()).Msg("Server stopped")
}
