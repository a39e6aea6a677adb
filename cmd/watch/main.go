// Command watch follows a server's match feed in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"dice-conquest/internal/game"
	"dice-conquest/internal/logger"
	"dice-conquest/internal/protocol"
	"dice-conquest/internal/server"
	"dice-conquest/pkg/maps"
)

func main() {
	addr := flag.String("addr", "localhost:30000", "Server address or ws:// URL")
	level := flag.String("log", "info", "Log level")
	boards := flag.Bool("boards", true, "Print the board on every snapshot")
	flag.Parse()

	logger.Init(*level, true, "")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := server.Dial(ctx, server.WatchURL(*addr))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect")
	}
	defer w.Close()

	w.OnWelcome = func(p protocol.WelcomePayload) {
		log.Info().Str("watcher", p.WatcherID).Str("match", p.Match).Msg("Connected")
	}
	w.OnEvent = func(e game.Event) {
		log.Info().
			Str("type", string(e.Type)).
			Int("round", e.Round).
			Int("player", e.Player).
			Msg("Event")
	}
	w.OnSnapshot = func(s game.Snapshot) {
		if !*boards || s.Map == nil {
			return
		}
		grid, err := maps.Load(s.Map)
		if err != nil {
			log.Warn().Err(err).Msg("Bad map in snapshot")
			return
		}
		fmt.Printf("round %d, %s\n%s", s.Round, s.Status, grid.Debug())
	}
	w.OnError = func(p protocol.ErrorPayload) {
		log.Warn().Str("code", string(p.Code)).Str("message", p.Message).Msg("Server error")
	}

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("Feed closed")
		os.Exit(1)
	}
}
