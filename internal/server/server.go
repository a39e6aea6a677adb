// Package server runs a headless Dice Conquest match and streams it to
// watchers over WebSocket.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"dice-conquest/internal/database"
)

// Server exposes the watcher feed, a health check and the match journal.
type Server struct {
	db     *database.DB
	hub    *Hub
	addr   string
	server *http.Server
}

// Config holds server configuration.
type Config struct {
	Addr string
	DB   *database.DB // Optional; journal endpoints return 404 without it
}

// New creates a new server.
func New(cfg Config) *Server {
	return &Server{
		db:   cfg.DB,
		addr: cfg.Addr,
		hub:  NewHub(),
	}
}

// Hub returns the watcher hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/ws", s.hub)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("GET /api/matches", s.handleListMatches)
	mux.HandleFunc("GET /api/matches/{id}", s.handleGetMatch)
	mux.HandleFunc("GET /api/matches/{id}/events", s.handleMatchEvents)

	return mux
}

// Start runs the hub and serves HTTP until Stop is called.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	go s.hub.Run(ctx)

	log.Info().
		Str("addr", s.addr).
		Bool("journal", s.db != nil).
		Msg("Server listening")

	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		http.Error(w, "journal disabled", http.StatusNotFound)
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(n, 500)
	}

	matches, err := s.db.ListMatches(limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list matches")
		http.Error(w, "failed to list matches", http.StatusInternalServerError)
		return
	}
	writeJSON(w, matches)
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		http.Error(w, "journal disabled", http.StatusNotFound)
		return
	}

	m, err := s.db.GetMatch(r.PathValue("id"))
	if errors.Is(err, database.ErrMatchNotFound) {
		http.Error(w, "match not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to load match")
		http.Error(w, "failed to load match", http.StatusInternalServerError)
		return
	}
	writeJSON(w, m)
}

func (s *Server) handleMatchEvents(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		http.Error(w, "journal disabled", http.StatusNotFound)
		return
	}

	var after int64
	if v := r.URL.Query().Get("after"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, "invalid after", http.StatusBadRequest)
			return
		}
		after = n
	}

	events, err := s.db.GetMatchEventsSince(r.PathValue("id"), after)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load match events")
		http.Error(w, "failed to load events", http.StatusInternalServerError)
		return
	}
	writeJSON(w, events)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("Failed to write response")
	}
}
