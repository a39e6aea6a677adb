package database

import (
	"github.com/rs/zerolog/log"

	"dice-conquest/internal/game"
)

// Recorder journals the events of one engine. Write failures are logged
// and never interrupt play.
type Recorder struct {
	db     *DB
	source string

	current string
	round   int
}

// NewRecorder creates a recorder tagging its matches with source.
func NewRecorder(db *DB, source string) *Recorder {
	return &Recorder{db: db, source: source}
}

// Record is a game.Game listener.
func (r *Recorder) Record(e game.Event) {
	if e.Type == game.EventMapGenerated {
		r.startMatch(e)
		// The map itself is kept on the match row.
		e.Map = nil
	}

	if err := r.db.AddEvent(e); err != nil {
		log.Error().Err(err).Str("match", e.Match).Str("event", string(e.Type)).Msg("Failed to journal event")
	}
	r.round = e.Round

	if e.Type == game.EventGameEnd {
		if err := r.db.EndMatch(e.Match, e.Player, e.Round); err != nil {
			log.Error().Err(err).Str("match", e.Match).Msg("Failed to close match")
		}
		r.current = ""
	}
}

func (r *Recorder) startMatch(e game.Event) {
	if r.current != "" {
		if err := r.db.AbandonMatch(r.current, r.round); err != nil {
			log.Warn().Err(err).Str("match", r.current).Msg("Failed to abandon match")
		}
	}

	m := &Match{
		ID:        e.Match,
		Seed:      e.Seed,
		Cells:     e.Count,
		Attempts:  e.Attempts,
		Map:       e.Map,
		Source:    r.source,
		CreatedAt: e.At.UTC(),
	}
	if e.Map != nil {
		owners := make(map[int]bool)
		for _, c := range e.Map.Cells {
			owners[c.Owner] = true
		}
		m.Players = len(owners)
	}

	if err := r.db.CreateMatch(m); err != nil {
		log.Error().Err(err).Str("match", e.Match).Msg("Failed to create match")
		return
	}
	r.current = e.Match
	log.Debug().Str("match", e.Match).Int64("seed", e.Seed).Msg("Match journaled")
}
