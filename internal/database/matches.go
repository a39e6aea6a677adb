package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dice-conquest/pkg/maps"
)

// MatchStatus represents the current status of a match.
type MatchStatus string

const (
	MatchPlaying   MatchStatus = "playing"   // Events still arriving
	MatchFinished  MatchStatus = "finished"  // One player owns the board
	MatchAbandoned MatchStatus = "abandoned" // Replaced by a new map before it ended
)

// Match is one generated map and how its game ended.
type Match struct {
	ID        string       `json:"id"`
	Seed      int64        `json:"seed"`
	Players   int          `json:"players"`
	Cells     int          `json:"cells"`
	Attempts  int          `json:"attempts"`
	Map       *maps.RawMap `json:"map,omitempty"`
	Status    MatchStatus  `json:"status"`
	Winner    *int         `json:"winner,omitempty"`
	Rounds    int          `json:"rounds"`
	Source    string       `json:"source"`
	CreatedAt time.Time    `json:"createdAt"`
	EndedAt   *time.Time   `json:"endedAt,omitempty"`
}

// ErrMatchNotFound is returned when a match is not found.
var ErrMatchNotFound = errors.New("match not found")

// CreateMatch stores a freshly generated map.
func (db *DB) CreateMatch(m *Match) error {
	mapJSON, err := json.Marshal(m.Map)
	if err != nil {
		return fmt.Errorf("failed to encode map: %w", err)
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	m.Status = MatchPlaying

	_, err = db.conn.Exec(`
		INSERT INTO matches (id, seed, players, cells, attempts, map_json, status, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.Seed, m.Players, m.Cells, m.Attempts, string(mapJSON), m.Status, m.Source, m.CreatedAt)
	return err
}

// EndMatch records the winner of a match.
func (db *DB) EndMatch(id string, winner, rounds int) error {
	return db.closeMatch(id, MatchFinished, sql.NullInt64{Int64: int64(winner), Valid: true}, rounds)
}

// AbandonMatch marks a match that was replaced before it ended.
func (db *DB) AbandonMatch(id string, rounds int) error {
	return db.closeMatch(id, MatchAbandoned, sql.NullInt64{}, rounds)
}

func (db *DB) closeMatch(id string, status MatchStatus, winner sql.NullInt64, rounds int) error {
	res, err := db.conn.Exec(`
		UPDATE matches SET status = ?, winner = ?, rounds = ?, ended_at = ?
		WHERE id = ? AND status = ?
	`, status, winner, rounds, time.Now().UTC(), id, MatchPlaying)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrMatchNotFound, id)
	}
	return nil
}

const matchColumns = `id, seed, players, cells, attempts, map_json, status, winner, rounds, source, created_at, ended_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (*Match, error) {
	m := &Match{}
	var (
		mapJSON string
		winner  sql.NullInt64
		endedAt sql.NullTime
	)
	if err := row.Scan(&m.ID, &m.Seed, &m.Players, &m.Cells, &m.Attempts, &mapJSON,
		&m.Status, &winner, &m.Rounds, &m.Source, &m.CreatedAt, &endedAt); err != nil {
		return nil, err
	}

	m.Map = &maps.RawMap{}
	if err := json.Unmarshal([]byte(mapJSON), m.Map); err != nil {
		return nil, fmt.Errorf("failed to decode map of %s: %w", m.ID, err)
	}
	if winner.Valid {
		w := int(winner.Int64)
		m.Winner = &w
	}
	if endedAt.Valid {
		m.EndedAt = &endedAt.Time
	}
	return m, nil
}

// GetMatch retrieves a match by ID.
func (db *DB) GetMatch(id string) (*Match, error) {
	row := db.conn.QueryRow(`SELECT `+matchColumns+` FROM matches WHERE id = ?`, id)
	m, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	return m, err
}

// ListMatches returns the most recent matches, newest first.
func (db *DB) ListMatches(limit int) ([]*Match, error) {
	rows, err := db.conn.Query(`
		SELECT `+matchColumns+`
		FROM matches
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
