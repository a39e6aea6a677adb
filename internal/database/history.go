package database

import (
	"encoding/json"
	"fmt"
	"time"

	"dice-conquest/internal/game"
)

// MatchEvent is a journaled engine event.
type MatchEvent struct {
	ID        int64      `json:"id"`
	MatchID   string     `json:"matchId"`
	Round     int        `json:"round"`
	Player    int        `json:"player"`
	EventType string     `json:"eventType"`
	Event     game.Event `json:"event"`
	CreatedAt time.Time  `json:"createdAt"`
}

// AddEvent appends an engine event to its match's history.
func (db *DB) AddEvent(e game.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	at := e.At
	if at.IsZero() {
		at = time.Now()
	}

	_, err = db.conn.Exec(`
		INSERT INTO match_events (match_id, round, player, event_type, event_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.Match, e.Round, e.Player, string(e.Type), string(data), at.UTC())
	return err
}

// GetMatchEvents retrieves all events of a match in emission order.
func (db *DB) GetMatchEvents(matchID string) ([]*MatchEvent, error) {
	return db.GetMatchEventsSince(matchID, 0)
}

// GetMatchEventsSince retrieves events after a given ID (for incremental updates).
func (db *DB) GetMatchEventsSince(matchID string, afterID int64) ([]*MatchEvent, error) {
	rows, err := db.conn.Query(`
		SELECT id, match_id, round, player, event_type, event_json, created_at
		FROM match_events
		WHERE match_id = ? AND id > ?
		ORDER BY id ASC
	`, matchID, afterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*MatchEvent
	for rows.Next() {
		e := &MatchEvent{}
		var data string
		if err := rows.Scan(&e.ID, &e.MatchID, &e.Round, &e.Player, &e.EventType, &data, &e.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(data), &e.Event); err != nil {
			return nil, fmt.Errorf("failed to decode event %d: %w", e.ID, err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// ClearMatchEvents deletes all events of a match.
func (db *DB) ClearMatchEvents(matchID string) error {
	_, err := db.conn.Exec(`DELETE FROM match_events WHERE match_id = ?`, matchID)
	return err
}
