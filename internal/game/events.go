package game

import (
	"time"

	"github.com/rs/zerolog/log"

	"dice-conquest/pkg/maps"
)

// EventType identifies an engine event.
type EventType string

const (
	EventMapGenerated     EventType = "map_generated"
	EventRoundStart       EventType = "round_start"
	EventTurnStart        EventType = "turn_start"
	EventReinforce        EventType = "reinforce"
	EventAttackSuccess    EventType = "attack_success"
	EventAttackFailed     EventType = "attack_failed"
	EventPlayerEliminated EventType = "player_eliminated"
	EventGameEnd          EventType = "game_end"
)

// Event describes something that happened in a match. Only the fields
// relevant to the type are set.
type Event struct {
	Type   EventType `json:"type"`
	Match  string    `json:"match"`
	Round  int       `json:"round"`
	Player int       `json:"player"`

	// Combat
	From        maps.Coord `json:"from"`
	To          maps.Coord `json:"to"`
	AttackPower int        `json:"attackPower,omitempty"`
	DefendPower int        `json:"defendPower,omitempty"`
	Defender    int        `json:"defender,omitempty"`

	// Dice moved into a captured cell, or placed by reinforcement.
	Dice    int `json:"dice,omitempty"`
	Reserve int `json:"reserve,omitempty"`

	// Map generation
	Seed     int64        `json:"seed,omitempty"`
	Count    int          `json:"count,omitempty"`
	Attempts int          `json:"attempts,omitempty"`
	Map      *maps.RawMap `json:"map,omitempty"`

	At time.Time `json:"at"`
}

// emit stamps the event with match and round and hands it to listeners.
func (g *Game) emit(e Event) {
	e.Match = g.ID
	e.Round = g.round
	e.At = g.now()

	log.Debug().
		Str("match", e.Match).
		Str("event", string(e.Type)).
		Int("round", e.Round).
		Int("player", e.Player).
		Msg("Game event")

	for _, fn := range g.listeners {
		fn(e)
	}
}
