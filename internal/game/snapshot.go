package game

import (
	"dice-conquest/pkg/maps"
)

// Snapshot is a copy of the board and turn state that shares no memory
// with the engine.
type Snapshot struct {
	Match   string          `json:"match"`
	Seed    int64           `json:"seed"`
	Round   int             `json:"round"`
	Status  string          `json:"status"`
	Current int             `json:"current"`
	Players []PlayerSummary `json:"players"`
	Map     *maps.RawMap    `json:"map"`
	Combat  *CombatSummary  `json:"combat,omitempty"`
	Over    bool            `json:"over"`
	Winner  int             `json:"winner"`
}

// PlayerSummary is a player plus the board totals they hold.
type PlayerSummary struct {
	Player
	Cells   int `json:"cells"`
	Dice    int `json:"dice"`
	Largest int `json:"largest"`
}

// CombatSummary describes the attack in progress.
type CombatSummary struct {
	From        maps.Coord  `json:"from"`
	To          *maps.Coord `json:"to,omitempty"`
	AttackPower int         `json:"attackPower,omitempty"`
	DefendPower int         `json:"defendPower,omitempty"`
	Rolled      bool        `json:"rolled"`
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Match:   g.ID,
		Seed:    g.seed,
		Round:   g.round,
		Status:  g.Status().String(),
		Current: g.current,
		Players: make([]PlayerSummary, len(g.players)),
		Map:     maps.Export(g.grid),
		Over:    g.over,
		Winner:  g.winner,
	}

	for i, p := range g.players {
		s.Players[i].Player = *p
		s.Players[i].Largest = maps.LargestGroup(g.grid, i)
	}
	for _, t := range g.grid.Territories() {
		s.Players[t.Owner].Cells++
		s.Players[t.Owner].Dice += t.Dice
	}

	if c := g.combat; c.Attacker != nil {
		cs := &CombatSummary{From: c.Attacker.Coord}
		if c.Defender != nil {
			to := c.Defender.Coord
			cs.To = &to
		}
		if c.Stage == CombatResolving {
			cs.Rolled = true
			cs.AttackPower = c.AttackPower
			cs.DefendPower = c.DefendPower
		}
		s.Combat = cs
	}
	return s
}
