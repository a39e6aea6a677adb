package game

import (
	"time"

	"github.com/rs/zerolog/log"

	"dice-conquest/pkg/maps"
)

// CombatStage tracks an attack from declaration to resolution.
type CombatStage int

const (
	CombatIdle      CombatStage = iota // No attack, or only a source selected
	CombatPending                      // Attacker and defender set, dice not rolled
	CombatResolving                    // Dice rolled, waiting for the fight delay
)

// Combat is the attack in progress.
type Combat struct {
	Stage       CombatStage
	Attacker    *maps.Territory
	Defender    *maps.Territory
	AttackPower int
	DefendPower int
	FoughtAt    time.Time
}

// Ready reports whether the fight delay has elapsed at now.
func (c Combat) Ready(now time.Time, delay time.Duration) bool {
	return c.Stage == CombatResolving && now.Sub(c.FoughtAt) >= delay
}

// fight rolls both sides and starts the resolution delay.
func (g *Game) fight() {
	c := &g.combat
	c.AttackPower = g.roll(c.Attacker.Dice)
	c.DefendPower = g.roll(c.Defender.Dice)
	c.Stage = CombatResolving
	c.FoughtAt = g.now()

	log.Debug().
		Str("match", g.ID).
		Stringer("from", c.Attacker.Coord).
		Stringer("to", c.Defender.Coord).
		Int("attack", c.AttackPower).
		Int("defend", c.DefendPower).
		Msg("Dice rolled")
}

// roll sums n dice.
func (g *Game) roll(n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += g.rng.Intn(g.opts.Settings.DieSides) + 1
	}
	return sum
}

// resolve applies a rolled combat once the delay has passed. It reports
// whether anything was applied.
func (g *Game) resolve(now time.Time) bool {
	c := g.combat
	if !c.Ready(now, g.opts.Settings.FightDelay) {
		return false
	}

	att, def := c.Attacker, c.Defender
	e := Event{
		Player:      att.Owner,
		Defender:    def.Owner,
		From:        att.Coord,
		To:          def.Coord,
		AttackPower: c.AttackPower,
		DefendPower: c.DefendPower,
	}

	won := c.AttackPower > c.DefendPower
	if won {
		def.Owner = att.Owner
		def.Dice = att.Dice - 1
		e.Type = EventAttackSuccess
		e.Dice = def.Dice
	} else {
		e.Type = EventAttackFailed
	}
	att.Dice = 1

	g.combat = Combat{}
	g.emit(e)

	if won {
		g.checkEliminated(e.Defender)
		g.checkWinner(e.Player)
	}
	return true
}

// checkEliminated flags a player left without territories.
func (g *Game) checkEliminated(seat int) {
	p := g.players[seat]
	if p.Eliminated || len(g.grid.Owned(seat)) > 0 {
		return
	}
	p.Eliminated = true
	g.emit(Event{Type: EventPlayerEliminated, Player: seat})
}

// checkWinner ends the game when seat owns every territory.
func (g *Game) checkWinner(seat int) {
	if g.over || len(g.grid.Owned(seat)) != g.grid.Count() {
		return
	}
	g.over = true
	g.winner = seat
	g.queue = nil

	log.Info().Str("match", g.ID).Int("winner", seat).Int("round", g.round).Msg("Game over")
	g.emit(Event{Type: EventGameEnd, Player: seat})
}
