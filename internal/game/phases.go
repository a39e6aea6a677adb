package game

import (
	"dice-conquest/pkg/maps"
)

// Tick advances the engine by one step: apply a combat whose delay has
// passed, let the acting computer player make one move, then roll a combat
// the human has declared.
func (g *Game) Tick() {
	if g.over {
		return
	}

	g.resolve(g.now())
	if g.over {
		return
	}

	switch g.combat.Stage {
	case CombatIdle:
		if g.phase == PhaseAIActing || g.opts.Settings.Autoplay {
			g.stepAI()
		}
	case CombatPending:
		g.fight()
	}
}

// RequestTurnEnd ends the human player's turn. A selected source without a
// defender is dropped.
func (g *Game) RequestTurnEnd() error {
	if err := g.checkHumanInput(); err != nil {
		return err
	}
	g.combat = Combat{}
	g.endSeat()
	return nil
}

// endSeat reinforces the acting player and passes the turn on.
func (g *Game) endSeat() {
	g.reinforce(g.current)
	g.beginSeat(g.current + 1)
}

// beginSeat hands the turn to seat i, skipping eliminated players and
// starting a new round after the last seat.
func (g *Game) beginSeat(i int) {
	for ; ; i++ {
		if i >= len(g.players) {
			i = 0
			g.round++
			g.emit(Event{Type: EventRoundStart})
		}
		if !g.players[i].Eliminated {
			break
		}
	}

	g.current = i
	g.queue = nil
	if i == 0 {
		g.phase = PhaseHumanTurn
	} else {
		g.phase = PhaseAIActing
	}
	if g.phase == PhaseAIActing || g.opts.Settings.Autoplay {
		g.buildQueue()
	}

	g.emit(Event{Type: EventTurnStart, Player: i, Count: len(g.queue)})
}

// reinforce gives a player one die per cell of their largest connected
// group plus their reserve. Dice that do not fit are kept in reserve, up to
// four full cells' worth. It returns the number of dice placed.
func (g *Game) reinforce(seat int) int {
	p := g.players[seat]
	maxDice := g.opts.Settings.MaxDice
	owned := g.grid.Owned(seat)

	available := maps.LargestGroup(g.grid, seat) + p.Reserve
	capacity := 0
	for _, t := range owned {
		capacity += maxDice - t.Dice
	}

	placed := min(available, capacity)
	p.Reserve = max(0, min(available-capacity, 4*maxDice))

	for n := 0; n < placed; {
		t := owned[g.rng.Intn(len(owned))]
		if t.Dice < maxDice {
			t.Dice++
			n++
		}
	}

	g.emit(Event{Type: EventReinforce, Player: seat, Dice: placed, Reserve: p.Reserve})
	return placed
}
