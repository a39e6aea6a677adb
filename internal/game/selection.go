package game

import (
	"dice-conquest/pkg/maps"
)

// Select handles a click at p: an owned cell becomes the attack source, any
// other cell is declared as the defender.
func (g *Game) Select(p maps.Point) error {
	t := g.grid.HitTest(p)
	if t == nil {
		return ErrInvalidTarget
	}
	if t.Owner == 0 {
		return g.DeclareAttack(t.Coord)
	}
	return g.DeclareDefend(t.Coord)
}

// DeclareAttack selects the human player's cell at c as the attack source.
// It replaces an earlier selection that has not been fought yet.
func (g *Game) DeclareAttack(c maps.Coord) error {
	if err := g.checkHumanInput(); err != nil {
		return err
	}

	t := g.grid.At(c)
	if t == nil || t.Owner != 0 || t.Dice <= 1 {
		return ErrInvalidSource
	}

	g.combat.Attacker = t
	return nil
}

// DeclareDefend picks the target of the selected source. The target must be
// an enemy cell whose center lies within neighbor distance of the source.
func (g *Game) DeclareDefend(c maps.Coord) error {
	if err := g.checkHumanInput(); err != nil {
		return err
	}

	att := g.combat.Attacker
	if att == nil {
		return ErrNoAttackSource
	}

	t := g.grid.At(c)
	if t == nil || t.Owner == att.Owner {
		return ErrInvalidTarget
	}
	if maps.Distance(att.Center, t.Center) > g.grid.Layout().NeighborDistance() {
		return ErrNotAdjacent
	}

	g.combat.Defender = t
	g.combat.Stage = CombatPending
	return nil
}

// CancelAttack drops a selected source that has no defender yet.
func (g *Game) CancelAttack() {
	if g.combat.Stage == CombatIdle {
		g.combat.Attacker = nil
	}
}

func (g *Game) checkHumanInput() error {
	switch {
	case g.over:
		return ErrGameOver
	case g.phase != PhaseHumanTurn || g.opts.Settings.Autoplay:
		return ErrNotHumanTurn
	case g.combat.Stage != CombatIdle:
		return ErrCombatInProgress
	}
	return nil
}
