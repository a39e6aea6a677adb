package game

import (
	"dice-conquest/pkg/maps"
)

// buildQueue collects the acting player's cells that can attack.
func (g *Game) buildQueue() {
	g.queue = g.queue[:0]
	for _, t := range g.grid.Owned(g.current) {
		if t.Dice > 1 {
			g.queue = append(g.queue, Action{Coord: t.Coord, Territory: t})
		}
	}
}

// stepAI runs one queued action, or ends the seat's turn once the queue is
// empty.
func (g *Game) stepAI() {
	if len(g.queue) == 0 {
		g.endSeat()
		return
	}
	a := g.queue[0]
	g.queue = g.queue[1:]
	g.planAndAct(a)
}

// planAndAct attacks from a's cell if a weak enough neighbor exists.
func (g *Game) planAndAct(a Action) {
	att := g.grid.At(a.Coord)
	if att == nil || att != a.Territory || att.Owner != g.current || att.Dice <= 1 {
		return
	}

	targets := g.aiTargets(att)
	if len(targets) == 0 {
		return
	}

	g.combat = Combat{
		Attacker: att,
		Defender: targets[g.rng.Intn(len(targets))],
	}
	g.fight()
}

// aiTargets returns the enemy neighbors of att holding the fewest dice,
// provided that is no more than att holds.
func (g *Game) aiTargets(att *maps.Territory) []*maps.Territory {
	var enemies []*maps.Territory
	fewest := 0
	for _, c := range g.grid.Neighbors(att.Coord) {
		t := g.grid.At(c)
		if t == nil || t.Owner == att.Owner {
			continue
		}
		if len(enemies) == 0 || t.Dice < fewest {
			fewest = t.Dice
		}
		enemies = append(enemies, t)
	}
	if len(enemies) == 0 || fewest > att.Dice {
		return nil
	}

	out := make([]*maps.Territory, 0, len(enemies))
	for _, t := range enemies {
		if t.Dice == fewest {
			out = append(out, t)
		}
	}
	return out
}
