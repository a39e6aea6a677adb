package maps

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLargestGroup(t *testing.T) {
	g := NewGrid(6, 6, 20)

	// Cluster of three along row 0.
	for _, c := range []Coord{{0, 0}, {0, 1}, {0, 2}} {
		g.Place(c, 0)
	}
	// Cluster of seven: a hexagon around (3,3).
	g.Place(Coord{3, 3}, 0)
	for _, c := range g.Neighbors(Coord{3, 3}) {
		g.Place(c, 0)
	}
	// Enemy cell between them does not bridge.
	g.Place(Coord{1, 1}, 1)

	before := g.Debug()

	assert.Equal(t, 7, LargestGroup(g, 0))
	assert.Len(t, Groups(g, 0), 2)
	assert.Equal(t, 1, LargestGroup(g, 1))
	assert.Equal(t, 0, LargestGroup(g, 2), "player with no cells")
	assert.Equal(t, before, g.Debug())
}

func TestGroupsIgnoreNonAdjacentDiagonal(t *testing.T) {
	g := NewGrid(3, 3, 20)
	g.Place(Coord{0, 0}, 0)
	g.Place(Coord{1, 1}, 0)

	// (r+1, c+1) is not one of the six offsets.
	assert.Equal(t, 1, LargestGroup(g, 0))

	g.Place(Coord{1, 0}, 0)
	assert.Equal(t, 3, LargestGroup(g, 0))
}

func TestDebugOutput(t *testing.T) {
	g := NewGrid(2, 2, 20)
	g.Place(Coord{0, 0}, 0).Dice = 3
	g.Place(Coord{1, 1}, 1).Dice = 12

	want := "Grid: 2x2, 2 territories, side 20, offset 0,0\n" +
		" A3   . \n" +
		"    .  B12\n"
	assert.Equal(t, want, g.Debug())
}
