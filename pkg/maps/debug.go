package maps

import (
	"fmt"
	"strings"
)

// Debug returns a string visualization of the grid. Each occupied cell is
// printed as owner letter and dice count; columns are indented to follow
// the hexagon stagger.
func (g *Grid) Debug() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Grid: %dx%d, %d territories, side %d, offset %d,%d\n",
		g.Rows, g.Cols, g.Count(), g.layout.Side, g.offset.X, g.offset.Y))

	for col := 0; col < g.Cols; col++ {
		sb.WriteString(strings.Repeat(" ", col*2))
		for row := 0; row < g.Rows; row++ {
			t := g.cells[row][col]
			if t == nil {
				sb.WriteString("  . ")
				continue
			}
			sb.WriteString(fmt.Sprintf(" %c%-2d", 'A'+rune(t.Owner%26), t.Dice))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
