package maps

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders the coordinate as "row:col".
func (c Coord) String() string {
	return strconv.Itoa(c.Row) + ":" + strconv.Itoa(c.Col)
}

// ParseCoord converts a "row:col" string back to a coordinate.
func ParseCoord(s string) (Coord, error) {
	row, col, ok := strings.Cut(s, ":")
	if !ok {
		return Coord{}, fmt.Errorf("invalid coordinate %q", s)
	}
	r, err := strconv.Atoi(row)
	if err != nil {
		return Coord{}, fmt.Errorf("invalid coordinate row %q: %w", s, err)
	}
	c, err := strconv.Atoi(col)
	if err != nil {
		return Coord{}, fmt.Errorf("invalid coordinate col %q: %w", s, err)
	}
	return Coord{Row: r, Col: c}, nil
}
