package maps

import (
	"encoding/json"
	"fmt"
)

// RawMap is the serialized form of a grid: its dimensions and the occupied
// cells. Geometry is not stored; it is rebuilt from the side length on load.
type RawMap struct {
	Rows  int       `json:"rows"`
	Cols  int       `json:"cols"`
	Side  int       `json:"side"`
	Cells []RawCell `json:"cells"`
}

// RawCell is one occupied cell of a RawMap.
type RawCell struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Owner int `json:"owner"`
	Dice  int `json:"dice"`
}

// Export captures the grid's ownership and dice in row-major order.
func Export(g *Grid) *RawMap {
	raw := &RawMap{
		Rows:  g.Rows,
		Cols:  g.Cols,
		Side:  g.SideLength(),
		Cells: make([]RawCell, 0, g.Count()),
	}
	for _, t := range g.Territories() {
		raw.Cells = append(raw.Cells, RawCell{
			Row:   t.Coord.Row,
			Col:   t.Coord.Col,
			Owner: t.Owner,
			Dice:  t.Dice,
		})
	}
	return raw
}

// Load builds a grid from a raw map. The pan offset starts at zero.
func Load(raw *RawMap) (*Grid, error) {
	if err := validate(raw); err != nil {
		return nil, fmt.Errorf("invalid map: %w", err)
	}

	g := NewGrid(raw.Rows, raw.Cols, raw.Side)
	for _, c := range raw.Cells {
		t := g.Place(Coord{Row: c.Row, Col: c.Col}, c.Owner)
		t.Dice = c.Dice
	}
	return g, nil
}

// LoadFromJSON loads a grid from JSON bytes (snapshots, stored matches).
func LoadFromJSON(data []byte) (*Grid, error) {
	var raw RawMap
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse map JSON: %w", err)
	}
	return Load(&raw)
}

// validate checks a raw map for errors.
func validate(raw *RawMap) error {
	if raw.Rows <= 0 || raw.Cols <= 0 {
		return fmt.Errorf("invalid dimensions: %dx%d", raw.Rows, raw.Cols)
	}
	if raw.Side < MinSideLength || raw.Side > MaxSideLength {
		return fmt.Errorf("side length %d out of range", raw.Side)
	}

	seen := make(map[Coord]bool, len(raw.Cells))
	for _, c := range raw.Cells {
		coord := Coord{Row: c.Row, Col: c.Col}
		if c.Row < 0 || c.Row >= raw.Rows || c.Col < 0 || c.Col >= raw.Cols {
			return fmt.Errorf("cell %s outside %dx%d grid", coord, raw.Rows, raw.Cols)
		}
		if seen[coord] {
			return fmt.Errorf("cell %s listed twice", coord)
		}
		if c.Owner < 0 {
			return fmt.Errorf("cell %s has negative owner %d", coord, c.Owner)
		}
		if c.Dice < 1 {
			return fmt.Errorf("cell %s has %d dice", coord, c.Dice)
		}
		seen[coord] = true
	}
	return nil
}
