package maps

// Side length bounds accepted by Resize.
const (
	MinSideLength = 6
	MaxSideLength = 60
)

// neighborOffsets lists the six adjacent cells of (r, c) as row/col deltas.
var neighborOffsets = [6]Coord{
	{Row: -1, Col: 0},
	{Row: -1, Col: 1},
	{Row: 1, Col: 0},
	{Row: 1, Col: -1},
	{Row: 0, Col: -1},
	{Row: 0, Col: 1},
}

// Grid is the fixed-size backing array of the hex map. A nil entry is an
// empty cell.
type Grid struct {
	Rows int
	Cols int

	cells  [][]*Territory
	layout Layout
	offset Point
}

// NewGrid creates an empty grid.
func NewGrid(rows, cols, side int) *Grid {
	g := &Grid{
		Rows:   rows,
		Cols:   cols,
		layout: NewLayout(side),
	}
	g.cells = makeCells(rows, cols)
	return g
}

func makeCells(rows, cols int) [][]*Territory {
	cells := make([][]*Territory, rows)
	for r := range cells {
		cells[r] = make([]*Territory, cols)
	}
	return cells
}

// InBounds reports whether c lies inside the backing array.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.Rows && c.Col >= 0 && c.Col < g.Cols
}

// At returns the territory at c, or nil if the cell is empty or out of bounds.
func (g *Grid) At(c Coord) *Territory {
	if !g.InBounds(c) {
		return nil
	}
	return g.cells[c.Row][c.Col]
}

// Place occupies the cell at c with a new territory owned by owner.
// An existing territory at c is replaced.
func (g *Grid) Place(c Coord, owner int) *Territory {
	t := &Territory{Coord: c, Owner: owner}
	g.locate(t)
	g.cells[c.Row][c.Col] = t
	return t
}

// Step moves c one cell in direction dir (0..5). If the destination is off
// the grid, c is returned unchanged.
func (g *Grid) Step(c Coord, dir int) Coord {
	d := neighborOffsets[dir]
	next := Coord{Row: c.Row + d.Row, Col: c.Col + d.Col}
	if !g.InBounds(next) {
		return c
	}
	return next
}

// Neighbors returns the in-bounds coordinates adjacent to c, occupied or not.
func (g *Grid) Neighbors(c Coord) []Coord {
	out := make([]Coord, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		n := Coord{Row: c.Row + d.Row, Col: c.Col + d.Col}
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// Territories returns every occupied cell in row-major order.
func (g *Grid) Territories() []*Territory {
	out := make([]*Territory, 0)
	for _, row := range g.cells {
		for _, t := range row {
			if t != nil {
				out = append(out, t)
			}
		}
	}
	return out
}

// Owned returns the territories of one player in row-major order.
func (g *Grid) Owned(owner int) []*Territory {
	out := make([]*Territory, 0)
	for _, row := range g.cells {
		for _, t := range row {
			if t != nil && t.Owner == owner {
				out = append(out, t)
			}
		}
	}
	return out
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int {
	n := 0
	for _, row := range g.cells {
		for _, t := range row {
			if t != nil {
				n++
			}
		}
	}
	return n
}

// Clear empties every cell and resets the pan offset.
func (g *Grid) Clear() {
	g.cells = makeCells(g.Rows, g.Cols)
	g.offset = Point{}
}

// adopt takes over the cells of another grid of the same size and resets
// the pan offset.
func (g *Grid) adopt(other *Grid) {
	g.cells = other.cells
	g.offset = Point{}
	g.recalculate()
}

// Layout returns the current hexagon metrics.
func (g *Grid) Layout() Layout {
	return g.layout
}

// SideLength returns the current hexagon side length in pixels.
func (g *Grid) SideLength() int {
	return g.layout.Side
}

// Offset returns the accumulated pan offset.
func (g *Grid) Offset() Point {
	return g.offset
}

// Resize changes the hexagon side length. Lengths outside
// [MinSideLength, MaxSideLength] are ignored and false is returned.
func (g *Grid) Resize(side int) bool {
	if side < MinSideLength || side > MaxSideLength {
		return false
	}
	g.layout = NewLayout(side)
	g.recalculate()
	return true
}

// Pan accumulates a shift into the pan offset.
func (g *Grid) Pan(shift Point) {
	g.offset = g.offset.Add(shift)
	g.recalculate()
}

// CellsInViewport returns the occupied cells whose approximate position is
// left of boundaryX and above maxY. The estimate uses the unpadded row/col
// spacing, so cells straddling an edge are kept.
func (g *Grid) CellsInViewport(boundaryX, maxY int) []*Territory {
	l := g.layout
	out := make([]*Territory, 0)
	for _, t := range g.Territories() {
		x := t.Coord.Row*2*l.HalfRoot3 + g.offset.X + t.Coord.Col*l.HalfRoot3
		y := t.Coord.Col*(l.Side+l.Half) + g.offset.Y
		if x <= boundaryX && y <= maxY {
			out = append(out, t)
		}
	}
	return out
}

// HitTest returns the territory whose hexagon contains p, or nil.
func (g *Grid) HitTest(p Point) *Territory {
	for _, t := range g.Territories() {
		if t.Contains(p) {
			return t
		}
	}
	return nil
}

func (g *Grid) locate(t *Territory) {
	t.Center = g.layout.Center(t.Coord, g.offset)
	t.Boundary = g.layout.Vertices(t.Center)
}

func (g *Grid) recalculate() {
	for _, t := range g.Territories() {
		g.locate(t)
	}
}
