// Package maps handles hex grid geometry, map generation and connectivity.
package maps

// Coord indexes a cell of the backing array. Adjacency is offset-based,
// see Grid.Neighbors.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Point is a screen position in pixels.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p shifted by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Neg returns the opposite shift.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// Territory is one occupied cell of the grid.
type Territory struct {
	Coord Coord

	// Center and Boundary are derived from Coord, the side length and the
	// grid's pan offset. The grid recomputes them; never set them directly.
	Center   Point
	Boundary [6]Point

	Owner int // Index into the player table
	Dice  int
}

// Contains reports whether p lies inside the territory's hexagon.
func (t *Territory) Contains(p Point) bool {
	return PointInPolygon(p, t.Boundary[:])
}

// Rand is the random source used by generation and gameplay.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}
