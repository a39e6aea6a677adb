package maps

import "math"

// Layout holds the pixel metrics of a flat-top hexagon for one side length.
// All metrics are truncated to whole pixels so that shifting a layout by an
// offset and back is exact.
type Layout struct {
	Side      int
	Half      int
	HalfRoot3 int
}

// NewLayout computes the layout metrics for a side length.
func NewLayout(side int) Layout {
	half := side / 2
	return Layout{
		Side:      side,
		Half:      half,
		HalfRoot3: int(float64(half) * math.Sqrt(3)),
	}
}

// Center returns the hexagon center for a coordinate, shifted by pan.
// Rows advance horizontally by two HalfRoot3, columns advance vertically by
// Side+Half and stagger horizontally by one HalfRoot3.
func (l Layout) Center(c Coord, pan Point) Point {
	x := l.HalfRoot3 + c.Row*2*l.HalfRoot3 + c.Col*l.HalfRoot3
	y := l.Side + c.Col*(l.Half+l.Side)
	return Point{X: x + pan.X, Y: y + pan.Y}
}

// Vertices returns the six corners of the hexagon around center, starting
// at the bottom vertex and going counter-clockwise on screen.
func (l Layout) Vertices(center Point) [6]Point {
	x, y := center.X, center.Y
	return [6]Point{
		{X: x, Y: y + l.Side},
		{X: x + l.HalfRoot3, Y: y + l.Half},
		{X: x + l.HalfRoot3, Y: y - l.Half},
		{X: x, Y: y - l.Side},
		{X: x - l.HalfRoot3, Y: y - l.Half},
		{X: x - l.HalfRoot3, Y: y + l.Half},
	}
}

// NeighborDistance is the largest center-to-center distance two touching
// hexagons can have with this layout.
func (l Layout) NeighborDistance() float64 {
	dx := float64(l.HalfRoot3)
	dy := float64(l.Side + l.Half)
	return math.Sqrt(dx*dx + dy*dy)
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// PointInPolygon runs an even-odd ray cast from p towards +X.
func PointInPolygon(p Point, poly []Point) bool {
	inside := false
	j := len(poly) - 1
	for i := range poly {
		pi, pj := poly[i], poly[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			cross := float64(pj.X-pi.X)*float64(p.Y-pi.Y)/float64(pj.Y-pi.Y) + float64(pi.X)
			if float64(p.X) < cross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}
