package maps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLayoutTruncatesMetrics(t *testing.T) {
	l := NewLayout(32)
	assert.Equal(t, 32, l.Side)
	assert.Equal(t, 16, l.Half)
	assert.Equal(t, 27, l.HalfRoot3) // 16 * 1.732 = 27.7

	odd := NewLayout(7)
	assert.Equal(t, 3, odd.Half)
	assert.Equal(t, 5, odd.HalfRoot3)
}

func TestLayoutCenterSpacing(t *testing.T) {
	l := NewLayout(32)

	origin := l.Center(Coord{0, 0}, Point{})
	assert.Equal(t, Point{X: 27, Y: 32}, origin)

	// Next row: two HalfRoot3 to the right, same height.
	assert.Equal(t, Point{X: 27 + 54, Y: 32}, l.Center(Coord{1, 0}, Point{}))

	// Next column: one HalfRoot3 stagger, Side+Half down.
	assert.Equal(t, Point{X: 27 + 27, Y: 32 + 48}, l.Center(Coord{0, 1}, Point{}))

	// Pan is a plain offset.
	assert.Equal(t, Point{X: 27 - 5, Y: 32 + 9}, l.Center(Coord{0, 0}, Point{X: -5, Y: 9}))
}

func TestLayoutVertices(t *testing.T) {
	l := NewLayout(32)
	v := l.Vertices(Point{X: 100, Y: 100})

	assert.Equal(t, [6]Point{
		{100, 132},
		{127, 116},
		{127, 84},
		{100, 68},
		{73, 84},
		{73, 116},
	}, v)
}

func TestNeighborDistanceCoversTrueNeighbors(t *testing.T) {
	g := NewGrid(3, 3, 32)
	l := g.Layout()
	center := l.Center(Coord{1, 1}, Point{})
	limit := l.NeighborDistance()

	for _, n := range g.Neighbors(Coord{1, 1}) {
		d := Distance(center, l.Center(n, Point{}))
		assert.LessOrEqual(t, d, limit, "neighbor %v at distance %.2f", n, d)
	}

	// (r+1, c+1) is not adjacent and lies well outside the threshold.
	far := l.Center(Coord{2, 2}, Point{})
	assert.Greater(t, Distance(center, far), limit)
}

func TestPointInPolygon(t *testing.T) {
	l := NewLayout(20)
	center := Point{X: 50, Y: 50}
	v := l.Vertices(center)

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"center", center, true},
		{"near top vertex", Point{50, 32}, true},
		{"left of hexagon", Point{30, 50}, false},
		{"above hexagon", Point{50, 25}, false},
		{"far away", Point{500, 500}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PointInPolygon(tt.p, v[:])
			require.Equal(t, tt.want, got)
			// Repeatable for identical inputs.
			require.Equal(t, got, PointInPolygon(tt.p, v[:]))
		})
	}
}
