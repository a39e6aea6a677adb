package maps

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type zeroRand struct{}

func (zeroRand) Intn(int) int { return 0 }

func defaultOptions() GeneratorOptions {
	return GeneratorOptions{
		Cells:       30,
		Players:     3,
		AverageDice: 4,
		MaxDice:     8,
		Fairness:    0.3,
	}
}

func TestGenerateProperties(t *testing.T) {
	opts := defaultOptions()

	for seed := int64(1); seed <= 20; seed++ {
		g := NewGrid(8, 8, 32)
		g.Pan(Point{X: 40, Y: -15})

		res, err := NewGenerator(opts, rand.New(rand.NewSource(seed))).Generate(g)
		require.NoError(t, err, "seed %d", seed)

		assert.Equal(t, opts.Cells, g.Count(), "seed %d", seed)
		assert.Equal(t, Point{}, g.Offset(), "seed %d: pan is reset", seed)
		assert.GreaterOrEqual(t, res.Attempts, 1)

		owned := make([]int, opts.Players)
		totals := make([]int, opts.Players)
		sum := 0
		for _, terr := range g.Territories() {
			require.True(t, terr.Owner >= 0 && terr.Owner < opts.Players)
			assert.GreaterOrEqual(t, terr.Dice, opts.AverageDice-2)
			assert.LessOrEqual(t, terr.Dice, opts.AverageDice+2)
			assert.LessOrEqual(t, terr.Dice, opts.MaxDice)
			assert.Equal(t, g.Layout().Center(terr.Coord, Point{}), terr.Center)
			owned[terr.Owner]++
			totals[terr.Owner] += terr.Dice
			sum += terr.Dice
		}

		assert.Equal(t, []int{10, 10, 10}, owned, "seed %d", seed)
		assert.Equal(t, totals, res.Totals)
		assert.Equal(t, opts.Cells*opts.AverageDice, sum, "shortfall is handed back")
		assert.True(t, IsFair(totals, opts.Fairness), "seed %d totals %v", seed, totals)
	}
}

func TestGenerateQuotaRemainder(t *testing.T) {
	opts := defaultOptions()
	opts.Cells = 32

	g := NewGrid(8, 8, 32)
	_, err := NewGenerator(opts, rand.New(rand.NewSource(99))).Generate(g)
	require.NoError(t, err)

	owned := make([]int, opts.Players)
	for _, terr := range g.Territories() {
		owned[terr.Owner]++
	}
	for _, n := range owned {
		assert.Contains(t, []int{10, 11}, n)
	}
}

func TestGenerateIsDeterministicPerSeed(t *testing.T) {
	a := NewGrid(8, 8, 32)
	b := NewGrid(8, 8, 32)

	_, err := NewGenerator(defaultOptions(), rand.New(rand.NewSource(42))).Generate(a)
	require.NoError(t, err)
	_, err = NewGenerator(defaultOptions(), rand.New(rand.NewSource(42))).Generate(b)
	require.NoError(t, err)

	assert.Equal(t, a.Debug(), b.Debug())
}

func TestGenerateRejectsOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GeneratorOptions)
		want   error
	}{
		{"fairness too low", func(o *GeneratorOptions) { o.Fairness = 0.1 }, ErrFairnessOutOfRange},
		{"fairness too high", func(o *GeneratorOptions) { o.Fairness = 0.5 }, ErrFairnessOutOfRange},
		{"single player", func(o *GeneratorOptions) { o.Players = 1 }, ErrInvalidOptions},
		{"fewer cells than players", func(o *GeneratorOptions) { o.Cells = 2 }, ErrInvalidOptions},
		{"average too low", func(o *GeneratorOptions) { o.AverageDice = 2 }, ErrInvalidOptions},
		{"average above cap", func(o *GeneratorOptions) { o.MaxDice = 5 }, ErrInvalidOptions},
		{"too many cells for grid", func(o *GeneratorOptions) { o.Cells = 65 }, ErrInvalidOptions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := defaultOptions()
			tt.mutate(&opts)

			g := NewGrid(8, 8, 32)
			g.Place(Coord{2, 2}, 1).Dice = 3
			before := g.Debug()

			_, err := NewGenerator(opts, rand.New(rand.NewSource(1))).Generate(g)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Equal(t, before, g.Debug(), "grid untouched")
		})
	}
}

func TestDistributeDiceStalls(t *testing.T) {
	gen := NewGenerator(GeneratorOptions{
		Cells:       2,
		Players:     2,
		AverageDice: 3,
		MaxDice:     5,
		Fairness:    0.2,
		MaxAttempts: 5,
	}, zeroRand{})

	cells := []*Territory{{Owner: 0}, {Owner: 1}}

	// Every draw is avg-2 and the whole shortfall lands on the first cell.
	assert.Equal(t, []int{5, 1}, gen.createDiceDistribution(2))

	dice, attempts, err := gen.distributeDice(cells)
	assert.Nil(t, dice)
	assert.Equal(t, 5, attempts)
	assert.ErrorIs(t, err, ErrGenerationStalled)
}

func TestIsFair(t *testing.T) {
	assert.True(t, IsFair([]int{40, 40, 40}, 0.2))
	assert.True(t, IsFair([]int{36, 44}, 0.2))
	assert.False(t, IsFair([]int{20, 60}, 0.2))
	assert.False(t, IsFair([]int{0, 10}, 0.4))
	assert.False(t, IsFair(nil, 0.3))
}
