package maps

import (
	"errors"
	"fmt"
)

// Generation errors.
var (
	ErrFairnessOutOfRange = errors.New("fairness tolerance must be between 0.2 and 0.4")
	ErrInvalidOptions     = errors.New("invalid generator options")
	ErrGenerationStalled  = errors.New("no fair dice distribution found")
)

// Fairness tolerance bounds.
const (
	MinFairness = 0.2
	MaxFairness = 0.4
)

// DefaultMaxAttempts bounds the dice fairness accept/reject loop.
const DefaultMaxAttempts = 10000

// GeneratorOptions contains settings for map generation.
type GeneratorOptions struct {
	Cells       int     // Number of territories to place
	Players     int     // Number of owners to share them between
	AverageDice int     // Mean dice per territory; draws span [avg-2, avg+2]
	MaxDice     int     // Per-territory dice cap
	Fairness    float64 // Allowed deviation of player dice totals from the mean
	MaxAttempts int     // Fairness retries before giving up; 0 means DefaultMaxAttempts
}

// Validate checks the options independently of any grid.
func (o GeneratorOptions) Validate() error {
	if o.Fairness < MinFairness || o.Fairness > MaxFairness {
		return fmt.Errorf("%w: got %.2f", ErrFairnessOutOfRange, o.Fairness)
	}
	if o.Players < 2 {
		return fmt.Errorf("%w: need at least 2 players, got %d", ErrInvalidOptions, o.Players)
	}
	if o.Cells < o.Players {
		return fmt.Errorf("%w: %d cells cannot be shared by %d players", ErrInvalidOptions, o.Cells, o.Players)
	}
	if o.AverageDice < 3 {
		return fmt.Errorf("%w: average dice %d leaves territories empty", ErrInvalidOptions, o.AverageDice)
	}
	if o.AverageDice+2 > o.MaxDice {
		return fmt.Errorf("%w: average dice %d exceeds max dice %d after redistribution", ErrInvalidOptions, o.AverageDice, o.MaxDice)
	}
	if o.MaxAttempts < 0 {
		return fmt.Errorf("%w: negative max attempts", ErrInvalidOptions)
	}
	return nil
}

// Result describes an accepted map.
type Result struct {
	Attempts int   // Dice distributions generated, including the accepted one
	Totals   []int // Dice per player
}

// Generator handles procedural map generation.
type Generator struct {
	options GeneratorOptions
	rng     Rand
}

// NewGenerator creates a new map generator.
func NewGenerator(opts GeneratorOptions, rng Rand) *Generator {
	if opts.MaxAttempts == 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	return &Generator{options: opts, rng: rng}
}

// Options returns the generator settings.
func (g *Generator) Options() GeneratorOptions {
	return g.options
}

// Generate builds a new map into grid. On success every occupied cell of the
// grid is replaced and the pan offset is reset; on error the grid is left
// untouched.
func (g *Generator) Generate(grid *Grid) (*Result, error) {
	if err := g.options.Validate(); err != nil {
		return nil, err
	}
	if g.options.Cells > grid.Rows*grid.Cols {
		return nil, fmt.Errorf("%w: %d cells do not fit a %dx%d grid",
			ErrInvalidOptions, g.options.Cells, grid.Rows, grid.Cols)
	}

	scratch := NewGrid(grid.Rows, grid.Cols, grid.SideLength())
	g.growRegion(scratch, g.createQuotas())

	cells := scratch.Territories()
	dice, attempts, err := g.distributeDice(cells)
	if err != nil {
		return nil, err
	}

	for i, t := range cells {
		t.Dice += dice[i]
	}
	grid.adopt(scratch)

	return &Result{
		Attempts: attempts,
		Totals:   playerTotals(cells, dice, g.options.Players),
	}, nil
}

// distributeDice draws dice distributions until one is fair or the attempt
// budget runs out.
func (g *Generator) distributeDice(cells []*Territory) ([]int, int, error) {
	for attempts := 1; attempts <= g.options.MaxAttempts; attempts++ {
		dice := g.createDiceDistribution(len(cells))
		if IsFair(playerTotals(cells, dice, g.options.Players), g.options.Fairness) {
			return dice, attempts, nil
		}
	}
	return nil, g.options.MaxAttempts, fmt.Errorf("%w after %d attempts (fairness %.2f, %d cells, %d players)",
		ErrGenerationStalled, g.options.MaxAttempts, g.options.Fairness, g.options.Cells, g.options.Players)
}

// createQuotas returns the number of territories each player receives.
// Leftovers go to random players, at most one extra each.
func (g *Generator) createQuotas() []int {
	players := g.options.Players
	base := g.options.Cells / players
	quotas := make([]int, players)
	for i := range quotas {
		quotas[i] = base
	}

	for left := g.options.Cells % players; left > 0; left-- {
		for {
			p := g.rng.Intn(players)
			if quotas[p] == base {
				quotas[p]++
				break
			}
		}
	}
	return quotas
}

// choosePlayer draws a player with remaining quota and consumes one unit.
func (g *Generator) choosePlayer(quotas []int) int {
	for {
		p := g.rng.Intn(len(quotas))
		if quotas[p] > 0 {
			quotas[p]--
			return p
		}
	}
}

// growRegion random-walks from a random cell, placing a territory on every
// empty cell it visits until the target count is reached.
func (g *Generator) growRegion(grid *Grid, quotas []int) {
	point := Coord{Row: g.rng.Intn(grid.Rows), Col: g.rng.Intn(grid.Cols)}

	for placed := 0; placed < g.options.Cells; {
		point = grid.Step(point, g.rng.Intn(len(neighborOffsets)))
		if grid.At(point) == nil {
			grid.Place(point, g.choosePlayer(quotas))
			placed++
		}
	}
}

// createDiceDistribution draws a dice count per territory in [avg-2, avg],
// then hands the shortfall back one die at a time to random territories
// below avg+2.
func (g *Generator) createDiceDistribution(n int) []int {
	avg := g.options.AverageDice
	dice := make([]int, n)
	left := 0

	for i := range dice {
		d := avg - 2 + g.rng.Intn(3)
		left += avg - d
		dice[i] = d
	}

	for ; left > 0; left-- {
		for {
			i := g.rng.Intn(n)
			if dice[i] < avg+2 {
				dice[i]++
				break
			}
		}
	}
	return dice
}

func playerTotals(cells []*Territory, dice []int, players int) []int {
	totals := make([]int, players)
	for i, t := range cells {
		totals[t.Owner] += dice[i]
	}
	return totals
}

// IsFair reports whether the per-player dice totals stay within tolerance of
// their mean: avg/min <= 1+tolerance and avg/max >= 1-tolerance.
func IsFair(totals []int, tolerance float64) bool {
	if len(totals) == 0 {
		return false
	}
	lo, hi, sum := totals[0], totals[0], 0
	for _, v := range totals {
		lo = min(lo, v)
		hi = max(hi, v)
		sum += v
	}
	if lo <= 0 {
		return false
	}
	avg := float64(sum) / float64(len(totals))
	return avg/float64(lo) <= 1+tolerance && avg/float64(hi) >= 1-tolerance
}
