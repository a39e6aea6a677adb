package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"dice-conquest/pkg/maps"
)

// Defaults applied by New for zero settings.
const (
	DefaultDieSides   = 6
	DefaultFightDelay = 2000 * time.Millisecond
)

// New creates a game and generates its first map.
func New(opts Options) (*Game, error) {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Settings.DieSides <= 0 {
		opts.Settings.DieSides = DefaultDieSides
	}
	if opts.Settings.MaxDice <= 0 {
		opts.Settings.MaxDice = opts.Generator.MaxDice
	}
	if opts.SideLength == 0 {
		opts.SideLength = 32
	}

	g := &Game{
		opts:      opts,
		now:       opts.Clock,
		winner:    -1,
		listeners: append([]func(Event){}, opts.Listeners...),
	}
	if err := g.newMap(opts.Generator, opts.Colors, opts.Seed); err != nil {
		return nil, err
	}
	return g, nil
}

// RequestNewMap replaces the board with a freshly generated one using the
// current options and a new seed. It is accepted on the human turn with no
// combat running, or once the game is over.
func (g *Game) RequestNewMap() error {
	return g.RequestNewMapWith(g.opts.Generator)
}

// RequestNewMapWith is RequestNewMap with different generator options.
// The number of players follows gen.Players.
func (g *Game) RequestNewMapWith(gen maps.GeneratorOptions) error {
	if !g.over {
		if g.phase != PhaseHumanTurn {
			return ErrNotHumanTurn
		}
		if g.combat.Stage != CombatIdle {
			return ErrCombatInProgress
		}
	}
	return g.newMap(gen, PickColors(g.opts.Colors, gen.Players), 0)
}

// newMap generates a board for the given seats. On error the current game
// is left as it was.
func (g *Game) newMap(gen maps.GeneratorOptions, colors []PlayerColor, seed int64) error {
	if len(colors) < 2 || len(colors) > MaxPlayers {
		return fmt.Errorf("%w: %d", ErrInvalidPlayers, len(colors))
	}
	gen.Players = len(colors)

	if seed == 0 {
		seed = g.now().UnixNano()
	}
	rng := g.opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(seed))
	}

	grid := maps.NewGrid(g.opts.Rows, g.opts.Cols, g.sideLength())
	res, err := maps.NewGenerator(gen, rng).Generate(grid)
	if err != nil {
		return fmt.Errorf("failed to generate map: %w", err)
	}

	players := make([]*Player, len(colors))
	for i, c := range colors {
		if i == 0 {
			players[i] = NewPlayer(c)
		} else {
			players[i] = NewAIPlayer(c)
		}
	}

	g.ID = uuid.New().String()
	g.opts.Generator = gen
	g.opts.Colors = colors
	g.grid = grid
	g.players = players
	g.rng = rng
	g.seed = seed
	g.attempts = res.Attempts
	g.combat = Combat{}
	g.queue = nil
	g.over = false
	g.winner = -1

	log.Info().
		Str("match", g.ID).
		Int64("seed", seed).
		Int("cells", gen.Cells).
		Int("players", gen.Players).
		Int("attempts", res.Attempts).
		Ints("totals", res.Totals).
		Msg("Map generated")

	g.emit(Event{Type: EventMapGenerated, Seed: seed, Count: gen.Cells, Attempts: res.Attempts, Map: maps.Export(grid)})

	g.round = 1
	g.emit(Event{Type: EventRoundStart})
	g.beginSeat(0)
	return nil
}

// sideLength keeps the current zoom across new maps.
func (g *Game) sideLength() int {
	if g.grid != nil {
		return g.grid.SideLength()
	}
	return g.opts.SideLength
}
