// Package game contains the turn engine for Dice Conquest: turn order,
// reinforcement, combat and the computer opponents.
// This package is shared between client and server.
package game

import (
	"time"

	"dice-conquest/pkg/maps"
)

// Settings contains the gameplay parameters that do not affect generation.
type Settings struct {
	DieSides   int           `json:"dieSides"`
	MaxDice    int           `json:"maxDice"`
	FightDelay time.Duration `json:"fightDelay"` // Pause between rolling and applying a combat result
	Autoplay   bool          `json:"autoplay"`   // The AI planner also plays the human seat
}

// Options are the construction-time inputs of a game.
type Options struct {
	Rows       int
	Cols       int
	SideLength int
	Colors     []PlayerColor // One per seat, human first
	Generator  maps.GeneratorOptions
	Settings   Settings

	// Seed selects the random source of the first map; 0 derives one from
	// the clock. Rand, when set, replaces the seeded source entirely.
	Seed  int64
	Rand  maps.Rand
	Clock func() time.Time

	// Listeners are subscribed before the first map is generated.
	Listeners []func(Event)
}

// Phase is whose logical turn it is.
type Phase int

const (
	PhaseHumanTurn Phase = iota
	PhaseAIActing
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseHumanTurn:
		return "Human Turn"
	case PhaseAIActing:
		return "AI Acting"
	default:
		return "Unknown"
	}
}

// Status is the externally visible engine state. Combat states take
// precedence over the turn phase.
type Status int

const (
	StatusHumanTurn Status = iota
	StatusAIActing
	StatusCombatPending
	StatusCombatResolving
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusHumanTurn:
		return "HumanTurn"
	case StatusAIActing:
		return "AIActing"
	case StatusCombatPending:
		return "CombatPending"
	case StatusCombatResolving:
		return "CombatResolving"
	default:
		return "Unknown"
	}
}

// Action is one queued AI move: the source cell as it was when the queue
// was built.
type Action struct {
	Coord     maps.Coord
	Territory *maps.Territory
}

// Game is a single-threaded engine driven by Tick. None of its methods
// may be called concurrently; use Snapshot to share state.
type Game struct {
	ID string

	opts     Options
	grid     *maps.Grid
	players  []*Player
	rng      maps.Rand
	now      func() time.Time
	seed     int64
	attempts int

	round   int
	phase   Phase
	current int
	queue   []Action
	combat  Combat

	over   bool
	winner int

	listeners []func(Event)
}

// Status returns the current engine state.
func (g *Game) Status() Status {
	switch g.combat.Stage {
	case CombatPending:
		return StatusCombatPending
	case CombatResolving:
		return StatusCombatResolving
	}
	if g.phase == PhaseAIActing {
		return StatusAIActing
	}
	return StatusHumanTurn
}

// Phase returns whose logical turn it is.
func (g *Game) Phase() Phase {
	return g.phase
}

// Current returns the seat index of the acting player.
func (g *Game) Current() int {
	return g.current
}

// Round returns the current round, starting at 1.
func (g *Game) Round() int {
	return g.round
}

// Grid returns the board.
func (g *Game) Grid() *maps.Grid {
	return g.grid
}

// Players returns the player table indexed by seat.
func (g *Game) Players() []*Player {
	return g.players
}

// Settings returns the gameplay settings.
func (g *Game) Settings() Settings {
	return g.opts.Settings
}

// GeneratorOptions returns the options the current map was built with.
func (g *Game) GeneratorOptions() maps.GeneratorOptions {
	return g.opts.Generator
}

// Seed returns the seed of the current map.
func (g *Game) Seed() int64 {
	return g.seed
}

// Combat returns a copy of the attack in progress.
func (g *Game) Combat() Combat {
	return g.combat
}

// Queue returns the remaining actions of the acting computer player.
func (g *Game) Queue() []Action {
	return append([]Action(nil), g.queue...)
}

// Winner returns the winning seat once the game is over.
func (g *Game) Winner() (int, bool) {
	return g.winner, g.over
}

// Subscribe registers fn to receive every engine event. Listeners run
// synchronously inside the engine call that produced the event.
func (g *Game) Subscribe(fn func(Event)) {
	g.listeners = append(g.listeners, fn)
}

// ResizeRequest changes the hexagon side length by delta. Results outside
// the allowed range are ignored.
func (g *Game) ResizeRequest(delta int) bool {
	return g.grid.Resize(g.grid.SideLength() + delta)
}

// PanRequest shifts the board on screen.
func (g *Game) PanRequest(shift maps.Point) {
	g.grid.Pan(shift)
}
