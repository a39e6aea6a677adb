package game

import "errors"

// Game errors. Input operations return these without changing any state.
var (
	ErrNotHumanTurn     = errors.New("not the human player's turn")
	ErrCombatInProgress = errors.New("combat in progress")
	ErrInvalidSource    = errors.New("invalid attack source")
	ErrInvalidTarget    = errors.New("invalid target")
	ErrNotAdjacent      = errors.New("target is out of reach")
	ErrNoAttackSource   = errors.New("no attack source selected")
	ErrGameOver         = errors.New("game is over")
	ErrInvalidPlayers   = errors.New("invalid player count")
)
