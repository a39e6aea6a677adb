package server

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"dice-conquest/internal/game"
)

// Runner drives a game on a fixed tick and publishes its progress. After a
// game ends it waits RestartDelay and generates a new map.
type Runner struct {
	game         *game.Game
	hub          *Hub
	tick         time.Duration
	restartDelay time.Duration
	now          func() time.Time

	dirty      bool
	lastStatus game.Status
	overAt     time.Time
	games      int
}

// NewRunner creates a runner. g should have Autoplay set, or the human
// seat never moves. The runner subscribes to g; nothing else may call g
// once Run has started.
func NewRunner(g *game.Game, hub *Hub, tick, restartDelay time.Duration) *Runner {
	r := &Runner{
		game:         g,
		hub:          hub,
		tick:         tick,
		restartDelay: restartDelay,
		now:          time.Now,
		dirty:        true,
	}
	g.Subscribe(r.onEvent)
	return r
}

func (r *Runner) onEvent(e game.Event) {
	r.dirty = true
	if r.hub != nil {
		r.hub.PublishEvent(e)
	}
	if e.Type == game.EventGameEnd {
		r.overAt = r.now()
		r.games++
	}
}

// Run ticks until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()

	r.publish()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.Step()
		}
	}
}

// Step advances the game once and publishes a snapshot if anything changed.
func (r *Runner) Step() {
	if _, over := r.game.Winner(); over {
		if r.now().Sub(r.overAt) >= r.restartDelay {
			if err := r.game.RequestNewMap(); err != nil {
				log.Error().Err(err).Msg("Failed to start next game")
			}
		}
	} else {
		r.game.Tick()
	}
	if s := r.game.Status(); s != r.lastStatus {
		r.lastStatus = s
		r.dirty = true
	}
	r.publish()
}

// Games returns the number of finished games.
func (r *Runner) Games() int {
	return r.games
}

func (r *Runner) publish() {
	if !r.dirty || r.hub == nil {
		return
	}
	r.dirty = false
	r.hub.PublishSnapshot(r.game.Snapshot())
}
