package protocol

import (
	"dice-conquest/internal/game"
)

// WelcomePayload greets a new watcher.
type WelcomePayload struct {
	Version   int    `json:"version"`
	WatcherID string `json:"watcherId"`
	Match     string `json:"match,omitempty"` // Empty until the first map exists
}

// SnapshotPayload carries the whole board.
type SnapshotPayload struct {
	Snapshot game.Snapshot `json:"snapshot"`
}

// EventPayload carries one engine event.
type EventPayload struct {
	Event game.Event `json:"event"`
}
