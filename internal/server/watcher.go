package server

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog/log"

	"dice-conquest/internal/game"
	"dice-conquest/internal/protocol"
)

// Watcher is the receiving end of the feed.
type Watcher struct {
	conn *websocket.Conn
	mu   sync.Mutex

	// Callbacks, invoked from Run's goroutine
	OnWelcome  func(protocol.WelcomePayload)
	OnSnapshot func(game.Snapshot)
	OnEvent    func(game.Event)
	OnError    func(protocol.ErrorPayload)
}

// WatchURL turns a host:port or http(s) URL into the feed's ws(s) URL.
func WatchURL(addr string) string {
	switch {
	case strings.HasPrefix(addr, "ws://"), strings.HasPrefix(addr, "wss://"):
		return addr
	case strings.HasPrefix(addr, "https://"):
		return "wss://" + strings.TrimPrefix(addr, "https://") + "/ws"
	case strings.HasPrefix(addr, "http://"):
		return "ws://" + strings.TrimPrefix(addr, "http://") + "/ws"
	default:
		return "ws://" + addr + "/ws"
	}
}

// Dial connects to a feed.
func Dial(ctx context.Context, url string) (*Watcher, error) {
	dctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(dctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", url, err)
	}
	conn.SetReadLimit(maxMessageSize)
	return &Watcher{conn: conn}, nil
}

// Run reads messages until the connection closes or ctx is cancelled. A
// normal closure returns nil.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		msgType, data, err := w.conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				return nil
			}
			return err
		}
		if msgType != websocket.MessageText {
			continue
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			log.Debug().Err(err).Msg("Failed to decode message")
			continue
		}
		if err := w.dispatch(msg); err != nil {
			log.Debug().Err(err).Str("type", string(msg.Type)).Msg("Failed to parse payload")
		}
	}
}

func (w *Watcher) dispatch(msg *protocol.Message) error {
	switch msg.Type {
	case protocol.TypeWelcome:
		var p protocol.WelcomePayload
		if err := msg.ParsePayload(&p); err != nil {
			return err
		}
		if w.OnWelcome != nil {
			w.OnWelcome(p)
		}
	case protocol.TypeSnapshot:
		var p protocol.SnapshotPayload
		if err := msg.ParsePayload(&p); err != nil {
			return err
		}
		if w.OnSnapshot != nil {
			w.OnSnapshot(p.Snapshot)
		}
	case protocol.TypeEvent:
		var p protocol.EventPayload
		if err := msg.ParsePayload(&p); err != nil {
			return err
		}
		if w.OnEvent != nil {
			w.OnEvent(p.Event)
		}
	case protocol.TypeError:
		var p protocol.ErrorPayload
		if err := msg.ParsePayload(&p); err != nil {
			return err
		}
		if w.OnError != nil {
			w.OnError(p)
		}
	}
	return nil
}

// RequestSnapshot asks the server to resend the current board.
func (w *Watcher) RequestSnapshot(ctx context.Context) error {
	return w.send(ctx, protocol.TypeRequestSnapshot, struct{}{})
}

func (w *Watcher) send(ctx context.Context, msgType protocol.MessageType, payload interface{}) error {
	data, err := protocol.Encode(msgType, payload)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	wctx, cancel := context.WithTimeout(ctx, writeWait)
	defer cancel()
	return w.conn.Write(wctx, websocket.MessageText, data)
}

// Close closes the connection.
func (w *Watcher) Close() error {
	return w.conn.Close(websocket.StatusNormalClosure, "")
}
