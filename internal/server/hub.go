package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"dice-conquest/internal/game"
	"dice-conquest/internal/protocol"
)

// Hub maintains the set of connected watchers and fans engine output out
// to them.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client

	// Encoded messages for every client
	broadcast chan []byte

	// Inbound messages from clients
	inbound chan *ClientMessage

	// Closed when Run returns
	done chan struct{}

	// Last snapshot message, replayed to new watchers
	mu       sync.RWMutex
	snapshot []byte
	match    string
}

// ClientMessage wraps a message with its source client.
type ClientMessage struct {
	Client  *Client
	Message *protocol.Message
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		inbound:    make(chan *ClientMessage, 64),
		done:       make(chan struct{}),
	}
}

// Run is the hub's main loop. It returns when ctx is cancelled, after
// closing every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	handlers := NewHandlers(h)
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.sendWelcome(client)
			if snap := h.cachedSnapshot(); snap != nil {
				client.Send(snap)
			}
			log.Debug().Str("watcher", client.ID).Int("watchers", len(h.clients)).Msg("Watcher connected")

		case client := <-h.unregister:
			h.drop(client)

		case data := <-h.broadcast:
			for client := range h.clients {
				if !client.Send(data) {
					h.drop(client)
				}
			}

		case cm := <-h.inbound:
			if h.clients[cm.Client] {
				handlers.Handle(cm.Client, cm.Message)
			}

		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			return
		}
	}
}

// drop removes a client and closes its send queue.
func (h *Hub) drop(client *Client) {
	if !h.clients[client] {
		return
	}
	delete(h.clients, client)
	close(client.send)
	log.Debug().Str("watcher", client.ID).Int("watchers", len(h.clients)).Msg("Watcher disconnected")
}

func (h *Hub) sendWelcome(client *Client) {
	h.mu.RLock()
	match := h.match
	h.mu.RUnlock()

	data, err := protocol.Encode(protocol.TypeWelcome, protocol.WelcomePayload{
		Version:   protocol.Version,
		WatcherID: client.ID,
		Match:     match,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode welcome")
		return
	}
	client.Send(data)
}

func (h *Hub) cachedSnapshot() []byte {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snapshot
}

// PublishSnapshot caches s for new watchers and sends it to everyone.
func (h *Hub) PublishSnapshot(s game.Snapshot) {
	data, err := protocol.Encode(protocol.TypeSnapshot, protocol.SnapshotPayload{Snapshot: s})
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode snapshot")
		return
	}

	h.mu.Lock()
	h.snapshot = data
	h.match = s.Match
	h.mu.Unlock()

	h.enqueue(data)
}

// PublishEvent sends an engine event to every watcher. It can be used as a
// game.Game listener.
func (h *Hub) PublishEvent(e game.Event) {
	// Maps travel in snapshots.
	e.Map = nil
	data, err := protocol.Encode(protocol.TypeEvent, protocol.EventPayload{Event: e})
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode event")
		return
	}
	h.enqueue(data)
}

// enqueue hands data to the run loop without blocking the engine.
func (h *Hub) enqueue(data []byte) {
	select {
	case h.broadcast <- data:
	default:
		log.Warn().Msg("Broadcast queue full, dropping message")
	}
}

// ServeHTTP upgrades a request to a watcher connection and serves it until
// the connection closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := NewClient(h, conn)
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// Client represents a connected watcher.
type Client struct {
	ID   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

const (
	writeWait      = 10 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 1 << 20
)

// NewClient creates a new client.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		ID:   uuid.New().String(),
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// Send queues data for the client. It reports false when the client is too
// slow to keep up. Only the hub's run loop may call it.
func (c *Client) Send(data []byte) bool {
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// ReadPump pumps messages from the WebSocket to the hub.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)

	for {
		msgType, data, err := c.conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && ctx.Err() == nil {
				log.Debug().Err(err).Str("watcher", c.ID).Msg("WebSocket read error")
			}
			return
		}
		if msgType != websocket.MessageText {
			continue
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			log.Debug().Err(err).Str("watcher", c.ID).Msg("Invalid message")
			continue
		}

		select {
		case c.hub.inbound <- &ClientMessage{Client: c, Message: msg}:
		case <-c.hub.done:
			return
		}
	}
}

// WritePump pumps messages from the hub to the WebSocket.
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				c.conn.Close(websocket.StatusNormalClosure, "")
				return
			}
			wctx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(wctx, websocket.MessageText, data)
			cancel()
			if err != nil {
				c.conn.Close(websocket.StatusInternalError, "write failed")
				return
			}

		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pctx)
			cancel()
			if err != nil {
				c.conn.Close(websocket.StatusGoingAway, "ping failed")
				return
			}

		case <-ctx.Done():
			return
		}
	}
}
