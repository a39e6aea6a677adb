package server

import (
	"github.com/rs/zerolog/log"

	"dice-conquest/internal/protocol"
)

// Handlers processes messages sent by watchers. It runs on the hub's loop.
type Handlers struct {
	hub *Hub
}

// NewHandlers creates a new handler set.
func NewHandlers(hub *Hub) *Handlers {
	return &Handlers{hub: hub}
}

// Handle routes a message to the appropriate handler.
func (h *Handlers) Handle(client *Client, msg *protocol.Message) {
	switch msg.Type {
	case protocol.TypeRequestSnapshot:
		h.handleRequestSnapshot(client)
	case protocol.TypePing:
		h.reply(client, protocol.TypePong, struct{}{})
	default:
		h.sendError(client, protocol.ErrCodeInvalidMessage, "unknown message type: "+string(msg.Type))
	}
}

func (h *Handlers) handleRequestSnapshot(client *Client) {
	snap := h.hub.cachedSnapshot()
	if snap == nil {
		h.sendError(client, protocol.ErrCodeNoMatch, "no match is running")
		return
	}
	client.Send(snap)
}

func (h *Handlers) reply(client *Client, msgType protocol.MessageType, payload interface{}) {
	data, err := protocol.Encode(msgType, payload)
	if err != nil {
		log.Error().Err(err).Str("type", string(msgType)).Msg("Failed to encode reply")
		return
	}
	client.Send(data)
}

func (h *Handlers) sendError(client *Client, code protocol.ErrorCode, message string) {
	h.reply(client, protocol.TypeError, protocol.ErrorPayload{Code: code, Message: message})
}
