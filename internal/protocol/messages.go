// Package protocol defines the messages of the spectator feed.
package protocol

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Version is sent in the welcome message.
const Version = 1

// MessageType identifies the type of message.
type MessageType string

// Server to watcher
const (
	TypeWelcome  MessageType = "welcome"
	TypeSnapshot MessageType = "snapshot"
	TypeEvent    MessageType = "event"
	TypeError    MessageType = "error"
)

// Watcher to server
const (
	TypeRequestSnapshot MessageType = "request_snapshot"
	TypePing            MessageType = "ping"
	TypePong            MessageType = "pong"
)

// Message is the envelope for all messages.
type Message struct {
	Type      MessageType     `json:"type"`
	ID        string          `json:"id"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// NewMessage creates a new message with the given type and payload.
func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		ID:        uuid.New().String(),
		Timestamp: time.Now().UnixMilli(),
		Payload:   data,
	}, nil
}

// Encode marshals a message with the given type and payload.
func Encode(msgType MessageType, payload interface{}) ([]byte, error) {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(msg)
}

// Decode parses an envelope; the payload is left raw.
func Decode(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ParsePayload unmarshals the payload into the given type.
func (m *Message) ParsePayload(v interface{}) error {
	return json.Unmarshal(m.Payload, v)
}

// ErrorCode represents an error type.
type ErrorCode string

const (
	ErrCodeInvalidMessage ErrorCode = "invalid_message"
	ErrCodeNoMatch        ErrorCode = "no_match"
	ErrCodeInternalError  ErrorCode = "internal_error"
)

// ErrorPayload is the payload for error messages.
type ErrorPayload struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}
