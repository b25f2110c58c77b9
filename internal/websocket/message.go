package websocket

import (
	"encoding/json"
	"time"
)

type MessageType string

const (
	TypeNoteCreated  MessageType = "note_created"
	TypeNoteUpdated  MessageType = "note_updated"
	TypeNoteDeleted  MessageType = "note_deleted"
	TypeCommentAdded MessageType = "comment_added"
	TypeEventCreated MessageType = "event_created"
	TypeEventUpdated MessageType = "event_updated"
	TypeEventDeleted MessageType = "event_deleted"
	TypePing         MessageType = "ping"
	TypePong         MessageType = "pong"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	var payloadBytes json.RawMessage
	if payload != nil {
		bytes, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		payloadBytes = bytes
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now(),
		Payload:   payloadBytes,
	}, nil
}
