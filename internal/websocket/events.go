package websocket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Inbound frame types.
const (
	FrameMessage = "message"
	FrameTyping  = "typing"
	FrameRead    = "read"
)

// Frame is one inbound client frame. Fields beyond Type are only
// meaningful for the frame kind that uses them; unknown kinds are ignored
// by the handler so the protocol stays forward-compatible.
type Frame struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	IsTyping bool   `json:"is_typing"`
}

const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// Event is the closed set of outbound broadcasts. Encode matches it
// exhaustively; adding a variant without extending Encode is a bug.
type Event interface {
	event()
}

type MessagePayload struct {
	ID          uuid.UUID `json:"id"`
	Content     string    `json:"content"`
	SenderID    uuid.UUID `json:"sender_id"`
	SenderName  string    `json:"sender_name"`
	RecipientID uuid.UUID `json:"recipient_id"`
	Timestamp   time.Time `json:"timestamp"`
	IsRead      bool      `json:"is_read"`
}

type MessageEvent struct {
	Message MessagePayload
}

type TypingEvent struct {
	UserID   uuid.UUID
	IsTyping bool
}

type StatusEvent struct {
	UserID uuid.UUID
	Status string
}

type ReadReceiptEvent struct {
	UserID uuid.UUID
}

func (MessageEvent) event()     {}
func (TypingEvent) event()      {}
func (StatusEvent) event()      {}
func (ReadReceiptEvent) event() {}

// Encode serializes an event into its wire envelope.
func Encode(e Event) ([]byte, error) {
	switch ev := e.(type) {
	case MessageEvent:
		return json.Marshal(struct {
			Type    string         `json:"type"`
			Message MessagePayload `json:"message"`
		}{Type: "message", Message: ev.Message})

	case TypingEvent:
		return json.Marshal(struct {
			Type     string    `json:"type"`
			UserID   uuid.UUID `json:"user_id"`
			IsTyping bool      `json:"is_typing"`
		}{Type: "typing", UserID: ev.UserID, IsTyping: ev.IsTyping})

	case StatusEvent:
		return json.Marshal(struct {
			Type   string    `json:"type"`
			UserID uuid.UUID `json:"user_id"`
			Status string    `json:"status"`
		}{Type: "status", UserID: ev.UserID, Status: ev.Status})

	case ReadReceiptEvent:
		return json.Marshal(struct {
			Type   string    `json:"type"`
			UserID uuid.UUID `json:"user_id"`
		}{Type: "read_receipt", UserID: ev.UserID})

	default:
		return nil, fmt.Errorf("unknown event type %T", e)
	}
}
