package handlers

import (
	ws "github.com/Vijayy-ai/localmart-v1/internal/websocket"
	"go.uber.org/zap"
)

// ChatFrameHandler interprets inbound frames on open chat connections:
// message (persist, then broadcast), typing (broadcast only) and read
// (bulk mark-read, then a single receipt broadcast). Unknown frame kinds
// are ignored so newer clients can speak to this server.
type ChatFrameHandler struct {
	store  ChatStore
	hub    *ws.Hub
	logger *zap.SugaredLogger
}

func NewChatFrameHandler(store ChatStore, hub *ws.Hub, logger *zap.SugaredLogger) *ChatFrameHandler {
	return &ChatFrameHandler{store: store, hub: hub, logger: logger}
}

func (h *ChatFrameHandler) HandleFrame(client *ws.Client, frame *ws.Frame) error {
	switch frame.Type {
	case ws.FrameMessage:
		return h.handleMessage(client, frame)

	case ws.FrameTyping:
		h.hub.Broadcast(client.RoomID, ws.TypingEvent{
			UserID:   client.UserID,
			IsTyping: frame.IsTyping,
		})
		return nil

	case ws.FrameRead:
		if err := h.store.MarkAllRead(client.RoomID, client.UserID); err != nil {
			return err
		}
		// One receipt per frame, no matter how many rows were flipped.
		h.hub.Broadcast(client.RoomID, ws.ReadReceiptEvent{UserID: client.UserID})
		return nil

	default:
		h.logger.Debugf("ignoring unknown frame type %q from user %s", frame.Type, client.UserID)
		return nil
	}
}

func (h *ChatFrameHandler) handleMessage(client *ws.Client, frame *ws.Frame) error {
	if frame.Message == "" {
		// Treated like a malformed frame: dropped, connection stays open.
		h.logger.Debugf("dropping empty message frame from user %s", client.UserID)
		return nil
	}

	// The broadcast must never fire for content that was not durably
	// written, so a failed write is fatal for the connection.
	message, err := h.store.CreateMessage(client.RoomID, client.UserID, frame.Message)
	if err != nil {
		return err
	}

	h.hub.Broadcast(client.RoomID, ws.MessageEvent{
		Message: ws.MessagePayload{
			ID:          message.ID,
			Content:     message.Content,
			SenderID:    message.SenderID,
			SenderName:  client.Username,
			RecipientID: message.RecipientID,
			Timestamp:   message.CreatedAt,
			IsRead:      message.IsRead,
		},
	})

	go h.store.UpdateLastSeen(client.UserID.String())

	return nil
}
