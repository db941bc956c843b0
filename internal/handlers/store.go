package handlers

import (
	"github.com/Vijayy-ai/localmart-v1/internal/models"
	"github.com/google/uuid"
)

// ChatStore is the persistence contract the chat handlers depend on.
// *database.Database satisfies it in production; tests inject an in-memory
// fake. Both the realtime path and the REST path go through it, so a
// message created over a websocket is immediately visible to an unread
// count served over HTTP.
type ChatStore interface {
	GetRoom(id string) (*models.ChatRoom, error)
	IsParticipant(roomID, userID uuid.UUID) (bool, error)
	GetOrCreateRoom(productID, buyerID, sellerID uuid.UUID) (*models.ChatRoom, error)

	CreateMessage(roomID, senderID uuid.UUID, content string) (*models.Message, error)
	RoomMessages(roomID uuid.UUID) ([]models.Message, error)
	LastMessage(roomID uuid.UUID) (*models.Message, error)
	MarkAllRead(roomID, recipientID uuid.UUID) error
	UnreadCount(roomID, userID uuid.UUID) (int64, error)
	RoomsByUser(userID uuid.UUID) ([]models.ChatRoom, error)

	UpdateLastSeen(id string) error
}
