package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserInfo struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url,omitempty"`
}

type ProductInfo struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	SellerID uuid.UUID `json:"seller_id"`
}

type MessageResponse struct {
	ID           uuid.UUID `json:"id"`
	Sender       UserInfo  `json:"sender"`
	Content      string    `json:"content"`
	IsRead       bool      `json:"is_read"`
	CreatedAt    time.Time `json:"created_at"`
	IsOwnMessage bool      `json:"is_own_message"`
}

type RoomResponse struct {
	ID               uuid.UUID        `json:"id"`
	Participants     []UserInfo       `json:"participants"`
	Product          ProductInfo      `json:"product"`
	LastMessage      *MessageResponse `json:"last_message"`
	UnreadCount      int64            `json:"unread_count"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	OtherParticipant *UserInfo        `json:"other_participant"`
}
