package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatRoom is a two-party conversation between a buyer and a seller about
// one product. A (product, participant-pair) combination has at most one
// room. UpdatedAt is bumped on every new message so rooms can be listed
// most-recently-active first.
type ChatRoom struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Product      Product   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Participants []User    `gorm:"many2many:chat_room_participants"`
	Messages     []Message `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
}

// Message belongs to exactly one room. The recipient is fixed at creation
// time as the room participant who is not the sender.
type Message struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RoomID      uuid.UUID `gorm:"not null;index"`
	SenderID    uuid.UUID `gorm:"not null"`
	RecipientID uuid.UUID `gorm:"not null"`
	Content     string    `gorm:"not null"`
	IsRead      bool      `gorm:"default:false"`
	CreatedAt   time.Time

	Sender    User `gorm:"foreignKey:SenderID"`
	Recipient User `gorm:"foreignKey:RecipientID"`
}
