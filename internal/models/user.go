package models

import (
	"time"

	"github.com/google/uuid"
)

// User accounts are created and managed by the account service; the chat
// layer only reads them to resolve identities and display names.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Username   string    `gorm:"uniqueIndex;not null"`
	Email      string    `gorm:"uniqueIndex;not null"`
	AvatarURL  string
	LastSeenAt time.Time
	CreatedAt  time.Time
}
