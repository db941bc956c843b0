package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is the listing a chat room is scoped to. Listing CRUD lives in a
// separate service; chat only needs the row for room scoping and display.
type Product struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title     string    `gorm:"not null"`
	SellerID  uuid.UUID `gorm:"not null;index"`
	CreatedAt time.Time
}
