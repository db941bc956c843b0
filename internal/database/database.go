package database

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNoRecipient is returned when a message sender has no counterpart in
// the room, which means the sender is not one of its two participants.
var ErrNoRecipient = errors.New("room has no counterpart for sender")

type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}
