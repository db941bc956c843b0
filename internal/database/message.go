package database

import (
	"errors"

	"github.com/Vijayy-ai/localmart-v1/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateMessage persists a message sent in the room. The recipient is
// computed inside the transaction as the participant who is not the
// sender, and the room's updated_at is bumped with the insert. Either
// everything commits or nothing does.
func (d *Database) CreateMessage(roomID, senderID uuid.UUID, content string) (*models.Message, error) {
	var message models.Message

	err := d.db.Transaction(func(tx *gorm.DB) error {
		var room models.ChatRoom
		if err := tx.Preload("Participants").First(&room, "id = ?", roomID).Error; err != nil {
			return err
		}

		recipientID := uuid.Nil
		for _, p := range room.Participants {
			if p.ID != senderID {
				recipientID = p.ID
				break
			}
		}
		if recipientID == uuid.Nil {
			return ErrNoRecipient
		}

		message = models.Message{
			RoomID:      roomID,
			SenderID:    senderID,
			RecipientID: recipientID,
			Content:     content,
		}
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		return d.touchRoom(tx, roomID)
	})
	if err != nil {
		return nil, err
	}

	if err := d.db.Preload("Sender").First(&message, "id = ?", message.ID).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// RoomMessages returns the room's messages oldest first.
func (d *Database) RoomMessages(roomID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := d.db.
		Where("room_id = ?", roomID).
		Order("created_at ASC").
		Preload("Sender").
		Find(&messages).Error
	return messages, err
}

func (d *Database) LastMessage(roomID uuid.UUID) (*models.Message, error) {
	var message models.Message
	err := d.db.
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		Preload("Sender").
		First(&message).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// MarkAllRead flips every unread message addressed to the recipient in the
// room. Calling it with nothing unread is a no-op.
func (d *Database) MarkAllRead(roomID, recipientID uuid.UUID) error {
	return d.db.Model(&models.Message{}).
		Where("room_id = ? AND recipient_id = ? AND is_read = ?", roomID, recipientID, false).
		Update("is_read", true).Error
}

func (d *Database) UnreadCount(roomID, userID uuid.UUID) (int64, error) {
	var count int64
	err := d.db.Model(&models.Message{}).
		Where("room_id = ? AND recipient_id = ? AND is_read = ?", roomID, userID, false).
		Count(&count).Error
	return count, err
}
