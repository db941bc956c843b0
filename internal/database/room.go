package database

import (
	"errors"
	"time"

	"github.com/Vijayy-ai/localmart-v1/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (d *Database) GetRoom(id string) (*models.ChatRoom, error) {
	var room models.ChatRoom
	err := d.db.Preload("Participants").Preload("Product").First(&room, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// IsParticipant reports whether the user is one of the room's two
// participants.
func (d *Database) IsParticipant(roomID, userID uuid.UUID) (bool, error) {
	var count int64
	err := d.db.Table("chat_room_participants").
		Where("chat_room_id = ? AND user_id = ?", roomID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetOrCreateRoom returns the room for (product, buyer, seller), creating
// it on first contact. A product plus participant pair never has more than
// one room: an existing room is always returned instead of a duplicate.
func (d *Database) GetOrCreateRoom(productID, buyerID, sellerID uuid.UUID) (*models.ChatRoom, error) {
	var room models.ChatRoom

	err := d.db.
		Joins("JOIN chat_room_participants p1 ON p1.chat_room_id = chat_rooms.id").
		Joins("JOIN chat_room_participants p2 ON p2.chat_room_id = chat_rooms.id").
		Where("chat_rooms.product_id = ? AND p1.user_id = ? AND p2.user_id = ?", productID, buyerID, sellerID).
		First(&room).Error

	if err == nil {
		return d.GetRoom(room.ID.String())
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = d.db.Transaction(func(tx *gorm.DB) error {
		var buyer, seller models.User
		if err := tx.First(&buyer, "id = ?", buyerID).Error; err != nil {
			return err
		}
		if err := tx.First(&seller, "id = ?", sellerID).Error; err != nil {
			return err
		}

		room = models.ChatRoom{ProductID: productID}
		if err := tx.Create(&room).Error; err != nil {
			return err
		}
		return tx.Model(&room).Association("Participants").Append(&buyer, &seller)
	})
	if err != nil {
		return nil, err
	}

	return d.GetRoom(room.ID.String())
}

// RoomsByUser returns the user's rooms, most recently active first.
func (d *Database) RoomsByUser(userID uuid.UUID) ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	err := d.db.
		Joins("JOIN chat_room_participants p ON p.chat_room_id = chat_rooms.id").
		Where("p.user_id = ?", userID).
		Order("chat_rooms.updated_at DESC").
		Preload("Participants").
		Preload("Product").
		Find(&rooms).Error
	return rooms, err
}

func (d *Database) touchRoom(tx *gorm.DB, roomID uuid.UUID) error {
	return tx.Model(&models.ChatRoom{}).
		Where("id = ?", roomID).
		Update("updated_at", time.Now()).Error
}
