package database

import (
	"errors"

	"github.com/Vijayy-ai/localmart-v1/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*Database, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&models.User{}, &models.Product{}, &models.ChatRoom{}, &models.Message{})
	if err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}
