package handlers

import (
	"sort"
	"sync"
	"time"

	"github.com/Vijayy-ai/localmart-v1/internal/database"
	"github.com/Vijayy-ai/localmart-v1/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeStore is an in-memory ChatStore used across the handler tests. It
// mirrors the store invariants: one room per (product, participant-pair),
// recipient computed at message creation, room timestamp bumped with the
// insert.
type fakeStore struct {
	mu        sync.Mutex
	users     map[uuid.UUID]models.User
	products  map[uuid.UUID]models.Product
	rooms     map[uuid.UUID]*models.ChatRoom
	messages  []*models.Message
	createErr error
}

var _ ChatStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uuid.UUID]models.User),
		products: make(map[uuid.UUID]models.Product),
		rooms:    make(map[uuid.UUID]*models.ChatRoom),
	}
}

func (s *fakeStore) addUser(username string) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := models.User{ID: uuid.New(), Username: username, Email: username + "@example.com"}
	s.users[user.ID] = user
	return user
}

func (s *fakeStore) addProduct(title string, sellerID uuid.UUID) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := models.Product{ID: uuid.New(), Title: title, SellerID: sellerID}
	s.products[product.ID] = product
	return product
}

func (s *fakeStore) addRoom(product models.Product, a, b models.User) *models.ChatRoom {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createRoomLocked(product, a, b)
}

func (s *fakeStore) createRoomLocked(product models.Product, a, b models.User) *models.ChatRoom {
	now := time.Now().Add(-time.Minute)
	room := &models.ChatRoom{
		ID:           uuid.New(),
		ProductID:    product.ID,
		Product:      product,
		Participants: []models.User{a, b},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.rooms[room.ID] = room
	return room
}

func (s *fakeStore) setCreateErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createErr = err
}

func (s *fakeStore) GetRoom(id string) (*models.ChatRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	roomID, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	room, ok := s.rooms[roomID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *room
	return &copied, nil
}

func (s *fakeStore) IsParticipant(roomID, userID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return false, nil
	}
	for _, p := range room.Participants {
		if p.ID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) GetOrCreateRoom(productID, buyerID, sellerID uuid.UUID) (*models.ChatRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, room := range s.rooms {
		if room.ProductID != productID {
			continue
		}
		hasBuyer, hasSeller := false, false
		for _, p := range room.Participants {
			hasBuyer = hasBuyer || p.ID == buyerID
			hasSeller = hasSeller || p.ID == sellerID
		}
		if hasBuyer && hasSeller {
			copied := *room
			return &copied, nil
		}
	}

	product, ok := s.products[productID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	buyer, ok := s.users[buyerID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	seller, ok := s.users[sellerID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	room := s.createRoomLocked(product, buyer, seller)
	copied := *room
	return &copied, nil
}

func (s *fakeStore) CreateMessage(roomID, senderID uuid.UUID, content string) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		return nil, s.createErr
	}

	room, ok := s.rooms[roomID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	recipientID := uuid.Nil
	for _, p := range room.Participants {
		if p.ID != senderID {
			recipientID = p.ID
			break
		}
	}
	if recipientID == uuid.Nil {
		return nil, database.ErrNoRecipient
	}

	message := &models.Message{
		ID:          uuid.New(),
		RoomID:      roomID,
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
		CreatedAt:   time.Now(),
		Sender:      s.users[senderID],
	}
	s.messages = append(s.messages, message)
	room.UpdatedAt = time.Now()

	copied := *message
	return &copied, nil
}

func (s *fakeStore) RoomMessages(roomID uuid.UUID) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var messages []models.Message
	for _, m := range s.messages {
		if m.RoomID == roomID {
			messages = append(messages, *m)
		}
	}
	return messages, nil
}

func (s *fakeStore) LastMessage(roomID uuid.UUID) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].RoomID == roomID {
			copied := *s.messages[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) MarkAllRead(roomID, recipientID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.messages {
		if m.RoomID == roomID && m.RecipientID == recipientID {
			m.IsRead = true
		}
	}
	return nil
}

func (s *fakeStore) UnreadCount(roomID, userID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, m := range s.messages {
		if m.RoomID == roomID && m.RecipientID == userID && !m.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) RoomsByUser(userID uuid.UUID) ([]models.ChatRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rooms []models.ChatRoom
	for _, room := range s.rooms {
		for _, p := range room.Participants {
			if p.ID == userID {
				rooms = append(rooms, *room)
				break
			}
		}
	}
	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].UpdatedAt.After(rooms[j].UpdatedAt)
	})
	return rooms, nil
}

func (s *fakeStore) GetUser(id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	user, ok := s.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (s *fakeStore) UpdateLastSeen(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID, err := uuid.Parse(id)
	if err != nil {
		return gorm.ErrRecordNotFound
	}
	user, ok := s.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.LastSeenAt = time.Now()
	s.users[userID] = user
	return nil
}

func (s *fakeStore) roomUpdatedAt(roomID uuid.UUID) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rooms[roomID].UpdatedAt
}

func (s *fakeStore) messageCount(roomID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, m := range s.messages {
		if m.RoomID == roomID {
			count++
		}
	}
	return count
}
