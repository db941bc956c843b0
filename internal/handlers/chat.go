package handlers

import (
	"net/http"

	"github.com/Vijayy-ai/localmart-v1/internal/handlers/dto"
	"github.com/Vijayy-ai/localmart-v1/internal/middleware"
	"github.com/Vijayy-ai/localmart-v1/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChatHandler is the request/response surface over the same store the
// realtime path writes through.
type ChatHandler struct {
	store  ChatStore
	logger *zap.SugaredLogger
}

func NewChatHandler(store ChatStore, logger *zap.SugaredLogger) *ChatHandler {
	return &ChatHandler{store: store, logger: logger}
}

// ListRooms returns the caller's rooms, most recently active first.
func (h *ChatHandler) ListRooms(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	rooms, err := h.store.RoomsByUser(userID)
	if err != nil {
		h.logger.Errorf("list rooms: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rooms"})
		return
	}

	response := make([]dto.RoomResponse, 0, len(rooms))
	for i := range rooms {
		room, err := h.formatRoom(&rooms[i], userID)
		if err != nil {
			h.logger.Errorf("format room %s: %v", rooms[i].ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rooms"})
			return
		}
		response = append(response, room)
	}

	c.JSON(http.StatusOK, response)
}

// CreateOrGetRoom starts a conversation about a product, or returns the
// existing one for the same product and counterparty.
func (h *ChatHandler) CreateOrGetRoom(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req struct {
		ProductID string `json:"product_id" binding:"required"`
		SellerID  string `json:"seller_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	sellerID, err := uuid.Parse(req.SellerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid seller id"})
		return
	}
	if sellerID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot chat with yourself"})
		return
	}

	room, err := h.store.GetOrCreateRoom(productID, userID, sellerID)
	if err != nil {
		h.logger.Errorf("create room: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
		return
	}

	response, err := h.formatRoom(room, userID)
	if err != nil {
		h.logger.Errorf("format room %s: %v", room.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListMessages returns the room's messages oldest first.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	room, ok := h.roomForParticipant(c, userID)
	if !ok {
		return
	}

	messages, err := h.store.RoomMessages(room.ID)
	if err != nil {
		h.logger.Errorf("list messages for room %s: %v", room.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list messages"})
		return
	}

	response := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		response = append(response, formatMessage(&messages[i], userID))
	}

	c.JSON(http.StatusOK, response)
}

// MarkRead flips every unread message addressed to the caller in the room.
func (h *ChatHandler) MarkRead(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	room, ok := h.roomForParticipant(c, userID)
	if !ok {
		return
	}

	if err := h.store.MarkAllRead(room.ID, userID); err != nil {
		h.logger.Errorf("mark read for room %s: %v", room.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark messages as read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// UnreadCount reports how many unread messages the room holds for the caller.
func (h *ChatHandler) UnreadCount(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	room, ok := h.roomForParticipant(c, userID)
	if !ok {
		return
	}

	count, err := h.store.UnreadCount(room.ID, userID)
	if err != nil {
		h.logger.Errorf("unread count for room %s: %v", room.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count unread messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

// roomForParticipant loads the :id room and enforces that the caller is a
// participant, writing the error response itself when not.
func (h *ChatHandler) roomForParticipant(c *gin.Context, userID uuid.UUID) (*models.ChatRoom, bool) {
	room, err := h.store.GetRoom(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return nil, false
	}

	ok, err := h.store.IsParticipant(room.ID, userID)
	if err != nil {
		h.logger.Errorf("membership check for room %s: %v", room.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "membership check failed"})
		return nil, false
	}
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a participant"})
		return nil, false
	}

	return room, true
}

func (h *ChatHandler) formatRoom(room *models.ChatRoom, viewerID uuid.UUID) (dto.RoomResponse, error) {
	participants := make([]dto.UserInfo, 0, len(room.Participants))
	var other *dto.UserInfo
	for _, p := range room.Participants {
		info := formatUser(&p)
		participants = append(participants, info)
		if p.ID != viewerID {
			u := info
			other = &u
		}
	}

	var lastMessage *dto.MessageResponse
	last, err := h.store.LastMessage(room.ID)
	if err != nil {
		return dto.RoomResponse{}, err
	}
	if last != nil {
		m := formatMessage(last, viewerID)
		lastMessage = &m
	}

	unread, err := h.store.UnreadCount(room.ID, viewerID)
	if err != nil {
		return dto.RoomResponse{}, err
	}

	return dto.RoomResponse{
		ID:           room.ID,
		Participants: participants,
		Product: dto.ProductInfo{
			ID:       room.Product.ID,
			Title:    room.Product.Title,
			SellerID: room.Product.SellerID,
		},
		LastMessage:      lastMessage,
		UnreadCount:      unread,
		CreatedAt:        room.CreatedAt,
		UpdatedAt:        room.UpdatedAt,
		OtherParticipant: other,
	}, nil
}

func formatMessage(message *models.Message, viewerID uuid.UUID) dto.MessageResponse {
	return dto.MessageResponse{
		ID:           message.ID,
		Sender:       formatUser(&message.Sender),
		Content:      message.Content,
		IsRead:       message.IsRead,
		CreatedAt:    message.CreatedAt,
		IsOwnMessage: message.SenderID == viewerID,
	}
}

func formatUser(user *models.User) dto.UserInfo {
	return dto.UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		AvatarURL: user.AvatarURL,
	}
}
