package handlers

import (
	"net/http"

	"github.com/Vijayy-ai/localmart-v1/internal/middleware"
	ws "github.com/Vijayy-ai/localmart-v1/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WebSocketHandler drives a chat connection through its lifecycle:
// authenticate the query token, check room membership, upgrade, register
// with the hub, announce presence, then hand the connection to the pumps.
// A connection that fails the membership check (anonymous included) is
// rejected before the upgrade and emits nothing.
type WebSocketHandler struct {
	hub           *ws.Hub
	store         ChatStore
	authenticator *middleware.SocketAuthenticator
	frames        ws.FrameHandler
	upgrader      websocket.Upgrader
	logger        *zap.SugaredLogger
}

func NewWebSocketHandler(hub *ws.Hub, store ChatStore, authenticator *middleware.SocketAuthenticator, frames ws.FrameHandler, logger *zap.SugaredLogger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:           hub,
		store:         store,
		authenticator: authenticator,
		frames:        frames,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger,
	}
}

// HandleChat serves GET /ws/chat/:roomId?token=...
func (h *WebSocketHandler) HandleChat(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("roomId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	identity := h.authenticator.Resolve(c.Request.URL.Query())

	user, resolved := identity.User()
	if !resolved {
		h.logger.Warnf("rejecting anonymous connection to room %s", roomID)
		c.JSON(http.StatusForbidden, gin.H{"error": "not a participant"})
		return
	}

	room, err := h.store.GetRoom(roomID.String())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	ok, err := h.store.IsParticipant(room.ID, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "membership check failed"})
		return
	}
	if !ok {
		h.logger.Warnf("rejecting user %s: not a participant of room %s", user.ID, room.ID)
		c.JSON(http.StatusForbidden, gin.H{"error": "not a participant"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(h.hub, conn, user.ID, user.Username, room.ID)

	h.hub.JoinRoom(client)
	go client.WritePump()

	// Presence goes out after the join and before the read loop starts, so
	// peers observe this user online before any of its frames.
	h.hub.Broadcast(room.ID, ws.StatusEvent{UserID: user.ID, Status: ws.StatusOnline})

	go client.ReadPump(h.frames)
}
