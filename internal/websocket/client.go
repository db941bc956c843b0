package websocket

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait = 10 * time.Second

	pongWait = 60 * time.Second

	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 512 * 1024 // 512KB
)

// FrameHandler processes one inbound frame while the connection is open.
// A returned error is fatal for the connection: the read loop stops and
// the connection is torn down.
type FrameHandler interface {
	HandleFrame(client *Client, frame *Frame) error
}

// Client owns one physical websocket connection, bound to a single user
// and a single room for its whole lifetime.
type Client struct {
	UserID   uuid.UUID
	Username string
	RoomID   uuid.UUID

	conn   *websocket.Conn
	send   chan []byte
	hub    *Hub
	logger *zap.SugaredLogger
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID, username string, roomID uuid.UUID) *Client {
	return &Client{
		UserID:   userID,
		Username: username,
		RoomID:   roomID,
		conn:     conn,
		send:     make(chan []byte, 256),
		hub:      hub,
		logger:   hub.logger,
	}
}

// enqueue puts data on the client's send queue without blocking. It
// reports false when the queue is full and the data was dropped.
func (c *Client) enqueue(data []byte) bool {
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// ReadPump reads frames from the client until the connection dies or a
// handler reports a fatal error. On exit it broadcasts the offline status
// and then deregisters from the hub, in that order.
func (c *Client) ReadPump(handler FrameHandler) {
	defer func() {
		c.hub.Broadcast(c.RoomID, StatusEvent{UserID: c.UserID, Status: StatusOffline})
		c.hub.LeaveRoom(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warnf("websocket read: %v", err)
			}
			return
		}

		var frame Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			// Malformed frames are dropped, the connection stays open.
			c.logger.Debugf("dropping malformed frame from user %s: %v", c.UserID, err)
			continue
		}

		if err := handler.HandleFrame(c, &frame); err != nil {
			c.logger.Errorf("frame handling failed for user %s, closing connection: %v", c.UserID, err)
			return
		}
	}
}

// WritePump drains the send queue onto the connection and keeps it alive
// with pings. It exits when the hub closes the queue or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the queue.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
