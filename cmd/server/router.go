package main

import (
	"github.com/Vijayy-ai/localmart-v1/internal/handlers"
	"github.com/Vijayy-ai/localmart-v1/internal/middleware"
	"github.com/Vijayy-ai/localmart-v1/pkg/auth"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func registerRoutes(r *gin.Engine, jwtManager *auth.JWTManager, rdb *redis.Client, wsHandler *handlers.WebSocketHandler, chatHandler *handlers.ChatHandler) {
	// REST surface, authenticated per request.
	api := r.Group("/api", middleware.AuthMiddleware(jwtManager, rdb))
	{
		api.GET("/chat/rooms/", chatHandler.ListRooms)
		api.POST("/chat/rooms/create/", chatHandler.CreateOrGetRoom)
		api.GET("/chat/rooms/:id/messages/", chatHandler.ListMessages)
		api.POST("/chat/rooms/:id/mark-read/", chatHandler.MarkRead)
		api.GET("/chat/rooms/:id/unread_count/", chatHandler.UnreadCount)
	}

	// The websocket endpoint authenticates itself from the query token.
	r.GET("/ws/chat/:roomId", wsHandler.HandleChat)
}
