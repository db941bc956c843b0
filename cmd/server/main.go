package main

import (
	"context"
	"log"
	"strconv"

	"github.com/Vijayy-ai/localmart-v1/internal/config"
	"github.com/Vijayy-ai/localmart-v1/internal/database"
	"github.com/Vijayy-ai/localmart-v1/internal/handlers"
	"github.com/Vijayy-ai/localmart-v1/internal/middleware"
	ws "github.com/Vijayy-ai/localmart-v1/internal/websocket"
	"github.com/Vijayy-ai/localmart-v1/pkg/auth"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("zap.NewDevelopment: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	cfg, err := config.Load()
	if err != nil {
		sugar.Fatalf("cannot load config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		sugar.Fatalf("postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		sugar.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		sugar.Fatalf("redis connect failed: %v", err)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	hub := ws.NewHub(sugar)
	socketAuth := middleware.NewSocketAuthenticator(jwtManager, db, sugar)
	frames := handlers.NewChatFrameHandler(db, hub, sugar)
	wsHandler := handlers.NewWebSocketHandler(hub, db, socketAuth, frames, sugar)
	chatHandler := handlers.NewChatHandler(db, sugar)

	router := gin.Default()
	registerRoutes(router, jwtManager, rdb, wsHandler, chatHandler)

	addr := ":" + strconv.FormatUint(uint64(cfg.Port), 10)
	sugar.Infof("server starting on %s", addr)
	if err := router.Run(addr); err != nil {
		sugar.Fatalf("server failed: %v", err)
	}
}
