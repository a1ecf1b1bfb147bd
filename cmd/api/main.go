package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/yoshino-ss/yoshino-site-services/api/internal/config"
	redisinfra "github.com/yoshino-ss/yoshino-site-services/api/internal/infrastructure/redis"
	"github.com/yoshino-ss/yoshino-site-services/api/internal/server"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		cfg.ServerLog.Fatalf("MongoDB 接続に失敗しました: %v", err)
	}

	var redisClient *redisinfra.Client
	if cfg.RedisAddr != "" {
		redisClient = redisinfra.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := redisClient.Ping(ctx); err != nil {
			cfg.ServerLog.Printf("Redis 接続に失敗したためヒントキャッシュ無効で続行します: %v", err)
			_ = redisClient.Close()
			redisClient = nil
		}
	}

	app, err := server.New(context.Background(), cfg, client, redisClient)
	if err != nil {
		cfg.ServerLog.Fatalf("サーバー初期化に失敗: %v", err)
	}
	if err := app.Run(); err != nil {
		log.Fatalf("サーバー起動に失敗: %v", err)
	}
}
