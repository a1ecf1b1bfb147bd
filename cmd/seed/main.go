package main

import (
	"context"
	"errors"
	"flag"

	"github.com/joho/godotenv"
	"github.com/yoshino-ss/yoshino-site-services/api/internal/catalog/application"
	"github.com/yoshino-ss/yoshino-site-services/api/internal/catalog/domain"
	"github.com/yoshino-ss/yoshino-site-services/api/internal/config"
	mongodoc "github.com/yoshino-ss/yoshino-site-services/api/internal/infrastructure/mongo"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// 初期データ投入コマンド。既にカタログ状態が保存されている場合は何もしない。
// --force で既存状態を初期カタログへ上書きし、--lock で管理フラグを施錠へ戻す。
func main() {
	_ = godotenv.Load()

	force := flag.Bool("force", false, "既存のカタログ状態を初期データで上書きする")
	lock := flag.Bool("lock", false, "管理ボタンの解放フラグを施錠状態へ戻す")
	flag.Parse()

	cfg := config.Load()
	logger := cfg.ServerLog

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		logger.Fatalf("MongoDB 接続に失敗しました: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Printf("MongoDB 切断時にエラー: %v", err)
		}
	}()

	repo := mongodoc.NewStateRepository(client.Database(cfg.MongoDatabase), cfg.StateCollection)

	_, err = repo.LoadCatalog(ctx)
	switch {
	case err == nil && !*force:
		logger.Printf("カタログ状態は既に存在します。--force 指定時のみ上書きします")
	case err == nil, errors.Is(err, application.ErrStateNotFound), errors.Is(err, application.ErrMalformedState):
		if err := repo.SaveCatalog(ctx, domain.SeedCatalog()); err != nil {
			logger.Fatalf("初期カタログの保存に失敗しました: %v", err)
		}
		logger.Printf("初期カタログを保存しました(店舗数: %d)", len(domain.SeedCatalog()))
	default:
		logger.Fatalf("カタログ状態の確認に失敗しました: %v", err)
	}

	if *lock {
		if err := repo.SaveUnlockFlag(ctx, false); err != nil {
			logger.Fatalf("管理フラグの更新に失敗しました: %v", err)
		}
		logger.Printf("管理ボタンの解放フラグを施錠へ戻しました")
	}
}
