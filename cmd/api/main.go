package main

import (
	"context"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/sngm3741/ecorating-services/api/internal/config"
	"github.com/sngm3741/ecorating-services/api/internal/infrastructure/cache"
	"github.com/sngm3741/ecorating-services/api/internal/infrastructure/llm"
	mongodoc "github.com/sngm3741/ecorating-services/api/internal/infrastructure/mongo"
	"github.com/sngm3741/ecorating-services/api/internal/server"
)

const connectAttempts = 5

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf(".env が見つからないため環境変数のみを使用します")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}
	logger := cfg.ServerLog

	client, err := connectMongo(cfg, logger)
	if err != nil {
		logger.Fatalw("MongoDB 接続に失敗しました", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	if err := mongodoc.EnsureIndexes(ctx, client.Database(cfg.MongoDatabase), cfg.StoreCollection, cfg.RatingCollection); err != nil {
		logger.Warnw("インデックス作成に失敗しました", "error", err)
	}

	var deps server.Dependencies
	if cfg.RedisAddr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Warnw("Redis に接続できないためダッシュボードキャッシュを無効化します", "addr", cfg.RedisAddr, "error", err)
		} else {
			deps.Redis = rdb
		}
	}
	if cfg.GenAIAPIKey != "" {
		generator, err := llm.NewGenAIGenerator(ctx, cfg.GenAIAPIKey, cfg.GenAIModel)
		if err != nil {
			logger.Warnw("GenAI クライアントの初期化に失敗、説明文は固定文を返します", "error", err)
		} else {
			deps.Generator = generator
		}
	}

	app := server.New(cfg, client, deps)
	if err := app.Run(); err != nil {
		logger.Fatalw("サーバー起動に失敗", "error", err)
	}
}

// connectMongo は起動直後に Mongo がまだ立ち上がっていない場合に備え、接続と ping を指数バックオフで再試行する。
func connectMongo(cfg config.Config, logger *zap.SugaredLogger) (*mongo.Client, error) {
	clientOptions := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	var client *mongo.Client
	attempt := 0
	op := func() error {
		attempt++
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
		defer cancel()

		c, err := mongo.Connect(ctx, clientOptions)
		if err != nil {
			// URI の誤りなどは再試行しても直らない。
			return backoff.Permanent(err)
		}
		if err := c.Ping(ctx, readpref.Primary()); err != nil {
			_ = c.Disconnect(context.Background())
			logger.Warnw("MongoDB ping に失敗、再試行します", "attempt", attempt, "error", err)
			return err
		}
		client = c
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(op, backoff.WithMaxRetries(b, connectAttempts)); err != nil {
		return nil, err
	}
	return client, nil
}
