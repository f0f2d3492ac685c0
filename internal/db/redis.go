package db

import (
	"context"
	"fmt"
	"time"

	"github.com/bagdasarian/team-dashboard/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedis подключается к Redis по URL из конфигурации и проверяет соединение
func NewRedis(cfg *config.Config, logger *zap.Logger) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Info("Redis connection established", zap.String("addr", opts.Addr))
	return client, nil
}

func MustLoadRedis(cfg *config.Config, logger *zap.Logger) *redis.Client {
	client, err := NewRedis(cfg, logger)
	if err != nil {
		panic(fmt.Sprintf("failed to connect to redis: %v", err))
	}
	return client
}
