package providers

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"nest/internal/structures"
)

// NewRedisProvider returns a nil client when redis is disabled.
func NewRedisProvider(conf *structures.Config, logger Logger) (*redis.Client, func(), error) {
	if !conf.Redis.Enabled {
		logger.Infof(TypeApp, "Redis disabled, chat history kept in memory")
		return nil, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}

	logger.Infof(TypeApp, "Connected to Redis at %s", conf.Redis.Addr)
	return client, func() { _ = client.Close() }, nil
}
