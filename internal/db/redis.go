package db

import (
	"context"
	"ctchen222/tictactoe-minimax/internal/config"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient connects to cfg.Addr and pings it before returning.
func NewRedisClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}

	return client, nil
}
