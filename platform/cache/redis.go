// Package cache provides the Redis client used by the session stores.
// This is part of the platform layer and contains no business logic.
package cache

import (
	"context"
	"fmt"

	"dmt_kiosk_backend/platform/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient parses REDIS_URL and verifies the server answers.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.PoolSize = 10

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// ClientAdapter exposes the client as a readiness probe.
type ClientAdapter struct {
	client *redis.Client
}

func NewClientAdapter(client *redis.Client) *ClientAdapter {
	return &ClientAdapter{client: client}
}

// Ping checks Redis connectivity.
func (a *ClientAdapter) Ping(ctx context.Context) error {
	return a.client.Ping(ctx).Err()
}
