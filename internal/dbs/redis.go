package dbs

import (
	"context"
	"fmt"

	"codetrek/configs"

	"github.com/redis/go-redis/v9"
)

// OpenRedis connects to the session cache. It returns nil, nil when no
// address is configured; callers fall back to an in-process cache.
func OpenRedis(ctx context.Context, cfg *configs.Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.RedisAddr, err)
	}
	return client, nil
}
