package redis_client

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/travigo/coruna-bus/pkg/config"
)

var Client *redis.Client

func Connect(ctx context.Context, cfg config.RedisConfig) error {
	client := NewClient(cfg)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("connecting to redis at %s: %w", cfg.Address, err)
	}

	Client = client

	return nil
}

func NewClient(cfg config.RedisConfig) *redis.Client {
	if cfg.Password == "" {
		return redis.NewClient(&redis.Options{
			Addr: cfg.Address,
			DB:   cfg.Database,
		})
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.Database,
	})
}
