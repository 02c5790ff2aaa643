package client

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront/internal/config"
)

// NewRedisClient connects to the order store and verifies the connection
// before the server starts taking traffic.
func NewRedisClient(redisCfg *config.Redis) (*redis.Client, error) {
	c := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis at %s: %w", redisCfg.Addr, err)
	}
	return c, nil
}
