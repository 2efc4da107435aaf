package redis

import (
	"context"
	"fmt"
	"time"

	"video-app/pkg/config"
	"video-app/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis client with additional functionality
type Client struct {
	client *redis.Client
}

// NewClient creates a new Redis client
func NewClient(cfg *config.Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result := rdb.Ping(ctx)
	if result.Err() != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", result.Err())
	}

	logger.Info("Connected to Redis successfully")

	return &Client{
		client: rdb,
	}, nil
}

// NewFromClient wraps an existing go-redis client, e.g. one pointed at an embedded server
func NewFromClient(rdb *redis.Client) *Client {
	return &Client{
		client: rdb,
	}
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.client.Close()
}

// IncrWindow increments the counter at key and gives it a window-long expiry
// if it has none, giving a fixed window counter. Both commands run in one
// MULTI/EXEC, and a key left without an expiry is repaired by the next call.
// It returns the count within the window.
func (c *Client) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	var count *redis.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		count = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to increment window counter: %w", err)
	}

	return count.Val(), nil
}
