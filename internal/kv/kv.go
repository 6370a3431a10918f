package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps a redis connection with a per-request deadline. It backs the
// redis dispatch store and the extraction cache.
type Client struct {
	client  *redis.Client
	timeout time.Duration
}

func NewClient(ctx context.Context, opts *redis.Options, timeout time.Duration) (*Client, error) {
	redisClient := redis.NewClient(opts)
	_, err := redisClient.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &Client{client: redisClient, timeout: timeout}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) Get(ctx context.Context, key string) (string, error) {
	reqCtx, cancel := c.withDeadline(ctx)
	defer cancel()

	value, err := c.client.Get(reqCtx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get value for key %s: %w", key, err)
	}
	return value, nil
}

func (c *Client) Set(ctx context.Context, key string, ttl time.Duration, value interface{}) error {
	reqCtx, cancel := c.withDeadline(ctx)
	defer cancel()

	return c.client.Set(reqCtx, key, value, ttl).Err()
}

func (c *Client) Incr(ctx context.Context, key string) (int64, error) {
	reqCtx, cancel := c.withDeadline(ctx)
	defer cancel()

	n, err := c.client.Incr(reqCtx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment key %s: %w", key, err)
	}
	return n, nil
}

func (c *Client) HSet(ctx context.Context, key, field string, value interface{}) error {
	reqCtx, cancel := c.withDeadline(ctx)
	defer cancel()

	return c.client.HSet(reqCtx, key, field, value).Err()
}

func (c *Client) HGet(ctx context.Context, key, field string) (string, error) {
	reqCtx, cancel := c.withDeadline(ctx)
	defer cancel()

	value, err := c.client.HGet(reqCtx, key, field).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get field %s of key %s: %w", field, key, err)
	}
	return value, nil
}

func (c *Client) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	reqCtx, cancel := c.withDeadline(ctx)
	defer cancel()

	values, err := c.client.HGetAll(reqCtx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get all fields of key %s: %w", key, err)
	}
	return values, nil
}
