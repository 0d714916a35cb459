package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Package-level client backing the idempotency guard. The server runs
// without it; callers decide how to degrade when Init fails.
var client *redis.Client

const pingTimeout = 5 * time.Second

// Init connects from a redis:// URL and verifies the connection with a ping
func Init(url, password string) error {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return err
	}
	if password != "" {
		opts.Password = password
	}

	client = redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return client.Ping(ctx).Err()
}

// SetClient swaps the underlying client, used by tests to point at miniredis
func SetClient(c *redis.Client) {
	client = c
}

// GetClient returns the underlying client
func GetClient() *redis.Client {
	return client
}

// Set stores a key with an expiration
func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return client.Set(ctx, key, value, expiration).Err()
}

// Get retrieves a value by key
func Get(ctx context.Context, key string) (string, error) {
	return client.Get(ctx, key).Result()
}

// Del removes a key
func Del(ctx context.Context, key string) error {
	return client.Del(ctx, key).Err()
}

// SetNX sets a key only if it does not already exist, reporting whether it won
func SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return client.SetNX(ctx, key, value, expiration).Result()
}
