package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// bridgeTokenKey holds the single shared bearer token for the mobile app.
const bridgeTokenKey = "bridge:bearer_token"

// TokenCache stores the mobile-app bearer token. An empty string from Get
// means no token is cached.
type TokenCache struct {
	client *redis.Client
	key    string
}

func NewTokenCache(client *redis.Client) *TokenCache {
	return &TokenCache{client: client, key: bridgeTokenKey}
}

func (c *TokenCache) Get(ctx context.Context) (string, error) {
	token, err := c.client.Get(ctx, c.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("token cache get: %w", err)
	}
	return token, nil
}

// Set stores token until ttl elapses. A non-positive ttl stores nothing.
func (c *TokenCache) Set(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := c.client.Set(ctx, c.key, token, ttl).Err(); err != nil {
		return fmt.Errorf("token cache set: %w", err)
	}
	return nil
}

// Clear drops the cached token after the app rejects it.
func (c *TokenCache) Clear(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("token cache clear: %w", err)
	}
	return nil
}
