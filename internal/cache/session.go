package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// sessionPrefix is the Redis key prefix for session tokens.
const sessionPrefix = "session:"

// SetSession binds a session token to an account ID with the given TTL.
// Session expiry is the TTL itself; there is no separate sweeper.
func (c *Cache) SetSession(ctx context.Context, token, accountID string, ttl time.Duration) error {
	key := sessionPrefix + token
	if err := c.client.Set(ctx, key, accountID, ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

// GetSession resolves a session token to an account ID.
// Returns empty string when the token is unknown or its TTL elapsed;
// a miss is not an error.
func (c *Cache) GetSession(ctx context.Context, token string) (string, error) {
	key := sessionPrefix + token

	accountID, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("get session: %w", err)
	}

	return accountID, nil
}

// DeleteSession revokes a session token. Deleting an unknown token is
// not an error.
func (c *Cache) DeleteSession(ctx context.Context, token string) error {
	key := sessionPrefix + token
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
