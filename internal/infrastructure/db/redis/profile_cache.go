package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/graphflix/account-api/internal/core/domain"
)

const profileTTL = 15 * time.Minute

// ProfileCache is a read-through cache of public user profiles backed by
// Redis. Only safe properties are ever stored; password hashes never enter
// the cache.
// Key format: profile:<user_id>
type ProfileCache struct {
	client *redis.Client
}

// NewProfileCache creates a ProfileCache wrapping the given Redis client.
func NewProfileCache(client *redis.Client) *ProfileCache {
	return &ProfileCache{client: client}
}

// Get returns the cached profile for userID, or ok=false on a miss.
func (c *ProfileCache) Get(ctx context.Context, userID string) (*domain.PublicUser, bool, error) {
	raw, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("profile cache get: %w", err)
	}

	var user domain.PublicUser
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, false, fmt.Errorf("profile cache decode: %w", err)
	}
	return &user, true, nil
}

// Set stores a profile (expires after profileTTL).
func (c *ProfileCache) Set(ctx context.Context, user domain.PublicUser) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("profile cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(user.UserID), raw, profileTTL).Err()
}

func (c *ProfileCache) key(userID string) string {
	return "profile:" + userID
}
