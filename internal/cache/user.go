package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/layerkit/layerkit/internal/model"
)

// userKeyPrefix is the Redis key prefix for users cached by email.
const userKeyPrefix = "user:email:"

// ErrCacheMiss is returned when a key is not cached.
var ErrCacheMiss = errors.New("cache miss")

// cachedUser is the JSON document stored per email.
type cachedUser struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func userKey(email string) string {
	return userKeyPrefix + email
}

// GetUser retrieves a cached user by email.
// Returns ErrCacheMiss if not found or if the entry is corrupted.
func (c *Cache) GetUser(ctx context.Context, email string) (*model.User, error) {
	data, err := c.client.Get(ctx, userKey(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var cached cachedUser
	if err := json.Unmarshal(data, &cached); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, ErrCacheMiss
	}

	return &model.User{
		ID:        cached.ID,
		Email:     cached.Email,
		CreatedAt: cached.CreatedAt,
		UpdatedAt: cached.UpdatedAt,
	}, nil
}

// SetUser caches a user under its email.
func (c *Cache) SetUser(ctx context.Context, u *model.User) error {
	data, err := json.Marshal(cachedUser{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	return c.client.Set(ctx, userKey(u.Email), data, c.userTTL).Err()
}

// InvalidateUsers removes the cached entries for the given emails.
func (c *Cache) InvalidateUsers(ctx context.Context, emails ...string) error {
	if len(emails) == 0 {
		return nil
	}

	keys := make([]string, len(emails))
	for i, email := range emails {
		keys[i] = userKey(email)
	}
	return c.client.Del(ctx, keys...).Err()
}
