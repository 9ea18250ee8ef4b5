package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/roomfinder/roomfinder-backend/internal/config"
)

// SessionStore maps live token IDs to user IDs in Redis.
type SessionStore struct {
	rdb *redis.Client
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

// Save registers a session that expires after ttl.
func (s *SessionStore) Save(ctx context.Context, jti string, userID int, ttl time.Duration) error {
	return s.rdb.Set(ctx, config.CacheKey.SessionKey(jti), userID, ttl).Err()
}

// Lookup returns the user owning the session.
func (s *SessionStore) Lookup(ctx context.Context, jti string) (int, error) {
	raw, err := s.rdb.Get(ctx, config.CacheKey.SessionKey(jti)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrSessionNotFound
		}
		return 0, fmt.Errorf("lookup session: %w", err)
	}
	userID, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("corrupt session value %q: %w", raw, err)
	}
	return userID, nil
}

// Delete ends a session.
func (s *SessionStore) Delete(ctx context.Context, jti string) error {
	return s.rdb.Del(ctx, config.CacheKey.SessionKey(jti)).Err()
}
