package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/roomfinder/roomfinder-backend/internal/config"
	"github.com/roomfinder/roomfinder-backend/internal/model"
)

// CatalogCache keeps the full classroom snapshot as one JSON value in Redis.
type CatalogCache struct {
	rdb *redis.Client
}

// NewCatalogCache creates a new CatalogCache.
func NewCatalogCache(rdb *redis.Client) *CatalogCache {
	return &CatalogCache{rdb: rdb}
}

// Get returns the cached snapshot. ok is false on a cache miss.
func (c *CatalogCache) Get(ctx context.Context) ([]model.Classroom, bool, error) {
	raw, err := c.rdb.Get(ctx, config.CacheKey.ClassroomCatalogKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var records []model.Classroom
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, false, err
	}
	return records, true, nil
}

// Set stores the snapshot for ttl.
func (c *CatalogCache) Set(ctx context.Context, records []model.Classroom, ttl time.Duration) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, config.CacheKey.ClassroomCatalogKey(), raw, ttl).Err()
}

// Invalidate drops the snapshot.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, config.CacheKey.ClassroomCatalogKey()).Err()
}
