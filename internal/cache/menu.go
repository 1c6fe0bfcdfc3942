package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tastyhub/ordering-service/internal/models"
)

const menuListKey = "menu:list"

// MenuCache caches the full menu list in Redis. Cache errors are treated as
// misses so a Redis outage never breaks catalog reads.
type MenuCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewMenuCache creates a new menu cache
func NewMenuCache(client *redis.Client, ttl time.Duration) *MenuCache {
	return &MenuCache{Client: client, TTL: ttl}
}

// GetList returns the cached menu list, if present
func (c *MenuCache) GetList(ctx context.Context) ([]models.MenuItem, bool) {
	payload, err := c.Client.Get(ctx, menuListKey).Bytes()
	if err != nil {
		return nil, false
	}

	var items []models.MenuItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, false
	}

	return items, true
}

// SetList stores the menu list
func (c *MenuCache) SetList(ctx context.Context, items []models.MenuItem) {
	payload, err := json.Marshal(items)
	if err != nil {
		return
	}
	_ = c.Client.Set(ctx, menuListKey, payload, c.TTL).Err()
}

// Invalidate drops the cached list after a catalog mutation
func (c *MenuCache) Invalidate(ctx context.Context) {
	_ = c.Client.Del(ctx, menuListKey).Err()
}
