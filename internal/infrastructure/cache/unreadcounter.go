// Package cache holds Redis-backed read-through caches.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"trackd/internal/shared/logger"
)

const (
	unreadKeyPrefix = "notification:unread:"
	unreadTTL       = 10 * time.Minute
)

// RedisUnreadCounterCache caches per-user unread notification counts. Counts
// are invalidated rather than updated; the next read repopulates from the
// database.
type RedisUnreadCounterCache struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisUnreadCounterCache(client *redis.Client, lg logger.Interface) *RedisUnreadCounterCache {
	return &RedisUnreadCounterCache{
		client: client,
		logger: lg.With("component", "cache.unread_counter"),
	}
}

func (c *RedisUnreadCounterCache) key(userID uint) string {
	return fmt.Sprintf("%s%d", unreadKeyPrefix, userID)
}

func (c *RedisUnreadCounterCache) Get(ctx context.Context, userID uint) (int64, bool, error) {
	count, err := c.client.Get(ctx, c.key(userID)).Int64()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get unread count from cache: %w", err)
	}
	return count, true, nil
}

func (c *RedisUnreadCounterCache) Set(ctx context.Context, userID uint, count int64) error {
	if err := c.client.Set(ctx, c.key(userID), count, unreadTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache unread count: %w", err)
	}
	return nil
}

func (c *RedisUnreadCounterCache) Invalidate(ctx context.Context, userID uint) error {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate unread count: %w", err)
	}
	return nil
}
