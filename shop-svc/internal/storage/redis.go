package storage

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"streetqr/shop-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) MenuKey(shopID string) string {
	return "menu:" + shopID
}

// Get returns nil without error on a cache miss.
func (c *RedisCache) Get(ctx context.Context, shopID string) (*domain.ShopMenu, error) {
	raw, err := c.Client.Get(ctx, c.MenuKey(shopID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var menu domain.ShopMenu
	if err := json.Unmarshal(raw, &menu); err != nil {
		return nil, err
	}
	return &menu, nil
}

// Set stores a freshly written snapshot, replacing whatever is cached.
func (c *RedisCache) Set(ctx context.Context, menu *domain.ShopMenu) error {
	payload, err := json.Marshal(menu)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, c.MenuKey(menu.ShopID), payload, c.TTL).Err()
}

// Fill caches a snapshot read from the store only if nothing is cached, so a
// slow reader cannot overwrite a newer snapshot written by Set.
func (c *RedisCache) Fill(ctx context.Context, menu *domain.ShopMenu) error {
	payload, err := json.Marshal(menu)
	if err != nil {
		return err
	}
	return c.Client.SetNX(ctx, c.MenuKey(menu.ShopID), payload, c.TTL).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context, shopID string) error {
	return c.Client.Del(ctx, c.MenuKey(shopID)).Err()
}

// RedisStats reads the per-shop aggregates maintained by agg-svc.
type RedisStats struct {
	Client   *redis.Client
	TopItems int64
	now      func() time.Time
}

func NewRedisStats(client *redis.Client) *RedisStats {
	return &RedisStats{Client: client, TopItems: 5, now: time.Now}
}

func DailyKey(date, shopID string) string {
	return "orders:daily:" + date + ":" + shopID
}

func PendingKey(shopID string) string {
	return "orders:pending:" + shopID
}

func ItemsKey(shopID string) string {
	return "orders:items:" + shopID
}

func (s *RedisStats) OrderStats(ctx context.Context, shopID string) (*domain.OrderStats, error) {
	today := s.now().UTC().Format("2006-01-02")
	stats := &domain.OrderStats{ShopID: shopID, TopItems: []domain.ItemScore{}}

	daily, err := s.Client.HGetAll(ctx, DailyKey(today, shopID)).Result()
	if err != nil {
		return nil, err
	}
	stats.OrdersToday, _ = strconv.ParseInt(daily["count"], 10, 64)
	revenueCents, _ := strconv.ParseInt(daily["revenue_cents"], 10, 64)
	stats.RevenueToday = float64(revenueCents) / 100

	pending, err := s.Client.Get(ctx, PendingKey(shopID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	if pending < 0 {
		pending = 0
	}
	stats.Pending = pending

	top, err := s.Client.ZRevRangeWithScores(ctx, ItemsKey(shopID), 0, s.TopItems-1).Result()
	if err != nil {
		return nil, err
	}
	for _, member := range top {
		name, _ := member.Member.(string)
		stats.TopItems = append(stats.TopItems, domain.ItemScore{Name: name, Quantity: int64(member.Score)})
	}
	return stats, nil
}
