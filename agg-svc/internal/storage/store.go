package storage

import (
	"context"
	"math"
	"strings"
	"time"

	"streetqr/agg-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	dailyTTL = 7 * 24 * time.Hour
	seenTTL  = 7 * 24 * time.Hour
)

// aggregateChecks rejects keys holding the wrong type before anything is
// written, since Redis does not roll back a script that fails halfway.
const aggregateChecks = `
local function isint(v)
  local n = tonumber(v)
  return n ~= nil and n == math.floor(n)
end
local function wrongtype(key)
  return redis.error_reply('WRONGTYPE aggregate key ' .. key .. ' holds an unexpected value')
end
local function checkcounter(key)
  local t = redis.call('TYPE', key).ok
  if t == 'none' then return nil end
  if t ~= 'string' or not isint(redis.call('GET', key)) then return wrongtype(key) end
  return nil
end
`

// KEYS: seen, daily, pending, items. ARGV: revenue cents, daily ttl, seen
// ttl, then item name and quantity pairs.
var recordPlacedScript = redis.NewScript(aggregateChecks + `
if redis.call('EXISTS', KEYS[1]) == 1 then return 0 end

local t = redis.call('TYPE', KEYS[2]).ok
if t ~= 'none' then
  if t ~= 'hash' then return wrongtype(KEYS[2]) end
  for _, field in ipairs({'count', 'revenue_cents'}) do
    local v = redis.call('HGET', KEYS[2], field)
    if v and not isint(v) then return wrongtype(KEYS[2]) end
  end
end
local bad = checkcounter(KEYS[3])
if bad then return bad end
t = redis.call('TYPE', KEYS[4]).ok
if t ~= 'none' and t ~= 'zset' then return wrongtype(KEYS[4]) end

redis.call('HINCRBY', KEYS[2], 'count', 1)
redis.call('HINCRBY', KEYS[2], 'revenue_cents', ARGV[1])
redis.call('EXPIRE', KEYS[2], ARGV[2])
redis.call('INCR', KEYS[3])
for i = 4, #ARGV, 2 do
  redis.call('ZINCRBY', KEYS[4], ARGV[i + 1], ARGV[i])
end
redis.call('SET', KEYS[1], '1', 'EX', ARGV[3])
return 1
`)

// KEYS: seen, pending. ARGV: seen ttl.
var recordCompletedScript = redis.NewScript(aggregateChecks + `
if redis.call('EXISTS', KEYS[1]) == 1 then return 0 end

local bad = checkcounter(KEYS[2])
if bad then return bad end

redis.call('DECR', KEYS[2])
redis.call('SET', KEYS[1], '1', 'EX', ARGV[1])
return 1
`)

// Store folds order events into the Redis aggregates read by shop-svc.
// Each event is applied by one script that writes its seen marker last, so
// a redelivered event is skipped only once its counts are in.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
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

func seenKey(eventType, orderID string) string {
	return "orders:seen:" + eventType + ":" + orderID
}

func (s *Store) RecordPlaced(ctx context.Context, event domain.OrderEvent) error {
	date := event.Timestamp.UTC().Format("2006-01-02")
	keys := []string{
		seenKey(event.Type, event.OrderID),
		DailyKey(date, event.ShopID),
		PendingKey(event.ShopID),
		ItemsKey(event.ShopID),
	}
	args := []interface{}{
		int64(math.Round(event.Total * 100)),
		int64(dailyTTL / time.Second),
		int64(seenTTL / time.Second),
	}
	for _, item := range event.Items {
		name := strings.TrimSpace(item.Name)
		if name == "" || item.Quantity <= 0 {
			continue
		}
		args = append(args, name, item.Quantity)
	}
	return recordPlacedScript.Run(ctx, s.rdb, keys, args...).Err()
}

func (s *Store) RecordCompleted(ctx context.Context, event domain.OrderEvent) error {
	keys := []string{seenKey(event.Type, event.OrderID), PendingKey(event.ShopID)}
	return recordCompletedScript.Run(ctx, s.rdb, keys, int64(seenTTL/time.Second)).Err()
}
