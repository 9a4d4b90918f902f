// Package cache holds the Redis client plus the QR data-URL cache and the
// cleanup lock built on it.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/assetlabel/inventory/internal/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "inventory:"

// New connects to Redis, pings it and enables tracing.
func New(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Redis.Addr, err)
	}
	if cfg.Telemetry.Enabled {
		if err := redisotel.InstrumentTracing(rdb); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("instrument redis: %w", err)
		}
	}
	return rdb, nil
}

func qrKey(assetID string) string { return keyPrefix + "qr:" + assetID }

func lockKey(name string) string { return keyPrefix + "lock:" + name }

// DataURLCache keeps QR data URLs so reads skip the disk.
type DataURLCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDataURLCache(rdb *redis.Client, ttl time.Duration) *DataURLCache {
	return &DataURLCache{rdb: rdb, ttl: ttl}
}

// Get reports ok=false on a miss.
func (c *DataURLCache) Get(ctx context.Context, assetID string) (string, bool, error) {
	v, err := c.rdb.Get(ctx, qrKey(assetID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (c *DataURLCache) Set(ctx context.Context, assetID, dataURL string) error {
	return c.rdb.Set(ctx, qrKey(assetID), dataURL, c.ttl).Err()
}

func (c *DataURLCache) Delete(ctx context.Context, assetID string) error {
	return c.rdb.Del(ctx, qrKey(assetID)).Err()
}

// releaseScript deletes the lock only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// Locker hands out short-lived SET NX locks shared by every instance.
type Locker struct {
	rdb *redis.Client
}

func NewLocker(rdb *redis.Client) *Locker {
	return &Locker{rdb: rdb}
}

// TryLock returns ok=false when another holder owns name. The returned
// release func is safe to call after the lock expired.
func (l *Locker) TryLock(ctx context.Context, name string, ttl time.Duration) (release func(context.Context) error, ok bool, err error) {
	token := uuid.NewString()
	ok, err = l.rdb.SetNX(ctx, lockKey(name), token, ttl).Result()
	if err != nil || !ok {
		return nil, ok, err
	}
	release = func(ctx context.Context) error {
		return releaseScript.Run(ctx, l.rdb, []string{lockKey(name)}, token).Err()
	}
	return release, true, nil
}
