package distance

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache memoizes estimates per (origin, destination) pair.
type Cache interface {
	Get(ctx context.Context, origin, destination string) (km float64, ok bool, err error)
	Set(ctx context.Context, origin, destination string, km float64) error
}

type pair struct {
	origin      string
	destination string
}

type memoryEntry struct {
	km      float64
	expires time.Time
}

// MemoryCache is an in-process Cache with a fixed TTL.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[pair]memoryEntry
	now     func() time.Time
}

// NewMemoryCache returns an empty cache whose entries live for ttl.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[pair]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, origin, destination string) (float64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := pair{origin, destination}
	entry, ok := c.entries[key]
	if !ok {
		return 0, false, nil
	}
	if !c.now().Before(entry.expires) {
		delete(c.entries, key)
		return 0, false, nil
	}
	return entry.km, true, nil
}

func (c *MemoryCache) Set(_ context.Context, origin, destination string, km float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[pair{origin, destination}] = memoryEntry{km: km, expires: c.now().Add(c.ttl)}
	return nil
}

// RedisCache stores estimates in Redis so replicas share lookups.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to the Redis instance at addr.
func NewRedisCache(addr, password string, db int, ttl time.Duration) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisCache{client: rdb, ttl: ttl}
}

// Ping checks connectivity.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) Get(ctx context.Context, origin, destination string) (float64, bool, error) {
	val, err := c.client.Get(ctx, cacheKey(origin, destination)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("redis get: %w", err)
	}

	km, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false, fmt.Errorf("decode cached distance %q: %w", val, err)
	}
	return km, true, nil
}

func (c *RedisCache) Set(ctx context.Context, origin, destination string, km float64) error {
	// FormatFloat renders Infinite as "+Inf", which ParseFloat reads back.
	val := strconv.FormatFloat(km, 'f', -1, 64)
	if err := c.client.Set(ctx, cacheKey(origin, destination), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func cacheKey(origin, destination string) string {
	return fmt.Sprintf("distance:v1:%s|%s", origin, destination)
}
