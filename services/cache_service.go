package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"chirp_server/metrics"

	"github.com/gomodule/redigo/redis"
)

// ErrCacheMiss is returned by a cache backend when a key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// CacheBackend is the key-value store behind the cache-aside accessor. TTL
// expiry at write time is the only eviction mechanism.
type CacheBackend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetEx(ctx context.Context, key string, ttl time.Duration, value []byte) error
	Delete(ctx context.Context, key string) error
}

const cacheKeyPrefix = "CACHE_ASIDE_"

// CacheKey derives a deterministic key from a query filter. The filter is
// round-tripped through JSON so map keys are sorted and struct/map
// representations of the same filter hash identically.
func CacheKey(filter interface{}) string {
	raw, err := json.Marshal(filter)
	if err != nil {
		// Unmarshalable filters still need a stable key; fall back to %+v.
		raw = []byte(fmt.Sprintf("%+v", filter))
	} else {
		var normalized interface{}
		if err := json.Unmarshal(raw, &normalized); err == nil {
			if canonical, err := json.Marshal(normalized); err == nil {
				raw = canonical
			}
		}
	}
	sum := sha256.Sum256(raw)
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

// CacheService implements the cache-aside read path. A nil backend, or any
// backend failure, degrades to calling the loader directly; cache problems
// cost latency, never correctness.
type CacheService struct {
	Backend CacheBackend
}

// Fetch attempts a cache read for the filter's key and unmarshals a hit into
// dest. On a miss it calls loader exactly once, fills dest from the loaded
// value and writes it through with the given TTL. Entries are not invalidated
// when the underlying data is later mutated, so read-after-write is not
// guaranteed within ttl; write paths that cannot tolerate that call
// Invalidate explicitly.
func (c *CacheService) Fetch(
	ctx context.Context,
	filter interface{},
	ttl time.Duration,
	dest interface{},
	loader func(ctx context.Context) (interface{}, error),
) error {
	key := CacheKey(filter)

	if c.Backend != nil {
		cached, err := c.Backend.Get(ctx, key)
		if err == nil {
			if err := json.Unmarshal(cached, dest); err == nil {
				metrics.CacheHits.Inc()
				return nil
			}
			log.Printf("⚠️ Discarding undecodable cache entry %s", key)
		} else if !errors.Is(err, ErrCacheMiss) {
			log.Printf("⚠️ Cache read failed for %s, falling back to store: %v", key, err)
		}
	}
	metrics.CacheMisses.Inc()

	loaded, err := loader(ctx)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(loaded)
	if err != nil {
		return fmt.Errorf("failed to serialize loaded value: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to decode loaded value: %w", err)
	}

	if c.Backend != nil {
		if err := c.Backend.SetEx(ctx, key, ttl, raw); err != nil {
			log.Printf("⚠️ Cache write failed for %s: %v", key, err)
		}
	}
	return nil
}

// Invalidate drops the cache entry for a filter. Best effort: failures are
// logged and the entry simply lives out its TTL.
func (c *CacheService) Invalidate(ctx context.Context, filter interface{}) {
	if c.Backend == nil {
		return
	}
	key := CacheKey(filter)
	if err := c.Backend.Delete(ctx, key); err != nil {
		log.Printf("⚠️ Cache invalidate failed for %s: %v", key, err)
	}
}

// RedisCache is the production cache backend, a redigo pool.
type RedisCache struct {
	Pool *redis.Pool
}

// NewRedisPool builds a shared long-lived pool for addr ("host:port").
func NewRedisPool(addr string) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     10,
		MaxActive:   50,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", addr)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	conn, err := r.Pool.GetContext(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	value, err := redis.Bytes(conn.Do("GET", key))
	if errors.Is(err, redis.ErrNil) {
		return nil, ErrCacheMiss
	}
	return value, err
}

func (r *RedisCache) SetEx(ctx context.Context, key string, ttl time.Duration, value []byte) error {
	conn, err := r.Pool.GetContext(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.Do("SETEX", key, int(ttl.Seconds()), value)
	return err
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	conn, err := r.Pool.GetContext(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.Do("DEL", key)
	return err
}

// MemoryCache is a mutex-guarded in-process backend used when no redis
// address is configured, and by tests.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrCacheMiss
	}
	return entry.value, nil
}

func (m *MemoryCache) SetEx(_ context.Context, key string, ttl time.Duration, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	// Lazy expiry: stale siblings are dropped on write instead of by a timer.
	now := time.Now()
	for k, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, k)
		}
	}
	m.entries[key] = memoryEntry{value: value, expiresAt: now.Add(ttl)}
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}
