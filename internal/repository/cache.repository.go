package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache: key not found")

// CacheRepository is the engine's only cross-request storage contract:
// get/set with a TTL. Values for a given key are effectively immutable
// within their validity window, so concurrent duplicate writes are
// harmless.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

type redisCacheRepositoryHandler struct {
	Client *redis.Client
}

func NewRedisCacheRepository(addr, password string, db int) (CacheRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return redisCacheRepositoryHandler{Client: client}, nil
}

func (h redisCacheRepositoryHandler) Get(ctx context.Context, key string, dest any) error {
	data, err := h.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

func (h redisCacheRepositoryHandler) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return h.Client.Set(ctx, key, data, ttl).Err()
}

type memoryCacheEntry struct {
	data      []byte
	expiresAt time.Time
}

type memoryCacheRepositoryHandler struct {
	mu      sync.RWMutex
	entries map[string]memoryCacheEntry
}

// NewMemoryCacheRepository returns an in-process cache for tests and for
// callers that want same-day memoization without an external store.
func NewMemoryCacheRepository() CacheRepository {
	return &memoryCacheRepositoryHandler{
		entries: map[string]memoryCacheEntry{},
	}
}

func (h *memoryCacheRepositoryHandler) Get(ctx context.Context, key string, dest any) error {
	h.mu.RLock()
	entry, ok := h.entries[key]
	h.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return ErrCacheMiss
	}
	return json.Unmarshal(entry.data, dest)
}

func (h *memoryCacheRepositoryHandler) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.entries[key] = memoryCacheEntry{
		data:      data,
		expiresAt: time.Now().Add(ttl),
	}
	h.mu.Unlock()
	return nil
}

type noOpCacheRepositoryHandler struct{}

// NewNoOpCacheRepository returns a cache that never hits, for callers
// that don't want cross-call caching.
func NewNoOpCacheRepository() CacheRepository {
	return noOpCacheRepositoryHandler{}
}

func (noOpCacheRepositoryHandler) Get(ctx context.Context, key string, dest any) error {
	return ErrCacheMiss
}

func (noOpCacheRepositoryHandler) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return nil
}
