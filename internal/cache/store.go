// internal/cache/store.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Entry is one computed value and the moment it was computed. Entries are
// replaced on recomputation, never modified.
type Entry[T any] struct {
	Value      T         `json:"value"`
	ComputedAt time.Time `json:"computed_at"`
}

// Store holds at most one entry per key. A miss is reported as ok == false
// with a nil error.
type Store[T any] interface {
	Get(ctx context.Context, key string) (Entry[T], bool, error)
	Put(ctx context.Context, key string, entry Entry[T]) error
}

// MemoryStore keeps entries in process memory.
type MemoryStore[T any] struct {
	mu      sync.RWMutex
	entries map[string]Entry[T]
}

func NewMemoryStore[T any]() *MemoryStore[T] {
	return &MemoryStore[T]{entries: make(map[string]Entry[T])}
}

func (s *MemoryStore[T]) Get(_ context.Context, key string) (Entry[T], bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[key]
	return entry, ok, nil
}

func (s *MemoryStore[T]) Put(_ context.Context, key string, entry Entry[T]) error {
	s.mu.Lock()
	s.entries[key] = entry
	s.mu.Unlock()
	return nil
}

// RedisStore keeps JSON-encoded entries in Redis so several API instances
// share one upstream fetch per window. Keys expire after ttl.
type RedisStore[T any] struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewRedisStore[T any](client redis.Cmdable, prefix string, ttl time.Duration) *RedisStore[T] {
	return &RedisStore[T]{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore[T]) Key(key string) string {
	return s.prefix + key
}

func (s *RedisStore[T]) Get(ctx context.Context, key string) (Entry[T], bool, error) {
	var entry Entry[T]
	data, err := s.client.Get(ctx, s.Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return entry, false, nil
	}
	if err != nil {
		return entry, false, fmt.Errorf("redis get %s: %w", s.Key(key), err)
	}
	if err := json.Unmarshal(data, &entry); err != nil {
		return entry, false, fmt.Errorf("decode cache entry %s: %w", s.Key(key), err)
	}
	return entry, true, nil
}

func (s *RedisStore[T]) Put(ctx context.Context, key string, entry Entry[T]) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", s.Key(key), err)
	}
	if err := s.client.Set(ctx, s.Key(key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.Key(key), err)
	}
	return nil
}
