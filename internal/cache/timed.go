// internal/cache/timed.go
package cache

import (
	"context"
	"time"

	apperrors "availability-api/internal/common/errors"
	"availability-api/internal/common/logger"
	"availability-api/internal/common/metrics"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is the freshness window for the available-products entry.
const DefaultTTL = 300 * time.Second

// Producer computes a fresh value. It runs at most once at a time per Timed.
type Producer[T any] func(ctx context.Context) (T, error)

// Timed memoizes a single producer under one key for a freshness window.
type Timed[T any] struct {
	key         string
	ttl         time.Duration
	producer    Producer[T]
	clock       Clock
	store       Store[T]
	shouldStore func(T) bool
	logger      logger.Logger
	group       singleflight.Group
}

type Option[T any] func(*Timed[T])

func WithClock[T any](clock Clock) Option[T] {
	return func(c *Timed[T]) { c.clock = clock }
}

func WithStore[T any](store Store[T]) Option[T] {
	return func(c *Timed[T]) { c.store = store }
}

// WithStorePredicate decides whether a freshly computed value is kept.
// Values it rejects are returned to the caller but not cached.
func WithStorePredicate[T any](fn func(T) bool) Option[T] {
	return func(c *Timed[T]) { c.shouldStore = fn }
}

func WithLogger[T any](log logger.Logger) Option[T] {
	return func(c *Timed[T]) { c.logger = log }
}

func NewTimed[T any](key string, ttl time.Duration, producer Producer[T], opts ...Option[T]) *Timed[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Timed[T]{
		key:         key,
		ttl:         ttl,
		producer:    producer,
		clock:       SystemClock{},
		store:       NewMemoryStore[T](),
		shouldStore: func(T) bool { return true },
		logger:      logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(map[string]interface{}{"component": "cache", "key": key})
	return c
}

func (c *Timed[T]) TTL() time.Duration { return c.ttl }

// Get returns the stored value while it is younger than the window, and
// otherwise recomputes, stores and returns a new one.
func (c *Timed[T]) Get(ctx context.Context) (T, error) {
	if entry, ok := c.lookup(ctx); ok {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return entry.Value, nil
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	v, err, _ := c.group.Do(c.key, func() (interface{}, error) {
		// another caller may have filled the entry while we waited
		if entry, ok := c.lookup(ctx); ok {
			return entry.Value, nil
		}

		// the result is shared by every waiter and the next window, so one
		// caller going away must not cut the computation short
		detached := context.WithoutCancel(ctx)
		value, err := c.producer(detached)
		if err != nil {
			return nil, err
		}

		if !c.shouldStore(value) {
			c.logger.Debug("computed value not cached", nil)
			return value, nil
		}
		entry := Entry[T]{Value: value, ComputedAt: c.clock.Now()}
		if err := c.store.Put(detached, c.key, entry); err != nil {
			metrics.CacheLookups.WithLabelValues("store_error").Inc()
			c.logger.Warn("cache write failed", map[string]interface{}{
				"error": apperrors.NewCacheBackendError("put", err).Error(),
			})
		}
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func (c *Timed[T]) lookup(ctx context.Context) (Entry[T], bool) {
	entry, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		metrics.CacheLookups.WithLabelValues("store_error").Inc()
		c.logger.Warn("cache read failed, recomputing", map[string]interface{}{
			"error": apperrors.NewCacheBackendError("get", err).Error(),
		})
		return entry, false
	}
	if !ok {
		return entry, false
	}
	return entry, c.clock.Now().Sub(entry.ComputedAt) < c.ttl
}
