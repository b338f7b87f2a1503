// internal/catalog/service.go
package catalog

import (
	"context"
	"sync"
	"time"

	"availability-api/internal/cache"
	"availability-api/internal/common/logger"
	"availability-api/internal/inventory/filter"
	"availability-api/internal/models"
	"availability-api/internal/websearch"
)

// AvailableKey is the cache key of the available-products snapshot.
const AvailableKey = "available_products"

type Options struct {
	TTL time.Duration
	// SkipDegraded stops failure-induced empty snapshots from being cached.
	SkipDegraded bool
	Store        cache.Store[Snapshot]
	Clock        cache.Clock
}

// Service composes fetch, filter, match and storefront search.
type Service struct {
	source    InventorySource
	matcher   Matcher
	searcher  websearch.Searcher
	available *cache.Timed[Snapshot]
	logger    logger.Logger
}

func NewService(source InventorySource, m Matcher, searcher websearch.Searcher, log logger.Logger, opts Options) *Service {
	s := &Service{
		source:   source,
		matcher:  m,
		searcher: searcher,
		logger:   log.With(map[string]interface{}{"component": "catalog"}),
	}

	cacheOpts := []cache.Option[Snapshot]{cache.WithLogger[Snapshot](log)}
	if opts.Store != nil {
		cacheOpts = append(cacheOpts, cache.WithStore[Snapshot](opts.Store))
	}
	if opts.Clock != nil {
		cacheOpts = append(cacheOpts, cache.WithClock[Snapshot](opts.Clock))
	}
	if opts.SkipDegraded {
		cacheOpts = append(cacheOpts, cache.WithStorePredicate(func(snap Snapshot) bool {
			return !snap.Degraded
		}))
	}
	s.available = cache.NewTimed(AvailableKey, opts.TTL, s.snapshot, cacheOpts...)
	return s
}

// Available returns the eligible products, reusing the last snapshot while
// it is inside the freshness window.
func (s *Service) Available(ctx context.Context) Snapshot {
	snap, err := s.available.Get(ctx)
	if err != nil {
		// snapshot never fails; a broken producer still yields an empty list
		s.logger.Error("available products lookup failed", map[string]interface{}{"error": err.Error()})
		return Snapshot{Products: emptyProducts(), Degraded: true, Cause: err.Error()}
	}
	if snap.Products == nil {
		snap.Products = emptyProducts()
	}
	return snap
}

// Search fetches fresh inventory and returns the products matching query.
func (s *Service) Search(ctx context.Context, query string) Snapshot {
	snap, _ := s.snapshot(ctx)
	snap.Products = s.matcher.Match(query, snap.Products)

	s.logger.Debug("inventory search completed", map[string]interface{}{
		"query":   query,
		"matches": len(snap.Products),
	})
	return snap
}

// URLs looks query up on the storefront.
func (s *Service) URLs(ctx context.Context, query string) websearch.Outcome {
	return s.searcher.Search(ctx, query)
}

// Complete runs the inventory search and the storefront lookup concurrently.
func (s *Service) Complete(ctx context.Context, query string) Combined {
	result := Combined{Query: query}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		result.Products = s.Search(ctx, query)
	}()
	go func() {
		defer wg.Done()
		result.Web = s.URLs(ctx, query)
	}()
	wg.Wait()

	return result
}

func (s *Service) snapshot(ctx context.Context) (Snapshot, error) {
	fetched := s.source.Fetch(ctx)
	products, report := filter.Apply(fetched.Records)

	s.logger.Debug("inventory filtered", report.Fields())

	snap := Snapshot{Products: products, Degraded: fetched.Degraded}
	if fetched.Cause != nil {
		snap.Cause = fetched.Cause.Error()
	}
	return snap, nil
}

func emptyProducts() []models.NormalizedProduct {
	return []models.NormalizedProduct{}
}
