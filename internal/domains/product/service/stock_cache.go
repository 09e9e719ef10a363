package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultStockTTL is the freshness window for resolved stock counts
const DefaultStockTTL = 5 * time.Second

// StockFetcher is the upstream the cache delegates misses to
type StockFetcher interface {
	GetStock(ctx context.Context, productID, variantID string) (int, error)
}

// StockCache keeps resolved stock counts fresh for a short window so a
// burst of quantity clicks doesn't hammer the catalog with one request
// per click.
//
// Semantics:
//   - a resolved value is fresh for ttl from resolution; lookups inside
//     the window return it without a new request
//   - concurrent lookups for the same key attach to the single in-flight
//     request (singleflight) instead of duplicating it
//   - failures are never cached: the entry is evicted so the next
//     attempt retries cleanly
type StockCache struct {
	upstream StockFetcher
	ttl      time.Duration

	group singleflight.Group

	mu      sync.Mutex
	entries map[string]stockEntry

	now func() time.Time // injectable clock for tests
}

type stockEntry struct {
	value      int
	resolvedAt time.Time
}

func NewStockCache(upstream StockFetcher, ttl time.Duration) *StockCache {
	if ttl <= 0 {
		ttl = DefaultStockTTL
	}
	return &StockCache{
		upstream: upstream,
		ttl:      ttl,
		entries:  make(map[string]stockEntry),
		now:      time.Now,
	}
}

// GetStock returns the cached stock when fresh, otherwise fetches it
// (coalescing concurrent fetches for the same product)
func (c *StockCache) GetStock(ctx context.Context, productID, variantID string) (int, error) {
	key := cacheKey(productID, variantID)

	if value, ok := c.fresh(key); ok {
		return value, nil
	}

	result, err, _ := c.group.Do(key, func() (interface{}, error) {
		// Re-check under the flight: another caller may have resolved
		// the value while we waited for the group slot
		if value, ok := c.fresh(key); ok {
			return value, nil
		}

		value, err := c.upstream.GetStock(ctx, productID, variantID)
		if err != nil {
			return 0, err
		}

		c.mu.Lock()
		c.entries[key] = stockEntry{value: value, resolvedAt: c.now()}
		c.mu.Unlock()

		return value, nil
	})

	if err != nil {
		// Evict so the next lookup retries instead of serving a stale
		// or failed entry
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return 0, err
	}

	return result.(int), nil
}

// Invalidate drops the cached value for a product (e.g. after checkout)
func (c *StockCache) Invalidate(productID, variantID string) {
	c.mu.Lock()
	delete(c.entries, cacheKey(productID, variantID))
	c.mu.Unlock()
}

func (c *StockCache) fresh(key string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return 0, false
	}
	if c.now().Sub(entry.resolvedAt) >= c.ttl {
		return 0, false
	}
	return entry.value, true
}

func cacheKey(productID, variantID string) string {
	if variantID == "" {
		return productID
	}
	return productID + "-" + variantID
}
