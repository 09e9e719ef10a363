package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingFetcher struct {
	mu    sync.Mutex
	calls int32
	stock map[string]int
	err   error

	// block, when set, holds fetches until released
	block chan struct{}
}

func (f *countingFetcher) GetStock(_ context.Context, productID, variantID string) (int, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stock[cacheKey(productID, variantID)], nil
}

func (f *countingFetcher) callCount() int {
	return int(atomic.LoadInt32(&f.calls))
}

func TestStockCache_ServesFreshValueWithoutRefetch(t *testing.T) {
	fetcher := &countingFetcher{stock: map[string]int{"P1": 7}}
	cache := NewStockCache(fetcher, 5*time.Second)

	now := time.Now()
	cache.now = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		stock, err := cache.GetStock(context.Background(), "P1", "")
		require.NoError(t, err)
		assert.Equal(t, 7, stock)
	}

	assert.Equal(t, 1, fetcher.callCount())
}

func TestStockCache_RefetchesAfterTTL(t *testing.T) {
	fetcher := &countingFetcher{stock: map[string]int{"P1": 7}}
	cache := NewStockCache(fetcher, 5*time.Second)

	now := time.Now()
	cache.now = func() time.Time { return now }

	_, err := cache.GetStock(context.Background(), "P1", "")
	require.NoError(t, err)

	// Cross the freshness window
	now = now.Add(5 * time.Second)
	fetcher.mu.Lock()
	fetcher.stock["P1"] = 3
	fetcher.mu.Unlock()

	stock, err := cache.GetStock(context.Background(), "P1", "")
	require.NoError(t, err)
	assert.Equal(t, 3, stock)
	assert.Equal(t, 2, fetcher.callCount())
}

func TestStockCache_CoalescesConcurrentLookups(t *testing.T) {
	fetcher := &countingFetcher{
		stock: map[string]int{"P1": 7},
		block: make(chan struct{}),
	}
	cache := NewStockCache(fetcher, 5*time.Second)

	const workers = 10
	var wg sync.WaitGroup
	results := make([]int, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stock, err := cache.GetStock(context.Background(), "P1", "")
			assert.NoError(t, err)
			results[i] = stock
		}(i)
	}

	// Let the goroutines pile onto the single in-flight fetch
	time.Sleep(50 * time.Millisecond)
	close(fetcher.block)
	wg.Wait()

	for _, stock := range results {
		assert.Equal(t, 7, stock)
	}
	assert.Equal(t, 1, fetcher.callCount())
}

func TestStockCache_FailureIsNotCached(t *testing.T) {
	fetcher := &countingFetcher{err: errors.New("catalog down")}
	cache := NewStockCache(fetcher, 5*time.Second)

	_, err := cache.GetStock(context.Background(), "P1", "")
	require.Error(t, err)

	// Upstream recovers; the next lookup must retry, not replay the error
	fetcher.err = nil
	fetcher.mu.Lock()
	fetcher.stock = map[string]int{"P1": 4}
	fetcher.mu.Unlock()

	stock, err := cache.GetStock(context.Background(), "P1", "")
	require.NoError(t, err)
	assert.Equal(t, 4, stock)
	assert.Equal(t, 2, fetcher.callCount())
}

func TestStockCache_VariantsCachedSeparately(t *testing.T) {
	fetcher := &countingFetcher{stock: map[string]int{"P1-V1": 2, "P1-V2": 9}}
	cache := NewStockCache(fetcher, 5*time.Second)

	s1, err := cache.GetStock(context.Background(), "P1", "V1")
	require.NoError(t, err)
	s2, err := cache.GetStock(context.Background(), "P1", "V2")
	require.NoError(t, err)

	assert.Equal(t, 2, s1)
	assert.Equal(t, 9, s2)
	assert.Equal(t, 2, fetcher.callCount())
}

func TestStockCache_InvalidateForcesRefetch(t *testing.T) {
	fetcher := &countingFetcher{stock: map[string]int{"P1": 7}}
	cache := NewStockCache(fetcher, 5*time.Second)

	_, err := cache.GetStock(context.Background(), "P1", "")
	require.NoError(t, err)

	cache.Invalidate("P1", "")

	_, err = cache.GetStock(context.Background(), "P1", "")
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.callCount())
}

func TestStockCache_DefaultTTLApplied(t *testing.T) {
	cache := NewStockCache(&countingFetcher{}, 0)
	assert.Equal(t, DefaultStockTTL, cache.ttl)
}
