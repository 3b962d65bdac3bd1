package market

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"crypto_dash/internal/domain"
)

// ChartFetcher retrieves a coin's trailing price history.
type ChartFetcher interface {
	FetchMarketChart(ctx context.Context, id, currency string, days int) (domain.HistorySeries, error)
}

// HistoryCache lazily fetches and caches 7-day price series per
// (coin, currency) pair. An entry, once fetched, is immutable for the
// session: stale-but-present beats a refetch. Switching currency leaves
// entries for the old currency in place.
type HistoryCache struct {
	fetcher ChartFetcher

	mu      sync.RWMutex
	entries map[historyKey]domain.HistorySeries

	// Collapses concurrent misses for one key into a single fetch.
	group singleflight.Group
}

type historyKey struct {
	id       string
	currency string
}

func (k historyKey) String() string {
	return k.id + "|" + k.currency
}

// NewHistoryCache creates an empty history cache.
func NewHistoryCache(fetcher ChartFetcher) *HistoryCache {
	return &HistoryCache{
		fetcher: fetcher,
		entries: make(map[historyKey]domain.HistorySeries),
	}
}

// Get returns the history series for (id, currency), fetching it at most
// once. A failed fetch caches nothing; the next call retries.
func (c *HistoryCache) Get(ctx context.Context, id, currency string) (domain.HistorySeries, error) {
	key := historyKey{id: id, currency: currency}

	c.mu.RLock()
	series, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return series, nil
	}

	result, err, _ := c.group.Do(key.String(), func() (any, error) {
		// Re-check: a previous in-flight fetch may have landed between
		// the read above and joining the flight.
		c.mu.RLock()
		cached, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		fetched, err := c.fetcher.FetchMarketChart(ctx, id, currency, domain.HistoryDays)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		// First writer wins; an entry is never replaced.
		if existing, ok := c.entries[key]; ok {
			fetched = existing
		} else {
			c.entries[key] = fetched
		}
		c.mu.Unlock()

		return fetched, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(domain.HistorySeries), nil
}

// Peek reports whether a series is already cached, without fetching.
func (c *HistoryCache) Peek(id, currency string) (domain.HistorySeries, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	series, ok := c.entries[historyKey{id: id, currency: currency}]
	return series, ok
}

// Len returns the number of cached series (for tests/monitoring).
func (c *HistoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
