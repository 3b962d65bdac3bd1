package market

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"crypto_dash/internal/domain"
)

// Fetcher retrieves the full market listing in a display currency.
type Fetcher interface {
	FetchMarkets(ctx context.Context, currency string) ([]domain.Coin, error)
}

// Refresher drives periodic snapshot refreshes.
//
// On Start it fetches once immediately, then on every tick. Switching the
// currency triggers an immediate out-of-band fetch without disturbing the
// pending tick. Fetch failures keep the last good snapshot.
type Refresher struct {
	fetcher  Fetcher
	tracker  *Tracker
	interval time.Duration

	mu       sync.RWMutex
	currency string

	seq    atomic.Uint64
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRefresher creates a refresher polling at interval.
func NewRefresher(fetcher Fetcher, tracker *Tracker, currency string, interval time.Duration) *Refresher {
	return &Refresher{
		fetcher:  fetcher,
		tracker:  tracker,
		currency: currency,
		interval: interval,
	}
}

// Start begins polling. The first fetch fires immediately.
func (r *Refresher) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	r.ctx = ctx
	r.cancel = cancel
	r.mu.Unlock()

	// Immediate fetch so the first view doesn't wait a full interval.
	r.fetchAsync(ctx)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("Refresh loop panic recovered", slog.Any("panic", rec))
			}
		}()

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				slog.Info("Market refresh polling stopped")
				return
			case <-ticker.C:
				r.refresh(ctx)
			}
		}
	}()
}

// SetCurrency switches the active display currency and refreshes now.
// The pending tick is left intact. Unknown codes are rejected.
func (r *Refresher) SetCurrency(code string) error {
	if _, ok := domain.CurrencyByCode(code); !ok {
		return fmt.Errorf("unsupported currency: %s", code)
	}

	r.mu.Lock()
	changed := r.currency != code
	r.currency = code
	ctx := r.ctx
	r.mu.Unlock()

	if changed && ctx != nil {
		slog.Info("Currency switched, refreshing now", slog.String("currency", code))
		r.fetchAsync(ctx)
	}
	return nil
}

// Currency returns the active display currency.
func (r *Refresher) Currency() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.currency
}

// Stop cancels polling and waits for in-flight fetches to drain.
// No result is installed after Stop returns.
func (r *Refresher) Stop() {
	r.mu.RLock()
	cancel := r.cancel
	r.mu.RUnlock()

	if cancel != nil {
		cancel()
		r.wg.Wait()
	}
}

// fetchAsync runs one refresh in its own goroutine. Overlapping fetches
// are allowed; the tracker's sequence guard discards stale completions.
func (r *Refresher) fetchAsync(ctx context.Context) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.refresh(ctx)
	}()
}

// refresh performs one fetch and installs the result unless it is stale
// or the refresher was stopped while the request was in flight.
func (r *Refresher) refresh(ctx context.Context) {
	seq := r.seq.Add(1)
	currency := r.Currency()

	coins, err := r.fetcher.FetchMarkets(ctx, currency)
	if err != nil {
		slog.Warn("Market fetch failed, keeping last snapshot",
			slog.Uint64("seq", seq),
			slog.String("currency", currency),
			slog.Any("error", err))
		return
	}

	// Results that resolve after teardown are discarded.
	if ctx.Err() != nil {
		return
	}

	if r.tracker.Apply(seq, currency, coins) {
		slog.Debug("Snapshot installed",
			slog.Uint64("seq", seq),
			slog.String("currency", currency),
			slog.Int("coins", len(coins)))
	}
}
