// Package market owns the live market state: the periodically refreshed
// snapshot, the on-demand history cache and the user favourites set.
package market

import (
	"log/slog"
	"sync"

	"crypto_dash/internal/domain"
	"crypto_dash/internal/storage"
)

// Tracker holds the current market snapshot. Snapshots are installed
// wholesale; readers never observe a partially updated list.
//
// Every fetch carries a monotonically increasing sequence number and only
// the highest-seq result is ever installed, so a slow fetch that completes
// after a newer one cannot overwrite fresher data.
type Tracker struct {
	mu        sync.RWMutex
	coins     []domain.Coin
	currency  string
	lastSeq   uint64
	fetchedAt int64

	// Optional write-through of the last good snapshot for restarts.
	snapshotFile *storage.SnapshotFile
}

// NewTracker creates a tracker with an empty snapshot in the given currency.
func NewTracker(currency string) *Tracker {
	return &Tracker{currency: currency}
}

// WithSnapshotFile enables persisting every installed snapshot to disk.
func (t *Tracker) WithSnapshotFile(sf *storage.SnapshotFile) *Tracker {
	t.snapshotFile = sf
	return t
}

// Restore seeds the tracker from a persisted snapshot without consuming a
// sequence number. Only snapshots for the active currency are accepted.
func (t *Tracker) Restore(snap *storage.MarketSnapshot) {
	if snap == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.lastSeq != 0 || snap.Currency != t.currency {
		return
	}
	t.coins = snap.Coins
	t.fetchedAt = snap.FetchedAt
	slog.Info("Restored last good snapshot",
		slog.String("currency", snap.Currency),
		slog.Int("coins", len(snap.Coins)))
}

// Apply installs a fetched snapshot if seq is the highest seen so far.
// Returns false when the result is stale and was discarded.
func (t *Tracker) Apply(seq uint64, currency string, coins []domain.Coin) bool {
	t.mu.Lock()

	if seq <= t.lastSeq {
		t.mu.Unlock()
		slog.Debug("Discarding stale fetch result",
			slog.Uint64("seq", seq),
			slog.Uint64("last_seq", t.lastSeq))
		return false
	}

	t.lastSeq = seq
	t.currency = currency
	t.coins = coins
	t.mu.Unlock()

	if t.snapshotFile != nil {
		if err := t.snapshotFile.Save(currency, coins); err != nil {
			slog.Warn("Failed to persist snapshot", slog.Any("error", err))
		}
	}

	return true
}

// Snapshot returns the current coin list. The returned slice is shared and
// must be treated as read-only; it is replaced, never mutated.
func (t *Tracker) Snapshot() []domain.Coin {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.coins
}

// Currency returns the currency the current snapshot is denominated in.
func (t *Tracker) Currency() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.currency
}

// LastSeq returns the highest applied fetch sequence (for tests/monitoring).
func (t *Tracker) LastSeq() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastSeq
}
