package market

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"
	"time"

	"crypto_dash/internal/domain"
	"crypto_dash/internal/storage"
)

// favouritesKey is the fixed key of the serialized favourites record.
const favouritesKey = "favourites"

// Favourites is the durable set of favourited coin IDs.
// Every mutation rewrites the full record; there is no partial persistence.
type Favourites struct {
	store *storage.Store

	mu  sync.RWMutex
	ids map[string]struct{}
}

// NewFavourites creates an empty favourites set backed by store.
func NewFavourites(store *storage.Store) *Favourites {
	return &Favourites{
		store: store,
		ids:   make(map[string]struct{}),
	}
}

// Load reads the durable record. A missing or corrupt record yields an
// empty set; corruption is swallowed, never fatal.
func (f *Favourites) Load(ctx context.Context) error {
	value, err := f.store.Get(ctx, favouritesKey)
	if err != nil {
		return err
	}
	if value == "" {
		return nil
	}

	var ids []string
	if err := json.Unmarshal([]byte(value), &ids); err != nil {
		slog.Warn("Discarding unparseable favourites record", slog.Any("error", err))
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		f.ids[id] = struct{}{}
	}
	return nil
}

// Toggle flips membership of id and persists the full resulting set before
// returning. The in-memory change applies optimistically; a persistence
// failure is returned so the caller can signal the favourite was not saved.
func (f *Favourites) Toggle(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	_, present := f.ids[id]
	if present {
		delete(f.ids, id)
	} else {
		f.ids[id] = struct{}{}
	}
	nowFavourite := !present
	snapshot := f.sortedIDsLocked()
	f.mu.Unlock()

	data, err := json.Marshal(snapshot)
	if err != nil {
		return nowFavourite, err
	}
	if err := f.store.Put(ctx, favouritesKey, string(data), time.Now().UnixMicro()); err != nil {
		return nowFavourite, err
	}

	return nowFavourite, nil
}

// Contains reports whether id is favourited.
func (f *Favourites) Contains(id string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.ids[id]
	return ok
}

// IDs returns the favourited coin IDs in sorted order.
func (f *Favourites) IDs() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.sortedIDsLocked()
}

// FilterSnapshot returns the favourited coins in snapshot order.
func (f *Favourites) FilterSnapshot(snapshot []domain.Coin) []domain.Coin {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var out []domain.Coin
	for _, coin := range snapshot {
		if _, ok := f.ids[coin.ID]; ok {
			out = append(out, coin)
		}
	}
	return out
}

// sortedIDsLocked returns sorted IDs; sorted so the persisted record is
// deterministic. Caller must hold at least a read lock.
func (f *Favourites) sortedIDsLocked() []string {
	ids := make([]string, 0, len(f.ids))
	for id := range f.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
