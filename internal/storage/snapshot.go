package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"crypto_dash/internal/domain"
)

// MarketSnapshot is a point-in-time capture of the last good market fetch.
// Persisted so a restart can display stale-but-present data until the
// first live fetch completes.
type MarketSnapshot struct {
	Currency  string        `json:"currency"`
	FetchedAt int64         `json:"fetched_at"` // Unix seconds
	Coins     []domain.Coin `json:"coins"`
}

// SnapshotFile handles saving and loading the last good snapshot.
type SnapshotFile struct {
	path string
}

// NewSnapshotFile creates a snapshot file handle inside dir.
func NewSnapshotFile(dir string) *SnapshotFile {
	return &SnapshotFile{path: filepath.Join(dir, "last_snapshot.json")}
}

// Save writes the snapshot to disk, replacing any previous one.
func (sf *SnapshotFile) Save(currency string, coins []domain.Coin) error {
	snap := MarketSnapshot{
		Currency:  currency,
		FetchedAt: time.Now().Unix(),
		Coins:     coins,
	}

	data, err := json.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.WriteFile(sf.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	return nil
}

// Load reads the persisted snapshot.
// Returns nil if none exists or it cannot be parsed; staleness is the
// caller's problem, corruption is not fatal.
func (sf *SnapshotFile) Load() *MarketSnapshot {
	data, err := os.ReadFile(sf.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read snapshot file",
				slog.String("path", sf.path), slog.Any("error", err))
		}
		return nil
	}

	var snap MarketSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		slog.Warn("Discarding unparseable snapshot file",
			slog.String("path", sf.path), slog.Any("error", err))
		return nil
	}

	return &snap
}
