package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"crypto_dash/internal/infra"
	"crypto_dash/internal/infra/coingecko"
	"crypto_dash/internal/market"
	"crypto_dash/internal/storage"
)

// Bootstrap orchestrates the application startup sequence.
type Bootstrap struct {
	Config     *infra.Config
	Store      *storage.Store
	Favourites *market.Favourites
	Tracker    *market.Tracker
	History    *market.HistoryCache
	Refresher  *market.Refresher

	unlock func()
}

// NewBootstrap creates a new Bootstrap instance.
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization (config, dirs, DB, wiring).
func (b *Bootstrap) Initialize(ctx context.Context) error {
	slog.Info("🚀 Bootstrapping Crypto Dash...")

	// 1. Load Config
	cfg, err := infra.LoadConfig(infra.ResolveConfigPath())
	if err != nil {
		return err
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	// 3. Data directory + single-instance lock (protects the sqlite DB)
	workDir := infra.WorkspaceDir()
	dataDir := filepath.Join(workDir, "data")
	if err := infra.EnsureDir(dataDir); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	unlock, err := infra.CreateLockFile(workDir)
	if err != nil {
		return err
	}
	b.unlock = unlock

	// 4. Durable user state
	store, err := storage.NewStore(filepath.Join(dataDir, "user.db"))
	if err != nil {
		return err
	}
	b.Store = store
	slog.Info("✅ User store initialized (WAL-mode)", "dir", dataDir)

	b.Favourites = market.NewFavourites(store)
	if err := b.Favourites.Load(ctx); err != nil {
		// Unreadable favourites degrade to an empty set.
		slog.Warn("Failed to load favourites, starting empty", slog.Any("error", err))
	}
	slog.Info("✅ Favourites loaded", slog.Int("count", len(b.Favourites.IDs())))

	// 5. Market data pipeline
	client := coingecko.NewClient(
		cfg.API.CoinGecko.BaseURL,
		coingecko.WithAPIKey(cfg.API.CoinGecko.APIKey),
		coingecko.WithPageSize(cfg.Market.PageSize),
		coingecko.WithRateLimit(cfg.API.CoinGecko.RatePerMinute),
	)

	snapshotFile := storage.NewSnapshotFile(dataDir)
	b.Tracker = market.NewTracker(cfg.Market.Currency).WithSnapshotFile(snapshotFile)
	b.Tracker.Restore(snapshotFile.Load())

	b.History = market.NewHistoryCache(client)
	b.Refresher = market.NewRefresher(
		client,
		b.Tracker,
		cfg.Market.Currency,
		time.Duration(cfg.Market.RefreshIntervalSec)*time.Second,
	)

	slog.Info("✅ Market pipeline ready",
		slog.String("currency", cfg.Market.Currency),
		slog.Int("page_size", cfg.Market.PageSize))

	return nil
}

// Close releases held resources in reverse order of acquisition.
func (b *Bootstrap) Close() {
	if b.Refresher != nil {
		b.Refresher.Stop()
	}
	if b.Store != nil {
		_ = b.Store.Close()
	}
	if b.unlock != nil {
		b.unlock()
	}
}
