package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"crypto_dash/internal/app"
	"crypto_dash/internal/domain"
	"crypto_dash/internal/infra"
	"crypto_dash/internal/view"
	"crypto_dash/pkg/format"
)

func main() {
	// 1. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. System Bootstrapping
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(ctx); err != nil {
		slog.Error("❌ Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer bootstrap.Close()

	infra.PrintBanner(bootstrap.Config)

	// 3. Start the refresh pipeline
	bootstrap.Refresher.Start(ctx)
	slog.InfoContext(ctx, "✅ Market refresher started",
		slog.String("currency", bootstrap.Refresher.Currency()))

	// 4. Console presentation: re-render the projected view on a timer.
	// A real UI would consume the same Tracker/Projector surface.
	criteria := domain.DefaultViewCriteria()
	render := time.NewTicker(time.Duration(bootstrap.Config.Market.RefreshIntervalSec) * time.Second)
	defer render.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("👋 Shutting down gracefully...")
			return
		case <-render.C:
			printTop(bootstrap, criteria, 10)
		}
	}
}

// printTop renders the first n rows of the projected view.
func printTop(bootstrap *app.Bootstrap, criteria domain.ViewCriteria, n int) {
	snapshot := bootstrap.Tracker.Snapshot()
	if len(snapshot) == 0 {
		slog.Info("No snapshot yet (provider unreachable?)")
		return
	}

	currency, _ := domain.CurrencyByCode(bootstrap.Tracker.Currency())
	projected := view.Project(snapshot, criteria)
	if len(projected) > n {
		projected = projected[:n]
	}

	fmt.Printf("\n  %-4s %-24s %14s %10s %10s %12s  %s\n",
		"#", "COIN", "PRICE", "24H", "7D", "MCAP", "FAV")
	for _, coin := range projected {
		fav := ""
		if bootstrap.Favourites.Contains(coin.ID) {
			fav = "★"
		}
		fmt.Printf("  %-4d %-24s %s%13s %10s %10s %s%11s  %s\n",
			coin.MarketCapRank,
			coin.Name+" ("+strings.ToUpper(coin.Symbol)+")",
			currency.Symbol,
			format.Price(coin.CurrentPrice),
			format.Change(coin.Change24h()),
			format.Change(coin.Change7d()),
			currency.Symbol,
			format.MarketCap(coin.MarketCap),
			fav)
	}
}
