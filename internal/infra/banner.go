package infra

import (
	"fmt"
	"strings"
)

// ANSI Color Codes
const (
	ColorReset  = "\033[0m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
)

// PrintBanner displays the startup banner with the active market settings.
func PrintBanner(cfg *Config) {
	currency := strings.ToUpper(cfg.Market.Currency)
	version := cfg.App.Version

	color := ColorCyan
	tier := "PUBLIC API (keyless)"
	if cfg.API.CoinGecko.APIKey != "" {
		color = ColorGreen
		tier = "DEMO API KEY"
	}

	fmt.Println()
	fmt.Printf("%s###########################################################%s\n", color, ColorReset)
	fmt.Printf("%s#                                                         #%s\n", color, ColorReset)
	fmt.Printf("%s#               📈 Crypto Dash Market Tracker             #%s\n", color, ColorReset)
	fmt.Printf("%s#                                                         #%s\n", color, ColorReset)
	fmt.Printf("%s#   CURRENCY: %-35s #%s\n", color, currency, ColorReset)
	fmt.Printf("%s#   API TIER: %-35s #%s\n", color, tier, ColorReset)
	fmt.Printf("%s#   VERSION:  %-35s #%s\n", color, version, ColorReset)
	fmt.Printf("%s#   REFRESH:  %-35s #%s\n", color, fmt.Sprintf("every %ds", cfg.Market.RefreshIntervalSec), ColorReset)
	fmt.Printf("%s#                                                         #%s\n", color, ColorReset)

	if cfg.API.CoinGecko.APIKey == "" {
		fmt.Printf("%s#   NOTE: keyless tier is rate-limited; expect slow       #%s\n", ColorYellow, ColorReset)
		fmt.Printf("%s#   refreshes if other tools share your IP.               #%s\n", ColorYellow, ColorReset)
	}

	fmt.Printf("%s###########################################################%s\n", color, ColorReset)
	fmt.Println()
}
