package infra

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, `
app:
  name: "Crypto Dash"
  version: "1.0.0"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.API.CoinGecko.BaseURL != "https://api.coingecko.com/api/v3" {
		t.Errorf("Unexpected default base URL: %s", cfg.API.CoinGecko.BaseURL)
	}
	if cfg.Market.Currency != "usd" {
		t.Errorf("Expected default currency usd, got %s", cfg.Market.Currency)
	}
	if cfg.Market.RefreshIntervalSec != 30 {
		t.Errorf("Expected default refresh interval 30, got %d", cfg.Market.RefreshIntervalSec)
	}
	if cfg.Market.PageSize != 100 {
		t.Errorf("Expected default page size 100, got %d", cfg.Market.PageSize)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bad base url", "api:\n  coingecko:\n    base_url: \"ftp://nope\"\n"},
		{"unsupported currency", "market:\n  currency: \"zar\"\n"},
		{"oversized page", "market:\n  page_size: 500\n"},
		{"negative interval", "market:\n  refresh_interval_sec: -5\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tc.content)); err == nil {
				t.Error("Expected validation to fail")
			}
		})
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("CRYPTO_DASH_API_KEY", "CG-from-env")
	t.Setenv("CRYPTO_DASH_CURRENCY", "EUR")

	cfg, err := LoadConfig(writeConfig(t, "market:\n  currency: \"usd\"\n"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.API.CoinGecko.APIKey != "CG-from-env" {
		t.Errorf("Expected env API key, got %q", cfg.API.CoinGecko.APIKey)
	}
	if cfg.Market.Currency != "eur" {
		t.Errorf("Expected env currency override (lowercased), got %s", cfg.Market.Currency)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}
