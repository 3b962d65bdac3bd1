package infra

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"crypto_dash/internal/domain"
)

// Config holds the full application configuration.
// Loaded from yaml, then overridden by environment variables for secrets.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	API struct {
		CoinGecko struct {
			BaseURL       string  `yaml:"base_url"`
			APIKey        string  `yaml:"api_key"`
			RatePerMinute float64 `yaml:"rate_per_minute"`
		} `yaml:"coingecko"`
	} `yaml:"api"`

	Market struct {
		Currency           string `yaml:"currency"`
		RefreshIntervalSec int    `yaml:"refresh_interval_sec"`
		PageSize           int    `yaml:"page_size"`
	} `yaml:"market"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the config file, applies environment
// overrides and validates the result.
func LoadConfig(path string) (*Config, error) {
	// .env is optional; real environment variables still win.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.API.CoinGecko.BaseURL == "" {
		cfg.API.CoinGecko.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if cfg.API.CoinGecko.RatePerMinute == 0 {
		// Conservative default for the public (keyless) tier.
		cfg.API.CoinGecko.RatePerMinute = 25
	}
	if cfg.Market.Currency == "" {
		cfg.Market.Currency = domain.DefaultCurrency
	}
	if cfg.Market.RefreshIntervalSec == 0 {
		cfg.Market.RefreshIntervalSec = 30
	}
	if cfg.Market.PageSize == 0 {
		cfg.Market.PageSize = 100
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	url := c.API.CoinGecko.BaseURL
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("invalid CoinGecko base URL: %s", url)
	}
	if _, ok := domain.CurrencyByCode(c.Market.Currency); !ok {
		return fmt.Errorf("unsupported currency: %s", c.Market.Currency)
	}
	if c.Market.RefreshIntervalSec <= 0 {
		return fmt.Errorf("refresh interval must be positive")
	}
	if c.Market.PageSize <= 0 || c.Market.PageSize > 250 {
		return fmt.Errorf("page size must be within 1..250, got %d", c.Market.PageSize)
	}
	if c.API.CoinGecko.RatePerMinute <= 0 {
		return fmt.Errorf("rate per minute must be positive")
	}
	return nil
}

// overrideWithEnv applies environment variables on top of file values.
// Secrets belong in the environment, not the config file.
func overrideWithEnv(cfg *Config) {
	if cfg.API.CoinGecko.APIKey != "" {
		fmt.Println("⚠️  SECURITY WARNING: API key found in config file.")
		fmt.Println("   Recommendation: set CRYPTO_DASH_API_KEY in the environment instead.")
	}

	if key := os.Getenv("CRYPTO_DASH_API_KEY"); key != "" {
		cfg.API.CoinGecko.APIKey = key
	}
	if cur := os.Getenv("CRYPTO_DASH_CURRENCY"); cur != "" {
		cfg.Market.Currency = strings.ToLower(cur)
	}
}
