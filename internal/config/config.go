package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"dollarbuy/internal/domain"
)

// ErrMissingCredentials is returned by Validate when the Alpaca key pair is
// not configured.
var ErrMissingCredentials = errors.New("alpaca credentials not configured (set APCA_API_KEY_ID and APCA_API_SECRET_KEY)")

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for a dollarbuy run.
type Config struct {
	Alpaca  Alpaca        `yaml:"alpaca"`
	Logging Logging       `yaml:"logging"`
	Prices  PricesConfig  `yaml:"prices"`
	Orders  OrdersConfig  `yaml:"orders"`
	Symbols SymbolsConfig `yaml:"symbols"`
}

// Alpaca holds credentials and endpoints for the Alpaca broker API.
type Alpaca struct {
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	BaseURL   string `yaml:"base_url"`
	DataURL   string `yaml:"data_url"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// PricesConfig selects the market-data provider and its pacing.
type PricesConfig struct {
	Source   string        `yaml:"source"` // "yahoo" or "alpaca"
	Feed     string        `yaml:"feed"`   // alpaca only: "iex" or "sip"
	Interval time.Duration `yaml:"interval"`
}

// OrdersConfig defines how orders are sized and submitted.
type OrdersConfig struct {
	Notional    string        `yaml:"notional"`
	TimeInForce string        `yaml:"time_in_force"`
	Interval    time.Duration `yaml:"interval"`
	Confirm     bool          `yaml:"confirm"`
	CheckClock  bool          `yaml:"check_clock"`
	DryRun      bool          `yaml:"dry_run"`
}

// SymbolsConfig controls the symbol universe and how tickers are rendered
// for each provider.
type SymbolsConfig struct {
	File            string `yaml:"file"`
	PriceSeparator  string `yaml:"price_separator"`
	BrokerSeparator string `yaml:"broker_separator"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Alpaca: Alpaca{
			BaseURL: "https://paper-api.alpaca.markets",
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
		Prices: PricesConfig{
			Source:   "yahoo",
			Feed:     "iex",
			Interval: 1500 * time.Millisecond,
		},
		Orders: OrdersConfig{
			Notional:    "1.00",
			TimeInForce: string(domain.TimeInForceOPG),
			Interval:    500 * time.Millisecond,
		},
		Symbols: SymbolsConfig{
			PriceSeparator:  ".",
			BrokerSeparator: "-",
		},
	}
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads the YAML configuration file at path on top of Default, then
// loads a .env file from the working directory (if any) and applies
// environment variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	// Variables already in the environment win over .env entries.
	_ = godotenv.Load()

	applyEnvOverrides(cfg)

	return cfg, nil
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
		cfg.Alpaca.APISecret = v
	}
	if v := os.Getenv("ALPACA_BASE_URL"); v != "" {
		cfg.Alpaca.BaseURL = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	if v := os.Getenv("DOLLARBUY_PRICE_SOURCE"); v != "" {
		cfg.Prices.Source = v
	}

	// Standard Alpaca env vars (highest priority, canonical names used by SDK).
	if v := os.Getenv("APCA_API_KEY_ID"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("APCA_API_SECRET_KEY"); v != "" {
		cfg.Alpaca.APISecret = v
	}
	if v := os.Getenv("APCA_API_BASE_URL"); v != "" {
		cfg.Alpaca.BaseURL = v
	}
	if v := os.Getenv("APCA_API_DATA_URL"); v != "" {
		cfg.Alpaca.DataURL = v
	}
}

// ---------------------------------------------------------------------------
// Validation and derived values
// ---------------------------------------------------------------------------

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if c.Alpaca.APIKey == "" || c.Alpaca.APISecret == "" {
		return ErrMissingCredentials
	}
	if _, err := c.TimeInForce(); err != nil {
		return err
	}
	n, err := c.NotionalAmount()
	if err != nil {
		return err
	}
	if !n.IsPositive() {
		return fmt.Errorf("orders.notional must be positive, got %s", n)
	}
	switch strings.ToLower(c.Prices.Source) {
	case "yahoo", "alpaca":
	default:
		return fmt.Errorf("prices.source %q not supported (want yahoo or alpaca)", c.Prices.Source)
	}
	if c.Prices.Interval < 0 || c.Orders.Interval < 0 {
		return fmt.Errorf("intervals must not be negative")
	}
	return nil
}

// TimeInForce parses orders.time_in_force.
func (c *Config) TimeInForce() (domain.TimeInForce, error) {
	return domain.ParseTimeInForce(c.Orders.TimeInForce)
}

// NotionalAmount parses orders.notional as a dollar amount.
func (c *Config) NotionalAmount() (decimal.Decimal, error) {
	n, err := decimal.NewFromString(strings.TrimSpace(c.Orders.Notional))
	if err != nil {
		return decimal.Zero, fmt.Errorf("orders.notional %q: %w", c.Orders.Notional, err)
	}
	return n, nil
}

// PriceFormat renders symbols for the market-data provider.
func (c *Config) PriceFormat() domain.SymbolFormat {
	return domain.SymbolFormat{ClassSeparator: c.Symbols.PriceSeparator}
}

// BrokerFormat renders symbols for the brokerage.
func (c *Config) BrokerFormat() domain.SymbolFormat {
	return domain.SymbolFormat{ClassSeparator: c.Symbols.BrokerSeparator}
}
