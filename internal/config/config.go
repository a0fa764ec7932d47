package config

import (
	"time"

	"portfolio-tracker/pkg/config"
)

// Alpaca holds the configuration for the Alpaca paper-trading API.
type Alpaca struct {
	APIKey      string `mapstructure:"api_key"`
	APISecret   string `mapstructure:"api_secret"`
	BaseURL     string `mapstructure:"base_url"`
	DataBaseURL string `mapstructure:"data_base_url"`
}

// Engine holds signal engine configuration.
type Engine struct {
	Lookback                      int           `mapstructure:"lookback"`
	ExternalTimeout               time.Duration `mapstructure:"external_timeout"`
	MarketDataMaxRequestPerMinute int           `mapstructure:"market_data_max_request_per_minute"`
	PriceHistoryCacheTTL          time.Duration `mapstructure:"price_history_cache_ttl"`
	QuoteCacheTTL                 time.Duration `mapstructure:"quote_cache_ttl"`
}

// Scheduler holds the cron specs for periodic jobs.
type Scheduler struct {
	Enabled             bool   `mapstructure:"enabled"`
	RefreshHoldingsSpec string `mapstructure:"refresh_holdings_spec"`
	RunStrategiesSpec   string `mapstructure:"run_strategies_spec"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the portfolio tracker service.
type Config struct {
	App       config.App      `mapstructure:"app"`
	Logger    config.Logger   `mapstructure:"logger"`
	Database  config.Database `mapstructure:"database"`
	Redis     config.Redis    `mapstructure:"redis"`
	API       config.API      `mapstructure:"api"`
	Alpaca    Alpaca          `mapstructure:"alpaca"`
	Engine    Engine          `mapstructure:"engine"`
	Scheduler Scheduler       `mapstructure:"scheduler"`
	Telegram  Telegram        `mapstructure:"telegram"`
}

// Load loads the service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Engine.Lookback == 0 {
		cfg.Engine.Lookback = 100
	}
	if cfg.Engine.ExternalTimeout == 0 {
		cfg.Engine.ExternalTimeout = 5 * time.Second
	}
	if cfg.Engine.MarketDataMaxRequestPerMinute == 0 {
		cfg.Engine.MarketDataMaxRequestPerMinute = 60
	}
	if cfg.Engine.PriceHistoryCacheTTL == 0 {
		cfg.Engine.PriceHistoryCacheTTL = 5 * time.Minute
	}
	if cfg.Engine.QuoteCacheTTL == 0 {
		cfg.Engine.QuoteCacheTTL = time.Minute
	}
}
