package common

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment" validate:"oneof=development production test"`
	Server      ServerConfig  `toml:"server"`
	Logging     LoggingConfig `toml:"logging"`
	EODHD       EODHDConfig   `toml:"eodhd"`
	Finnhub     FinnhubConfig `toml:"finnhub"`
	FRED        FREDConfig    `toml:"fred"`
	Market      MarketConfig  `toml:"market"`
}

type ServerConfig struct {
	Port         int    `toml:"port" validate:"min=1,max=65535"`
	Host         string `toml:"host"`
	ReadTimeout  string `toml:"read_timeout"`  // e.g. "15s"
	WriteTimeout string `toml:"write_timeout"` // e.g. "60s"; population can take several provider round trips
}

type LoggingConfig struct {
	Level      string   `toml:"level" validate:"oneof=debug info warn error"`
	Output     []string `toml:"output" validate:"dive,oneof=stdout console file"`
	TimeFormat string   `toml:"time_format"`
}

// EODHDConfig configures statements, quotes and treasury yields.
type EODHDConfig struct {
	APIKey    string `toml:"api_key" validate:"required"`
	BaseURL   string `toml:"base_url" validate:"omitempty,url"`
	Exchange  string `toml:"exchange" validate:"required,alpha"`
	RateLimit int    `toml:"rate_limit" validate:"min=0"` // requests per minute, 0 = unlimited
	Timeout   string `toml:"timeout"`
}

// FinnhubConfig configures company and market news.
type FinnhubConfig struct {
	APIKey       string `toml:"api_key" validate:"required"`
	BaseURL      string `toml:"base_url" validate:"omitempty,url"`
	RateLimit    int    `toml:"rate_limit" validate:"min=0"`
	NewsLookback string `toml:"news_lookback"` // e.g. "168h"
}

// FREDConfig configures breakeven inflation scraping.
type FREDConfig struct {
	BaseURL   string `toml:"base_url" validate:"omitempty,url"`
	RateLimit int    `toml:"rate_limit" validate:"min=0"`
}

// MarketConfig holds CAPM and index settings.
type MarketConfig struct {
	MarketReturn    string `toml:"market_return" validate:"required,numeric"` // percent
	IndexSource     string `toml:"index_source" validate:"oneof=wikipedia file"`
	IndexURL        string `toml:"index_url" validate:"omitempty,url"`
	IndexFile       string `toml:"index_file" validate:"required_if=IndexSource file"`
	RefreshSchedule string `toml:"refresh_schedule"` // cron with seconds
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port:         8085,
			Host:         "localhost",
			ReadTimeout:  "15s",
			WriteTimeout: "90s",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05",
		},
		EODHD: EODHDConfig{
			BaseURL:   "https://eodhd.com/api",
			Exchange:  "US",
			RateLimit: 30,
			Timeout:   "30s",
		},
		Finnhub: FinnhubConfig{
			BaseURL:      "https://finnhub.io/api/v1",
			RateLimit:    60,
			NewsLookback: "168h",
		},
		FRED: FREDConfig{
			BaseURL:   "https://fred.stlouisfed.org/series",
			RateLimit: 30,
		},
		Market: MarketConfig{
			MarketReturn:    "5.6",
			IndexSource:     "wikipedia",
			IndexURL:        "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies",
			RefreshSchedule: "0 0 6 * * *",
		},
	}
}

// LoadFromFiles loads configuration with priority: default -> file1 -> file2 -> ... -> .env -> env.
// Later files override earlier files. CLI flags are applied afterwards with ApplyFlagOverrides.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	if err := LoadDotEnv(); err != nil {
		return nil, err
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadDotEnv loads variables from .env files into the process environment
// without overriding variables that are already set. Missing files are
// ignored. With no paths, ./.env is used.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("STOCKBOT_ENV"); env != "" {
		config.Environment = env
	}

	// Server
	if port := os.Getenv("STOCKBOT_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("STOCKBOT_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Logging
	if level := os.Getenv("STOCKBOT_LOG_LEVEL"); level != "" {
		config.Logging.Level = strings.ToLower(level)
	}
	if output := os.Getenv("STOCKBOT_LOG_OUTPUT"); output != "" {
		var outputs []string
		for _, o := range strings.Split(output, ",") {
			if o = strings.TrimSpace(o); o != "" {
				outputs = append(outputs, o)
			}
		}
		config.Logging.Output = outputs
	}

	// EODHD (EODHD_API_KEY is accepted as a fallback)
	if apiKey := os.Getenv("STOCKBOT_EODHD_API_KEY"); apiKey != "" {
		config.EODHD.APIKey = apiKey
	} else if apiKey := os.Getenv("EODHD_API_KEY"); apiKey != "" {
		config.EODHD.APIKey = apiKey
	}
	if baseURL := os.Getenv("STOCKBOT_EODHD_BASE_URL"); baseURL != "" {
		config.EODHD.BaseURL = baseURL
	}
	if exchange := os.Getenv("STOCKBOT_EODHD_EXCHANGE"); exchange != "" {
		config.EODHD.Exchange = strings.ToUpper(exchange)
	}
	if rl := os.Getenv("STOCKBOT_EODHD_RATE_LIMIT"); rl != "" {
		if n, err := strconv.Atoi(rl); err == nil {
			config.EODHD.RateLimit = n
		}
	}

	// Finnhub (FINNHUB_API_KEY is accepted as a fallback)
	if apiKey := os.Getenv("STOCKBOT_FINNHUB_API_KEY"); apiKey != "" {
		config.Finnhub.APIKey = apiKey
	} else if apiKey := os.Getenv("FINNHUB_API_KEY"); apiKey != "" {
		config.Finnhub.APIKey = apiKey
	}
	if baseURL := os.Getenv("STOCKBOT_FINNHUB_BASE_URL"); baseURL != "" {
		config.Finnhub.BaseURL = baseURL
	}
	if rl := os.Getenv("STOCKBOT_FINNHUB_RATE_LIMIT"); rl != "" {
		if n, err := strconv.Atoi(rl); err == nil {
			config.Finnhub.RateLimit = n
		}
	}
	if lookback := os.Getenv("STOCKBOT_FINNHUB_NEWS_LOOKBACK"); lookback != "" {
		config.Finnhub.NewsLookback = lookback
	}

	// FRED
	if baseURL := os.Getenv("STOCKBOT_FRED_BASE_URL"); baseURL != "" {
		config.FRED.BaseURL = baseURL
	}
	if rl := os.Getenv("STOCKBOT_FRED_RATE_LIMIT"); rl != "" {
		if n, err := strconv.Atoi(rl); err == nil {
			config.FRED.RateLimit = n
		}
	}

	// Market
	if mr := os.Getenv("STOCKBOT_MARKET_RETURN"); mr != "" {
		config.Market.MarketReturn = mr
	}
	if src := os.Getenv("STOCKBOT_INDEX_SOURCE"); src != "" {
		config.Market.IndexSource = strings.ToLower(src)
	}
	if file := os.Getenv("STOCKBOT_INDEX_FILE"); file != "" {
		config.Market.IndexFile = file
	}
	if schedule := os.Getenv("STOCKBOT_INDEX_SCHEDULE"); schedule != "" {
		config.Market.RefreshSchedule = schedule
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
// Zero values leave the config untouched.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks the configuration using go-playground/validator plus the
// duration and decimal fields validator cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	durations := map[string]string{
		"server.read_timeout":   c.Server.ReadTimeout,
		"server.write_timeout":  c.Server.WriteTimeout,
		"eodhd.timeout":         c.EODHD.Timeout,
		"finnhub.news_lookback": c.Finnhub.NewsLookback,
	}
	for name, v := range durations {
		if v == "" {
			continue
		}
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid configuration: %s: %w", name, err)
		}
	}
	return nil
}

// MarketReturn returns the configured market return as a decimal.
func (c *Config) MarketReturn() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(c.Market.MarketReturn)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("market.market_return: %w", err)
	}
	return d, nil
}

// Duration parses a duration setting, falling back when empty or invalid.
func Duration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
