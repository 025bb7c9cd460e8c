package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func validConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.EODHD.APIKey = "eod"
	cfg.Finnhub.APIKey = "fh"
	return cfg
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, 8085, cfg.Server.Port)
	assert.Equal(t, 30, cfg.EODHD.RateLimit)
	assert.Equal(t, 60, cfg.Finnhub.RateLimit)
	assert.Equal(t, "US", cfg.EODHD.Exchange)

	mr, err := cfg.MarketReturn()
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("5.6").Equal(mr))
}

func TestLoadFromFiles_LaterFilesOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	base := writeFile(t, dir, "base.toml", `
[server]
port = 9000
host = "0.0.0.0"

[eodhd]
api_key = "from-base"
rate_limit = 10
`)
	override := writeFile(t, dir, "override.toml", `
[eodhd]
api_key = "from-override"

[market]
market_return = "6.1"
`)

	cfg, err := LoadFromFiles(base, override)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "from-override", cfg.EODHD.APIKey)
	assert.Equal(t, 10, cfg.EODHD.RateLimit)
	assert.Equal(t, "6.1", cfg.Market.MarketReturn)
	assert.Equal(t, 60, cfg.Finnhub.RateLimit)
}

func TestLoadFromFiles_MissingFile(t *testing.T) {
	_, err := LoadFromFiles(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadFromFiles_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STOCKBOT_SERVER_PORT", "9999")
	t.Setenv("STOCKBOT_LOG_LEVEL", "DEBUG")
	t.Setenv("STOCKBOT_LOG_OUTPUT", "stdout, file")
	t.Setenv("STOCKBOT_EODHD_API_KEY", "")
	t.Setenv("EODHD_API_KEY", "fallback-key")
	t.Setenv("STOCKBOT_FINNHUB_API_KEY", "fh-key")
	t.Setenv("STOCKBOT_INDEX_SOURCE", "File")

	cfg, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"stdout", "file"}, cfg.Logging.Output)
	assert.Equal(t, "fallback-key", cfg.EODHD.APIKey)
	assert.Equal(t, "fh-key", cfg.Finnhub.APIKey)
	assert.Equal(t, "file", cfg.Market.IndexSource)
}

func TestLoadFromFiles_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, ".env", "STOCKBOT_FINNHUB_API_KEY=from-dotenv\n")
	t.Setenv("STOCKBOT_FINNHUB_API_KEY", "")
	os.Unsetenv("STOCKBOT_FINNHUB_API_KEY")

	cfg, err := LoadFromFiles()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Finnhub.APIKey)
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := NewDefaultConfig()

	ApplyFlagOverrides(cfg, 0, "")
	assert.Equal(t, 8085, cfg.Server.Port)

	ApplyFlagOverrides(cfg, 7000, "example.local")
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "example.local", cfg.Server.Host)
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing eodhd key", func(c *Config) { c.EODHD.APIKey = "" }},
		{"missing finnhub key", func(c *Config) { c.Finnhub.APIKey = "" }},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
		{"bad output", func(c *Config) { c.Logging.Output = []string{"syslog"} }},
		{"bad market return", func(c *Config) { c.Market.MarketReturn = "lots" }},
		{"file index without path", func(c *Config) { c.Market.IndexSource = "file" }},
		{"unknown index source", func(c *Config) { c.Market.IndexSource = "bloomberg" }},
		{"bad duration", func(c *Config) { c.Finnhub.NewsLookback = "a week" }},
		{"bad base url", func(c *Config) { c.EODHD.BaseURL = "not a url" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDuration(t *testing.T) {
	assert.Equal(t, "5s", Duration("5s", 0).String())
	assert.Equal(t, "1m0s", Duration("", 60e9).String())
	assert.Equal(t, "1m0s", Duration("soon", 60e9).String())
}
