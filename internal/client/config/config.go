package config

import "time"

// Config holds runtime settings for the bloodlink CLI.
//
// Fields:
//   - APIBaseURL: base URL of the REST backend, including the /api prefix.
//   - RequestTimeout: upper bound for a single outbound call.
//   - DatabasePath: sqlite file holding the persisted session and local offers.
//   - LogLevel: debug, info, warn or error.
//   - RefreshPath: endpoint exchanging a refresh token for a new access token.
//   - MetricsAddr: listen address of the /metrics endpoint; empty disables it.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	DatabasePath   string
	LogLevel       string
	RefreshPath    string
	MetricsAddr    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000/api"
	c.RequestTimeout = 15 * time.Second
	c.DatabasePath = "bloodlink.db"
	c.LogLevel = "info"
	c.RefreshPath = "/token/refresh/"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
