package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/bloodlink/internal/flagx"
	"github.com/dmitrijs2005/bloodlink/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "empty" so absent keys keep defaults.
type JsonConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	DatabasePath   *string         `json:"database_path"`
	LogLevel       *string         `json:"log_level"`
	RefreshPath    *string         `json:"refresh_path"`
	MetricsAddr    *string         `json:"metrics_addr"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c / -config. Without the flag it is a no-op. Read or decode errors panic.
func parseJson(cfg *Config) {
	path := flagx.JsonConfigFlags(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.RefreshPath != nil {
		cfg.RefreshPath = *jc.RefreshPath
	}
	if jc.MetricsAddr != nil {
		cfg.MetricsAddr = *jc.MetricsAddr
	}
}
