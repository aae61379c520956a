// Package config loads runtime configuration for the bloodlink CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the REST backend
//	-t int      request timeout (seconds)
//	-d string   path of the local sqlite database
//	-l string   log level
//	-m string   listen address of the /metrics endpoint (disabled when empty)
//
// # JSON schema
//
// Timeouts use timex.Duration, so values can be strings like "15s" or
// integer nanoseconds. Keys missing from the file keep their defaults:
//
//	{
//	  "api_base_url": "http://127.0.0.1:8000/api",
//	  "request_timeout": "15s",
//	  "database_path": "bloodlink.db",
//	  "log_level": "info",
//	  "refresh_path": "/token/refresh/",
//	  "metrics_addr": "127.0.0.1:9100"
//	}
package config
