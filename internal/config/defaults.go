package config

import "time"

// Fallbacks for fields no layer provided.
const (
	defaultBaseURL   = "http://localhost:8080"
	defaultTimeout   = 15 * time.Second
	defaultDSN       = "habitkeeper.db"
	defaultInterval  = 5 * time.Minute
	defaultBgMinimum = 15 * time.Minute
)

func applyDefaults(cfg *Config) {
	if cfg.Adapter.BaseURL == "" {
		cfg.Adapter.BaseURL = defaultBaseURL
	}
	if cfg.Adapter.RequestTimeout <= 0 {
		cfg.Adapter.RequestTimeout = defaultTimeout
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = defaultDSN
	}
	if cfg.Sync.Interval <= 0 {
		cfg.Sync.Interval = defaultInterval
	}
	if cfg.Sync.BackgroundInterval <= 0 {
		cfg.Sync.BackgroundInterval = defaultBgMinimum
	}
}
