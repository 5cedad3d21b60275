// Package config assembles the client configuration by merging
// environment variables, command-line flags and an optional JSON file,
// in that order of precedence.
package config

import (
	"time"
)

// Config is the top-level configuration for the habitkeeper client.
//
// Struct tags:
//   - envPrefix — prefix applied to nested env lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type Config struct {
	// Adapter holds the remote sync endpoint settings.
	Adapter Adapter `envPrefix:"ADAPTER_" json:"adapter"`

	// Storage holds the local persistence settings.
	Storage Storage `envPrefix:"STORAGE_" json:"storage"`

	// Sync holds the sync engine and scheduler settings.
	Sync Sync `envPrefix:"SYNC_" json:"sync"`

	// JSONFilePath is the optional path to a JSON configuration file,
	// merged on top of env and flag values when non-empty.
	// Env: CONFIG; flag: -c / -config.
	JSONFilePath string `env:"CONFIG" json:"-"`
}

// Adapter configures the remote push/pull endpoint client.
type Adapter struct {
	// BaseURL is the remote sync endpoint base URL.
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL" json:"base_url"`

	// RequestTimeout bounds each outbound push/pull request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" json:"request_timeout"`
}

// Storage configures local persistence.
type Storage struct {
	// DSN is the SQLite database path; ":memory:" selects an in-memory
	// database. Env: STORAGE_DSN
	DSN string `env:"DSN" json:"dsn"`
}

// Sync configures the engine and the scheduler.
type Sync struct {
	// Enabled gates the whole sync subsystem.
	// Env: SYNC_ENABLED
	Enabled bool `env:"ENABLED" json:"enabled"`

	// AutoStart launches the trigger workers at startup.
	// Env: SYNC_AUTO_START
	AutoStart bool `env:"AUTO_START" json:"auto_start"`

	// BatchSize caps outbox records per push.
	// Env: SYNC_BATCH_SIZE
	BatchSize int `env:"BATCH_SIZE" json:"batch_size"`

	// Interval is the periodic trigger cadence.
	// Env: SYNC_INTERVAL
	Interval time.Duration `env:"INTERVAL" json:"interval"`

	// BackgroundInterval is the minimum interval requested from the OS
	// background task scheduler. Env: SYNC_BACKGROUND_INTERVAL
	BackgroundInterval time.Duration `env:"BACKGROUND_INTERVAL" json:"background_interval"`

	// BackoffBase is the first failure cooldown; doubled per consecutive
	// failure. Env: SYNC_BACKOFF_BASE
	BackoffBase time.Duration `env:"BACKOFF_BASE" json:"backoff_base"`

	// BackoffMax caps the failure cooldown.
	// Env: SYNC_BACKOFF_MAX
	BackoffMax time.Duration `env:"BACKOFF_MAX" json:"backoff_max"`
}

// GetConfig builds the merged, validated configuration.
func GetConfig() (*Config, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}

func (c *Config) validate() error {
	if c.Storage.DSN == "" {
		return ErrNoStorageDSN
	}
	if c.Sync.BatchSize < 0 {
		return ErrInvalidBatchSize
	}
	return nil
}
