package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-url remote sync endpoint base URL
//	-d local database path
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-sync-interval periodic sync interval (e.g., "5m")
//	-sync-batch outbox batch size
//	-sync-enabled enable the sync subsystem
//	-sync-autostart start trigger workers on launch
func ParseFlags() *Config {
	var baseURL string
	var databaseDSN string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var syncInterval time.Duration
	var syncBatch int
	var syncEnabled bool
	var syncAutoStart bool

	flag.StringVar(&baseURL, "url", "", "Remote sync endpoint base URL")
	flag.StringVar(&databaseDSN, "d", "", "Local database path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Periodic sync interval (e.g., 5m)")
	flag.IntVar(&syncBatch, "sync-batch", 0, "Outbox batch size")
	flag.BoolVar(&syncEnabled, "sync-enabled", false, "Enable the sync subsystem")
	flag.BoolVar(&syncAutoStart, "sync-autostart", false, "Start trigger workers on launch")

	flag.Parse()

	return &Config{
		Adapter: Adapter{
			BaseURL:        baseURL,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DSN: databaseDSN,
		},
		Sync: Sync{
			Enabled:   syncEnabled,
			AutoStart: syncAutoStart,
			BatchSize: syncBatch,
			Interval:  syncInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
