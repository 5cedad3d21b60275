package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration accepts both "300ms"/"5m" strings and raw nanosecond numbers
// in JSON config files.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		parsed, err := time.ParseDuration(asString)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", asString, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var asNumber int64
	if err := json.Unmarshal(data, &asNumber); err != nil {
		return fmt.Errorf("invalid duration value: %w", err)
	}
	*d = Duration(asNumber)
	return nil
}

type jsonConfig struct {
	Adapter struct {
		BaseURL        string   `json:"base_url"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Storage struct {
		DSN string `json:"dsn"`
	} `json:"storage,omitempty"`

	Sync struct {
		Enabled            bool     `json:"enabled"`
		AutoStart          bool     `json:"auto_start"`
		BatchSize          int      `json:"batch_size"`
		Interval           Duration `json:"interval"`
		BackgroundInterval Duration `json:"background_interval"`
		BackoffBase        Duration `json:"backoff_base"`
		BackoffMax         Duration `json:"backoff_max"`
	} `json:"sync,omitempty"`
}

func parseJSON(jsonFilePath string) (*Config, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg jsonConfig
	if err = json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json config: %w", err)
	}

	return &Config{
		Adapter: Adapter{
			BaseURL:        jsonCfg.Adapter.BaseURL,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Storage: Storage{
			DSN: jsonCfg.Storage.DSN,
		},
		Sync: Sync{
			Enabled:            jsonCfg.Sync.Enabled,
			AutoStart:          jsonCfg.Sync.AutoStart,
			BatchSize:          jsonCfg.Sync.BatchSize,
			Interval:           time.Duration(jsonCfg.Sync.Interval),
			BackgroundInterval: time.Duration(jsonCfg.Sync.BackgroundInterval),
			BackoffBase:        time.Duration(jsonCfg.Sync.BackoffBase),
			BackoffMax:         time.Duration(jsonCfg.Sync.BackoffMax),
		},
	}, nil
}
