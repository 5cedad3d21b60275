package config

import "errors"

var (
	ErrNoStorageDSN     = errors.New("storage DSN is required")
	ErrInvalidBatchSize = errors.New("sync batch size cannot be negative")
)
