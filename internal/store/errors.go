package store

import "errors"

var (
	// ErrUnregisteredTable marks a lookup of a table name nobody registered.
	// This is a wiring defect, not a runtime condition to recover from.
	ErrUnregisteredTable = errors.New("table is not registered")

	// ErrPlatformUnsupported is returned by a storage provider on platforms
	// without a local database (e.g. a browser build).
	ErrPlatformUnsupported = errors.New("local database is not supported on this platform")

	// ErrRecordNotFound is returned by point lookups that matched nothing.
	ErrRecordNotFound = errors.New("record not found")
)
