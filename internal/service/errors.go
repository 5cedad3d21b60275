package service

import "errors"

var (
	// ErrNotFound marks an update of an entity that does not exist locally.
	ErrNotFound = errors.New("record not found")

	// ErrNotFoundAfterWrite marks a create whose confirming re-read returned
	// nothing; the write did not land.
	ErrNotFoundAfterWrite = errors.New("record missing after write")

	// ErrMissingAfterUpdate marks a record that vanished between an update
	// and its confirming re-read. Treated as a benign concurrent-deletion
	// race, not corruption.
	ErrMissingAfterUpdate = errors.New("record vanished during update")

	// ErrSkippedCooldown resolves trigger-driven sync requests that arrive
	// inside the failure cooldown window; the run never starts.
	ErrSkippedCooldown = errors.New("sync skipped: cooldown after repeated failures")

	// ErrSchedulerStopped resolves requests made against a stopped scheduler.
	ErrSchedulerStopped = errors.New("sync scheduler is stopped")

	// ErrSyncDisabled resolves requests while sync is administratively
	// disabled in configuration.
	ErrSyncDisabled = errors.New("sync is disabled")
)
