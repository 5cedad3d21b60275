package models

import (
	"encoding/json"
	"time"
)

// SyncStatus is the aggregate engine state exposed to the application.
type SyncStatus string

const (
	SyncIdle    SyncStatus = "idle"
	SyncSyncing SyncStatus = "syncing"
	SyncError   SyncStatus = "error"
)

// SyncSnapshot is a point-in-time copy of the engine state. Individual
// outbox records are never exposed; only the aggregate queue size is.
type SyncSnapshot struct {
	Status       SyncStatus
	QueueSize    int
	LastSyncedAt *time.Time
	LastError    error
}

// RemoteMutation is one element of a push request, derived from an
// OutboxRecord: the entity id, target table, operation, the version after
// the originating local write, and the payload snapshot as parsed JSON.
type RemoteMutation struct {
	ID        string          `json:"id"`
	Table     string          `json:"table"`
	Operation string          `json:"operation"`
	Version   int64           `json:"version"`
	Payload   json.RawMessage `json:"payload"`
}

// PushRequest is the body sent to the push endpoint.
type PushRequest struct {
	Mutations []RemoteMutation `json:"mutations"`
}

// PushResponse is the push endpoint's reply. Updated optionally carries
// server-enriched rows to be applied back into local storage.
type PushResponse struct {
	Success bool             `json:"success"`
	Updated map[string][]Row `json:"updated,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// PullRequest carries the per-table cursor map; nil marks a table that has
// never been pulled (or was reset).
type PullRequest struct {
	Cursors map[string]*string `json:"cursors"`
}

// PullResponse carries, per table, the remote rows since the presented
// cursor and the new watermark. A nil cursor tells the client to clear its
// stored watermark for that table.
type PullResponse struct {
	Success bool               `json:"success"`
	Cursors map[string]*string `json:"cursors"`
	Records map[string][]Row   `json:"records"`
	Error   string             `json:"error,omitempty"`
}
