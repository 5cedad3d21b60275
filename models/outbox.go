package models

import "time"

// Outbox operations. Any local write that sets deleted_at enqueues
// OpDelete, uniformly across entity kinds.
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// OutboxRecord is one durable queue entry describing a local mutation
// awaiting transmission. ID identifies the queue entry itself; RowID is
// the mutated entity. CreatedAt is the FIFO ordering key.
type OutboxRecord struct {
	ID        string    `json:"id"`
	TableName string    `json:"tableName"`
	RowID     string    `json:"rowId"`
	Operation string    `json:"operation"`
	Payload   string    `json:"payload"`
	Version   int64     `json:"version"`
	Attempts  int64     `json:"attempts"`
	CreatedAt time.Time `json:"createdAt"`
}

// OutboxParams carries the fields needed to enqueue one mutation.
// Payload is the serialized snapshot of the fields to transmit.
type OutboxParams struct {
	TableName string
	RowID     string
	Operation string
	Payload   string
	Version   int64
}
