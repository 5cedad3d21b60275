package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dkhalin/habitkeeper/internal/logger"
	"github.com/dkhalin/habitkeeper/models"
)

// outboxTimeLayout pads the fractional second to a fixed nine digits.
// created_at is a TEXT column ordered lexicographically, and RFC3339Nano
// trims trailing zeros, so "...01.123Z" would sort after "...01.1234Z"
// even though it is earlier. Fixed width keeps the sort chronological.
const outboxTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// OutboxRepository is the durable FIFO mailbox of not-yet-transmitted
// local mutations. Enqueue happens synchronously with the originating
// local write; dequeue and delete happen only inside a sync run.
type OutboxRepository struct {
	logger *logger.Logger
}

// NewOutboxRepository constructs the repository.
func NewOutboxRepository(log *logger.Logger) *OutboxRepository {
	return &OutboxRepository{logger: log}
}

// Enqueue appends one record with attempts = 0 and returns the generated
// queue-entry id. created_at is stored with full nanosecond precision so
// the FIFO order survives bursts within one wall-clock second.
func (o *OutboxRepository) Enqueue(ctx context.Context, q Querier, params models.OutboxParams) (string, error) {
	id := uuid.NewString()
	createdAt := time.Now().UTC().Format(outboxTimeLayout)

	_, err := q.ExecContext(ctx, enqueueOutboxRecord,
		id,
		params.TableName,
		params.RowID,
		params.Operation,
		params.Payload,
		params.Version,
		createdAt,
	)
	if err != nil {
		o.logger.Err(err).
			Str("func", "OutboxRepository.Enqueue").
			Str("table", params.TableName).
			Str("row_id", params.RowID).
			Msg("failed to enqueue outbox record")
		return "", fmt.Errorf("enqueue outbox record for %s/%s: %w", params.TableName, params.RowID, err)
	}

	return id, nil
}

// GetPending returns up to limit records in non-decreasing created_at
// order, oldest first, regardless of entity or table.
func (o *OutboxRepository) GetPending(ctx context.Context, q Querier, limit int) ([]models.OutboxRecord, error) {
	rows, err := q.QueryContext(ctx, getPendingOutboxRecords, limit)
	if err != nil {
		o.logger.Err(err).Str("func", "OutboxRepository.GetPending").Msg("failed to query pending records")
		return nil, fmt.Errorf("query pending outbox records: %w", err)
	}
	defer rows.Close()

	var records []models.OutboxRecord
	for rows.Next() {
		var (
			rec       models.OutboxRecord
			createdAt string
		)
		if err = rows.Scan(
			&rec.ID,
			&rec.TableName,
			&rec.RowID,
			&rec.Operation,
			&rec.Payload,
			&rec.Version,
			&rec.Attempts,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan outbox record: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// MarkProcessed deletes exactly the given queue-entry ids. Records
// enqueued while a push was in flight keep ids outside the processed set
// and therefore survive. A no-op on an empty list.
func (o *OutboxRepository) MarkProcessed(ctx context.Context, q Querier, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	_, err := q.ExecContext(ctx, "DELETE FROM outbox WHERE id IN ("+placeholders+");", args...)
	if err != nil {
		o.logger.Err(err).
			Str("func", "OutboxRepository.MarkProcessed").
			Int("count", len(ids)).
			Msg("failed to delete processed records")
		return fmt.Errorf("delete processed outbox records: %w", err)
	}
	return nil
}

// IncrementAttempts bumps the failure counter of one record after an
// unsuccessful push. The record itself is retained.
func (o *OutboxRepository) IncrementAttempts(ctx context.Context, q Querier, id string) error {
	if _, err := q.ExecContext(ctx, incrementOutboxAttempts, id); err != nil {
		o.logger.Err(err).
			Str("func", "OutboxRepository.IncrementAttempts").
			Str("id", id).
			Msg("failed to increment attempts")
		return fmt.Errorf("increment outbox attempts for %s: %w", id, err)
	}
	return nil
}

// CountPending returns the total number of queued records.
func (o *OutboxRepository) CountPending(ctx context.Context, q Querier) (int, error) {
	var n int
	if err := q.QueryRowContext(ctx, countPendingOutboxRecords).Scan(&n); err != nil {
		return 0, fmt.Errorf("count pending outbox records: %w", err)
	}
	return n, nil
}

// ClearTable purges every queued mutation targeting table. Administrative
// only (account reset, sign-out); never invoked by the sync path.
func (o *OutboxRepository) ClearTable(ctx context.Context, q Querier, table string) error {
	if _, err := q.ExecContext(ctx, clearOutboxTable, table); err != nil {
		return fmt.Errorf("clear outbox for table %s: %w", table, err)
	}
	return nil
}

// ClearAll purges the whole queue. Administrative only.
func (o *OutboxRepository) ClearAll(ctx context.Context, q Querier) error {
	if _, err := q.ExecContext(ctx, clearOutboxAll); err != nil {
		return fmt.Errorf("clear outbox: %w", err)
	}
	return nil
}
