package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dkhalin/habitkeeper/internal/logger"
	"github.com/dkhalin/habitkeeper/internal/store"
	"github.com/dkhalin/habitkeeper/internal/validators"
	"github.com/dkhalin/habitkeeper/models"
)

// MutationOption adjusts a single mutation call.
type MutationOption func(*mutationSettings)

type mutationSettings struct {
	handle store.Querier
}

// WithHandle runs the mutation on an externally supplied storage handle
// (typically a *sql.Tx) so callers can compose it into a larger local
// transaction. Without it, each mutation runs in its own transaction.
func WithHandle(q store.Querier) MutationOption {
	return func(s *mutationSettings) { s.handle = q }
}

// Mutations is the single legitimate writer of the local entity tables.
// Every create, update and soft delete increments the record version,
// refreshes updated_at and enqueues a matching outbox record — both writes
// land, or neither does.
//
// One deliberate uniformity: ANY write that sets deleted_at enqueues
// operation "delete", whether it came through the dedicated soft-delete
// call or through the generic update path.
type Mutations struct {
	storages  *store.ClientStorages
	outbox    OutboxQueue
	validator *validators.EntityValidator
	logger    *logger.Logger
}

// NewMutations wires the mutation layer.
func NewMutations(storages *store.ClientStorages, log *logger.Logger) *Mutations {
	return &Mutations{
		storages:  storages,
		outbox:    storages.Outbox,
		validator: validators.NewEntityValidator(),
		logger:    log,
	}
}

// acquire performs the platform capability check. It runs before any
// validation or I/O so unsupported platforms fail fast and side-effect
// free with [store.ErrPlatformUnsupported].
func (m *Mutations) acquire() (*store.DB, error) {
	return m.storages.Provider.Acquire()
}

// exec runs fn on the externally supplied handle when one was given,
// otherwise inside a fresh transaction.
func (m *Mutations) exec(ctx context.Context, db *store.DB, opts []MutationOption, fn func(q store.Querier) error) error {
	var settings mutationSettings
	for _, opt := range opts {
		opt(&settings)
	}
	if settings.handle != nil {
		return fn(settings.handle)
	}
	return db.WithTx(ctx, fn)
}

// createRow writes one fully-populated row, re-reads it to confirm the
// write landed, and enqueues an insert outbox record carrying the full
// snapshot.
func (m *Mutations) createRow(ctx context.Context, q store.Querier, table string, row models.Row) (models.Row, error) {
	if err := m.storages.Registry.InsertRecord(ctx, q, table, row); err != nil {
		return nil, err
	}

	id := row.String("id")
	stored, err := m.storages.Registry.SelectByID(ctx, q, table, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s/%s", ErrNotFoundAfterWrite, table, id)
		}
		return nil, err
	}

	_, err = m.outbox.Enqueue(ctx, q, models.OutboxParams{
		TableName: table,
		RowID:     id,
		Operation: models.OpInsert,
		Payload:   models.EncodeJSON(stored),
		Version:   stored.Int64("version"),
	})
	if err != nil {
		return nil, err
	}

	m.logger.Debug().
		Str("func", "Mutations.createRow").
		Str("table", table).
		Str("row_id", id).
		Msg("created record")

	return stored, nil
}

// updateRow applies the changed columns to an existing row, bumping its
// version by exactly one. kind names the entity in not-found errors.
func (m *Mutations) updateRow(ctx context.Context, q store.Querier, table, kind, id string, changes models.Row) (models.Row, error) {
	existing, err := m.storages.Registry.SelectByID(ctx, q, table, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
		}
		return nil, err
	}

	write := changes.Clone()
	write["version"] = existing.Int64("version") + 1
	write["updated_at"] = models.FormatTime(time.Now())

	if err = m.storages.Registry.UpdateRecord(ctx, q, table, id, write); err != nil {
		return nil, err
	}

	stored, err := m.storages.Registry.SelectByID(ctx, q, table, id)
	if err != nil {
		if store.IsNotFound(err) {
			// Concurrent deletion between write and re-read.
			return nil, fmt.Errorf("%w: %s %s", ErrMissingAfterUpdate, kind, id)
		}
		return nil, err
	}

	operation := models.OpUpdate
	if write.Has("deleted_at") {
		operation = models.OpDelete
	}

	payload := write.Clone()
	payload["id"] = id
	payload["user_id"] = stored.String("user_id")

	_, err = m.outbox.Enqueue(ctx, q, models.OutboxParams{
		TableName: table,
		RowID:     id,
		Operation: operation,
		Payload:   models.EncodeJSON(payload),
		Version:   stored.Int64("version"),
	})
	if err != nil {
		return nil, err
	}

	return stored, nil
}

// softDeleteRow tombstones a row. A missing record yields (nil, nil) —
// "already gone" is not a failure — and enqueues nothing.
func (m *Mutations) softDeleteRow(ctx context.Context, q store.Querier, table, kind, id string) (models.Row, error) {
	_, err := m.storages.Registry.SelectByID(ctx, q, table, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	now := time.Now()
	return m.updateRow(ctx, q, table, kind, id, models.Row{
		"deleted_at": models.FormatTime(now),
	})
}

// validate runs the field rules; nothing below this call executes on a
// validation failure, so no database access occurs for bad input.
func (m *Mutations) validate(obj any) error {
	return m.validator.Validate(obj)
}

func orGenerateID(id string) string {
	if id != "" {
		return id
	}
	return newEntityID()
}
