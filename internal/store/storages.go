package store

import (
	"context"
	"fmt"

	"github.com/dkhalin/habitkeeper/internal/logger"
)

// ClientStorages groups the client-side storage layer: the database
// handle provider, the generic table registry, the outbox queue and the
// cursor store. It is built once at startup and injected into the service
// layer.
type ClientStorages struct {
	Provider Provider
	Registry *Registry
	Outbox   *OutboxRepository
	Cursors  *CursorRepository
}

// NewClientStorages opens the local SQLite database at dsn, runs pending
// migrations and wires the repositories.
func NewClientStorages(ctx context.Context, dsn string, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Msg("creating client storages...")

	db, err := NewConnectSQLite(ctx, dsn, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Provider: NewProvider(db),
		Registry: DefaultRegistry(log),
		Outbox:   NewOutboxRepository(log),
		Cursors:  NewCursorRepository(log),
	}, nil
}

// NewUnsupportedStorages returns a storage layer for platforms without a
// local database. Every Acquire fails fast with ErrPlatformUnsupported;
// the repositories are still constructed so callers get the typed failure
// instead of a nil dereference.
func NewUnsupportedStorages(log *logger.Logger) *ClientStorages {
	return &ClientStorages{
		Provider: UnsupportedProvider(),
		Registry: DefaultRegistry(log),
		Outbox:   NewOutboxRepository(log),
		Cursors:  NewCursorRepository(log),
	}
}
