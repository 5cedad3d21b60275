package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dkhalin/habitkeeper/internal/logger"
)

// cursorKeyPrefix namespaces cursor entries inside the sync_state
// key-value table.
const cursorKeyPrefix = "sync:"

// CursorRepository persists, per synchronizable table, the opaque
// watermark of the last successfully pulled remote position. Cursors are
// written only by the pull step, once per run, after all table upserts.
type CursorRepository struct {
	logger *logger.Logger
}

// NewCursorRepository constructs the repository.
func NewCursorRepository(log *logger.Logger) *CursorRepository {
	return &CursorRepository{logger: log}
}

// Get returns the stored cursor for table. The second result reports
// presence; an unreadable or empty stored value is reported as absent
// rather than as an error.
func (c *CursorRepository) Get(ctx context.Context, q Querier, table string) (string, bool, error) {
	var value string
	err := q.QueryRowContext(ctx,
		"SELECT value FROM sync_state WHERE key = ?;", cursorKeyPrefix+table,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read cursor for %s: %w", table, err)
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return "", false, nil
	}
	return value, true, nil
}

// GetAll returns the cursor map for the given tables; tables without a
// stored cursor map to nil, signalling "pull from scratch".
func (c *CursorRepository) GetAll(ctx context.Context, q Querier, tables []string) (map[string]*string, error) {
	out := make(map[string]*string, len(tables))
	for _, table := range tables {
		value, ok, err := c.Get(ctx, q, table)
		if err != nil {
			return nil, err
		}
		if ok {
			v := value
			out[table] = &v
		} else {
			out[table] = nil
		}
	}
	return out, nil
}

// Set overwrites the cursor for table.
func (c *CursorRepository) Set(ctx context.Context, q Querier, table, cursor string) error {
	_, err := q.ExecContext(ctx,
		"INSERT INTO sync_state (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value;",
		cursorKeyPrefix+table, cursor,
	)
	if err != nil {
		c.logger.Err(err).
			Str("func", "CursorRepository.Set").
			Str("table", table).
			Msg("failed to store cursor")
		return fmt.Errorf("store cursor for %s: %w", table, err)
	}
	return nil
}

// Clear removes the cursor for table, so the next pull for that table
// starts from scratch.
func (c *CursorRepository) Clear(ctx context.Context, q Querier, table string) error {
	_, err := q.ExecContext(ctx,
		"DELETE FROM sync_state WHERE key = ?;", cursorKeyPrefix+table,
	)
	if err != nil {
		return fmt.Errorf("clear cursor for %s: %w", table, err)
	}
	return nil
}

// Reset removes every stored cursor. Administrative only.
func (c *CursorRepository) Reset(ctx context.Context, q Querier) error {
	_, err := q.ExecContext(ctx,
		"DELETE FROM sync_state WHERE key LIKE ?;", cursorKeyPrefix+"%",
	)
	if err != nil {
		return fmt.Errorf("reset cursors: %w", err)
	}
	return nil
}
