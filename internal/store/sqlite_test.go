package store

import (
	"context"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkhalin/habitkeeper/internal/logger"
	"github.com/dkhalin/habitkeeper/models"
)

func newSQLiteStorages(t *testing.T) (*ClientStorages, *DB) {
	t.Helper()

	s, err := NewClientStorages(context.Background(), filepath.Join(t.TempDir(), "client.db"), logger.Nop())
	require.NoError(t, err)

	db, err := s.Provider.Acquire()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return s, db
}

func TestOutboxRepository_GetPending_OrderSurvivesFractionWidth(t *testing.T) {
	ctx := context.Background()
	s, db := newSQLiteStorages(t)

	// Three timestamps in the same wall-clock second whose RFC3339Nano
	// renditions sort the wrong way round: a whole second, then a fraction
	// a trimmed form would print as ".123", then one it would print as
	// ".1234". The fixed-width column must still order them chronologically.
	base := time.Date(2026, time.August, 29, 12, 0, 1, 0, time.UTC)
	stamps := []struct {
		rowID string
		at    time.Time
	}{
		{"first", base},
		{"second", base.Add(123000000 * time.Nanosecond)},
		{"third", base.Add(123400000 * time.Nanosecond)},
	}

	// Inserted newest first so the ORDER BY does the work.
	for i := len(stamps) - 1; i >= 0; i-- {
		_, err := db.ExecContext(ctx, enqueueOutboxRecord,
			"q-"+stamps[i].rowID, models.TableHabits, stamps[i].rowID,
			models.OpInsert, "{}", 1, stamps[i].at.Format(outboxTimeLayout))
		require.NoError(t, err)
	}

	got, err := s.Outbox.GetPending(ctx, db, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].RowID)
	assert.Equal(t, "second", got[1].RowID)
	assert.Equal(t, "third", got[2].RowID)
	assert.True(t, got[0].CreatedAt.Before(got[1].CreatedAt))
	assert.True(t, got[1].CreatedAt.Before(got[2].CreatedAt))
}

func TestOutboxRepository_Enqueue_StoresFixedWidthTimestamp(t *testing.T) {
	ctx := context.Background()
	s, db := newSQLiteStorages(t)

	id, err := s.Outbox.Enqueue(ctx, db, models.OutboxParams{
		TableName: models.TableHabits,
		RowID:     "h1",
		Operation: models.OpInsert,
		Payload:   "{}",
		Version:   1,
	})
	require.NoError(t, err)

	var createdAt string
	require.NoError(t, db.QueryRowContext(ctx, "SELECT created_at FROM outbox WHERE id = ?;", id).Scan(&createdAt))
	assert.Regexp(t, regexp.MustCompile(`\.\d{9}Z$`), createdAt)
}

func TestRegistry_UpsertRecords_SameIDConvergesToOneRow(t *testing.T) {
	ctx := context.Background()
	s, db := newSQLiteStorages(t)

	now := models.FormatTime(time.Now().UTC())
	original := models.Row{
		"id": "h1", "user_id": "u1", "version": int64(1),
		"name": "Read", "cadence": "daily",
		"created_at": now, "updated_at": now,
	}
	require.NoError(t, s.Registry.UpsertRecords(ctx, db, models.TableHabits, []models.Row{original}))

	updated := original.Clone()
	updated["name"] = "Read books"
	updated["version"] = int64(2)
	require.NoError(t, s.Registry.UpsertRecords(ctx, db, models.TableHabits, []models.Row{updated}))

	rows, err := s.Registry.SelectByUser(ctx, db, models.TableHabits, "u1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Read books", rows[0].String("name"))
	assert.Equal(t, int64(2), rows[0].Int64("version"))
}
