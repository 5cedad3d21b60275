package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkhalin/habitkeeper/internal/logger"
	"github.com/dkhalin/habitkeeper/models"
)

func newOutboxMock(t *testing.T) (*OutboxRepository, sqlmock.Sqlmock, Querier) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewOutboxRepository(logger.Nop()), mock, db
}

func TestOutboxRepository_Enqueue(t *testing.T) {
	repo, mock, db := newOutboxMock(t)

	mock.ExpectExec("INSERT INTO outbox").
		WithArgs(sqlmock.AnyArg(), "habits", "h1", models.OpInsert, `{"name":"Read"}`, int64(3), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	id, err := repo.Enqueue(context.Background(), db, models.OutboxParams{
		TableName: "habits",
		RowID:     "h1",
		Operation: models.OpInsert,
		Payload:   `{"name":"Read"}`,
		Version:   3,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_GetPending_FIFO(t *testing.T) {
	repo, mock, db := newOutboxMock(t)

	older := time.Now().UTC().Add(-time.Minute).Format(time.RFC3339Nano)
	newer := time.Now().UTC().Format(time.RFC3339Nano)

	rows := sqlmock.NewRows([]string{"id", "table_name", "row_id", "operation", "payload", "version", "attempts", "created_at"}).
		AddRow("q1", "habits", "h1", models.OpInsert, "{}", 1, 0, older).
		AddRow("q2", "entries", "e1", models.OpUpdate, "{}", 2, 1, newer)

	mock.ExpectQuery("SELECT(.|\n)+FROM outbox").
		WithArgs(10).
		WillReturnRows(rows)

	got, err := repo.GetPending(context.Background(), db, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "q1", got[0].ID)
	assert.Equal(t, "q2", got[1].ID)
	assert.True(t, !got[1].CreatedAt.Before(got[0].CreatedAt))
	assert.Equal(t, int64(1), got[1].Attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_GetPending_Empty(t *testing.T) {
	repo, mock, db := newOutboxMock(t)

	mock.ExpectQuery("SELECT(.|\n)+FROM outbox").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "table_name", "row_id", "operation", "payload", "version", "attempts", "created_at"}))

	got, err := repo.GetPending(context.Background(), db, 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOutboxRepository_MarkProcessed(t *testing.T) {
	repo, mock, db := newOutboxMock(t)

	mock.ExpectExec(`DELETE FROM outbox WHERE id IN \(\?, \?\)`).
		WithArgs("q1", "q2").
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.MarkProcessed(context.Background(), db, []string{"q1", "q2"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkProcessed_EmptyNoop(t *testing.T) {
	repo, mock, db := newOutboxMock(t)

	// no expectations registered: any statement would fail the test
	require.NoError(t, repo.MarkProcessed(context.Background(), db, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_IncrementAttempts(t *testing.T) {
	repo, mock, db := newOutboxMock(t)

	mock.ExpectExec(`UPDATE outbox(.|\n)+attempts = attempts \+ 1`).
		WithArgs("q1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.IncrementAttempts(context.Background(), db, "q1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_CountPending(t *testing.T) {
	repo, mock, db := newOutboxMock(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM outbox`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := repo.CountPending(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestOutboxRepository_Clear(t *testing.T) {
	repo, mock, db := newOutboxMock(t)

	mock.ExpectExec(`DELETE FROM outbox WHERE table_name = \?`).
		WithArgs("habits").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM outbox`).
		WillReturnResult(sqlmock.NewResult(0, 9))

	require.NoError(t, repo.ClearTable(context.Background(), db, "habits"))
	require.NoError(t, repo.ClearAll(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
