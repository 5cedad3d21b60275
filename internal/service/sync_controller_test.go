package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dkhalin/habitkeeper/internal/logger"
	"github.com/dkhalin/habitkeeper/internal/mock"
	"github.com/dkhalin/habitkeeper/internal/service"
	"github.com/dkhalin/habitkeeper/internal/store"
	"github.com/dkhalin/habitkeeper/models"
)

type controllerFixture struct {
	controller *service.SyncController
	driver     *mock.MockRemoteDriver
	storages   *store.ClientStorages
	db         *store.DB
}

func newControllerFixture(t *testing.T, opts service.SyncOptions) *controllerFixture {
	t.Helper()

	storages, err := store.NewClientStorages(context.Background(), filepath.Join(t.TempDir(), "client.db"), logger.Nop())
	require.NoError(t, err)
	db, err := storages.Provider.Acquire()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	driver := mock.NewMockRemoteDriver(gomock.NewController(t))
	controller := service.NewSyncController(storages, driver, opts, logger.Nop())
	t.Cleanup(controller.Stop)

	return &controllerFixture{controller: controller, driver: driver, storages: storages, db: db}
}

func TestSyncController_TriggerSync(t *testing.T) {
	f := newControllerFixture(t, service.SyncOptions{Enabled: true, Interval: time.Hour})

	// nothing pending, so only the pull step reaches the driver
	f.driver.EXPECT().Pull(gomock.Any()).Return(nil)

	require.NoError(t, f.controller.TriggerSync(context.Background()))

	status := f.controller.Status()
	assert.Equal(t, models.SyncIdle, status.Status)
	assert.NotNil(t, status.LastSyncedAt)
}

func TestSyncController_TriggerSync_Disabled(t *testing.T) {
	f := newControllerFixture(t, service.SyncOptions{Enabled: false})

	err := f.controller.TriggerSync(context.Background())
	assert.ErrorIs(t, err, service.ErrSyncDisabled)
}

func TestSyncController_TriggerSync_ContextCancelled(t *testing.T) {
	f := newControllerFixture(t, service.SyncOptions{Enabled: true, Interval: time.Hour})

	release := make(chan struct{})
	f.driver.EXPECT().Pull(gomock.Any()).DoAndReturn(func(context.Context) error {
		<-release
		return nil
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.controller.TriggerSync(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSyncController_Status_InitialState(t *testing.T) {
	f := newControllerFixture(t, service.SyncOptions{Enabled: true, Interval: time.Hour})

	status := f.controller.Status()
	assert.Equal(t, models.SyncIdle, status.Status)
	assert.Zero(t, status.QueueSize)
	assert.Nil(t, status.LastSyncedAt)
	assert.NoError(t, status.LastError)
}

func TestSyncController_ResetCursors(t *testing.T) {
	f := newControllerFixture(t, service.SyncOptions{Enabled: true, Interval: time.Hour})
	ctx := context.Background()

	require.NoError(t, f.storages.Cursors.Set(ctx, f.db, models.TableHabits, "cur-1"))
	require.NoError(t, f.storages.Cursors.Set(ctx, f.db, models.TableEntries, "cur-2"))

	require.NoError(t, f.controller.ResetCursors(ctx))

	for _, table := range models.SyncTables {
		_, ok, err := f.storages.Cursors.Get(ctx, f.db, table)
		require.NoError(t, err)
		assert.False(t, ok, "cursor for %s should be gone", table)
	}
}

func TestSyncController_PendingMutations(t *testing.T) {
	f := newControllerFixture(t, service.SyncOptions{Enabled: true, Interval: time.Hour})
	ctx := context.Background()

	count, err := f.controller.PendingMutations(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	for _, rowID := range []string{"h1", "h2"} {
		_, err = f.storages.Outbox.Enqueue(ctx, f.db, models.OutboxParams{
			TableName: models.TableHabits, RowID: rowID, Operation: models.OpInsert, Payload: "{}", Version: 1,
		})
		require.NoError(t, err)
	}

	count, err = f.controller.PendingMutations(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSyncController_ClearOutbox(t *testing.T) {
	f := newControllerFixture(t, service.SyncOptions{Enabled: true, Interval: time.Hour})
	ctx := context.Background()

	enqueue := func(table, rowID string) {
		_, err := f.storages.Outbox.Enqueue(ctx, f.db, models.OutboxParams{
			TableName: table, RowID: rowID, Operation: models.OpInsert, Payload: "{}", Version: 1,
		})
		require.NoError(t, err)
	}
	enqueue(models.TableHabits, "h1")
	enqueue(models.TableHabits, "h2")
	enqueue(models.TableEntries, "e1")

	require.NoError(t, f.controller.ClearOutboxTable(ctx, models.TableHabits))
	count, err := f.storages.Outbox.CountPending(ctx, f.db)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, f.controller.ClearOutbox(ctx))
	count, err = f.storages.Outbox.CountPending(ctx, f.db)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSyncController_PeriodicTriggerViaTicker(t *testing.T) {
	f := newControllerFixture(t, service.SyncOptions{
		Enabled:   true,
		Interval:  20 * time.Millisecond,
		AutoStart: true,
	})

	synced := make(chan struct{}, 4)
	f.driver.EXPECT().Pull(gomock.Any()).DoAndReturn(func(context.Context) error {
		select {
		case synced <- struct{}{}:
		default:
		}
		return nil
	}).MinTimes(1)

	select {
	case <-synced:
	case <-time.After(5 * time.Second):
		t.Fatal("ticker never drove a sync cycle")
	}
}
