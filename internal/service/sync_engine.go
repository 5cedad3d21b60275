package service

import (
	"context"
	"sync"
	"time"

	"github.com/dkhalin/habitkeeper/internal/adapter"
	"github.com/dkhalin/habitkeeper/internal/logger"
	"github.com/dkhalin/habitkeeper/internal/store"
	"github.com/dkhalin/habitkeeper/models"
)

// DefaultBatchSize caps how many outbox records one push carries.
const DefaultBatchSize = 50

// SyncEngine executes one "push pending mutations, then pull remote
// deltas" cycle and reports aggregate state. It is the only component
// that dequeues and deletes outbox records and the serialization in the
// scheduler guarantees at most one cycle runs at a time.
type SyncEngine struct {
	storages  *store.ClientStorages
	outbox    OutboxQueue
	driver    adapter.RemoteDriver
	batchSize int
	logger    *logger.Logger

	mu           sync.RWMutex
	status       models.SyncStatus
	queueSize    int
	lastSyncedAt *time.Time
	lastError    error
}

// NewSyncEngine wires an engine. batchSize <= 0 selects DefaultBatchSize.
func NewSyncEngine(storages *store.ClientStorages, driver adapter.RemoteDriver, batchSize int, log *logger.Logger) *SyncEngine {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &SyncEngine{
		storages:  storages,
		outbox:    storages.Outbox,
		driver:    driver,
		batchSize: batchSize,
		status:    models.SyncIdle,
		logger:    log,
	}
}

// Snapshot returns a copy of the aggregate engine state.
func (e *SyncEngine) Snapshot() models.SyncSnapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return models.SyncSnapshot{
		Status:       e.status,
		QueueSize:    e.queueSize,
		LastSyncedAt: e.lastSyncedAt,
		LastError:    e.lastError,
	}
}

// ProcessOutbox pushes one FIFO batch of pending mutations. With nothing
// pending it records success without any network call. On push failure
// every record in the batch keeps its place in the queue with attempts
// incremented, and the error propagates to the caller.
func (e *SyncEngine) ProcessOutbox(ctx context.Context) error {
	e.setSyncing()

	db, err := e.storages.Provider.Acquire()
	if err != nil {
		e.recordError(err)
		return err
	}

	batch, err := e.outbox.GetPending(ctx, db, e.batchSize)
	if err != nil {
		e.recordError(err)
		return err
	}
	e.setQueueSize(len(batch))

	if len(batch) == 0 {
		e.recordSuccess()
		return nil
	}

	if err = e.driver.Push(ctx, batch); err != nil {
		for _, rec := range batch {
			if incErr := e.outbox.IncrementAttempts(ctx, db, rec.ID); incErr != nil {
				e.logger.Err(incErr).
					Str("func", "SyncEngine.ProcessOutbox").
					Str("outbox_id", rec.ID).
					Msg("failed to increment attempts after push failure")
			}
		}
		e.recordError(err)
		return err
	}

	ids := make([]string, len(batch))
	for i, rec := range batch {
		ids[i] = rec.ID
	}
	// Only the originally-read ids leave the queue; records enqueued while
	// the push was in flight survive for the next run.
	if err = e.outbox.MarkProcessed(ctx, db, ids); err != nil {
		e.recordError(err)
		return err
	}

	e.setQueueSize(0)
	e.recordSuccess()

	e.logger.Debug().
		Str("func", "SyncEngine.ProcessOutbox").
		Int("pushed", len(batch)).
		Msg("outbox batch pushed")

	return nil
}

// RunSync executes one full cycle: push, then pull. A pull failure does
// not undo an already-successful push.
func (e *SyncEngine) RunSync(ctx context.Context) error {
	if err := e.ProcessOutbox(ctx); err != nil {
		return err
	}

	e.setSyncing()
	if err := e.driver.Pull(ctx); err != nil {
		e.recordError(err)
		return err
	}

	e.recordSuccess()
	return nil
}

func (e *SyncEngine) setSyncing() {
	e.mu.Lock()
	e.status = models.SyncSyncing
	e.mu.Unlock()
}

func (e *SyncEngine) setQueueSize(n int) {
	e.mu.Lock()
	e.queueSize = n
	e.mu.Unlock()
}

func (e *SyncEngine) recordSuccess() {
	now := time.Now()
	e.mu.Lock()
	e.status = models.SyncIdle
	e.lastSyncedAt = &now
	e.lastError = nil
	e.mu.Unlock()
}

func (e *SyncEngine) recordError(err error) {
	e.mu.Lock()
	e.status = models.SyncError
	e.lastError = err
	e.mu.Unlock()
}
