package service

import (
	"context"
	"time"

	"github.com/dkhalin/habitkeeper/internal/adapter"
	"github.com/dkhalin/habitkeeper/internal/logger"
	"github.com/dkhalin/habitkeeper/internal/store"
	"github.com/dkhalin/habitkeeper/internal/workers"
	"github.com/dkhalin/habitkeeper/models"
)

// SyncOptions configures the sync subsystem as one unit.
type SyncOptions struct {
	// BatchSize caps outbox records per push; <= 0 means DefaultBatchSize.
	BatchSize int
	// Enabled gates the whole subsystem; when false no trigger runs and
	// TriggerSync fails with ErrSyncDisabled.
	Enabled bool
	// Interval is the periodic trigger cadence.
	Interval time.Duration
	// AutoStart launches the trigger workers at construction.
	AutoStart bool
	// BackgroundInterval is the minimum interval requested from the OS
	// background scheduler.
	BackgroundInterval time.Duration
	// Lifecycle, when set, wires the app-foreground trigger.
	Lifecycle workers.LifecycleEvents
	// Registrar, when set, wires the OS background task trigger.
	Registrar workers.BackgroundTaskRegistrar
	// Scheduler tunes the failure backoff.
	Scheduler SchedulerConfig
}

// SyncController owns the engine, the scheduler and the trigger workers,
// and is the single sync surface exposed to the rest of the application:
// aggregate status, a manual trigger, and administrative resets.
type SyncController struct {
	storages  *store.ClientStorages
	engine    *SyncEngine
	scheduler *SyncScheduler
	workers   *workers.Workers
	enabled   bool
	logger    *logger.Logger
}

// NewSyncController wires engine, scheduler and triggers. With AutoStart
// set the triggers begin firing immediately.
func NewSyncController(storages *store.ClientStorages, driver adapter.RemoteDriver, opts SyncOptions, log *logger.Logger) *SyncController {
	engine := NewSyncEngine(storages, driver, opts.BatchSize, log)
	scheduler := NewSyncScheduler(engine, opts.Scheduler, log)

	trigger := workers.TriggerFunc(func(force bool) <-chan error {
		return scheduler.Request(force)
	})

	ws := []workers.Worker{workers.NewTickerWorker(trigger, opts.Interval, log)}
	if opts.Lifecycle != nil {
		ws = append(ws, workers.NewForegroundWorker(trigger, opts.Lifecycle, log))
	}
	if opts.Registrar != nil {
		ws = append(ws, workers.NewBackgroundTaskWorker(trigger, opts.Registrar, opts.BackgroundInterval, log))
	}

	c := &SyncController{
		storages:  storages,
		engine:    engine,
		scheduler: scheduler,
		workers:   workers.NewWorkers(ws...),
		enabled:   opts.Enabled,
		logger:    log,
	}

	if opts.AutoStart {
		c.Start()
	}
	return c
}

// Start launches the trigger workers. A disabled controller stays idle.
func (c *SyncController) Start() {
	if !c.enabled {
		c.logger.Info().Str("func", "SyncController.Start").Msg("sync disabled, triggers not started")
		return
	}
	c.workers.Run()
}

// Stop tears down triggers and waits out the in-flight run, whose result
// is discarded.
func (c *SyncController) Stop() {
	c.workers.Stop()
	c.scheduler.Stop()
}

// Status returns the engine's aggregate snapshot.
func (c *SyncController) Status() models.SyncSnapshot {
	return c.engine.Snapshot()
}

// PendingMutations reports the current depth of the outbox queue, for
// display alongside Status.
func (c *SyncController) PendingMutations(ctx context.Context) (int, error) {
	db, err := c.storages.Provider.Acquire()
	if err != nil {
		return 0, err
	}
	return c.storages.Outbox.CountPending(ctx, db)
}

// TriggerSync forces a run, bypassing any failure cooldown, and waits for
// the outcome of the run that satisfied the request.
func (c *SyncController) TriggerSync(ctx context.Context) error {
	if !c.enabled {
		return ErrSyncDisabled
	}

	select {
	case err := <-c.scheduler.Request(true):
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ResetCursors drops every stored pull watermark so the next pull starts
// from scratch for all tables.
func (c *SyncController) ResetCursors(ctx context.Context) error {
	db, err := c.storages.Provider.Acquire()
	if err != nil {
		return err
	}
	return c.storages.Cursors.Reset(ctx, db)
}

// ClearOutbox purges the whole pending queue. Administrative only.
func (c *SyncController) ClearOutbox(ctx context.Context) error {
	db, err := c.storages.Provider.Acquire()
	if err != nil {
		return err
	}
	return c.storages.Outbox.ClearAll(ctx, db)
}

// ClearOutboxTable purges pending mutations for one table.
func (c *SyncController) ClearOutboxTable(ctx context.Context, table string) error {
	db, err := c.storages.Provider.Acquire()
	if err != nil {
		return err
	}
	return c.storages.Outbox.ClearTable(ctx, db, table)
}
