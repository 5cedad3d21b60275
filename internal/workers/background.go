package workers

import (
	"context"
	"sync"
	"time"

	"github.com/dkhalin/habitkeeper/internal/logger"
)

// BackgroundTaskName identifies the periodic sync task registered with
// the OS background scheduler.
const BackgroundTaskName = "habitkeeper.sync"

// BackgroundTaskWorker registers a named periodic task with the OS
// background scheduler (native platforms only). When background execution
// is unavailable or restricted, registration is skipped with a log line —
// never retried in a loop.
type BackgroundTaskWorker struct {
	trigger   TriggerFunc
	registrar BackgroundTaskRegistrar
	interval  time.Duration
	logger    *logger.Logger

	mu         sync.Mutex
	registered bool
}

// NewBackgroundTaskWorker builds the background trigger. An interval <= 0
// defaults to 15 minutes, a common OS minimum.
func NewBackgroundTaskWorker(trigger TriggerFunc, registrar BackgroundTaskRegistrar, interval time.Duration, log *logger.Logger) *BackgroundTaskWorker {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &BackgroundTaskWorker{trigger: trigger, registrar: registrar, interval: interval, logger: log}
}

// Run performs the one-time availability check and registration.
func (b *BackgroundTaskWorker) Run() {
	if b.registrar == nil {
		return
	}

	available, reason := b.registrar.Available()
	if !available {
		b.logger.Info().
			Str("func", "BackgroundTaskWorker.Run").
			Str("reason", reason).
			Msg("background execution unavailable, skipping registration")
		return
	}

	err := b.registrar.Register(BackgroundTaskName, b.interval, func(ctx context.Context) {
		// Background slots are short; wait for the outcome so the OS can
		// account the work, but give up with the task context.
		select {
		case <-b.trigger(false):
		case <-ctx.Done():
		}
	})
	if err != nil {
		b.logger.Err(err).
			Str("func", "BackgroundTaskWorker.Run").
			Msg("background task registration failed")
		return
	}

	b.mu.Lock()
	b.registered = true
	b.mu.Unlock()
}

// Stop unregisters the task if registration succeeded.
func (b *BackgroundTaskWorker) Stop() {
	b.mu.Lock()
	registered := b.registered
	b.registered = false
	b.mu.Unlock()

	if !registered {
		return
	}
	if err := b.registrar.Unregister(BackgroundTaskName); err != nil {
		b.logger.Err(err).
			Str("func", "BackgroundTaskWorker.Stop").
			Msg("background task unregistration failed")
	}
}
