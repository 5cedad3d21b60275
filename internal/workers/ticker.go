package workers

import (
	"sync"
	"time"

	"github.com/dkhalin/habitkeeper/internal/logger"
)

// TickerWorker fires a non-forced sync request on a fixed interval.
type TickerWorker struct {
	trigger  TriggerFunc
	interval time.Duration
	logger   *logger.Logger

	mu   sync.Mutex
	stop chan struct{}
	wg   sync.WaitGroup
}

// NewTickerWorker builds the periodic trigger. An interval <= 0 defaults
// to 5 minutes.
func NewTickerWorker(trigger TriggerFunc, interval time.Duration, log *logger.Logger) *TickerWorker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &TickerWorker{trigger: trigger, interval: interval, logger: log}
}

// Run starts the ticker goroutine. Calling Run on a running worker
// restarts it.
func (t *TickerWorker) Run() {
	t.Stop()

	t.mu.Lock()
	t.stop = make(chan struct{})
	stop := t.stop
	t.wg.Add(1)
	t.mu.Unlock()

	go func() {
		defer t.wg.Done()
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				// The scheduler coalesces; the periodic trigger never waits
				// on the outcome.
				_ = t.trigger(false)
			}
		}
	}()
}

// Stop halts the ticker and waits for the goroutine to exit. Safe to call
// on a worker that never ran.
func (t *TickerWorker) Stop() {
	t.mu.Lock()
	stop := t.stop
	t.stop = nil
	t.mu.Unlock()

	if stop != nil {
		close(stop)
	}
	t.wg.Wait()
}
