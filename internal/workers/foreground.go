package workers

import (
	"sync"

	"github.com/dkhalin/habitkeeper/internal/logger"
)

// ForegroundWorker fires a non-forced sync request whenever the app
// returns to the foreground, so a device that slept through ticker
// intervals catches up promptly.
type ForegroundWorker struct {
	trigger TriggerFunc
	events  LifecycleEvents
	logger  *logger.Logger

	mu   sync.Mutex
	stop chan struct{}
	wg   sync.WaitGroup
}

// NewForegroundWorker builds the lifecycle trigger.
func NewForegroundWorker(trigger TriggerFunc, events LifecycleEvents, log *logger.Logger) *ForegroundWorker {
	return &ForegroundWorker{trigger: trigger, events: events, logger: log}
}

// Run starts consuming foreground transitions.
func (f *ForegroundWorker) Run() {
	f.Stop()

	f.mu.Lock()
	f.stop = make(chan struct{})
	stop := f.stop
	f.wg.Add(1)
	f.mu.Unlock()

	go func() {
		defer f.wg.Done()
		for {
			select {
			case <-stop:
				return
			case _, ok := <-f.events.Foreground():
				if !ok {
					return
				}
				f.logger.Debug().
					Str("func", "ForegroundWorker.Run").
					Msg("app foregrounded, requesting sync")
				_ = f.trigger(false)
			}
		}
	}()
}

// Stop releases the listener goroutine.
func (f *ForegroundWorker) Stop() {
	f.mu.Lock()
	stop := f.stop
	f.stop = nil
	f.mu.Unlock()

	if stop != nil {
		close(stop)
	}
	f.wg.Wait()
}
