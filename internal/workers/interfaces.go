// Package workers holds the trigger sources that feed the sync
// scheduler: a fixed-interval timer, the app-foreground transition and
// the OS background task. Each worker turns its event stream into
// scheduler requests; the scheduler, not the worker, owns coalescing.
package workers

import (
	"context"
	"time"
)

// Worker is one background trigger source. Run starts it (spawning
// goroutines internally) and Stop releases its timers and listeners.
type Worker interface {
	Run()
	Stop()
}

// TriggerFunc requests a sync run; the channel carries the outcome of
// the run that satisfied the request. Workers fire non-forced requests.
type TriggerFunc func(force bool) <-chan error

// LifecycleEvents surfaces OS application lifecycle transitions. Only
// the foreground transition matters to sync.
type LifecycleEvents interface {
	Foreground() <-chan struct{}
}

// BackgroundTaskRegistrar is the OS-level background task scheduler.
// Availability is checked once at registration time; a restricted state
// is reported, logged, and registration is skipped rather than retried.
type BackgroundTaskRegistrar interface {
	Available() (bool, string)
	Register(name string, minInterval time.Duration, task func(ctx context.Context)) error
	Unregister(name string) error
}
