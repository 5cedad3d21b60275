package workers_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkhalin/habitkeeper/internal/logger"
	"github.com/dkhalin/habitkeeper/internal/workers"
)

// countingTrigger records every fired request and resolves it instantly.
func countingTrigger(calls *atomic.Int32) workers.TriggerFunc {
	return func(force bool) <-chan error {
		calls.Add(1)
		ch := make(chan error, 1)
		ch <- nil
		close(ch)
		return ch
	}
}

func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestTickerWorker_FiresPeriodically(t *testing.T) {
	var calls atomic.Int32
	w := workers.NewTickerWorker(countingTrigger(&calls), 10*time.Millisecond, logger.Nop())

	w.Run()
	defer w.Stop()

	eventually(t, func() bool { return calls.Load() >= 2 }, "ticker never fired twice")
}

func TestTickerWorker_StopHaltsFiring(t *testing.T) {
	var calls atomic.Int32
	w := workers.NewTickerWorker(countingTrigger(&calls), 10*time.Millisecond, logger.Nop())

	w.Run()
	eventually(t, func() bool { return calls.Load() >= 1 }, "ticker never fired")
	w.Stop()

	settled := calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, calls.Load(), "ticker fired after Stop")

	// Stop on an already-stopped (or never-run) worker is safe
	w.Stop()
	workers.NewTickerWorker(countingTrigger(&calls), time.Minute, logger.Nop()).Stop()
}

type fakeLifecycle struct {
	foreground chan struct{}
}

func (f *fakeLifecycle) Foreground() <-chan struct{} { return f.foreground }

func TestForegroundWorker_FiresOnForeground(t *testing.T) {
	var calls atomic.Int32
	lc := &fakeLifecycle{foreground: make(chan struct{}, 1)}
	w := workers.NewForegroundWorker(countingTrigger(&calls), lc, logger.Nop())

	w.Run()
	defer w.Stop()

	lc.foreground <- struct{}{}
	eventually(t, func() bool { return calls.Load() == 1 }, "foreground event did not trigger a sync")

	lc.foreground <- struct{}{}
	eventually(t, func() bool { return calls.Load() == 2 }, "second foreground event did not trigger a sync")
}

type fakeRegistrar struct {
	available   bool
	reason      string
	registerErr error

	registered   atomic.Bool
	unregistered atomic.Bool
	name         string
	minInterval  time.Duration
	task         func(context.Context)
}

func (f *fakeRegistrar) Available() (bool, string) { return f.available, f.reason }

func (f *fakeRegistrar) Register(name string, minInterval time.Duration, task func(ctx context.Context)) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	f.name = name
	f.minInterval = minInterval
	f.task = task
	f.registered.Store(true)
	return nil
}

func (f *fakeRegistrar) Unregister(string) error {
	f.unregistered.Store(true)
	return nil
}

func TestBackgroundTaskWorker_RegistersAndRunsTask(t *testing.T) {
	var calls atomic.Int32
	reg := &fakeRegistrar{available: true}
	w := workers.NewBackgroundTaskWorker(countingTrigger(&calls), reg, 30*time.Minute, logger.Nop())

	w.Run()
	require.True(t, reg.registered.Load())
	assert.Equal(t, workers.BackgroundTaskName, reg.name)
	assert.Equal(t, 30*time.Minute, reg.minInterval)

	// the OS invoking the task fires one sync request
	reg.task(context.Background())
	assert.Equal(t, int32(1), calls.Load())

	w.Stop()
	assert.True(t, reg.unregistered.Load())
}

func TestBackgroundTaskWorker_UnavailableSkipsRegistration(t *testing.T) {
	var calls atomic.Int32
	reg := &fakeRegistrar{available: false, reason: "low power mode"}
	w := workers.NewBackgroundTaskWorker(countingTrigger(&calls), reg, 0, logger.Nop())

	w.Run()
	assert.False(t, reg.registered.Load())

	w.Stop()
	assert.False(t, reg.unregistered.Load(), "nothing registered, nothing to unregister")
}

func TestBackgroundTaskWorker_TaskGivesUpWithContext(t *testing.T) {
	reg := &fakeRegistrar{available: true}
	// a trigger whose outcome never arrives
	hung := workers.TriggerFunc(func(bool) <-chan error { return make(chan error) })
	w := workers.NewBackgroundTaskWorker(hung, reg, 0, logger.Nop())

	w.Run()
	require.NotNil(t, reg.task)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		reg.task(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("background task did not give up when its context expired")
	}
}

type recordingWorker struct {
	order *[]string
	name  string
}

func (r *recordingWorker) Run()  { *r.order = append(*r.order, "run:"+r.name) }
func (r *recordingWorker) Stop() { *r.order = append(*r.order, "stop:"+r.name) }

func TestWorkers_StopReversesStartOrder(t *testing.T) {
	var order []string
	ws := workers.NewWorkers(
		&recordingWorker{order: &order, name: "a"},
		&recordingWorker{order: &order, name: "b"},
	)

	ws.Run()
	ws.Stop()

	assert.Equal(t, []string{"run:a", "run:b", "stop:b", "stop:a"}, order)
}
