package service_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkhalin/habitkeeper/internal/logger"
	"github.com/dkhalin/habitkeeper/internal/service"
)

const waitTimeout = 5 * time.Second

// blockingRunner hands control of each run to the test: the test observes
// the start on started and decides the outcome through release.
type blockingRunner struct {
	started chan struct{}
	release chan error
	calls   atomic.Int32
}

func newBlockingRunner() *blockingRunner {
	return &blockingRunner{
		started: make(chan struct{}, 8),
		release: make(chan error),
	}
}

func (r *blockingRunner) RunSync(context.Context) error {
	r.calls.Add(1)
	r.started <- struct{}{}
	return <-r.release
}

func (r *blockingRunner) waitStarted(t *testing.T) {
	t.Helper()
	select {
	case <-r.started:
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for a run to start")
	}
}

func awaitResult(t *testing.T, ch <-chan error) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for a request result")
		return nil
	}
}

func newTestScheduler(runner service.SyncRunner, cfg service.SchedulerConfig) *service.SyncScheduler {
	return service.NewSyncScheduler(runner, cfg, logger.Nop())
}

func TestSyncScheduler_SingleRequest(t *testing.T) {
	runner := newBlockingRunner()
	s := newTestScheduler(runner, service.SchedulerConfig{})
	defer s.Stop()

	ch := s.Request(false)
	runner.waitStarted(t)
	runner.release <- nil

	require.NoError(t, awaitResult(t, ch))
	assert.Equal(t, int32(1), runner.calls.Load())
}

func TestSyncScheduler_CoalescesConcurrentRequests(t *testing.T) {
	runner := newBlockingRunner()
	s := newTestScheduler(runner, service.SchedulerConfig{})
	defer s.Stop()

	ch1 := s.Request(false)
	runner.waitStarted(t)

	// both arrive while the first run is in flight
	ch2 := s.Request(false)
	ch3 := s.Request(false)

	runner.release <- nil
	require.NoError(t, awaitResult(t, ch1))

	// exactly one follow-up run serves both coalesced requests
	runner.waitStarted(t)
	runner.release <- nil

	require.NoError(t, awaitResult(t, ch2))
	require.NoError(t, awaitResult(t, ch3))
	assert.Equal(t, int32(2), runner.calls.Load())
}

func TestSyncScheduler_CoalescedRequestsShareFailure(t *testing.T) {
	runner := newBlockingRunner()
	s := newTestScheduler(runner, service.SchedulerConfig{})
	defer s.Stop()

	ch1 := s.Request(true)
	runner.waitStarted(t)
	ch2 := s.Request(true)
	ch3 := s.Request(true)

	runner.release <- nil
	require.NoError(t, awaitResult(t, ch1))

	runErr := errors.New("remote down")
	runner.waitStarted(t)
	runner.release <- runErr

	assert.ErrorIs(t, awaitResult(t, ch2), runErr)
	assert.ErrorIs(t, awaitResult(t, ch3), runErr)
}

func TestSyncScheduler_CooldownSkipsUnforcedRequests(t *testing.T) {
	runner := newBlockingRunner()
	s := newTestScheduler(runner, service.SchedulerConfig{BackoffBase: time.Minute})
	defer s.Stop()

	ch := s.Request(false)
	runner.waitStarted(t)
	runner.release <- errors.New("boom")
	require.Error(t, awaitResult(t, ch))

	assert.False(t, s.Cooldown().IsZero())

	err := awaitResult(t, s.Request(false))
	assert.ErrorIs(t, err, service.ErrSkippedCooldown)
	assert.Equal(t, int32(1), runner.calls.Load(), "skipped request must not reach the runner")
}

func TestSyncScheduler_ForcedRequestBypassesCooldown(t *testing.T) {
	runner := newBlockingRunner()
	s := newTestScheduler(runner, service.SchedulerConfig{BackoffBase: time.Minute})
	defer s.Stop()

	ch := s.Request(false)
	runner.waitStarted(t)
	runner.release <- errors.New("boom")
	require.Error(t, awaitResult(t, ch))

	forced := s.Request(true)
	runner.waitStarted(t)
	runner.release <- nil
	require.NoError(t, awaitResult(t, forced))

	// success resets the failure streak and disarms the cooldown
	assert.True(t, s.Cooldown().IsZero())
	assert.Equal(t, int32(2), runner.calls.Load())
}

func TestSyncScheduler_CooldownGrowsWithConsecutiveFailures(t *testing.T) {
	runner := newBlockingRunner()
	s := newTestScheduler(runner, service.SchedulerConfig{BackoffBase: time.Minute, BackoffMax: time.Hour})
	defer s.Stop()

	fail := func() {
		ch := s.Request(true)
		runner.waitStarted(t)
		runner.release <- errors.New("boom")
		require.Error(t, awaitResult(t, ch))
	}

	fail()
	first := s.Cooldown()
	fail()
	second := s.Cooldown()

	assert.True(t, second.After(first))
	assert.Greater(t, time.Until(second), 90*time.Second, "second failure should roughly double the delay")
}

func TestSyncScheduler_QueuedFollowUpSkippedDuringCooldown(t *testing.T) {
	runner := newBlockingRunner()
	s := newTestScheduler(runner, service.SchedulerConfig{BackoffBase: time.Minute})
	defer s.Stop()

	ch1 := s.Request(false)
	runner.waitStarted(t)
	ch2 := s.Request(false) // queued, not forced

	runner.release <- errors.New("boom")
	require.Error(t, awaitResult(t, ch1))

	// the failure armed the cooldown, so the coalesced follow-up is skipped
	assert.ErrorIs(t, awaitResult(t, ch2), service.ErrSkippedCooldown)
	assert.Equal(t, int32(1), runner.calls.Load())
}

func TestSyncScheduler_QueuedForcedFollowUpRunsDuringCooldown(t *testing.T) {
	runner := newBlockingRunner()
	s := newTestScheduler(runner, service.SchedulerConfig{BackoffBase: time.Minute})
	defer s.Stop()

	ch1 := s.Request(false)
	runner.waitStarted(t)
	ch2 := s.Request(true) // forced while in flight

	runner.release <- errors.New("boom")
	require.Error(t, awaitResult(t, ch1))

	runner.waitStarted(t)
	runner.release <- nil
	require.NoError(t, awaitResult(t, ch2))
	assert.Equal(t, int32(2), runner.calls.Load())
}

func TestSyncScheduler_Stop(t *testing.T) {
	runner := newBlockingRunner()
	s := newTestScheduler(runner, service.SchedulerConfig{})

	ch1 := s.Request(false)
	runner.waitStarted(t)
	ch2 := s.Request(false) // queued behind the in-flight run

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()

	// queued waiters resolve immediately; the in-flight run is not cancelled
	assert.ErrorIs(t, awaitResult(t, ch2), service.ErrSchedulerStopped)

	runner.release <- nil
	require.NoError(t, awaitResult(t, ch1))

	select {
	case <-stopped:
	case <-time.After(waitTimeout):
		t.Fatal("Stop did not return after the in-flight run completed")
	}

	assert.ErrorIs(t, awaitResult(t, s.Request(false)), service.ErrSchedulerStopped)
	assert.ErrorIs(t, awaitResult(t, s.Request(true)), service.ErrSchedulerStopped)
	assert.Equal(t, int32(1), runner.calls.Load())
}
