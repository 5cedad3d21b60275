package service

import (
	"context"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dkhalin/habitkeeper/internal/logger"
)

// Backoff defaults applied when the config leaves them zero.
const (
	defaultBackoffBase = 5 * time.Second
	defaultBackoffMax  = 5 * time.Minute
)

// SchedulerConfig tunes the failure backoff window.
type SchedulerConfig struct {
	BackoffBase time.Duration
	BackoffMax  time.Duration
}

// SyncScheduler coalesces every trigger source (timer, app foreground,
// OS background task, manual) into serialized engine runs. At most one
// logical run is ever in flight; triggers that fire meanwhile are merged
// into exactly one follow-up run whose outcome all coalesced callers
// observe. The explicit states are idle, running, and running with a
// (possibly forced) follow-up queued.
type SyncScheduler struct {
	runner SyncRunner
	cfg    SchedulerConfig
	logger *logger.Logger

	runCtx context.Context

	mu            sync.Mutex
	running       bool
	stopped       bool
	queued        bool
	queuedForce   bool
	queuedWaiters []chan error
	failures      int
	cooldownUntil time.Time
	backoff       retry.Backoff
	wg            sync.WaitGroup
}

// NewSyncScheduler constructs an idle scheduler.
func NewSyncScheduler(runner SyncRunner, cfg SchedulerConfig, log *logger.Logger) *SyncScheduler {
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = defaultBackoffBase
	}
	if cfg.BackoffMax <= 0 {
		cfg.BackoffMax = defaultBackoffMax
	}

	s := &SyncScheduler{
		runner: runner,
		cfg:    cfg,
		logger: log,
		runCtx: log.WithContext(context.Background()),
	}
	s.backoff = s.newBackoff()
	return s
}

// Request asks for a sync run. The returned channel receives exactly one
// value — the outcome of the run that satisfied this request — and is then
// closed.
//
// While a run is in flight the request is coalesced into the single
// follow-up run. While the failure cooldown is active, a non-forced
// request is skipped outright with ErrSkippedCooldown; a forced request
// always runs.
func (s *SyncScheduler) Request(force bool) <-chan error {
	ch := make(chan error, 1)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		resolve(ch, ErrSchedulerStopped)
		return ch
	}

	if s.running {
		s.queued = true
		s.queuedForce = s.queuedForce || force
		s.queuedWaiters = append(s.queuedWaiters, ch)
		return ch
	}

	if !force && time.Now().Before(s.cooldownUntil) {
		s.logger.Info().
			Str("func", "SyncScheduler.Request").
			Time("cooldown_until", s.cooldownUntil).
			Int("failures", s.failures).
			Msg("sync request skipped during cooldown")
		resolve(ch, ErrSkippedCooldown)
		return ch
	}

	s.running = true
	s.wg.Add(1)
	go s.loop([]chan error{ch})

	return ch
}

// Stop prevents new runs and blocks until the in-flight run, if any, has
// completed. The run itself is never cancelled mid-flight; its result is
// simply discarded once the owner is gone. Queued waiters are resolved
// with ErrSchedulerStopped.
func (s *SyncScheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	waiters := s.queuedWaiters
	s.queued = false
	s.queuedForce = false
	s.queuedWaiters = nil
	s.mu.Unlock()

	for _, ch := range waiters {
		resolve(ch, ErrSchedulerStopped)
	}

	s.wg.Wait()
}

// Cooldown reports the active cooldown deadline, zero when none.
func (s *SyncScheduler) Cooldown() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cooldownUntil
}

// loop owns the running state: it executes the current run, then at most
// one queued follow-up, and only then goes idle.
func (s *SyncScheduler) loop(waiters []chan error) {
	defer s.wg.Done()

	for {
		err := s.runner.RunSync(s.runCtx)

		s.mu.Lock()
		s.recordOutcome(err)

		for _, ch := range waiters {
			resolve(ch, err)
		}

		if !s.queued || s.stopped {
			s.running = false
			s.mu.Unlock()
			return
		}

		waiters = s.queuedWaiters
		force := s.queuedForce
		s.queued = false
		s.queuedForce = false
		s.queuedWaiters = nil

		if !force && time.Now().Before(s.cooldownUntil) {
			s.logger.Info().
				Str("func", "SyncScheduler.loop").
				Msg("coalesced follow-up skipped during cooldown")
			s.running = false
			s.mu.Unlock()
			for _, ch := range waiters {
				resolve(ch, ErrSkippedCooldown)
			}
			return
		}
		s.mu.Unlock()
	}
}

// recordOutcome updates the failure counter and cooldown deadline.
// Callers hold s.mu.
func (s *SyncScheduler) recordOutcome(err error) {
	if err == nil {
		s.failures = 0
		s.cooldownUntil = time.Time{}
		s.backoff = s.newBackoff()
		return
	}

	s.failures++
	delay, _ := s.backoff.Next()
	s.cooldownUntil = time.Now().Add(delay)

	s.logger.Warn().
		Err(err).
		Str("func", "SyncScheduler.recordOutcome").
		Int("failures", s.failures).
		Dur("cooldown", delay).
		Msg("sync run failed, cooldown armed")
}

// newBackoff builds the doubling, capped delay sequence consumed one step
// per consecutive failure.
func (s *SyncScheduler) newBackoff() retry.Backoff {
	return retry.WithCappedDuration(s.cfg.BackoffMax, retry.NewExponential(s.cfg.BackoffBase))
}

func resolve(ch chan error, err error) {
	ch <- err
	close(ch)
}
