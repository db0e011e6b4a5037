package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"runeshot/internal/dispatch"
	"runeshot/internal/logging"
	"runeshot/internal/notifications"
)

// State is the scheduler lifecycle state.
type State int32

const (
	Idle State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	default:
		return "stopped"
	}
}

// BatchRunner executes one scan-and-dispatch pass.
type BatchRunner interface {
	RunBatch(ctx context.Context) dispatch.BatchResult
}

// Options configures a Scheduler.
type Options struct {
	Runner   BatchRunner
	Interval time.Duration
	Grace    time.Duration
	Notifier notifications.Service
	Logger   *slog.Logger
}

// Scheduler drives batches and tracks the most recent result.
type Scheduler struct {
	runner   BatchRunner
	interval time.Duration
	grace    time.Duration
	notifier notifications.Service
	logger   *slog.Logger

	running atomic.Bool
	state   atomic.Int32

	mu      sync.RWMutex
	last    dispatch.BatchResult
	hasLast bool
	batches int
}

// New returns an Idle scheduler.
func New(opts Options) (*Scheduler, error) {
	if opts.Runner == nil {
		return nil, errors.New("scheduler: runner is required")
	}
	if opts.Interval <= 0 {
		return nil, errors.New("scheduler: interval must be positive")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Scheduler{
		runner:   opts.Runner,
		interval: opts.Interval,
		grace:    opts.Grace,
		notifier: opts.Notifier,
		logger:   logging.NewComponentLogger(logger, "scheduler"),
	}, nil
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	return State(s.state.Load())
}

// LastResult returns the most recent batch result, if any batch has run.
func (s *Scheduler) LastResult() (dispatch.BatchResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.hasLast
}

// Batches returns how many batches have completed.
func (s *Scheduler) Batches() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.batches
}

// Interval returns the period between scheduled batches.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// Tick runs one batch unless another is in flight or the scheduler has
// stopped. The bool reports whether a batch ran.
func (s *Scheduler) Tick(ctx context.Context) (dispatch.BatchResult, bool) {
	if s.State() == Stopped {
		return dispatch.BatchResult{}, false
	}
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Debug("batch already running; tick dropped",
			logging.String(logging.FieldEventType, "tick_dropped"),
		)
		return dispatch.BatchResult{}, false
	}
	defer s.running.Store(false)

	s.state.CompareAndSwap(int32(Idle), int32(Running))
	result := s.runner.RunBatch(ctx)
	s.state.CompareAndSwap(int32(Running), int32(Idle))

	s.mu.Lock()
	s.last = result
	s.hasLast = true
	s.batches++
	s.mu.Unlock()

	s.report(ctx, result)
	return result, true
}

// Run performs an immediate batch and then one per interval until ctx is
// cancelled. It returns after any in-flight batch finishes.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.State() == Stopped {
		return errors.New("scheduler stopped")
	}
	s.logger.Info("scheduler started",
		logging.String(logging.FieldEventType, "scheduler_started"),
		logging.Duration("interval", s.interval),
	)

	var wg sync.WaitGroup
	launch := func() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Tick(ctx)
		}()
	}

	launch()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			s.logger.Info("scheduler stopped",
				logging.String(logging.FieldEventType, "scheduler_stopped"),
			)
			return nil
		case <-ticker.C:
			launch()
		}
	}
}

// RunOnce runs a single batch, waits the grace period, and stops the
// scheduler.
func (s *Scheduler) RunOnce(ctx context.Context) dispatch.BatchResult {
	result, ran := s.Tick(ctx)
	if !ran {
		result, _ = s.LastResult()
	}
	if s.grace > 0 {
		s.logger.Info("one-shot batch finished; waiting before exit",
			logging.Duration("grace", s.grace),
		)
		timer := time.NewTimer(s.grace)
		select {
		case <-ctx.Done():
			timer.Stop()
		case <-timer.C:
		}
	}
	s.state.Store(int32(Stopped))
	return result
}

func (s *Scheduler) report(ctx context.Context, result dispatch.BatchResult) {
	logger := s.logger.With(logging.String(logging.FieldRunID, result.RunID))
	if result.Err == nil && result.Delivered > 0 {
		logger.Info("screenshots delivered",
			logging.String(logging.FieldEventType, "batch_delivered"),
			logging.Int("delivered", result.Delivered),
			logging.Int("skipped", result.Skipped),
		)
	}
	if s.notifier == nil {
		return
	}

	var err error
	switch {
	case result.Failed > 0:
		err = s.notifier.NotifySendFailure(ctx, result.FailedPath, result.Err)
	case result.Err != nil:
		if errors.Is(result.Err, context.Canceled) {
			return
		}
		err = s.notifier.NotifyScanFailure(ctx, result.Err)
	default:
		err = s.notifier.NotifyBatchCompleted(ctx, result.Delivered, result.Skipped, result.Duration)
	}
	if err != nil {
		logging.WarnWithContext(logger, "notification failed", "notification_failed",
			logging.String(logging.FieldErrorHint, "check notifications.ntfy_topic"),
			logging.String(logging.FieldImpact, "operator alert not delivered"),
			logging.Error(err),
		)
	}
}
