package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"runeshot/internal/config"
	"runeshot/internal/destination"
	"runeshot/internal/dispatch"
	"runeshot/internal/ledger"
	"runeshot/internal/logging"
	"runeshot/internal/messenger"
	"runeshot/internal/notifications"
	"runeshot/internal/preflight"
	"runeshot/internal/scan"
	"runeshot/internal/scheduler"
)

// Deps are the collaborators the daemon does not build itself.
type Deps struct {
	Ledger    *ledger.Ledger
	Messenger messenger.Messenger
	Notifier  notifications.Service
	Scanner   dispatch.Scanner
	Logger    *slog.Logger
}

// Daemon coordinates delivery and enforces single-instance execution.
type Daemon struct {
	cfg        *config.Config
	logger     *slog.Logger
	ledger     *ledger.Ledger
	notifier   notifications.Service
	resolver   *destination.Resolver
	dispatcher *dispatch.Dispatcher
	scheduler  *scheduler.Scheduler
	api        *apiServer

	lockPath string
	lock     *flock.Flock

	running   atomic.Bool
	startedMu sync.RWMutex
	startedAt time.Time
}

// Status represents daemon runtime information.
type Status struct {
	Running       bool
	PID           int
	StartedAt     time.Time
	ScreenshotDir string
	LockFilePath  string
	LedgerEntries int
	State         scheduler.State
	Interval      time.Duration
	Batches       int
	LastBatch     *dispatch.BatchResult
	Destinations  []destination.Destination
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, deps Deps) (*Daemon, error) {
	if cfg == nil || deps.Ledger == nil || deps.Messenger == nil {
		return nil, errors.New("daemon requires config, ledger, and messenger")
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}
	scanner := deps.Scanner
	if scanner == nil {
		scanner = scan.NewScanner()
	}

	resolver := destination.NewResolver(deps.Messenger, logger)
	dispatcher, err := dispatch.New(dispatch.Options{
		ScreenshotDir: cfg.Paths.ScreenshotDir,
		Scanner:       scanner,
		Ledger:        deps.Ledger,
		Resolver:      resolver,
		Messenger:     deps.Messenger,
		Logger:        logger,
	})
	if err != nil {
		return nil, err
	}
	sched, err := scheduler.New(scheduler.Options{
		Runner:   dispatcher,
		Interval: cfg.ScanInterval(),
		Grace:    cfg.ShutdownGrace(),
		Notifier: notifier,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	lockPath := cfg.LockPath()
	d := &Daemon{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "daemon"),
		ledger:     deps.Ledger,
		notifier:   notifier,
		resolver:   resolver,
		dispatcher: dispatcher,
		scheduler:  sched,
		lockPath:   lockPath,
		lock:       flock.New(lockPath),
	}
	d.api = newAPIServer(cfg, d, logger)
	return d, nil
}

// Start acquires the daemon lock, initializes the ledger, ensures every
// destination exists, and starts the status API.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}
	if err := os.MkdirAll(d.cfg.Paths.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another runeshot instance is already running")
	}

	if err := d.startup(ctx); err != nil {
		_ = d.lock.Unlock()
		logging.ErrorWithContext(d.logger, "startup failed", "startup_failed",
			logging.String(logging.FieldErrorHint, "check discord credentials and ledger storage"),
			logging.Error(err),
		)
		if notifyErr := d.notifier.NotifyStartupFailure(ctx, err); notifyErr != nil {
			d.logger.Debug("startup notification failed", logging.Error(notifyErr))
		}
		return err
	}

	d.startedMu.Lock()
	d.startedAt = time.Now()
	d.startedMu.Unlock()
	d.running.Store(true)
	d.logger.Info("runeshot daemon started",
		logging.String(logging.FieldEventType, "daemon_started"),
		logging.String("lock", d.lockPath),
		logging.String("screenshot_dir", d.cfg.Paths.ScreenshotDir),
	)
	return nil
}

func (d *Daemon) startup(ctx context.Context) error {
	created, err := d.ledger.Initialize(ctx)
	if err != nil {
		return fmt.Errorf("initialize ledger: %w", err)
	}
	if created {
		d.logger.Info("ledger initialized",
			logging.String(logging.FieldEventType, "ledger_initialized"),
		)
	}
	if check := preflight.CheckScreenshotDir(d.cfg.Paths.ScreenshotDir); !check.Passed {
		d.logger.Warn("screenshot directory not ready",
			logging.String(logging.FieldEventType, "screenshot_dir_unavailable"),
			logging.String(logging.FieldPath, d.cfg.Paths.ScreenshotDir),
			logging.String("detail", check.Detail),
			logging.String(logging.FieldImpact, "batches fail until RuneLite creates the directory"),
			logging.String(logging.FieldErrorHint, "check runelite.username or paths.screenshot_dir"),
		)
	}
	if err := d.resolver.EnsureAll(ctx); err != nil {
		return fmt.Errorf("ensure destinations: %w", err)
	}
	if err := d.api.start(ctx); err != nil {
		return err
	}
	return nil
}

// Run starts the daemon and blocks until ctx is cancelled, or until the
// single batch finishes in one-shot mode. Only startup errors are returned;
// batch failures are logged and retried by the next run.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.Start(ctx); err != nil {
		return err
	}
	defer d.Stop()

	if d.cfg.Workflow.RunOnce {
		result := d.scheduler.RunOnce(ctx)
		if result.Err != nil {
			logging.WarnWithContext(d.logger, "one-shot batch incomplete", "oneshot_incomplete",
				logging.String(logging.FieldRunID, result.RunID),
				logging.Int("delivered", result.Delivered),
				logging.String(logging.FieldImpact, "remaining screenshots are posted on the next run"),
				logging.Error(result.Err),
			)
		}
		return nil
	}
	return d.scheduler.Run(ctx)
}

// Stop shuts down the status API and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	d.api.stop()
	if err := d.lock.Unlock(); err != nil {
		logging.WarnWithContext(d.logger, "failed to release daemon lock", "lock_release_failed",
			logging.String(logging.FieldErrorHint, "remove the lock file if no runeshot process is running"),
			logging.String(logging.FieldImpact, "next start may report another instance"),
			logging.Error(err),
		)
	}
	d.running.Store(false)
	d.logger.Info("runeshot daemon stopped",
		logging.String(logging.FieldEventType, "daemon_stopped"),
	)
}

// Close stops the daemon and releases the ledger.
func (d *Daemon) Close() error {
	d.Stop()
	if d.ledger != nil {
		return d.ledger.Close()
	}
	return nil
}

// Status returns the current daemon status.
func (d *Daemon) Status(ctx context.Context) Status {
	d.startedMu.RLock()
	started := d.startedAt
	d.startedMu.RUnlock()

	status := Status{
		Running:       d.running.Load(),
		PID:           os.Getpid(),
		StartedAt:     started,
		ScreenshotDir: d.cfg.Paths.ScreenshotDir,
		LockFilePath:  d.lockPath,
		State:         d.scheduler.State(),
		Interval:      d.scheduler.Interval(),
		Batches:       d.scheduler.Batches(),
		Destinations:  d.resolver.Cached(),
	}
	if last, ok := d.scheduler.LastResult(); ok {
		status.LastBatch = &last
	}
	if count, err := d.ledger.Count(ctx); err == nil {
		status.LedgerEntries = count
	}
	return status
}

// Entries returns the delivered screenshot paths.
func (d *Daemon) Entries(ctx context.Context) ([]string, error) {
	return d.ledger.Entries(ctx)
}
