package daemon_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"runeshot/internal/config"
	"runeshot/internal/daemon"
	"runeshot/internal/messenger"
	"runeshot/internal/scan"
	"runeshot/internal/scheduler"
	"runeshot/internal/testsupport"
)

type startupRecorder struct {
	startupErrs []error
}

func (r *startupRecorder) NotifyBatchCompleted(context.Context, int, int, time.Duration) error {
	return nil
}
func (r *startupRecorder) NotifySendFailure(context.Context, string, error) error { return nil }
func (r *startupRecorder) NotifyScanFailure(context.Context, error) error         { return nil }
func (r *startupRecorder) NotifyStartupFailure(_ context.Context, err error) error {
	r.startupErrs = append(r.startupErrs, err)
	return nil
}
func (r *startupRecorder) TestNotification(context.Context) error { return nil }

func newDaemon(t *testing.T, cfg *config.Config, fake *messenger.Fake, notifier *startupRecorder) *daemon.Daemon {
	t.Helper()
	deps := daemon.Deps{
		Ledger:    testsupport.MustOpenLedger(t, cfg),
		Messenger: fake,
	}
	if notifier != nil {
		deps.Notifier = notifier
	}
	d, err := daemon.New(cfg, deps)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() { d.Stop() })
	return d
}

func TestDaemonStartStop(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	fake := messenger.NewFake()
	d := newDaemon(t, cfg, fake, nil)
	ctx := context.Background()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	status := d.Status(ctx)
	if !status.Running {
		t.Fatal("expected daemon to report running")
	}
	if len(status.Destinations) != 5 || fake.CreateCalls != 5 {
		t.Fatalf("expected all five destinations ensured, got %d (%d created)", len(status.Destinations), fake.CreateCalls)
	}
	if status.State != scheduler.Idle {
		t.Fatalf("expected idle scheduler, got %s", status.State)
	}

	// Second start should fail
	if err := d.Start(ctx); err == nil {
		t.Fatal("expected second start to fail")
	}

	d.Stop()
	if d.Status(ctx).Running {
		t.Fatal("expected daemon to be stopped")
	}
}

func TestDaemonLockPreventsSecondInstance(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first := newDaemon(t, cfg, messenger.NewFake(), nil)
	if err := first.Start(context.Background()); err != nil {
		t.Fatalf("first Start: %v", err)
	}

	secondCfg := *cfg
	secondCfg.Ledger.DSN = "memory://"
	second := newDaemon(t, &secondCfg, messenger.NewFake(), nil)
	err := second.Start(context.Background())
	if err == nil || !strings.Contains(err.Error(), "already running") {
		t.Fatalf("expected lock contention error, got %v", err)
	}

	first.Stop()
	if err := second.Start(context.Background()); err != nil {
		t.Fatalf("expected start after release, got %v", err)
	}
}

func TestDaemonRunOnceDeliversAndStops(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Workflow.RunOnce = true
	base := time.Now().Add(-time.Hour)
	testsupport.WriteScreenshot(t, cfg.Paths.ScreenshotDir, "Fishing(70).png", base)
	testsupport.WriteScreenshot(t, cfg.Paths.ScreenshotDir, "Quest(Monkey Madness I).png", base.Add(time.Minute))

	fake := messenger.NewFake("level-ups")
	d := newDaemon(t, cfg, fake, nil)

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(fake.Sent()) != 2 {
		t.Fatalf("expected 2 sends, got %d", len(fake.Sent()))
	}
	status := d.Status(context.Background())
	if status.Running || status.State != scheduler.Stopped {
		t.Fatalf("expected stopped daemon, got running=%v state=%s", status.Running, status.State)
	}
	if status.LedgerEntries != 2 || status.LastBatch == nil || status.LastBatch.Delivered != 2 {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestDaemonRunOnceBatchFailureStillSucceeds(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Workflow.RunOnce = true
	testsupport.WriteScreenshot(t, cfg.Paths.ScreenshotDir, "misc.png", time.Time{})

	fake := messenger.NewFake()
	fake.SendErr = func(messenger.Message) error { return errors.New("500 Internal Server Error") }
	d := newDaemon(t, cfg, fake, nil)

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("expected send failure to stay inside the batch, got %v", err)
	}
	status := d.Status(context.Background())
	if status.LedgerEntries != 0 {
		t.Fatalf("expected nothing recorded, got %d", status.LedgerEntries)
	}
	if status.State != scheduler.Stopped || status.LastBatch == nil || status.LastBatch.Failed != 1 {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestDaemonRunOnceMissingScreenshotDirStillSucceeds(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Workflow.RunOnce = true
	cfg.Paths.ScreenshotDir = filepath.Join(testsupport.BaseDir(cfg), "missing")

	d := newDaemon(t, cfg, messenger.NewFake(), nil)
	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("expected scan failure to stay inside the batch, got %v", err)
	}
	status := d.Status(context.Background())
	if status.LastBatch == nil || !errors.Is(status.LastBatch.Err, scan.ErrDirectoryUnavailable) {
		t.Fatalf("expected directory unavailable batch, got %+v", status.LastBatch)
	}
}

func TestDaemonStartupFailureNotifiesAndReleasesLock(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	fake := messenger.NewFake()
	fake.FindErr = errors.New("401 Unauthorized")
	notifier := &startupRecorder{}
	d := newDaemon(t, cfg, fake, notifier)

	if err := d.Start(context.Background()); err == nil {
		t.Fatal("expected startup failure")
	}
	if len(notifier.startupErrs) != 1 {
		t.Fatalf("expected one startup notification, got %d", len(notifier.startupErrs))
	}

	fake.FindErr = nil
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("expected lock released after failure, got %v", err)
	}
}
