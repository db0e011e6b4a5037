package dispatch

import (
	"context"
	"time"

	"github.com/google/uuid"

	"runeshot/internal/logging"
)

// BatchResult summarizes one scan-and-dispatch pass.
type BatchResult struct {
	RunID     string        `json:"run_id"`
	Started   time.Time     `json:"started"`
	Duration  time.Duration `json:"duration"`
	Scanned   int           `json:"scanned"`
	Delivered int           `json:"delivered"`
	Skipped   int           `json:"skipped"`
	// Failed is 0 or 1; the batch stops at the first failure.
	Failed     int    `json:"failed"`
	FailedPath string `json:"failed_path,omitempty"`
	Err        error  `json:"-"`
}

// Error returns the batch error text, or "" on success.
func (r BatchResult) Error() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// OK reports whether the batch completed without a scan or send failure.
func (r BatchResult) OK() bool { return r.Err == nil }

// RunBatch scans once and dispatches in creation order, halting at the first
// failed screenshot.
func (d *Dispatcher) RunBatch(ctx context.Context) BatchResult {
	result := BatchResult{RunID: uuid.NewString(), Started: d.now()}
	ctx = logging.WithRunID(ctx, result.RunID)
	logger := logging.WithContext(ctx, d.logger)

	shots, err := d.scanner.Scan(ctx, d.dir)
	if err != nil {
		result.Err = err
		logging.ErrorWithContext(logger, "screenshot scan failed", "scan_failed",
			logging.String("dir", d.dir),
			logging.String(logging.FieldErrorHint, "check paths.screenshot_dir exists and is readable"),
			logging.Error(err),
		)
		result.Duration = d.now().Sub(result.Started)
		return result
	}
	result.Scanned = len(shots)

	for _, shot := range shots {
		if err := ctx.Err(); err != nil {
			result.Err = err
			break
		}
		outcome := d.DispatchOne(ctx, shot)
		switch outcome.Status {
		case Delivered:
			result.Delivered++
		case Skipped:
			result.Skipped++
		default:
			result.Failed = 1
			result.FailedPath = shot.Path
			result.Err = outcome.Err
			logging.ErrorWithContext(logger, "screenshot delivery failed", "dispatch_failed",
				logging.String(logging.FieldPath, shot.Path),
				logging.String(logging.FieldDestination, outcome.Destination),
				logging.Bool("sent", outcome.Sent),
				logging.String(logging.FieldErrorHint, "remaining screenshots retry on the next batch"),
				logging.Error(outcome.Err),
			)
		}
		if outcome.Status == Failed {
			break
		}
	}

	result.Duration = d.now().Sub(result.Started)
	logger.Info("batch finished",
		logging.String(logging.FieldEventType, "batch_completed"),
		logging.Int("scanned", result.Scanned),
		logging.Int("delivered", result.Delivered),
		logging.Int("skipped", result.Skipped),
		logging.Int("failed", result.Failed),
		logging.Duration("duration", result.Duration),
	)
	return result
}
