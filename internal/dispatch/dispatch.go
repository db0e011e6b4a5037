package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"runeshot/internal/classify"
	"runeshot/internal/destination"
	"runeshot/internal/logging"
	"runeshot/internal/messenger"
	"runeshot/internal/scan"
)

// Status is the result kind of a single dispatch.
type Status int

const (
	Delivered Status = iota
	Skipped
	Failed
)

func (s Status) String() string {
	switch s {
	case Delivered:
		return "delivered"
	case Skipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Outcome describes what happened to one screenshot.
type Outcome struct {
	Status      Status
	Label       classify.Label
	Destination string
	// Sent is true when the message reached the messenger even though the
	// outcome is Failed (ledger write failed afterwards).
	Sent bool
	Err  error
}

// Ledger is the subset of the delivery ledger the dispatcher needs.
type Ledger interface {
	Contains(ctx context.Context, id string) (bool, error)
	Record(ctx context.Context, id string) error
}

// Resolver maps categories to destinations.
type Resolver interface {
	Resolve(ctx context.Context, category classify.Category) (destination.Destination, error)
}

// Scanner lists the screenshot directory.
type Scanner interface {
	Scan(ctx context.Context, dir string) ([]scan.Screenshot, error)
}

// Dispatcher wires the pipeline collaborators together.
type Dispatcher struct {
	dir       string
	scanner   Scanner
	ledger    Ledger
	resolver  Resolver
	messenger messenger.Messenger
	logger    *slog.Logger
	now       func() time.Time
}

// Options configures a Dispatcher.
type Options struct {
	ScreenshotDir string
	Scanner       Scanner
	Ledger        Ledger
	Resolver      Resolver
	Messenger     messenger.Messenger
	Logger        *slog.Logger
}

// New validates opts and returns a Dispatcher.
func New(opts Options) (*Dispatcher, error) {
	if opts.ScreenshotDir == "" {
		return nil, errors.New("dispatch: screenshot directory is required")
	}
	if opts.Ledger == nil || opts.Resolver == nil || opts.Messenger == nil {
		return nil, errors.New("dispatch: ledger, resolver, and messenger are required")
	}
	scanner := opts.Scanner
	if scanner == nil {
		scanner = scan.NewScanner()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Dispatcher{
		dir:       opts.ScreenshotDir,
		scanner:   scanner,
		ledger:    opts.Ledger,
		resolver:  opts.Resolver,
		messenger: opts.Messenger,
		logger:    logging.NewComponentLogger(logger, "dispatch"),
		now:       time.Now,
	}, nil
}

// DispatchOne delivers shot unless the ledger already holds it.
func (d *Dispatcher) DispatchOne(ctx context.Context, shot scan.Screenshot) Outcome {
	logger := logging.WithContext(ctx, d.logger).With(logging.String(logging.FieldPath, shot.Path))

	seen, err := d.ledger.Contains(ctx, shot.Path)
	if err != nil {
		return Outcome{Status: Failed, Err: fmt.Errorf("check ledger: %w", err)}
	}
	if seen {
		return Outcome{Status: Skipped}
	}

	label := classify.Classify(shot.Name)
	dest, err := d.resolver.Resolve(ctx, label.Category)
	if err != nil {
		return Outcome{Status: Failed, Label: label, Err: fmt.Errorf("resolve destination: %w", err)}
	}

	msg := messenger.Message{
		Attachment: messenger.Attachment{Name: shot.Name, Path: shot.Path},
	}
	if caption, ok := label.Caption(); ok {
		msg.Caption = caption
	}

	if err := d.messenger.Send(ctx, dest.ChannelID, msg); err != nil {
		return Outcome{
			Status:      Failed,
			Label:       label,
			Destination: dest.Name,
			Err:         fmt.Errorf("send to #%s: %w", dest.Name, err),
		}
	}

	if err := d.ledger.Record(ctx, shot.Path); err != nil {
		logging.ErrorWithContext(logger, "screenshot sent but not recorded", "ledger_record_failed",
			logging.String(logging.FieldDestination, dest.Name),
			logging.String(logging.FieldErrorHint, "check ledger storage; the file may be posted again"),
			logging.Error(err),
		)
		return Outcome{
			Status:      Failed,
			Label:       label,
			Destination: dest.Name,
			Sent:        true,
			Err:         fmt.Errorf("record delivery: %w", err),
		}
	}

	logger.Info(fmt.Sprintf("posted %s to #%s", label.Describe(), dest.Name),
		logging.String(logging.FieldEventType, "screenshot_posted"),
		logging.String(logging.FieldCategory, label.Category.String()),
		logging.String(logging.FieldDestination, dest.Name),
	)
	return Outcome{Status: Delivered, Label: label, Destination: dest.Name, Sent: true}
}
