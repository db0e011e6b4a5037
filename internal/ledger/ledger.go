package ledger

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// RecordKey names the persisted sequence of delivered screenshot paths.
const RecordKey = "postedScreenshots"

// Backend stores keyed string sequences. Set must be durable before it
// returns.
type Backend interface {
	Exists(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string) ([]string, error)
	Set(ctx context.Context, key string, values []string) error
	Close() error
}

// ErrNotInitialized is returned when the ledger record has not been created.
var ErrNotInitialized = errors.New("ledger not initialized")

// Ledger tracks delivered screenshot identifiers.
type Ledger struct {
	backend Backend
	key     string
}

// New wraps a backend using the default record key.
func New(backend Backend) *Ledger {
	return &Ledger{backend: backend, key: RecordKey}
}

// Exists reports whether the ledger record has been created.
func (l *Ledger) Exists(ctx context.Context) (bool, error) {
	ok, err := l.backend.Exists(ctx, l.key)
	if err != nil {
		return false, fmt.Errorf("check ledger: %w", err)
	}
	return ok, nil
}

// Initialize creates an empty ledger record on first run. Existing records
// are left untouched.
func (l *Ledger) Initialize(ctx context.Context) (bool, error) {
	exists, err := l.Exists(ctx)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if err := l.backend.Set(ctx, l.key, []string{}); err != nil {
		return false, fmt.Errorf("initialize ledger: %w", err)
	}
	return true, nil
}

// Contains reports whether id has been recorded as delivered.
func (l *Ledger) Contains(ctx context.Context, id string) (bool, error) {
	entries, err := l.Entries(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(entries, id), nil
}

// Record appends id and persists the sequence. Recording an id that is
// already present is a no-op.
func (l *Ledger) Record(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("record ledger: empty id")
	}
	entries, err := l.Entries(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(entries, id) {
		return nil
	}
	entries = append(entries, id)
	if err := l.backend.Set(ctx, l.key, entries); err != nil {
		return fmt.Errorf("record ledger: %w", err)
	}
	return nil
}

// Entries returns every recorded id in insertion order.
func (l *Ledger) Entries(ctx context.Context) ([]string, error) {
	exists, err := l.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotInitialized
	}
	entries, err := l.backend.Get(ctx, l.key)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	return entries, nil
}

// Count returns the number of recorded ids.
func (l *Ledger) Count(ctx context.Context) (int, error) {
	entries, err := l.Entries(ctx)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Close releases the backend.
func (l *Ledger) Close() error {
	if l == nil || l.backend == nil {
		return nil
	}
	return l.backend.Close()
}
