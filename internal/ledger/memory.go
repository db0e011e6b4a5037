package ledger

import (
	"context"
	"sync"
)

// MemoryBackend keeps records in process memory. It is used by tests and
// memory:// DSNs.
type MemoryBackend struct {
	mu      sync.Mutex
	records map[string][]string
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{records: make(map[string][]string)}
}

func (b *MemoryBackend) Exists(_ context.Context, key string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.records[key]
	return ok, nil
}

func (b *MemoryBackend) Get(_ context.Context, key string) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.records[key]...), nil
}

func (b *MemoryBackend) Set(_ context.Context, key string, values []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records[key] = append([]string{}, values...)
	return nil
}

func (b *MemoryBackend) Close() error { return nil }
