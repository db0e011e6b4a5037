package testsupport

import (
	"context"
	"testing"

	"runeshot/internal/config"
	"runeshot/internal/ledger"
)

// MustOpenLedger opens and initializes the ledger configured by cfg and
// registers cleanup.
func MustOpenLedger(t testing.TB, cfg *config.Config) *ledger.Ledger {
	t.Helper()

	l, err := ledger.Open(cfg)
	if err != nil {
		t.Fatalf("ledger.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = l.Close()
	})
	if _, err := l.Initialize(context.Background()); err != nil {
		t.Fatalf("ledger.Initialize: %v", err)
	}
	return l
}
