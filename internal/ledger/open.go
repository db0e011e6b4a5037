package ledger

import (
	"fmt"
	"net/url"
	"strings"

	"runeshot/internal/config"
)

// Open builds the ledger configured by cfg. An empty ledger.dsn selects the
// SQLite file returned by cfg.LedgerPath.
func Open(cfg *config.Config) (*Ledger, error) {
	if cfg == nil {
		return nil, fmt.Errorf("open ledger: config is required")
	}
	backend, err := OpenBackend(cfg.Ledger.DSN, cfg.LedgerPath())
	if err != nil {
		return nil, err
	}
	return New(backend), nil
}

// OpenBackend resolves a DSN to a Backend. defaultPath is used for an empty
// DSN and for sqlite:// DSNs without a path.
func OpenBackend(dsn, defaultPath string) (Backend, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return OpenSQLite(defaultPath)
	}
	parsed, err := url.Parse(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse ledger dsn: %w", err)
	}
	switch strings.ToLower(parsed.Scheme) {
	case "sqlite", "file":
		path := parsed.Path
		if parsed.Host != "" {
			path = parsed.Host + path
		}
		if path == "" {
			path = defaultPath
		}
		return OpenSQLite(path)
	case "postgres", "postgresql":
		return NewPostgresBackend(dsn)
	case "memory", "mem":
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unsupported ledger dsn scheme %q", parsed.Scheme)
	}
}
