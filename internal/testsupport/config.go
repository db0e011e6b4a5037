package testsupport

import (
	"path/filepath"
	"testing"

	"runeshot/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The ledger defaults to SQLite under the temp data dir and Discord
// credentials are filled with placeholders.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.RuneLite.Username = "tester"
	cfgVal.Paths.ScreenshotDir = filepath.Join(base, "screenshots")
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Discord.Token = "test-token"
	cfgVal.Discord.GuildID = "test-guild"
	cfgVal.Workflow.GraceSeconds = 0
	cfgVal.API.Bind = ""

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithLedgerDSN overrides the ledger backend on the test config.
func WithLedgerDSN(dsn string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Ledger.DSN = dsn
	}
}

// WithNtfyTopic points notifications at a topic URL, typically an
// httptest server.
func WithNtfyTopic(topic string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.NtfyTopic = topic
	}
}

// WithAPIBind enables the status listener.
func WithAPIBind(bind string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.API.Bind = bind
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
