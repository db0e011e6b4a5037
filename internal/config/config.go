package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	ScreenshotDir string `toml:"screenshot_dir"`
	DataDir       string `toml:"data_dir"`
	LogDir        string `toml:"log_dir"`
}

// RuneLite identifies the RuneLite profile whose screenshots are watched.
type RuneLite struct {
	Username string `toml:"username"`
}

// Discord contains bot credentials and the target guild.
type Discord struct {
	Token          string `toml:"token"`
	GuildID        string `toml:"guild_id"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Ledger selects the delivered-screenshot record backend.
//
// An empty DSN stores the ledger in SQLite under Paths.DataDir. Supported
// schemes are sqlite://, postgres://, and memory://.
type Ledger struct {
	DSN string `toml:"dsn"`
}

// Workflow contains scheduling configuration.
type Workflow struct {
	IntervalSeconds int  `toml:"interval_seconds"`
	GraceSeconds    int  `toml:"grace_seconds"`
	RunOnce         bool `toml:"run_once"`
}

// Notifications contains configuration for ntfy operator alerts.
type Notifications struct {
	NtfyTopic          string `toml:"ntfy_topic"`
	RequestTimeout     int    `toml:"request_timeout"`
	Batch              bool   `toml:"batch"`
	Failures           bool   `toml:"failures"`
	DedupWindowSeconds int    `toml:"dedup_window_seconds"`
}

// API contains the optional status listener configuration.
//
// When Token is set, /api routes require "Authorization: Bearer <token>".
type API struct {
	Bind  string `toml:"bind"`
	Token string `toml:"token"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for runeshot.
//
// Configuration sections by subsystem:
//   - Paths: screenshot, data, and log directories
//   - RuneLite: profile name used to derive the default screenshot directory
//   - Discord: bot token, guild, and request timeout
//   - Ledger: delivered-screenshot record backend
//   - Workflow: scan interval, one-shot mode, and shutdown grace
//   - Notifications: ntfy operator alerts
//   - API: optional status listener
//   - Logging: log format, level, and retention
type Config struct {
	Paths         Paths         `toml:"paths"`
	RuneLite      RuneLite      `toml:"runelite"`
	Discord       Discord       `toml:"discord"`
	Ledger        Ledger        `toml:"ledger"`
	Workflow      Workflow      `toml:"workflow"`
	Notifications Notifications `toml:"notifications"`
	API           API           `toml:"api"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("runeshot.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories runeshot writes to. The
// screenshot directory belongs to RuneLite and is never created here.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LedgerPath returns the SQLite ledger file used when no DSN is configured.
func (c *Config) LedgerPath() string {
	return filepath.Join(c.Paths.DataDir, "ledger.db")
}

// LockPath returns the single-instance lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "runeshot.lock")
}

// ScanInterval returns the period between scheduled batches.
func (c *Config) ScanInterval() time.Duration {
	return time.Duration(c.Workflow.IntervalSeconds) * time.Second
}

// ShutdownGrace returns how long one-shot mode waits before exiting.
func (c *Config) ShutdownGrace() time.Duration {
	return time.Duration(c.Workflow.GraceSeconds) * time.Second
}

// DiscordTimeout returns the per-request Discord timeout.
func (c *Config) DiscordTimeout() time.Duration {
	return time.Duration(c.Discord.RequestTimeout) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the configuration as TOML. Secrets are masked.
func (c *Config) Encode() ([]byte, error) {
	clone := *c
	if clone.Discord.Token != "" {
		clone.Discord.Token = "********"
	}
	if clone.API.Token != "" {
		clone.API.Token = "********"
	}
	return toml.Marshal(clone)
}
