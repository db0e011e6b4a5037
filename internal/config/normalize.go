package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	c.applyEnv()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDiscord()
	c.normalizeWorkflow()
	c.normalizeNotifications()
	c.Ledger.DSN = strings.TrimSpace(c.Ledger.DSN)
	c.API.Bind = strings.TrimSpace(c.API.Bind)
	c.API.Token = strings.TrimSpace(c.API.Token)
	c.normalizeLogging()
	return nil
}

// applyEnv lets the environment override file values, which keeps secrets
// out of config.toml and matches how the process is launched by supervisors.
func (c *Config) applyEnv() {
	if value, ok := lookupTrimmed("DISCORD_TOKEN"); ok {
		c.Discord.Token = value
	}
	if value, ok := lookupTrimmed("DISCORD_GUILD_ID"); ok {
		c.Discord.GuildID = value
	}
	if value, ok := lookupTrimmed("RUNESHOT_LEDGER_DSN"); ok {
		c.Ledger.DSN = value
	}
	if value, ok := lookupTrimmed("RUN_ONCE"); ok {
		c.Workflow.RunOnce = value == "true"
	}
}

func lookupTrimmed(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}

func (c *Config) normalizePaths() error {
	var err error
	c.RuneLite.Username = strings.TrimSpace(c.RuneLite.Username)
	if strings.TrimSpace(c.Paths.ScreenshotDir) == "" && c.RuneLite.Username != "" {
		c.Paths.ScreenshotDir = filepath.Join(defaultRuneLiteDir, c.RuneLite.Username)
	}
	if c.Paths.ScreenshotDir, err = expandPath(strings.TrimSpace(c.Paths.ScreenshotDir)); err != nil {
		return fmt.Errorf("paths.screenshot_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDiscord() {
	c.Discord.Token = strings.TrimSpace(c.Discord.Token)
	c.Discord.Token = strings.TrimPrefix(c.Discord.Token, "Bot ")
	c.Discord.GuildID = strings.TrimSpace(c.Discord.GuildID)
	if c.Discord.RequestTimeout <= 0 {
		c.Discord.RequestTimeout = defaultDiscordRequestTimeout
	}
}

func (c *Config) normalizeWorkflow() {
	if c.Workflow.IntervalSeconds == 0 {
		c.Workflow.IntervalSeconds = defaultIntervalSeconds
	}
	if c.Workflow.GraceSeconds < 0 {
		c.Workflow.GraceSeconds = 0
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout == 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
