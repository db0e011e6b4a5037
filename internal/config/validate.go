package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable by every command. Discord
// credentials are checked separately by ValidateDiscord because offline
// commands such as classify and pending never contact Discord.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	if err := c.validateLedger(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return nil
}

// ValidateDiscord reports whether the Discord section is complete enough to
// deliver screenshots.
func (c *Config) ValidateDiscord() error {
	if c.Discord.Token == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("discord.token is required. Set DISCORD_TOKEN env var or edit %s (create with 'runeshot config init')", defaultPath)
	}
	if c.Discord.GuildID == "" {
		return errors.New("discord.guild_id is required (or set DISCORD_GUILD_ID)")
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.ScreenshotDir) == "" {
		return errors.New("paths.screenshot_dir must be set (or set runelite.username to use ~/.runelite/screenshots/<username>)")
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if err := ensurePositiveMap(map[string]int{
		"workflow.interval_seconds":     c.Workflow.IntervalSeconds,
		"discord.request_timeout":       c.Discord.RequestTimeout,
		"notifications.request_timeout": c.Notifications.RequestTimeout,
	}); err != nil {
		return err
	}
	if c.Workflow.GraceSeconds < 0 {
		return errors.New("workflow.grace_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validateLedger() error {
	if c.Ledger.DSN == "" {
		return nil
	}
	parsed, err := url.Parse(c.Ledger.DSN)
	if err != nil {
		return fmt.Errorf("ledger.dsn: %w", err)
	}
	switch strings.ToLower(parsed.Scheme) {
	case "sqlite", "file", "postgres", "postgresql", "memory":
		return nil
	default:
		return fmt.Errorf("ledger.dsn: unsupported scheme %q (use sqlite, postgres, or memory)", parsed.Scheme)
	}
}

func (c *Config) validateNotifications() error {
	if c.Notifications.DedupWindowSeconds < 0 {
		return errors.New("notifications.dedup_window_seconds must be >= 0")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
