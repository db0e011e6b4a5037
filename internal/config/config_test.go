package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"runeshot/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DISCORD_TOKEN", "DISCORD_GUILD_ID", "RUNESHOT_LEDGER_DSN", "RUN_ONCE"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaultConfigDerivesScreenshotDirFromUsername(t *testing.T) {
	clearEnv(t)
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	configPath := filepath.Join(tempHome, ".config", "runeshot", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(configPath, []byte("[runelite]\nusername = \"Zezima\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}

	wantShots := filepath.Join(tempHome, ".runelite", "screenshots", "Zezima")
	if cfg.Paths.ScreenshotDir != wantShots {
		t.Fatalf("unexpected screenshot dir: got %q want %q", cfg.Paths.ScreenshotDir, wantShots)
	}
	wantData := filepath.Join(tempHome, ".local", "share", "runeshot")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.ScanInterval() != time.Minute {
		t.Fatalf("expected 60s interval, got %s", cfg.ScanInterval())
	}
	if cfg.ShutdownGrace() != 10*time.Second {
		t.Fatalf("expected 10s grace, got %s", cfg.ShutdownGrace())
	}
	if cfg.Workflow.RunOnce {
		t.Fatal("expected continuous mode by default")
	}
	if cfg.LedgerPath() != filepath.Join(wantData, "ledger.db") {
		t.Fatalf("unexpected ledger path: %q", cfg.LedgerPath())
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
	if _, err := os.Stat(cfg.Paths.ScreenshotDir); !os.IsNotExist(err) {
		t.Fatalf("screenshot dir must not be created, stat err=%v", err)
	}
}

func TestLoadFailsWithoutScreenshotSource(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if _, _, _, err := config.Load(""); err == nil {
		t.Fatal("expected error when neither screenshot_dir nor username is set")
	}
}

func TestLoadCustomPath(t *testing.T) {
	clearEnv(t)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "runeshot.toml")

	type payload struct {
		Paths struct {
			ScreenshotDir string `toml:"screenshot_dir"`
		} `toml:"paths"`
		Discord struct {
			Token   string `toml:"token"`
			GuildID string `toml:"guild_id"`
		} `toml:"discord"`
		Workflow struct {
			IntervalSeconds int `toml:"interval_seconds"`
		} `toml:"workflow"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.ScreenshotDir = filepath.Join(tempDir, "shots")
	custom.Discord.Token = "Bot abc123"
	custom.Discord.GuildID = "42"
	custom.Workflow.IntervalSeconds = 15
	custom.Logging.Format = "JSON"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Discord.Token != "abc123" {
		t.Fatalf("expected Bot prefix stripped, got %q", cfg.Discord.Token)
	}
	if cfg.ScanInterval() != 15*time.Second {
		t.Fatalf("expected interval override, got %s", cfg.ScanInterval())
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected json log format, got %q", cfg.Logging.Format)
	}
	if err := cfg.ValidateDiscord(); err != nil {
		t.Fatalf("ValidateDiscord: %v", err)
	}
}

func TestEnvOverridesConfigFile(t *testing.T) {
	clearEnv(t)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "runeshot.toml")
	body := "[paths]\nscreenshot_dir = \"" + filepath.ToSlash(tempDir) + "\"\n[discord]\ntoken = \"file-token\"\nguild_id = \"1\"\n"
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("DISCORD_TOKEN", "env-token")
	t.Setenv("DISCORD_GUILD_ID", "2")
	t.Setenv("RUN_ONCE", "true")
	t.Setenv("RUNESHOT_LEDGER_DSN", "memory://")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Discord.Token != "env-token" {
		t.Errorf("expected token from env, got %q", cfg.Discord.Token)
	}
	if cfg.Discord.GuildID != "2" {
		t.Errorf("expected guild from env, got %q", cfg.Discord.GuildID)
	}
	if !cfg.Workflow.RunOnce {
		t.Error("expected RUN_ONCE=true to enable one-shot mode")
	}
	if cfg.Ledger.DSN != "memory://" {
		t.Errorf("expected ledger dsn from env, got %q", cfg.Ledger.DSN)
	}
}

func TestRunOnceEnvRequiresLiteralTrue(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "runeshot.toml")
	body := "[paths]\nscreenshot_dir = \"" + filepath.ToSlash(tempDir) + "\"\n[workflow]\nrun_once = true\n"
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	tests := []struct {
		value string
		want  bool
	}{
		{value: "true", want: true},
		{value: "1", want: false},
		{value: "t", want: false},
		{value: "TRUE", want: false},
		{value: "", want: true},
	}
	for _, tt := range tests {
		t.Run("RUN_ONCE="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("RUN_ONCE", tt.value)
			cfg, _, _, err := config.Load(configPath)
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if cfg.Workflow.RunOnce != tt.want {
				t.Fatalf("RunOnce = %v, want %v", cfg.Workflow.RunOnce, tt.want)
			}
		})
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "your_discord_bot_token_here") {
		t.Fatalf("sample config missing placeholder token: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Workflow.IntervalSeconds != 60 {
		t.Fatalf("expected sample interval 60, got %d", cfg.Workflow.IntervalSeconds)
	}
}

func TestEncodeMasksToken(t *testing.T) {
	cfg := config.Default()
	cfg.Discord.Token = "secret"
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if strings.Contains(string(data), "secret") {
		t.Fatalf("token leaked in encoded config: %s", data)
	}
	if cfg.Discord.Token != "secret" {
		t.Fatal("Encode must not mutate the receiver")
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	base := func() config.Config {
		cfg := config.Default()
		cfg.Paths.ScreenshotDir = "/tmp/shots"
		return cfg
	}

	cfg := base()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected base config to validate: %v", err)
	}

	cfg = base()
	cfg.Workflow.IntervalSeconds = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative interval")
	}

	cfg = base()
	cfg.Ledger.DSN = "redis://localhost"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported ledger scheme")
	}

	cfg = base()
	cfg.Paths.ScreenshotDir = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing screenshot dir")
	}

	cfg = base()
	if err := cfg.ValidateDiscord(); err == nil {
		t.Fatal("expected error for missing discord token")
	}
	cfg.Discord.Token = "abc"
	if err := cfg.ValidateDiscord(); err == nil {
		t.Fatal("expected error for missing guild id")
	}
}
