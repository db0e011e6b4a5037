package config

const (
	defaultConfigPath            = "~/.config/runeshot/config.toml"
	defaultRuneLiteDir           = "~/.runelite/screenshots"
	defaultDataDir               = "~/.local/share/runeshot"
	defaultLogDir                = "~/.local/share/runeshot/logs"
	defaultLogRetentionDays      = 30
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultIntervalSeconds       = 60
	defaultGraceSeconds          = 10
	defaultDiscordRequestTimeout = 30
	defaultNotifyRequestTimeout  = 10
	defaultNotifyDedupWindow     = 3600
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Discord: Discord{
			RequestTimeout: defaultDiscordRequestTimeout,
		},
		Workflow: Workflow{
			IntervalSeconds: defaultIntervalSeconds,
			GraceSeconds:    defaultGraceSeconds,
		},
		Notifications: Notifications{
			RequestTimeout:     defaultNotifyRequestTimeout,
			Failures:           true,
			DedupWindowSeconds: defaultNotifyDedupWindow,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
