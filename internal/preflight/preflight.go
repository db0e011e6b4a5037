package preflight

import (
	"context"

	"runeshot/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckScreenshotDir(cfg.Paths.ScreenshotDir),
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckLedger(ctx, cfg),
	}
	if cfg.Discord.Token != "" && cfg.Discord.GuildID != "" {
		results = append(results, CheckDiscord(ctx, "", cfg.Discord.Token, cfg.Discord.GuildID))
	} else {
		results = append(results, Result{Name: "Discord", Detail: "missing token or guild id"})
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
