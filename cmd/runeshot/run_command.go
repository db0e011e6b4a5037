package main

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"runeshot/internal/daemon"
	"runeshot/internal/ledger"
	"runeshot/internal/logging"
	"runeshot/internal/logs"
	"runeshot/internal/messenger"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Deliver screenshots on a schedule",
		Long: "Start the delivery loop. Every interval the screenshot directory is scanned and\n" +
			"new screenshots are posted to their Discord channels. With --once (or RUN_ONCE=true)\n" +
			"a single batch runs and the process exits.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemonProcess(cmd.Context(), ctx, once)
		},
	}
	cmd.Flags().BoolVar(&once, "once", false, "Run a single batch and exit")
	return cmd
}

func runDaemonProcess(cmdCtx context.Context, ctx *commandContext, once bool) error {
	if cmdCtx == nil {
		cmdCtx = context.Background()
	}
	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if once {
		cfg.Workflow.RunOnce = true
	}
	if err := cfg.ValidateDiscord(); err != nil {
		return err
	}

	runStamp := time.Now().UTC().Format("20060102T150405.000Z")
	logPath := filepath.Join(cfg.Paths.LogDir, fmt.Sprintf("runeshot-%s.log", runStamp))
	logger, err := logging.NewFromConfig(cfg, logPath)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays,
		logging.RetentionTarget{Dir: cfg.Paths.LogDir, Pattern: logs.FilePattern, Exclude: []string{logPath}},
	)

	l, err := ledger.Open(cfg)
	if err != nil {
		logging.ErrorWithContext(logger, "open ledger", "ledger_open_failed",
			logging.String(logging.FieldErrorHint, "check ledger.dsn and data directory permissions"),
			logging.Error(err),
		)
		return err
	}

	discord, err := messenger.NewDiscord(cfg.Discord.Token, cfg.Discord.GuildID, cfg.DiscordTimeout(), logger)
	if err != nil {
		_ = l.Close()
		return fmt.Errorf("create discord client: %w", err)
	}

	d, err := daemon.New(cfg, daemon.Deps{
		Ledger:    l,
		Messenger: discord,
		Logger:    logger,
	})
	if err != nil {
		_ = l.Close()
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	if err := d.Run(signalCtx); err != nil {
		return err
	}
	if !cfg.Workflow.RunOnce {
		logger.Info("runeshot shutting down")
	}
	return nil
}
