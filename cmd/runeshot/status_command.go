package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"runeshot/internal/api"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the state of a running daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.API.Bind == "" {
				return fmt.Errorf("api.bind is not configured; enable the status API to query a running daemon")
			}
			client, err := api.NewClient(cfg.API.Bind, cfg.API.Token)
			if err != nil {
				return err
			}
			status, err := client.Status(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderStatus(status, time.Now()))
			return nil
		},
	}
}

func renderStatus(status api.DaemonStatus, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Running:        %s (pid %d)\n", yesNo(status.Running), status.PID)
	if started, err := time.Parse(time.RFC3339, status.StartedAt); err == nil {
		fmt.Fprintf(&b, "Started:        %s\n", humanize.RelTime(started, now, "ago", "from now"))
	}
	fmt.Fprintf(&b, "Scheduler:      %s, every %ds, %d batches\n",
		status.Scheduler.State, status.Scheduler.IntervalSeconds, status.Scheduler.Batches)
	fmt.Fprintf(&b, "Screenshots:    %s\n", status.ScreenshotDir)
	fmt.Fprintf(&b, "Posted total:   %s\n", humanize.Comma(int64(status.LedgerEntries)))

	if last := status.Scheduler.LastBatch; last != nil {
		fmt.Fprintf(&b, "Last batch:     %d delivered, %d skipped", last.Delivered, last.Skipped)
		if last.Failed > 0 {
			fmt.Fprintf(&b, ", failed on %s", last.FailedPath)
		}
		b.WriteString("\n")
		if last.Error != "" {
			fmt.Fprintf(&b, "Last error:     %s\n", last.Error)
		}
	}

	if len(status.Destinations) > 0 {
		rows := make([][]string, 0, len(status.Destinations))
		for _, dest := range status.Destinations {
			rows = append(rows, []string{dest.Category, "#" + dest.Name, dest.ChannelID})
		}
		b.WriteString(renderTable([]string{"Category", "Channel", "ID"}, rows, nil))
		b.WriteString("\n")
	}
	return b.String()
}
