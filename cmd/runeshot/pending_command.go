package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"runeshot/internal/classify"
	"runeshot/internal/destination"
	"runeshot/internal/scan"
)

func newPendingCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List screenshots that have not been posted yet",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			l, err := ctx.openLedger(cmd)
			if err != nil {
				return err
			}
			defer l.Close()

			shots, err := scan.NewScanner().Scan(cmd.Context(), cfg.Paths.ScreenshotDir)
			if err != nil {
				return err
			}

			var rows [][]string
			for _, shot := range shots {
				seen, err := l.Contains(cmd.Context(), shot.Path)
				if err != nil {
					return err
				}
				if seen {
					continue
				}
				label := classify.Classify(shot.Name)
				rows = append(rows, []string{
					shot.Name,
					label.Category.String(),
					"#" + destination.NameFor(label.Category),
					humanize.Bytes(uint64(max(shot.Size, 0))),
					humanize.Time(shot.Created),
				})
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintf(out, "No pending screenshots (%d scanned in %s)\n", len(shots), cfg.Paths.ScreenshotDir)
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"File", "Category", "Destination", "Size", "Created"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			fmt.Fprintf(out, "%d pending of %d scanned\n", len(rows), len(shots))
			return nil
		},
	}
}
