package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newLedgerCommand(ctx *commandContext) *cobra.Command {
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect and edit the posted-screenshot ledger",
	}
	ledgerCmd.AddCommand(newLedgerListCommand(ctx))
	ledgerCmd.AddCommand(newLedgerCountCommand(ctx))
	ledgerCmd.AddCommand(newLedgerAddCommand(ctx))
	return ledgerCmd
}

func newLedgerListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posted screenshots, most recent last",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := ctx.openLedger(cmd)
			if err != nil {
				return err
			}
			defer l.Close()

			entries, err := l.Entries(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Ledger is empty")
				return nil
			}
			start := 0
			if limit > 0 && len(entries) > limit {
				start = len(entries) - limit
			}
			rows := make([][]string, 0, len(entries)-start)
			for i := start; i < len(entries); i++ {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					filepath.Base(entries[i]),
					yesNo(fileExists(entries[i])),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "File", "On disk"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show only the last N entries")
	return cmd
}

func newLedgerCountCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print how many screenshots have been posted",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := ctx.openLedger(cmd)
			if err != nil {
				return err
			}
			defer l.Close()

			count, err := l.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s screenshots posted\n", humanize.Comma(int64(count)))
			return nil
		},
	}
}

func newLedgerAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <path>...",
		Short: "Mark screenshots as posted without sending them",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("at least one path is required")
			}
			l, err := ctx.openLedger(cmd)
			if err != nil {
				return err
			}
			defer l.Close()

			out := cmd.OutOrStdout()
			for _, arg := range args {
				path, err := filepath.Abs(arg)
				if err != nil {
					return fmt.Errorf("resolve %s: %w", arg, err)
				}
				seen, err := l.Contains(cmd.Context(), path)
				if err != nil {
					return err
				}
				if seen {
					fmt.Fprintf(out, "Already recorded: %s\n", path)
					continue
				}
				if err := l.Record(cmd.Context(), path); err != nil {
					return err
				}
				fmt.Fprintf(out, "Recorded: %s\n", path)
			}
			return nil
		},
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
