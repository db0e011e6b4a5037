package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"runeshot/internal/classify"
	"runeshot/internal/destination"
)

func newClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "classify <filename>...",
		Short:       "Show how screenshot filenames are routed",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("at least one filename is required")
			}
			rows := make([][]string, 0, len(args))
			for _, name := range args {
				label := classify.Classify(name)
				caption, _ := label.Caption()
				detail, _ := label.Detail()
				rows = append(rows, []string{
					name,
					label.Category.String(),
					detail,
					"#" + destination.NameFor(label.Category),
					caption,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"File", "Category", "Detail", "Destination", "Caption"},
				rows,
				nil,
			))
			return nil
		},
	}
}
