package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/tickerquiz/internal/app"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the progression ledger as JSON",
	Long:  `Write the progression ledger as JSON to file, or to stdout when no file is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, false, func(ctx context.Context, a *app.App) error {
			doc, err := a.Export()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				_, err := cmd.OutOrStdout().Write(append(doc, '\n'))
				return err
			}
			if err := os.WriteFile(args[0], doc, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", args[0])
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the progression ledger with an exported one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read import: %w", err)
		}
		return withApp(cmd, true, func(ctx context.Context, a *app.App) error {
			if err := a.Import(data); err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			l := a.Ledger()
			fmt.Fprintf(cmd.OutOrStdout(), "Imported: level %d, %d total XP\n", l.Level, l.TotalXP)
			return nil
		})
	},
}
