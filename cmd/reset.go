package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/tickerquiz/internal/app"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all progress",
	Long: `Reset level, XP, unlocks, achievements, secrets and stats. The XP history
and earlier snapshots are kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return errors.New("refusing to reset without --yes")
		}
		return withApp(cmd, true, func(ctx context.Context, a *app.App) error {
			a.Reset()
			fmt.Fprintln(cmd.OutOrStdout(), "Progress reset.")
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
