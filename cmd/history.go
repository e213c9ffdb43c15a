package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/tickerquiz/internal/app"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent XP awards",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		if limit < 1 {
			return fmt.Errorf("--limit must be positive, got %d", limit)
		}

		return withApp(cmd, false, func(ctx context.Context, a *app.App) error {
			events, err := a.History(ctx, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No XP recorded yet.")
				return nil
			}

			fmt.Fprintf(out, "%6s  %-19s  %-10s  %6s  %5s  %s\n", "Seq", "Time", "Source", "XP", "Level", "Session")
			fmt.Fprintln(out, strings.Repeat("─", 80))
			for _, ev := range events {
				sid := ev.SessionID
				if len(sid) > 8 {
					sid = sid[:8]
				}
				fmt.Fprintf(out, "%6d  %-19s  %-10s  %+6d  %5d  %s\n",
					ev.Sequence, ev.Timestamp.Local().Format(time.DateTime), ev.Source, ev.Amount, ev.Level, sid)
			}
			return nil
		})
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of awards to show")
}
