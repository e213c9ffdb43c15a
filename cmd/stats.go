package cmd

import (
	"context"
	"fmt"
	"io"
	"slices"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/tickerquiz/internal/app"
	"github.com/abhisek/tickerquiz/internal/progression"
	"github.com/abhisek/tickerquiz/internal/questionbank"
	"github.com/abhisek/tickerquiz/internal/ui/components"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show level, XP and activity statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		showMetrics, _ := cmd.Flags().GetBool("metrics")
		return withApp(cmd, false, func(ctx context.Context, a *app.App) error {
			out := cmd.OutOrStdout()
			if err := printStats(ctx, out, a); err != nil {
				return err
			}
			if showMetrics {
				fmt.Fprintln(out)
				return a.Metrics().WriteText(out)
			}
			return nil
		})
	},
}

func init() {
	statsCmd.Flags().Bool("metrics", false, "Also print the Prometheus metrics dump")
}

func printStats(ctx context.Context, out io.Writer, a *app.App) error {
	l := a.Ledger()
	st := stylesFor(l)

	lipgloss.Fprintln(out, st.Title.Render("Progress"))
	lipgloss.Fprintln(out, components.NewXPBar(st, l.Level, l.XP, l.XPToNextLevel, 48).View())
	fmt.Fprintf(out, "Total XP:        %d\n", l.TotalXP)
	fmt.Fprintf(out, "Adaptive level:  %.1f\n", float64(l.AdaptiveLevel))
	fmt.Fprintf(out, "Unlocked:        %d features, %d achievements, %d secrets\n",
		l.UnlockedCount(), countUnlocked(l), len(l.DiscoveredSecrets))

	s := l.Stats
	fmt.Fprintln(out)
	lipgloss.Fprintln(out, st.Title.Render("Activity"))
	fmt.Fprintf(out, "Questions:       %d answered, %d correct (%.0f%%)\n", s.QuizAnswered, s.QuizCorrect, s.Accuracy()*100)
	fmt.Fprintf(out, "Streak:          %d current, %d best\n", s.CurrentStreak, s.BestStreak)
	fmt.Fprintf(out, "Sessions:        %d (%d perfect)\n", s.QuizSessions, s.PerfectSessions)
	fmt.Fprintf(out, "Data points:     %d\n", s.DataPointsViewed)
	fmt.Fprintf(out, "Time spent:      %d min\n", s.TimeSpentMinutes)
	for _, c := range questionbank.AllCategories() {
		if n := s.CategoryCorrect[c]; n > 0 {
			fmt.Fprintf(out, "  %-14s %d correct\n", c.DisplayName(), n)
		}
	}

	totals, err := a.XPBySource(ctx)
	if err != nil {
		return err
	}
	if len(totals) == 0 {
		return nil
	}
	fmt.Fprintln(out)
	lipgloss.Fprintln(out, st.Title.Render("XP by source"))
	for _, src := range progression.AllSources() {
		if n, ok := totals[string(src)]; ok {
			fmt.Fprintf(out, "  %-10s %d\n", src, n)
		}
	}
	var other []string
	for k := range totals {
		if !progression.Source(k).Known() {
			other = append(other, k)
		}
	}
	slices.Sort(other)
	for _, k := range other {
		fmt.Fprintf(out, "  %-10s %d\n", k, totals[k])
	}
	return nil
}

func countUnlocked(l progression.Ledger) int {
	n := 0
	for _, r := range l.Achievements {
		if r.Unlocked() {
			n++
		}
	}
	return n
}
