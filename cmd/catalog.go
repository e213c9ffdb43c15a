package cmd

import (
	"context"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/tickerquiz/internal/achievements"
	"github.com/abhisek/tickerquiz/internal/app"
	"github.com/abhisek/tickerquiz/internal/unlocks"
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List achievements and your progress toward them",
	RunE: func(cmd *cobra.Command, args []string) error {
		rarity, _ := cmd.Flags().GetString("rarity")
		if rarity != "" && achievements.Rarity(rarity).Rank() < 0 {
			return fmt.Errorf("unknown rarity %q", rarity)
		}

		return withApp(cmd, false, func(ctx context.Context, a *app.App) error {
			l := a.Ledger()
			st := stylesFor(l)
			state := l.AchievementState()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%-3s  %-20s  %-10s  %-11s  %s\n", "", "Name", "Rarity", "Progress", "Goal")
			fmt.Fprintln(out, strings.Repeat("─", 80))

			unlocked := 0
			for _, d := range achievements.Catalog() {
				if rarity != "" && string(d.Rarity) != rarity {
					continue
				}
				cur, target := d.Condition.Progress(state)
				line := fmt.Sprintf("%-20s  %-10s  %-11s  %s",
					d.Name, d.Rarity.DisplayName(), fmt.Sprintf("%d/%d", min(cur, target), target), d.Description)
				if l.AchievementUnlocked(d.ID) {
					unlocked++
					lipgloss.Fprintln(out, st.Correct.Render(" ✓ ")+"  "+st.Body.Render(line))
				} else {
					lipgloss.Fprintln(out, "     "+st.Locked.Render(line))
				}
			}

			fmt.Fprintf(out, "\n%d/%d unlocked\n", unlocked, len(achievements.Catalog()))
			return nil
		})
	},
}

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "List unlockable features",
	Long: `List every unlockable feature with its requirement. Hidden features show
as ??? until their secret is found.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, false, func(ctx context.Context, a *app.App) error {
			l := a.Ledger()
			st := stylesFor(l)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%-3s  %-26s  %-24s  %-14s  %s\n", "", "ID", "Name", "Category", "Requires")
			fmt.Fprintln(out, strings.Repeat("─", 90))

			for _, f := range unlocks.Catalog() {
				unlocked := l.FeatureUnlocked(f.ID)
				accessible := a.Engine().CanAccess(f.ID, a.Entitlements())

				id := f.ID
				if f.Hidden && !unlocked {
					id = unlocks.HiddenName
				}
				req := fmt.Sprintf("level %d", f.LevelRequired)
				if f.SecretGated() {
					req = "secret"
				}
				line := fmt.Sprintf("%-26s  %-24s  %-14s  %s",
					id, unlocks.DisplayName(f, unlocked), categoryLabel(f), req)

				switch {
				case unlocked:
					lipgloss.Fprintln(out, st.Correct.Render(" ✓ ")+"  "+st.Body.Render(line))
				case accessible:
					lipgloss.Fprintln(out, st.Highlight.Render(" ★ ")+"  "+st.Body.Render(line))
				default:
					lipgloss.Fprintln(out, "     "+st.Locked.Render(line))
				}
			}

			fmt.Fprintf(out, "\n%d/%d unlocked", l.UnlockedCount(), len(unlocks.Catalog()))
			if a.Entitlements().BypassesLevelGates() {
				fmt.Fprint(out, " (★ available with lifetime access)")
			}
			fmt.Fprintln(out)
			return nil
		})
	},
}

func init() {
	achievementsCmd.Flags().String("rarity", "", "Filter by rarity (common, rare, epic, legendary)")
}

func categoryLabel(f unlocks.Feature) string {
	if f.Slot != unlocks.SlotNone {
		return string(f.Category) + "/" + string(f.Slot)
	}
	return string(f.Category)
}
