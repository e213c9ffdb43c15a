package cmd

import (
	"context"
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/tickerquiz/internal/app"
	"github.com/abhisek/tickerquiz/internal/unlocks"
)

var secretCmd = &cobra.Command{
	Use:   "secret <code>",
	Short: "Enter a secret code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, true, func(ctx context.Context, a *app.App) error {
			out := cmd.OutOrStdout()
			before := a.Ledger()

			secret, isNew, err := a.EnterCode(args[0])
			if err != nil {
				return err
			}
			if !isNew {
				fmt.Fprintf(out, "You already found %s.\n", secret.Name)
				return nil
			}
			st := stylesFor(a.Ledger())
			lipgloss.Fprintln(out, st.Title.Render("Secret found: "+secret.Name))
			announce(out, before, a.Ledger())
			return nil
		})
	},
}

var keysCmd = &cobra.Command{
	Use:   "keys <key>...",
	Short: "Replay a sequence of key presses",
	Long: `Feed key presses (up, down, left, right, a, b, ...) to the key sequence
detector. The detector only remembers keys for one invocation, so a sequence
must be given in full.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, true, func(ctx context.Context, a *app.App) error {
			out := cmd.OutOrStdout()
			before := a.Ledger()

			found := a.PushKeys(args)
			if len(found) == 0 {
				fmt.Fprintln(out, "Nothing happens.")
				return nil
			}
			st := stylesFor(a.Ledger())
			for _, s := range found {
				lipgloss.Fprintln(out, st.Title.Render("Secret found: "+s.Name))
			}
			announce(out, before, a.Ledger())
			return nil
		})
	},
}

var viewCmd = &cobra.Command{
	Use:   "view <widget>",
	Short: "Record viewing a data point on a widget",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, true, func(ctx context.Context, a *app.App) error {
			before := a.Ledger()
			if err := a.ViewWidget(args[0]); err != nil {
				return err
			}
			announce(cmd.OutOrStdout(), before, a.Ledger())
			return nil
		})
	},
}

var tickCmd = &cobra.Command{
	Use:   "tick <minutes>",
	Short: "Record time spent in the app",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid minutes %q: %w", args[0], err)
		}
		return withApp(cmd, true, func(ctx context.Context, a *app.App) error {
			before := a.Ledger()
			if err := a.Tick(minutes); err != nil {
				return err
			}
			announce(cmd.OutOrStdout(), before, a.Ledger())
			return nil
		})
	},
}

var awardCmd = &cobra.Command{
	Use:   "award <xp>",
	Short: "Grant XP by hand",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid xp %q: %w", args[0], err)
		}
		return withApp(cmd, true, func(ctx context.Context, a *app.App) error {
			before := a.Ledger()
			if err := a.Award(amount); err != nil {
				return err
			}
			announce(cmd.OutOrStdout(), before, a.Ledger())
			return nil
		})
	},
}

var customizeCmd = &cobra.Command{
	Use:   "customize [<slot> [<feature>]]",
	Short: "Show or change theme, accent and avatar frame",
	Long: `With no arguments, show the current customizations. With a slot
(theme, accent, avatar_frame) and a feature ID, select that feature. With a
slot alone, restore the default for that slot.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		return withApp(cmd, len(args) > 0, func(ctx context.Context, a *app.App) error {
			if len(args) > 0 {
				slot := unlocks.Slot(args[0])
				feature := ""
				if len(args) == 2 {
					feature = args[1]
				}
				if err := a.Customize(slot, feature); err != nil {
					return err
				}
			}

			l := a.Ledger()
			st := stylesFor(l)
			for _, slot := range unlocks.AllSlots() {
				name := "default"
				if id := l.Customizations.Get(slot); id != "" {
					if f, ok := unlocks.Get(id); ok {
						name = f.Name
					}
				}
				lipgloss.Fprintln(out, fmt.Sprintf("%-13s ", slot)+st.Highlight.Render(name))
			}
			return nil
		})
	},
}
