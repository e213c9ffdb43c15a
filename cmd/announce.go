package cmd

import (
	"fmt"
	"io"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tickerquiz/internal/achievements"
	"github.com/abhisek/tickerquiz/internal/progression"
	"github.com/abhisek/tickerquiz/internal/unlocks"
)

// announce prints what changed between two ledgers: XP gained, level-ups,
// unlocked features and achievements.
func announce(w io.Writer, before, after progression.Ledger) {
	s := stylesFor(after)

	if gained := after.TotalXP - before.TotalXP; gained > 0 {
		lipgloss.Fprintln(w, s.Highlight.Render(fmt.Sprintf("+%d XP", gained)))
	}
	if after.Level > before.Level {
		lipgloss.Fprintln(w, s.Title.Render(fmt.Sprintf("Level up! You are now level %d.", after.Level)))
	}

	for _, f := range unlocks.Catalog() {
		if after.FeatureUnlocked(f.ID) && !before.FeatureUnlocked(f.ID) {
			lipgloss.Fprintln(w, s.Correct.Render("Unlocked: ")+s.Body.Render(f.Name)+" "+s.Hint.Render(f.Description))
		}
	}
	for _, d := range achievements.Catalog() {
		if after.AchievementUnlocked(d.ID) && !before.AchievementUnlocked(d.ID) {
			lipgloss.Fprintln(w, s.Highlight.Render("Achievement: ")+s.Body.Render(d.Name)+" "+
				s.Hint.Render(fmt.Sprintf("(%s)", d.Rarity.DisplayName())))
		}
	}
}
