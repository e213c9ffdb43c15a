package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tickerquiz/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label   string
	Current int
	Target  int
	Width   int
	Styles  theme.Styles
}

// NewXPBar creates a bar for xp out of the amount needed for the next level.
func NewXPBar(styles theme.Styles, level, xp, toNext, width int) ProgressBar {
	return ProgressBar{
		Label:   fmt.Sprintf("Lv %d", level),
		Current: xp,
		Target:  toNext,
		Width:   width,
		Styles:  styles,
	}
}

// Fraction returns Current/Target clamped to [0, 1].
func (p ProgressBar) Fraction() float64 {
	if p.Target <= 0 {
		return 0
	}
	f := float64(p.Current) / float64(p.Target)
	return min(max(f, 0), 1)
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var b strings.Builder

	if p.Label != "" {
		b.WriteString(p.Styles.Body.Render(p.Label))
		b.WriteString("  ")
	}

	counter := fmt.Sprintf("  %d/%d", p.Current, p.Target)
	barWidth := p.Width - lipgloss.Width(b.String()) - len(counter)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Fraction())
	b.WriteString(p.Styles.ProgressFilled.Render(strings.Repeat(" ", filled)))
	b.WriteString(p.Styles.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)))
	b.WriteString(p.Styles.Subtitle.Render(counter))

	return b.String()
}
