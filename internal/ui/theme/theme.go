package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette is the set of colors the terminal output is drawn with.
type Palette struct {
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	Border    color.Color
}

// Default palette, used when no theme is selected.
var Default = Palette{
	Primary:   lipgloss.Color("#8B5CF6"), // Vivid Purple
	Secondary: lipgloss.Color("#14B8A6"), // Teal
	Accent:    lipgloss.Color("#F97316"), // Orange
	Success:   lipgloss.Color("#22C55E"),
	Error:     lipgloss.Color("#F43F5E"),
	Text:      lipgloss.Color("#F8FAFC"),
	TextDim:   lipgloss.Color("#94A3B8"),
	Border:    lipgloss.Color("#334155"),
}

var themes = map[string]Palette{
	"theme-midnight": {
		Primary:   lipgloss.Color("#6366F1"),
		Secondary: lipgloss.Color("#38BDF8"),
		Accent:    lipgloss.Color("#FACC15"),
		Success:   lipgloss.Color("#4ADE80"),
		Error:     lipgloss.Color("#FB7185"),
		Text:      lipgloss.Color("#E2E8F0"),
		TextDim:   lipgloss.Color("#64748B"),
		Border:    lipgloss.Color("#1E293B"),
	},
	"theme-matrix": {
		Primary:   lipgloss.Color("#00FF41"),
		Secondary: lipgloss.Color("#008F11"),
		Accent:    lipgloss.Color("#00FF41"),
		Success:   lipgloss.Color("#00FF41"),
		Error:     lipgloss.Color("#FF3131"),
		Text:      lipgloss.Color("#C8FFC8"),
		TextDim:   lipgloss.Color("#3B7A3B"),
		Border:    lipgloss.Color("#003B00"),
	},
	"theme-aurora": {
		Primary:   lipgloss.Color("#A78BFA"),
		Secondary: lipgloss.Color("#34D399"),
		Accent:    lipgloss.Color("#F472B6"),
		Success:   lipgloss.Color("#6EE7B7"),
		Error:     lipgloss.Color("#F87171"),
		Text:      lipgloss.Color("#F0FDFA"),
		TextDim:   lipgloss.Color("#99A8C4"),
		Border:    lipgloss.Color("#312E81"),
	},
}

var accents = map[string]color.Color{
	"accent-emerald": lipgloss.Color("#10B981"),
	"accent-diamond": lipgloss.Color("#67E8F9"),
}

// Resolve builds the palette for the selected theme and accent feature IDs.
// Unknown or empty IDs fall back to the defaults.
func Resolve(themeID, accentID string) Palette {
	p, ok := themes[themeID]
	if !ok {
		p = Default
	}
	if c, ok := accents[accentID]; ok {
		p.Accent = c
	}
	return p
}

// Styles are the text styles derived from a palette.
type Styles struct {
	Palette Palette

	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Body      lipgloss.Style
	Hint      lipgloss.Style
	Highlight lipgloss.Style
	Card      lipgloss.Style
	Correct   lipgloss.Style
	Incorrect lipgloss.Style
	Locked    lipgloss.Style

	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
}

// NewStyles derives the styles for p.
func NewStyles(p Palette) Styles {
	return Styles{
		Palette: p,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),

		Subtitle: lipgloss.NewStyle().
			Foreground(p.TextDim),

		Body: lipgloss.NewStyle().
			Foreground(p.Text),

		Hint: lipgloss.NewStyle().
			Foreground(p.TextDim).
			Italic(true),

		Highlight: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),

		Correct: lipgloss.NewStyle().
			Foreground(p.Success).
			Bold(true),

		Incorrect: lipgloss.NewStyle().
			Foreground(p.Error).
			Bold(true),

		Locked: lipgloss.NewStyle().
			Foreground(p.TextDim).
			Faint(true),

		ProgressFilled: lipgloss.NewStyle().
			Background(p.Secondary),

		ProgressEmpty: lipgloss.NewStyle().
			Background(p.Border),
	}
}
