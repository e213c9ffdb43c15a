package achievements

import (
	"fmt"

	"github.com/abhisek/tickerquiz/internal/questionbank"
)

// Stat names a counter an achievement can be gated on.
type Stat string

const (
	StatDataViewed   Stat = "data_viewed"
	StatTime         Stat = "time"
	StatQuizStreak   Stat = "quiz_streak"
	StatQuizSeries   Stat = "quiz_series"
	StatQuizAnswered Stat = "quiz_answered"
	StatQuizCorrect  Stat = "quiz_correct"
)

// State is the read-only view of a ledger that conditions are checked
// against.
type State struct {
	Level           int
	TotalXP         int
	SecretsFound    int
	Stats           map[Stat]int
	CategoryCorrect map[questionbank.Category]int
}

// Condition is the unlock rule of an achievement. The set of conditions is
// closed; only this package implements it.
type Condition interface {
	// Met reports whether s satisfies the condition.
	Met(s State) bool
	// Progress returns the current value and the target.
	Progress(s State) (current, target int)
	// Describe returns a short human-readable rule.
	Describe() string

	sealed()
}

// ByLevel is met once the ledger reaches Level.
type ByLevel struct{ Level int }

// ByTotalXP is met once lifetime XP reaches XP.
type ByTotalXP struct{ XP int }

// BySecretsFound is met once Count secrets are discovered.
type BySecretsFound struct{ Count int }

// ByStat is met once the named counter reaches Threshold.
type ByStat struct {
	Stat      Stat
	Threshold int
}

// ByCategoryCorrect is met once Count questions of Category were answered
// correctly.
type ByCategoryCorrect struct {
	Category questionbank.Category
	Count    int
}

func (c ByLevel) Met(s State) bool { return s.Level >= c.Level }
func (c ByLevel) Progress(s State) (int, int) {
	return min(s.Level, c.Level), c.Level
}
func (c ByLevel) Describe() string { return fmt.Sprintf("Reach level %d", c.Level) }
func (ByLevel) sealed()            {}

func (c ByTotalXP) Met(s State) bool { return s.TotalXP >= c.XP }
func (c ByTotalXP) Progress(s State) (int, int) {
	return min(s.TotalXP, c.XP), c.XP
}
func (c ByTotalXP) Describe() string { return fmt.Sprintf("Earn %d total XP", c.XP) }
func (ByTotalXP) sealed()            {}

func (c BySecretsFound) Met(s State) bool { return s.SecretsFound >= c.Count }
func (c BySecretsFound) Progress(s State) (int, int) {
	return min(s.SecretsFound, c.Count), c.Count
}
func (c BySecretsFound) Describe() string {
	if c.Count == 1 {
		return "Discover a secret"
	}
	return fmt.Sprintf("Discover %d secrets", c.Count)
}
func (BySecretsFound) sealed() {}

func (c ByStat) Met(s State) bool { return s.Stats[c.Stat] >= c.Threshold }
func (c ByStat) Progress(s State) (int, int) {
	return min(s.Stats[c.Stat], c.Threshold), c.Threshold
}
func (c ByStat) Describe() string {
	switch c.Stat {
	case StatDataViewed:
		return fmt.Sprintf("View %d data points", c.Threshold)
	case StatTime:
		return fmt.Sprintf("Spend %d minutes in the app", c.Threshold)
	case StatQuizStreak:
		return fmt.Sprintf("Answer %d questions correctly in a row", c.Threshold)
	case StatQuizSeries:
		return fmt.Sprintf("Complete %d quiz sessions", c.Threshold)
	case StatQuizAnswered:
		return fmt.Sprintf("Answer %d questions", c.Threshold)
	case StatQuizCorrect:
		return fmt.Sprintf("Answer %d questions correctly", c.Threshold)
	default:
		return fmt.Sprintf("Reach %d %s", c.Threshold, c.Stat)
	}
}
func (ByStat) sealed() {}

func (c ByCategoryCorrect) Met(s State) bool { return s.CategoryCorrect[c.Category] >= c.Count }
func (c ByCategoryCorrect) Progress(s State) (int, int) {
	return min(s.CategoryCorrect[c.Category], c.Count), c.Count
}
func (c ByCategoryCorrect) Describe() string {
	return fmt.Sprintf("Answer %d %s questions correctly", c.Count, c.Category.DisplayName())
}
func (ByCategoryCorrect) sealed() {}
