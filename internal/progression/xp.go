package progression

import "math"

// XP award amounts.
const (
	SecretBonusXP         = 100
	PerfectSessionBonusXP = 50
	DataPointXP           = 5
	XPPerMinute           = 2
)

const (
	baseLevelThreshold   = 100
	levelThresholdGrowth = 1.5
	maxLevelThreshold    = 1 << 50
)

// XPToNextLevel returns the XP needed to advance from level to level+1:
// floor(100 * 1.5^(level-1)). Levels below 1 are treated as 1.
func XPToNextLevel(level int) int {
	if level < 1 {
		level = 1
	}
	v := math.Floor(baseLevelThreshold * math.Pow(levelThresholdGrowth, float64(level-1)))
	if v > maxLevelThreshold {
		return maxLevelThreshold
	}
	return int(v)
}

// XPForAnswer returns the XP for answering a question of the given
// difficulty. Wrong answers earn nothing.
func XPForAnswer(difficulty int, correct bool) int {
	if !correct {
		return 0
	}
	switch {
	case difficulty <= 1:
		return 15
	case difficulty == 2:
		return 25
	default:
		return 40
	}
}

// Source names where awarded XP came from.
type Source string

const (
	SourceQuiz     Source = "quiz"
	SourceSession  Source = "session"
	SourceSecret   Source = "secret"
	SourceDataView Source = "data_view"
	SourceTime     Source = "time"
	SourceManual   Source = "manual"
)

// AllSources returns every XP source.
func AllSources() []Source {
	return []Source{SourceQuiz, SourceSession, SourceSecret, SourceDataView, SourceTime, SourceManual}
}

// Known reports whether s is one of AllSources.
func (s Source) Known() bool {
	for _, v := range AllSources() {
		if v == s {
			return true
		}
	}
	return false
}
