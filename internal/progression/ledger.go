package progression

import (
	"maps"
	"math"
	"slices"
	"time"

	"github.com/abhisek/tickerquiz/internal/achievements"
	"github.com/abhisek/tickerquiz/internal/adaptive"
	"github.com/abhisek/tickerquiz/internal/questionbank"
	"github.com/abhisek/tickerquiz/internal/unlocks"
)

// CurrentVersion is the ledger document version written by Marshal.
const CurrentVersion = 1

// DocumentKey is the storage key the ledger document is saved under.
const DocumentKey = "progression-ledger/v1"

// Ledger is the persisted progression state of the single local user.
type Ledger struct {
	Version           int                   `json:"version"`
	Level             int                   `json:"level"`
	XP                int                   `json:"xp"`
	TotalXP           int                   `json:"totalXp"`
	XPToNextLevel     int                   `json:"xpToNextLevel"`
	AdaptiveLevel     adaptive.Level        `json:"adaptiveLevel"`
	Achievements      []achievements.Record `json:"achievements"`
	UnlockedFeatures  []FeatureRecord       `json:"unlockedFeatures"`
	DiscoveredSecrets []string              `json:"discoveredSecrets"`
	Stats             Stats                 `json:"stats"`
	Customizations    Customizations        `json:"customizations"`
}

// FeatureRecord is the lock state of one catalog feature. UnlockedAt is nil
// while the feature is locked.
type FeatureRecord struct {
	ID         string     `json:"id"`
	UnlockedAt *time.Time `json:"unlocked_at"`
}

// Unlocked reports whether the feature has been unlocked.
func (r FeatureRecord) Unlocked() bool { return r.UnlockedAt != nil }

// Stats holds the activity counters.
type Stats struct {
	DataPointsViewed int                           `json:"dataPointsViewed"`
	QuizAnswered     int                           `json:"quizAnswered"`
	QuizCorrect      int                           `json:"quizCorrect"`
	CurrentStreak    int                           `json:"currentStreak"`
	BestStreak       int                           `json:"bestStreak"`
	QuizSessions     int                           `json:"quizSessions"`
	PerfectSessions  int                           `json:"perfectSessions"`
	TimeSpentMinutes int                           `json:"timeSpentMinutes"`
	CategoryCorrect  map[questionbank.Category]int `json:"categoryCorrect"`
	LastActivity     *time.Time                    `json:"lastActivity,omitempty"`
	LastQuizAt       *time.Time                    `json:"lastQuizAt,omitempty"`
}

// Accuracy returns the share of answered questions that were correct.
func (s Stats) Accuracy() float64 {
	if s.QuizAnswered == 0 {
		return 0
	}
	return float64(s.QuizCorrect) / float64(s.QuizAnswered)
}

// StatsPatch is a set of deltas merged into Stats by UpdateStats. Counter
// fields are added; CurrentStreak, when set, replaces the streak.
type StatsPatch struct {
	DataPointsViewed int
	QuizAnswered     int
	QuizCorrect      int
	QuizSessions     int
	PerfectSessions  int
	TimeSpentMinutes int
	CategoryCorrect  map[questionbank.Category]int
	CurrentStreak    *int
	LastQuizAt       *time.Time
}

// Customizations records the feature chosen for each customization slot.
// Empty means the default look.
type Customizations struct {
	Theme       string `json:"theme"`
	Accent      string `json:"accent"`
	AvatarFrame string `json:"avatarFrame"`
}

// Get returns the feature ID selected for slot.
func (c Customizations) Get(slot unlocks.Slot) string {
	switch slot {
	case unlocks.SlotTheme:
		return c.Theme
	case unlocks.SlotAccent:
		return c.Accent
	case unlocks.SlotAvatarFrame:
		return c.AvatarFrame
	}
	return ""
}

func (c *Customizations) set(slot unlocks.Slot, featureID string) {
	switch slot {
	case unlocks.SlotTheme:
		c.Theme = featureID
	case unlocks.SlotAccent:
		c.Accent = featureID
	case unlocks.SlotAvatarFrame:
		c.AvatarFrame = featureID
	}
}

// NewLedger returns the initial ledger: level 1, no XP, adaptive level at
// its minimum, every catalog entry locked.
func NewLedger() Ledger {
	features := unlocks.Catalog()
	records := make([]FeatureRecord, len(features))
	for i, f := range features {
		records[i] = FeatureRecord{ID: f.ID}
	}
	return Ledger{
		Version:           CurrentVersion,
		Level:             1,
		XPToNextLevel:     XPToNextLevel(1),
		AdaptiveLevel:     adaptive.Initial,
		Achievements:      achievements.InitialRecords(),
		UnlockedFeatures:  records,
		DiscoveredSecrets: []string{},
		Stats: Stats{
			CategoryCorrect: make(map[questionbank.Category]int),
		},
	}
}

// Clone returns a deep copy of l.
func (l Ledger) Clone() Ledger {
	out := l
	out.Achievements = make([]achievements.Record, len(l.Achievements))
	for i, r := range l.Achievements {
		out.Achievements[i] = achievements.Record{ID: r.ID, UnlockedAt: cloneTime(r.UnlockedAt)}
	}
	out.UnlockedFeatures = make([]FeatureRecord, len(l.UnlockedFeatures))
	for i, r := range l.UnlockedFeatures {
		out.UnlockedFeatures[i] = FeatureRecord{ID: r.ID, UnlockedAt: cloneTime(r.UnlockedAt)}
	}
	out.DiscoveredSecrets = slices.Clone(l.DiscoveredSecrets)
	if out.DiscoveredSecrets == nil {
		out.DiscoveredSecrets = []string{}
	}
	out.Stats.CategoryCorrect = maps.Clone(l.Stats.CategoryCorrect)
	if out.Stats.CategoryCorrect == nil {
		out.Stats.CategoryCorrect = make(map[questionbank.Category]int)
	}
	out.Stats.LastActivity = cloneTime(l.Stats.LastActivity)
	out.Stats.LastQuizAt = cloneTime(l.Stats.LastQuizAt)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// FeatureUnlocked reports whether the feature with id is unlocked.
func (l Ledger) FeatureUnlocked(id string) bool {
	for _, r := range l.UnlockedFeatures {
		if r.ID == id {
			return r.Unlocked()
		}
	}
	return false
}

// AchievementUnlocked reports whether the achievement with id is unlocked.
func (l Ledger) AchievementUnlocked(id string) bool {
	for _, r := range l.Achievements {
		if r.ID == id {
			return r.Unlocked()
		}
	}
	return false
}

// SecretDiscovered reports whether the secret with id was discovered.
func (l Ledger) SecretDiscovered(id string) bool {
	return slices.Contains(l.DiscoveredSecrets, id)
}

// UnlockedCount returns the number of unlocked features.
func (l Ledger) UnlockedCount() int {
	n := 0
	for _, r := range l.UnlockedFeatures {
		if r.Unlocked() {
			n++
		}
	}
	return n
}

// AchievementState projects the ledger onto the evaluator's input.
func (l Ledger) AchievementState() achievements.State {
	return achievements.State{
		Level:        l.Level,
		TotalXP:      l.TotalXP,
		SecretsFound: len(l.DiscoveredSecrets),
		Stats: map[achievements.Stat]int{
			achievements.StatDataViewed:   l.Stats.DataPointsViewed,
			achievements.StatTime:         l.Stats.TimeSpentMinutes,
			achievements.StatQuizStreak:   max(l.Stats.CurrentStreak, l.Stats.BestStreak),
			achievements.StatQuizSeries:   l.Stats.QuizSessions,
			achievements.StatQuizAnswered: l.Stats.QuizAnswered,
			achievements.StatQuizCorrect:  l.Stats.QuizCorrect,
		},
		CategoryCorrect: l.Stats.CategoryCorrect,
	}
}

// saturatingAdd returns v+d clamped to [0, math.MaxInt]. v must not be
// negative.
func saturatingAdd(v, d int) int {
	if d > 0 && v > math.MaxInt-d {
		return math.MaxInt
	}
	return max(v+d, 0)
}

// stampAchievements marks every achievement the ledger now satisfies as
// unlocked at now and returns their IDs in catalog order.
func (l *Ledger) stampAchievements(now time.Time) []string {
	var ids []string
	for _, d := range achievements.Evaluate(l.AchievementState(), l.Achievements) {
		for i := range l.Achievements {
			r := &l.Achievements[i]
			if r.ID != d.ID {
				continue
			}
			t := now
			r.UnlockedAt = &t
			ids = append(ids, d.ID)
			break
		}
	}
	return ids
}

// applyPatch merges p into s. Counters never go below zero and BestStreak
// never decreases.
func (s *Stats) applyPatch(p StatsPatch, now time.Time) {
	add := func(v *int, d int) { *v = saturatingAdd(*v, d) }
	add(&s.DataPointsViewed, p.DataPointsViewed)
	add(&s.QuizAnswered, p.QuizAnswered)
	add(&s.QuizCorrect, p.QuizCorrect)
	add(&s.QuizSessions, p.QuizSessions)
	add(&s.PerfectSessions, p.PerfectSessions)
	add(&s.TimeSpentMinutes, p.TimeSpentMinutes)

	if p.CurrentStreak != nil {
		s.CurrentStreak = max(*p.CurrentStreak, 0)
	}
	s.BestStreak = max(s.BestStreak, s.CurrentStreak)

	if s.CategoryCorrect == nil {
		s.CategoryCorrect = make(map[questionbank.Category]int)
	}
	for c, d := range p.CategoryCorrect {
		s.CategoryCorrect[c] = saturatingAdd(s.CategoryCorrect[c], d)
	}

	if p.LastQuizAt != nil {
		s.LastQuizAt = cloneTime(p.LastQuizAt)
	}
	t := now
	s.LastActivity = &t
}
