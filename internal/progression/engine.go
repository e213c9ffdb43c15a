package progression

import (
	"math"
	"sync"
	"time"

	"github.com/abhisek/tickerquiz/internal/adaptive"
	"github.com/abhisek/tickerquiz/internal/questionbank"
	"github.com/abhisek/tickerquiz/internal/session"
	"github.com/abhisek/tickerquiz/internal/unlocks"
)

// Engine owns one ledger and applies every progression mutation to it.
// All methods are safe for concurrent use; mutations are serialized.
type Engine struct {
	mu        sync.Mutex
	ledger    Ledger
	now       func() time.Time
	observers []Observer
	pending   []Event
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used for unlock timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithObserver registers an observer for engine events.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

// NewEngine creates an engine over a copy of l. The ledger is normalized
// first, so an engine built from a partially filled ledger is consistent.
func NewEngine(l Ledger, opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, o := range opts {
		o(e)
	}
	e.ledger = normalize(l.Clone(), e.now())
	return e
}

// Snapshot returns a deep copy of the current ledger.
func (e *Engine) Snapshot() Ledger {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Clone()
}

// AdaptiveLevel returns the current adaptive difficulty level.
func (e *Engine) AdaptiveLevel() adaptive.Level {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.AdaptiveLevel
}

// mutate runs fn under the lock, then delivers the events it queued.
func (e *Engine) mutate(fn func(now time.Time)) {
	e.mu.Lock()
	fn(e.now())
	events := e.pending
	e.pending = nil
	e.mu.Unlock()

	for _, ev := range events {
		for _, o := range e.observers {
			o.Observe(ev)
		}
	}
}

func (e *Engine) emit(ev Event) {
	e.pending = append(e.pending, ev)
}

// AddXP awards amount XP from source. Non-positive amounts are ignored.
// Level-ups, feature unlocks and achievements that follow from the award
// are applied before AddXP returns.
func (e *Engine) AddXP(amount int, source Source) {
	e.mutate(func(now time.Time) {
		e.addXPLocked(amount, source, now)
	})
}

func (e *Engine) addXPLocked(amount int, source Source, now time.Time) {
	l := &e.ledger
	amount = min(amount, math.MaxInt-l.TotalXP)
	if amount <= 0 {
		return
	}
	l.XP += amount
	l.TotalXP += amount
	e.emit(Event{Kind: EventXPAwarded, At: now, Source: source, Amount: amount, Level: l.Level})

	for l.XP >= l.XPToNextLevel {
		l.XP -= l.XPToNextLevel
		l.Level++
		l.XPToNextLevel = XPToNextLevel(l.Level)
		e.emit(Event{Kind: EventLevelUp, At: now, Level: l.Level})
	}

	e.unlockLevelFeaturesLocked(now)
	e.evaluateAchievementsLocked(now)
}

// unlockLevelFeaturesLocked unlocks every level-gated feature the current
// level satisfies. Already unlocked features keep their timestamp.
func (e *Engine) unlockLevelFeaturesLocked(now time.Time) {
	for _, f := range unlocks.LevelGatedUpTo(e.ledger.Level) {
		e.unlockFeatureLocked(f.ID, now)
	}
}

func (e *Engine) unlockFeatureLocked(id string, now time.Time) {
	for i := range e.ledger.UnlockedFeatures {
		r := &e.ledger.UnlockedFeatures[i]
		if r.ID != id {
			continue
		}
		if r.Unlocked() {
			return
		}
		t := now
		r.UnlockedAt = &t
		e.emit(Event{Kind: EventFeatureUnlocked, At: now, FeatureID: id, Level: e.ledger.Level})
		return
	}
}

func (e *Engine) evaluateAchievementsLocked(now time.Time) {
	for _, id := range e.ledger.stampAchievements(now) {
		e.emit(Event{Kind: EventAchievementUnlocked, At: now, AchievementID: id})
	}
}

// UpdateStats merges p into the stats and re-evaluates achievements.
func (e *Engine) UpdateStats(p StatsPatch) {
	e.mutate(func(now time.Time) {
		e.ledger.Stats.applyPatch(p, now)
		e.evaluateAchievementsLocked(now)
	})
}

// DiscoverSecret records the secret, unlocks the features it gates and
// awards SecretBonusXP. Unknown or already discovered secrets are ignored;
// the return value reports whether anything changed.
func (e *Engine) DiscoverSecret(id string) bool {
	if _, ok := unlocks.GetSecret(id); !ok {
		return false
	}
	discovered := false
	e.mutate(func(now time.Time) {
		if e.ledger.SecretDiscovered(id) {
			return
		}
		discovered = true
		e.ledger.DiscoveredSecrets = append(e.ledger.DiscoveredSecrets, id)
		e.emit(Event{Kind: EventSecretDiscovered, At: now, SecretID: id})

		for _, f := range unlocks.BySecret(id) {
			e.unlockFeatureLocked(f.ID, now)
		}
		e.addXPLocked(SecretBonusXP, SourceSecret, now)
	})
	return discovered
}

// ResetProgress restores the initial ledger.
func (e *Engine) ResetProgress() {
	e.mutate(func(now time.Time) {
		e.ledger = NewLedger()
		e.emit(Event{Kind: EventReset, At: now, Level: 1})
	})
}

// AnswerOutcome is the effect of one recorded answer.
type AnswerOutcome struct {
	XP            int
	AdaptiveLevel adaptive.Level
	Streak        int
}

// RecordAnswer applies one quiz answer: stats, the adaptive level and the
// difficulty-based XP award.
func (e *Engine) RecordAnswer(q questionbank.Question, correct bool) AnswerOutcome {
	var out AnswerOutcome
	e.mutate(func(now time.Time) {
		streak := 0
		patch := StatsPatch{QuizAnswered: 1, CurrentStreak: &streak, LastQuizAt: &now}
		if correct {
			streak = e.ledger.Stats.CurrentStreak + 1
			patch.QuizCorrect = 1
			patch.CategoryCorrect = map[questionbank.Category]int{q.Category: 1}
		}
		e.ledger.Stats.applyPatch(patch, now)
		e.ledger.AdaptiveLevel = adaptive.Update(e.ledger.AdaptiveLevel, correct)

		out.XP = XPForAnswer(q.Difficulty, correct)
		e.addXPLocked(out.XP, SourceQuiz, now)
		e.evaluateAchievementsLocked(now)

		out.AdaptiveLevel = e.ledger.AdaptiveLevel
		out.Streak = e.ledger.Stats.CurrentStreak
	})
	return out
}

// CompleteSession counts a finished session and awards the perfect-session
// bonus. It returns the bonus XP awarded.
func (e *Engine) CompleteSession(sum session.Summary) int {
	bonus := 0
	e.mutate(func(now time.Time) {
		patch := StatsPatch{QuizSessions: 1}
		if sum.Perfect {
			patch.PerfectSessions = 1
			bonus = PerfectSessionBonusXP
		}
		e.ledger.Stats.applyPatch(patch, now)
		e.addXPLocked(bonus, SourceSession, now)
		e.evaluateAchievementsLocked(now)
	})
	return bonus
}

// ViewDataPoint records a viewed data point and awards DataPointXP.
func (e *Engine) ViewDataPoint() {
	e.mutate(func(now time.Time) {
		e.ledger.Stats.applyPatch(StatsPatch{DataPointsViewed: 1}, now)
		e.addXPLocked(DataPointXP, SourceDataView, now)
		e.evaluateAchievementsLocked(now)
	})
}

// RecordTimeSpent adds minutes of app time and awards XPPerMinute for each.
// Counters and XP saturate at math.MaxInt.
func (e *Engine) RecordTimeSpent(minutes int) {
	if minutes <= 0 {
		return
	}
	minutes = min(minutes, math.MaxInt/XPPerMinute)
	e.mutate(func(now time.Time) {
		e.ledger.Stats.applyPatch(StatsPatch{TimeSpentMinutes: minutes}, now)
		e.addXPLocked(minutes*XPPerMinute, SourceTime, now)
		e.evaluateAchievementsLocked(now)
	})
}

// CanAccess reports whether the feature is usable. Lifetime entitlements
// waive level requirements but never secret requirements.
func (e *Engine) CanAccess(featureID string, ent Entitlements) bool {
	f, ok := unlocks.Get(featureID)
	if !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return canAccess(e.ledger, f, ent)
}

func canAccess(l Ledger, f unlocks.Feature, ent Entitlements) bool {
	if l.FeatureUnlocked(f.ID) {
		return true
	}
	return f.LevelGated() && ent.BypassesLevelGates()
}

// ApplyCustomization selects featureID for slot. An empty featureID
// restores the default. It reports false when the feature does not belong
// to slot or is not accessible.
func (e *Engine) ApplyCustomization(slot unlocks.Slot, featureID string, ent Entitlements) bool {
	if !slot.Valid() {
		return false
	}
	if featureID == "" {
		e.mutate(func(time.Time) { e.ledger.Customizations.set(slot, "") })
		return true
	}
	f, ok := unlocks.Get(featureID)
	if !ok || f.Category != unlocks.CategoryCustomization || f.Slot != slot {
		return false
	}

	applied := false
	e.mutate(func(time.Time) {
		if !canAccess(e.ledger, f, ent) {
			return
		}
		e.ledger.Customizations.set(slot, featureID)
		applied = true
	})
	return applied
}
