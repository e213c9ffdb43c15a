package progression

import "time"

// EventKind identifies a progression event.
type EventKind string

const (
	EventXPAwarded           EventKind = "xp_awarded"
	EventLevelUp             EventKind = "level_up"
	EventFeatureUnlocked     EventKind = "feature_unlocked"
	EventAchievementUnlocked EventKind = "achievement_unlocked"
	EventSecretDiscovered    EventKind = "secret_discovered"
	EventReset               EventKind = "reset"
)

// Event describes one state change made by the engine. Only the fields
// relevant to Kind are set.
type Event struct {
	Kind          EventKind
	At            time.Time
	Source        Source
	Amount        int
	Level         int
	FeatureID     string
	AchievementID string
	SecretID      string
}

// Observer receives engine events after the triggering mutation completes.
// Observers run outside the engine lock and may read the engine.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Observe calls f(ev).
func (f ObserverFunc) Observe(ev Event) { f(ev) }
