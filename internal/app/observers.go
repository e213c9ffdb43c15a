package app

import (
	"sync"

	"go.uber.org/zap"

	"github.com/abhisek/tickerquiz/internal/progression"
	"github.com/abhisek/tickerquiz/internal/store"
)

// logObserver writes milestone events to the diagnostic log.
func logObserver(logger *zap.Logger) progression.Observer {
	return progression.ObserverFunc(func(ev progression.Event) {
		switch ev.Kind {
		case progression.EventXPAwarded:
			logger.Debug("xp awarded",
				zap.String("source", string(ev.Source)),
				zap.Int("amount", ev.Amount))
		case progression.EventLevelUp:
			logger.Info("level up", zap.Int("level", ev.Level))
		case progression.EventFeatureUnlocked:
			logger.Info("feature unlocked",
				zap.String("feature", ev.FeatureID),
				zap.Int("level", ev.Level))
		case progression.EventAchievementUnlocked:
			logger.Info("achievement unlocked", zap.String("achievement", ev.AchievementID))
		case progression.EventSecretDiscovered:
			logger.Info("secret discovered", zap.String("secret", ev.SecretID))
		case progression.EventReset:
			logger.Warn("progress reset")
		}
	})
}

// xpRecorder buffers XP awards until the next save appends them to the
// event log. Awards made during a quiz carry the session ID.
type xpRecorder struct {
	mu        sync.Mutex
	sessionID string
	pending   []store.XPEventData
}

func (r *xpRecorder) Observe(ev progression.Event) {
	if ev.Kind != progression.EventXPAwarded {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, store.XPEventData{
		Timestamp: ev.At,
		Source:    string(ev.Source),
		Amount:    ev.Amount,
		Level:     ev.Level,
		SessionID: r.sessionID,
	})
}

func (r *xpRecorder) setSession(id string) {
	r.mu.Lock()
	r.sessionID = id
	r.mu.Unlock()
}

// drain returns and clears the buffered awards.
func (r *xpRecorder) drain() []store.XPEventData {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.pending
	r.pending = nil
	return out
}

// requeue puts back awards that could not be written, ahead of newer ones.
func (r *xpRecorder) requeue(events []store.XPEventData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(events, r.pending...)
}
