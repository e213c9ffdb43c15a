package app

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/tickerquiz/internal/progression"
	"github.com/abhisek/tickerquiz/internal/session"
	"github.com/abhisek/tickerquiz/internal/unlocks"
)

var (
	// ErrLocked is returned when a feature is not accessible yet.
	ErrLocked = errors.New("feature is locked")

	// ErrUnknownCode is returned for a secret code that matches nothing.
	ErrUnknownCode = errors.New("unknown code")
)

// ExpertQuestionCount is the session length once expert mode is available.
const ExpertQuestionCount = 8

// StartQuiz composes a session from the question bank at the current
// adaptive level.
func (a *App) StartQuiz() *session.QuizSession {
	count := a.count
	if a.engine.CanAccess("quiz-expert-mode", a.entitlements) {
		count = max(count, ExpertQuestionCount)
	}
	questions := session.Compose(a.bank.All(), count, a.engine.AdaptiveLevel(), a.entitlements.HasPremium(), a.rng)
	s := session.NewQuizSession(questions, a.entitlements.HasPremium(), a.now())
	a.xp.setSession(s.ID)
	a.metrics.SessionComposed()
	a.logger.Debug("quiz composed")
	return s
}

// Answer submits choice for the current question of s and applies it to
// the ledger.
func (a *App) Answer(s *session.QuizSession, choice int) (session.AnswerResult, progression.AnswerOutcome, error) {
	res, err := s.Answer(choice, a.now())
	if err != nil {
		return session.AnswerResult{}, progression.AnswerOutcome{}, err
	}
	out := a.engine.RecordAnswer(res.Question, res.Correct)
	a.metrics.SetAdaptiveLevel(float64(out.AdaptiveLevel))
	return res, out, nil
}

// FinishQuiz summarizes s, records it in the ledger and returns the summary
// with the bonus XP awarded.
func (a *App) FinishQuiz(s *session.QuizSession) (session.Summary, int) {
	sum := session.BuildSummary(s)
	bonus := 0
	if sum.Answered > 0 {
		bonus = a.engine.CompleteSession(sum)
		a.metrics.SessionCompleted(sum.Accuracy)
	}
	a.xp.setSession("")
	return sum, bonus
}

// EnterCode resolves a typed secret code and discovers its secret. It
// reports whether the secret was new.
func (a *App) EnterCode(code string) (unlocks.Secret, bool, error) {
	id, ok := unlocks.ResolveCode(code)
	if !ok {
		return unlocks.Secret{}, false, ErrUnknownCode
	}
	secret, _ := unlocks.GetSecret(id)
	return secret, a.engine.DiscoverSecret(id), nil
}

// PushKeys feeds key presses to the app's sequence matcher and discovers
// every secret the sequence completes. Keys buffered by earlier calls count
// toward the sequence. It returns the newly discovered secrets.
func (a *App) PushKeys(keys []string) []unlocks.Secret {
	var found []unlocks.Secret
	for _, k := range keys {
		id, ok := a.keys.Push(k)
		if !ok {
			continue
		}
		if a.engine.DiscoverSecret(id) {
			secret, _ := unlocks.GetSecret(id)
			found = append(found, secret)
		}
	}
	return found
}

// ViewWidget records a data point viewed on widget. Widgets that are
// catalog features must be accessible.
func (a *App) ViewWidget(widget string) error {
	if _, ok := unlocks.Get(widget); ok && !a.engine.CanAccess(widget, a.entitlements) {
		return fmt.Errorf("%s: %w", widget, ErrLocked)
	}
	a.engine.ViewDataPoint()
	return nil
}

// Tick records minutes of time spent in the app.
func (a *App) Tick(minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("minutes must be positive, got %d", minutes)
	}
	a.engine.RecordTimeSpent(minutes)
	return nil
}

// Award grants amount XP outside of any quiz or activity.
func (a *App) Award(amount int) error {
	if amount <= 0 {
		return fmt.Errorf("xp must be positive, got %d", amount)
	}
	a.engine.AddXP(amount, progression.SourceManual)
	a.logger.Info("xp awarded", zap.Int("amount", amount))
	return nil
}

// Customize selects featureID for slot. An empty featureID restores the
// default.
func (a *App) Customize(slot unlocks.Slot, featureID string) error {
	if !slot.Valid() {
		return fmt.Errorf("unknown slot %q", slot)
	}
	if featureID != "" {
		f, ok := unlocks.Get(featureID)
		if !ok {
			return fmt.Errorf("unknown feature %q", featureID)
		}
		if f.Slot != slot {
			return fmt.Errorf("%s is not a %s option", featureID, slot)
		}
	}
	if !a.engine.ApplyCustomization(slot, featureID, a.entitlements) {
		return fmt.Errorf("%s: %w", featureID, ErrLocked)
	}
	return nil
}
