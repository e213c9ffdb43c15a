package session

import (
	"math/rand/v2"

	"github.com/abhisek/tickerquiz/internal/adaptive"
	"github.com/abhisek/tickerquiz/internal/questionbank"
	"github.com/abhisek/tickerquiz/internal/selection"
)

// DefaultQuestionCount is the default number of questions in a session.
const DefaultQuestionCount = 5

// Quota bounds how many current-events questions a session may contain.
type Quota struct {
	Min int
	Max int
}

// QuotaFor returns the current-events quota for a session of count questions.
// Free sessions allow at most one; premium sessions want half the session,
// clamped to [2, 3].
func QuotaFor(count int, premium bool) Quota {
	if !premium {
		return Quota{Min: 0, Max: min(1, max(count, 0))}
	}
	n := min(max(count/2, 2), 3)
	n = min(n, max(count, 0))
	return Quota{Min: n, Max: n}
}

// Compose builds the ordered question list for one session: difficulty
// targets from the adaptive level, a base draw, current-events quota
// enforcement by same-difficulty swaps, a difficulty re-sort and a
// per-question option shuffle.
func Compose(pool []questionbank.Question, count int, level adaptive.Level, premium bool, rng *rand.Rand) []questionbank.Question {
	targets := selection.TargetsFor(level, count)
	selected := selection.Draw(pool, targets, rng)
	if len(selected) == 0 {
		return nil
	}

	selected = enforceQuota(selected, pool, QuotaFor(count, premium), rng)
	selection.SortByDifficulty(selected)

	for i := range selected {
		selected[i] = ShuffleOptions(selected[i], rng)
	}
	return selected
}

// enforceQuota swaps questions in place so the number of current-events
// questions falls inside quota. A swap only ever replaces a question with an
// unused pool question of the same difficulty; when no such candidate exists
// the quota is left unmet.
func enforceQuota(selected, pool []questionbank.Question, quota Quota, rng *rand.Rand) []questionbank.Question {
	used := make(map[string]bool, len(selected))
	ce := 0
	for _, q := range selected {
		used[q.ID] = true
		if q.CurrentEvents {
			ce++
		}
	}
	if ce >= quota.Min && ce <= quota.Max {
		return selected
	}

	spares := newSpareSet(pool, used, rng)

	for ce < quota.Min {
		if !swapOne(selected, spares, false, rng) {
			break
		}
		ce++
	}
	for ce > quota.Max {
		if !swapOne(selected, spares, true, rng) {
			break
		}
		ce--
	}
	return selected
}

// swapOne replaces one selected question whose CurrentEvents flag equals
// from with a spare of the opposite flag and the same difficulty.
func swapOne(selected []questionbank.Question, spares *spareSet, from bool, rng *rand.Rand) bool {
	for _, i := range rng.Perm(len(selected)) {
		out := selected[i]
		if out.CurrentEvents != from {
			continue
		}
		in, ok := spares.take(out.Difficulty, !from)
		if !ok {
			continue
		}
		selected[i] = in
		spares.put(out)
		return true
	}
	return false
}

type spareKey struct {
	difficulty    int
	currentEvents bool
}

// spareSet holds unused pool questions grouped by difficulty and flag.
type spareSet struct {
	byKey map[spareKey][]questionbank.Question
}

func newSpareSet(pool []questionbank.Question, used map[string]bool, rng *rand.Rand) *spareSet {
	s := &spareSet{byKey: make(map[spareKey][]questionbank.Question)}
	for _, i := range rng.Perm(len(pool)) {
		q := pool[i]
		if used[q.ID] {
			continue
		}
		k := spareKey{q.Difficulty, q.CurrentEvents}
		s.byKey[k] = append(s.byKey[k], q)
	}
	return s
}

func (s *spareSet) take(difficulty int, currentEvents bool) (questionbank.Question, bool) {
	k := spareKey{difficulty, currentEvents}
	list := s.byKey[k]
	if len(list) == 0 {
		return questionbank.Question{}, false
	}
	q := list[len(list)-1]
	s.byKey[k] = list[:len(list)-1]
	return q, true
}

func (s *spareSet) put(q questionbank.Question) {
	k := spareKey{q.Difficulty, q.CurrentEvents}
	s.byKey[k] = append(s.byKey[k], q)
}

// ShuffleOptions returns a copy of q with its options permuted (Fisher-Yates)
// and CorrectIndex remapped to follow the correct option.
func ShuffleOptions(q questionbank.Question, rng *rand.Rand) questionbank.Question {
	perm := [questionbank.OptionCount]int{}
	for i := range perm {
		perm[i] = i
	}
	for i := len(perm) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}

	out := q
	for newIdx, oldIdx := range perm {
		out.Options[newIdx] = q.Options[oldIdx]
		if oldIdx == q.CorrectIndex {
			out.CorrectIndex = newIdx
		}
	}
	return out
}
