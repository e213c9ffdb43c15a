package questionbank

import (
	"fmt"
	"sync"
)

// Bank is a read-only pool of questions with precomputed indices.
type Bank struct {
	questions    []Question
	byID         map[string]int
	byDifficulty map[int][]Question
	byCategory   map[Category][]Question
}

// New validates questions and builds a bank over them.
func New(questions []Question) (*Bank, error) {
	if err := validateQuestions(questions); err != nil {
		return nil, err
	}
	return buildBank(questions), nil
}

func buildBank(questions []Question) *Bank {
	b := &Bank{
		questions:    append([]Question(nil), questions...),
		byID:         make(map[string]int, len(questions)),
		byDifficulty: make(map[int][]Question),
		byCategory:   make(map[Category][]Question),
	}
	for i, q := range b.questions {
		b.byID[q.ID] = i
		b.byDifficulty[q.Difficulty] = append(b.byDifficulty[q.Difficulty], q)
		b.byCategory[q.Category] = append(b.byCategory[q.Category], q)
	}
	return b
}

var (
	defaultOnce sync.Once
	defaultBank *Bank
)

// Default returns the built-in question bank.
func Default() *Bank {
	defaultOnce.Do(func() {
		b, err := New(seedQuestions)
		if err != nil {
			panic(fmt.Sprintf("questionbank: invalid seed data: %v", err))
		}
		defaultBank = b
	})
	return defaultBank
}

// All returns a copy of every question in bank order.
func (b *Bank) All() []Question {
	return append([]Question(nil), b.questions...)
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}

// Get returns the question with the given ID.
func (b *Bank) Get(id string) (Question, error) {
	i, ok := b.byID[id]
	if !ok {
		return Question{}, fmt.Errorf("question %q not found", id)
	}
	return b.questions[i], nil
}

// ByDifficulty returns all questions with difficulty d.
func (b *Bank) ByDifficulty(d int) []Question {
	return append([]Question(nil), b.byDifficulty[d]...)
}

// ByCategory returns all questions in category c.
func (b *Bank) ByCategory(c Category) []Question {
	return append([]Question(nil), b.byCategory[c]...)
}

// CurrentEvents returns all questions flagged as current events.
func (b *Bank) CurrentEvents() []Question {
	var out []Question
	for _, q := range b.questions {
		if q.CurrentEvents {
			out = append(out, q)
		}
	}
	return out
}
