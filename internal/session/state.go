package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/tickerquiz/internal/questionbank"
)

var (
	// ErrSessionComplete is returned when answering after the last question.
	ErrSessionComplete = errors.New("session: all questions answered")

	// ErrInvalidChoice is returned for an option index outside [0, OptionCount).
	ErrInvalidChoice = errors.New("session: invalid option index")
)

// AnswerRecord is one answered question within a session.
type AnswerRecord struct {
	QuestionID string
	Difficulty int
	Choice     int
	Correct    bool
	AnsweredAt time.Time
}

// AnswerResult is returned to the caller after each answer.
type AnswerResult struct {
	Question questionbank.Question
	Choice   int
	Correct  bool

	// Done is true when this answer completed the session.
	Done bool
}

// QuizSession tracks the runtime state of one composed quiz. It is
// ephemeral; only its effects on the ledger are persisted.
type QuizSession struct {
	ID        string
	Questions []questionbank.Question
	Position  int
	Answers   []AnswerRecord
	StartedAt time.Time
	Premium   bool
}

// NewQuizSession wraps a composed question list in a new session.
func NewQuizSession(questions []questionbank.Question, premium bool, now time.Time) *QuizSession {
	return &QuizSession{
		ID:        uuid.New().String(),
		Questions: questions,
		StartedAt: now,
		Premium:   premium,
	}
}

// Current returns the question awaiting an answer.
func (s *QuizSession) Current() (questionbank.Question, bool) {
	if s.Done() {
		return questionbank.Question{}, false
	}
	return s.Questions[s.Position], true
}

// Done reports whether every question has been answered.
func (s *QuizSession) Done() bool {
	return s.Position >= len(s.Questions)
}

// Remaining returns the number of unanswered questions.
func (s *QuizSession) Remaining() int {
	return max(len(s.Questions)-s.Position, 0)
}

// Answer records choice for the current question and advances.
func (s *QuizSession) Answer(choice int, at time.Time) (AnswerResult, error) {
	q, ok := s.Current()
	if !ok {
		return AnswerResult{}, ErrSessionComplete
	}
	if choice < 0 || choice >= questionbank.OptionCount {
		return AnswerResult{}, ErrInvalidChoice
	}

	correct := q.IsCorrect(choice)
	s.Answers = append(s.Answers, AnswerRecord{
		QuestionID: q.ID,
		Difficulty: q.Difficulty,
		Choice:     choice,
		Correct:    correct,
		AnsweredAt: at,
	})
	s.Position++

	return AnswerResult{
		Question: q,
		Choice:   choice,
		Correct:  correct,
		Done:     s.Done(),
	}, nil
}
