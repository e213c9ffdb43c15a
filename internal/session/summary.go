package session

import "time"

// Summary holds the end-of-session figures.
type Summary struct {
	SessionID    string
	Duration     time.Duration
	Total        int
	Answered     int
	Correct      int
	Accuracy     float64
	Perfect      bool
	ByDifficulty map[int]DifficultyResult
}

// DifficultyResult is the per-difficulty breakdown of a session.
type DifficultyResult struct {
	Attempted int
	Correct   int
}

// BuildSummary creates a Summary from the session's answers. Duration is
// measured from StartedAt to the last answer.
func BuildSummary(s *QuizSession) Summary {
	sum := Summary{
		SessionID:    s.ID,
		Total:        len(s.Questions),
		Answered:     len(s.Answers),
		ByDifficulty: make(map[int]DifficultyResult),
	}

	for _, a := range s.Answers {
		dr := sum.ByDifficulty[a.Difficulty]
		dr.Attempted++
		if a.Correct {
			sum.Correct++
			dr.Correct++
		}
		sum.ByDifficulty[a.Difficulty] = dr
	}

	if sum.Answered > 0 {
		sum.Accuracy = float64(sum.Correct) / float64(sum.Answered)
		if last := s.Answers[len(s.Answers)-1].AnsweredAt; last.After(s.StartedAt) {
			sum.Duration = last.Sub(s.StartedAt)
		}
	}
	sum.Perfect = sum.Total > 0 && sum.Answered == sum.Total && sum.Correct == sum.Total
	return sum
}
