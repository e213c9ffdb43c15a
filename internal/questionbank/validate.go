package questionbank

import (
	"fmt"
	"strings"
)

// ValidationError lists every structural problem found in a question set.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question bank validation failed:\n  %s", strings.Join(e.Problems, "\n  "))
}

// validateQuestions performs all structural checks on the given questions.
// Returns a *ValidationError describing all problems found, or nil if valid.
func validateQuestions(questions []Question) error {
	var errs []string

	if len(questions) == 0 {
		errs = append(errs, "question bank is empty")
	}

	ids := make(map[string]bool, len(questions))
	for i, q := range questions {
		if q.ID == "" {
			errs = append(errs, fmt.Sprintf("question #%d has an empty ID", i))
		} else if ids[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
		}
		ids[q.ID] = true

		if !q.Category.Valid() {
			errs = append(errs, fmt.Sprintf("question %q has unknown category %q", q.ID, q.Category))
		}
		if q.Difficulty < MinDifficulty || q.Difficulty > MaxDifficulty {
			errs = append(errs, fmt.Sprintf("question %q has difficulty %d outside [%d,%d]",
				q.ID, q.Difficulty, MinDifficulty, MaxDifficulty))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= OptionCount {
			errs = append(errs, fmt.Sprintf("question %q has correct index %d outside [0,%d]",
				q.ID, q.CorrectIndex, OptionCount-1))
		}
		seen := make(map[string]bool, OptionCount)
		for _, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				errs = append(errs, fmt.Sprintf("question %q has an empty option", q.ID))
				continue
			}
			if seen[opt] {
				errs = append(errs, fmt.Sprintf("question %q repeats option %q", q.ID, opt))
			}
			seen[opt] = true
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}
	return nil
}
