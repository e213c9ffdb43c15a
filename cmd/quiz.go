package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/tickerquiz/internal/app"
	"github.com/abhisek/tickerquiz/internal/questionbank"
	"github.com/abhisek/tickerquiz/internal/session"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Play a quiz session",
	Long: `Play one quiz session. Questions are picked around your current adaptive
level; answer with a letter (a-d) or number (1-4), or q to stop early.`,
	RunE: runQuiz,
}

func runQuiz(cmd *cobra.Command, args []string) error {
	return withApp(cmd, true, func(ctx context.Context, a *app.App) error {
		return playSession(cmd.InOrStdin(), cmd.OutOrStdout(), a)
	})
}

func playSession(in io.Reader, out io.Writer, a *app.App) error {
	before := a.Ledger()
	s := a.StartQuiz()
	if len(s.Questions) == 0 {
		return errors.New("question bank is empty")
	}

	scanner := bufio.NewScanner(in)
	total := len(s.Questions)

	for !s.Done() {
		q, _ := s.Current()
		st := stylesFor(a.Ledger())

		lipgloss.Fprintln(out, st.Subtitle.Render(fmt.Sprintf("── Question %d/%d · %s · %s ──",
			s.Position+1, total, q.Category.DisplayName(), difficultyLabel(q.Difficulty))))
		lipgloss.Fprintln(out, st.Body.Render(q.Text))
		for i, opt := range q.Options {
			fmt.Fprintf(out, "  %c) %s\n", 'a'+i, opt)
		}

		choice, ok, quit := readChoice(scanner, out)
		if quit {
			fmt.Fprintln(out, "\n(stopped)")
			break
		}
		if !ok {
			continue
		}

		res, outcome, err := a.Answer(s, choice)
		if err != nil {
			return err
		}
		if res.Correct {
			lipgloss.Fprintln(out, st.Correct.Render("✓ Correct!")+" "+
				st.Highlight.Render(fmt.Sprintf("+%d XP", outcome.XP)))
		} else {
			lipgloss.Fprintln(out, st.Incorrect.Render("✗ Wrong.")+" Answer: "+res.Question.CorrectOption())
		}
		if res.Question.Explanation != "" {
			lipgloss.Fprintln(out, st.Hint.Render(res.Question.Explanation))
		}
		fmt.Fprintln(out)
	}

	sum, bonus := a.FinishQuiz(s)
	printSummary(out, a, sum, bonus)
	announce(out, before, a.Ledger())
	return nil
}

// readChoice prompts until it reads a valid option. quit is set on "q" or
// closed input.
func readChoice(scanner *bufio.Scanner, out io.Writer) (choice int, ok, quit bool) {
	for {
		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			return 0, false, true
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		switch {
		case answer == "q" || answer == "quit":
			return 0, false, true
		case len(answer) == 1 && answer[0] >= 'a' && answer[0] < 'a'+questionbank.OptionCount:
			return int(answer[0] - 'a'), true, false
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= questionbank.OptionCount {
			return n - 1, true, false
		}
		fmt.Fprintf(out, "Pick a-%c or 1-%d.\n", 'a'+questionbank.OptionCount-1, questionbank.OptionCount)
	}
}

func printSummary(out io.Writer, a *app.App, sum session.Summary, bonus int) {
	st := stylesFor(a.Ledger())
	lipgloss.Fprintln(out, st.Title.Render(fmt.Sprintf("── Summary: %d/%d correct ──", sum.Correct, sum.Total)))
	if sum.Answered == 0 {
		return
	}
	for d := questionbank.MinDifficulty; d <= questionbank.MaxDifficulty; d++ {
		r, ok := sum.ByDifficulty[d]
		if !ok {
			continue
		}
		fmt.Fprintf(out, "  %-8s %d/%d\n", difficultyLabel(d), r.Correct, r.Attempted)
	}
	if sum.Perfect {
		lipgloss.Fprintln(out, st.Highlight.Render(fmt.Sprintf("Perfect session! +%d XP bonus", bonus)))
	}
	fmt.Fprintf(out, "Adaptive level: %.1f\n", float64(a.Engine().AdaptiveLevel()))
}

func difficultyLabel(d int) string {
	switch d {
	case 1:
		return "easy"
	case 2:
		return "medium"
	case 3:
		return "hard"
	}
	return strconv.Itoa(d)
}
