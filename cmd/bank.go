package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/tickerquiz/internal/questionbank"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Browse and check question banks",
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions (optionally filtered by category or difficulty)",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		difficulty, _ := cmd.Flags().GetInt("difficulty")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		bank, err := loadBank(cfg)
		if err != nil {
			return err
		}

		var questions []questionbank.Question

		switch {
		case category != "" && difficulty != 0:
			return fmt.Errorf("use --category or --difficulty, not both")
		case category != "":
			c := questionbank.Category(category)
			if !c.Valid() {
				return fmt.Errorf("unknown category %q", category)
			}
			questions = bank.ByCategory(c)
		case difficulty != 0:
			if difficulty < questionbank.MinDifficulty || difficulty > questionbank.MaxDifficulty {
				return fmt.Errorf("difficulty must be in [%d, %d], got %d",
					questionbank.MinDifficulty, questionbank.MaxDifficulty, difficulty)
			}
			questions = bank.ByDifficulty(difficulty)
		default:
			questions = bank.All()
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-24s  %-14s  %-6s  %-3s  %s\n", "ID", "Category", "Level", "New", "Question")
		fmt.Fprintln(out, strings.Repeat("─", 110))

		for _, q := range questions {
			text := q.Text
			if len(text) > 56 {
				text = text[:53] + "..."
			}
			news := ""
			if q.CurrentEvents {
				news = "yes"
			}
			fmt.Fprintf(out, "%-24s  %-14s  %-6s  %-3s  %s\n",
				q.ID, q.Category.DisplayName(), difficultyLabel(q.Difficulty), news, text)
		}

		fmt.Fprintf(out, "\n%d questions\n", len(questions))
		return nil
	},
}

var bankShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one question with its answer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		bank, err := loadBank(cfg)
		if err != nil {
			return err
		}
		q, err := bank.Get(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  (%s, %s)\n\n%s\n", q.ID, q.Category.DisplayName(), difficultyLabel(q.Difficulty), q.Text)
		for i, opt := range q.Options {
			mark := " "
			if i == q.CorrectIndex {
				mark = "*"
			}
			fmt.Fprintf(out, " %s %c) %s\n", mark, 'a'+i, opt)
		}
		if q.Explanation != "" {
			fmt.Fprintf(out, "\n%s\n", q.Explanation)
		}
		return nil
	},
}

var bankCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a question bank file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := questionbank.LoadFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d questions OK\n", args[0], b.Len())
		return nil
	},
}

var bankDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Write the built-in question bank as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := questionbank.Encode(questionbank.Default().All())
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	},
}

func init() {
	bankListCmd.Flags().String("category", "", "Filter by category (e.g. stocks, crypto)")
	bankListCmd.Flags().Int("difficulty", 0, "Filter by difficulty (1, 2, or 3)")

	bankCmd.AddCommand(bankListCmd)
	bankCmd.AddCommand(bankShowCmd)
	bankCmd.AddCommand(bankCheckCmd)
	bankCmd.AddCommand(bankDumpCmd)
}
