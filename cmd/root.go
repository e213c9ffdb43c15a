package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/tickerquiz/internal/app"
	"github.com/abhisek/tickerquiz/internal/config"
	"github.com/abhisek/tickerquiz/internal/logging"
	"github.com/abhisek/tickerquiz/internal/progression"
	"github.com/abhisek/tickerquiz/internal/questionbank"
	"github.com/abhisek/tickerquiz/internal/ui/theme"
)

var rootCmd = &cobra.Command{
	Use:   "tickerquiz",
	Short: "Market trivia with levels, unlocks and achievements",
	Long: `tickerquiz runs short market trivia sessions that adapt to how well you
answer, and tracks XP, levels, unlockable features, achievements and secrets.`,
	RunE: runQuiz,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TICKERQUIZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides TICKERQUIZ_CONFIG env var)")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(featuresCmd)
	rootCmd.AddCommand(customizeCmd)
	rootCmd.AddCommand(secretCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(tickCmd)
	rootCmd.AddCommand(awardCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config named by --config, or the default location.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// loadBank returns the configured question bank, or the built-in one.
func loadBank(cfg *config.Config) (*questionbank.Bank, error) {
	if cfg.Quiz.BankPath == "" {
		return questionbank.Default(), nil
	}
	return questionbank.LoadFile(cfg.Quiz.BankPath)
}

// withApp opens the configured backend, loads the ledger and runs fn.
// When save is set the ledger is persisted after fn succeeds.
func withApp(cmd *cobra.Command, save bool, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	bank, err := loadBank(cfg)
	if err != nil {
		return fmt.Errorf("load question bank: %w", err)
	}

	dbPath, _ := cmd.Flags().GetString("db")
	backend, err := app.OpenBackend(ctx, cfg, dbPath)
	if err != nil {
		return err
	}

	a, err := app.New(ctx, app.Options{
		Backend: backend,
		Bank:    bank,
		Logger:  logger,
		Entitlements: progression.Entitlements{
			Premium:  cfg.Entitlements.Premium,
			Lifetime: cfg.Entitlements.Lifetime,
		},
		QuestionCount: cfg.Quiz.QuestionCount,
		SnapshotKeep:  cfg.Storage.SnapshotKeep,
	})
	if err != nil {
		backend.Close()
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("close backend", zap.Error(err))
		}
	}()

	if err := fn(ctx, a); err != nil {
		return err
	}
	if save {
		if err := a.Save(ctx); err != nil {
			return err
		}
	}
	return nil
}

// stylesFor resolves the output styles from the ledger's customizations.
func stylesFor(l progression.Ledger) theme.Styles {
	return theme.NewStyles(theme.Resolve(l.Customizations.Theme, l.Customizations.Accent))
}
