package main

import (
	"github.com/aussiebroadwan/cardquest/internal/quest/app"
	"github.com/spf13/cobra"
)

var (
	portFlag         int
	databaseFileFlag string
	questionsDirFlag string
)

var rootCmd = &cobra.Command{
	Use:   "cardquest",
	Short: "CardQuest - card registration and quiz service",
	Long: `CardQuest registers players from the hash of their physical card,
completes the registration through a Telegram bot and serves quiz
questions over HTTP.

Configuration is read from the environment (PORT, CARDQUEST_DATABASE_FILE,
CARDQUEST_QUESTIONS_DIR, CARDQUEST_BOT_TOKEN, ...). Flags override it.`,
	Version:       app.BuildVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&portFlag, "port", "p", 0, "HTTP port (overrides PORT)")
	rootCmd.PersistentFlags().StringVar(&databaseFileFlag, "db", "", "SQLite database file (overrides CARDQUEST_DATABASE_FILE)")
	rootCmd.PersistentFlags().StringVar(&questionsDirFlag, "questions", "", "question bank directory (overrides CARDQUEST_QUESTIONS_DIR)")

	rootCmd.AddCommand(serveCmd, migrateCmd, categoriesCmd, issueCmd)
}

// loadConfig reads the environment and applies command line overrides.
func loadConfig(cmd *cobra.Command) (app.Config, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return app.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Port = portFlag
	}
	if flags.Changed("db") {
		cfg.DatabaseFile = databaseFileFlag
	}
	if flags.Changed("questions") {
		cfg.QuestionsDir = questionsDirFlag
	}

	return cfg, cfg.Validate()
}
