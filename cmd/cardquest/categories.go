package main

import (
	"fmt"

	"github.com/aussiebroadwan/cardquest/internal/quest/app"
	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List question categories and how many questions each holds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		quiz := app.NewQuizService(cfg)
		categories, err := quiz.ListCategories(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(categories) == 0 {
			fmt.Fprintf(out, "no categories in %s\n", cfg.QuestionsDir)
			return nil
		}

		for _, category := range categories {
			questions, err := quiz.Bank.Questions(cmd.Context(), category)
			if err != nil {
				fmt.Fprintf(out, "%-24s invalid: %v\n", category, err)
				continue
			}
			fmt.Fprintf(out, "%-24s %d\n", category, len(questions))
		}
		return nil
	},
}
