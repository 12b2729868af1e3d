package main

import (
	"fmt"

	"github.com/aussiebroadwan/cardquest/internal/quest/app"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		st, err := app.OpenStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "migrations applied to %s\n", cfg.DatabaseFile)
		return nil
	},
}
