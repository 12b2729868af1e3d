package main

import (
	"fmt"

	"github.com/aussiebroadwan/cardquest/internal/quest/app"
	"github.com/aussiebroadwan/cardquest/internal/quest/service"
	"github.com/spf13/cobra"
)

var issueCmd = &cobra.Command{
	Use:   "issue <card-hash>",
	Short: "Issue a registration token for a card hash",
	Long: `Issue a registration token for the 64 character hex hash of a card,
the same way the HTTP register endpoint does. Useful for registering
cards by hand.`,
	Args: cobra.ExactArgs(1),
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

		regs := &service.RegistrationService{Store: st}
		reg, err := regs.Issue(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "token: %s\nsend /register %s to %s\n", reg.Prefix, reg.Prefix, cfg.BotURL)
		return nil
	},
}
