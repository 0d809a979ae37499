package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/cartchef/backend/internal/database"
	"github.com/pageza/cartchef/backend/internal/service"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed demo products and cart, then print a token for the demo user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.openDB(ctx); err != nil {
				return err
			}
			user, err := database.Seed(ctx, a.db, a.log)
			if err != nil {
				return err
			}

			token, err := service.NewAuthService(a.cfg.JWTSecret).GenerateToken(user.ID, user.Name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user_id: %s\ntoken: %s\n", user.ID, token)
			return nil
		},
	}
}
