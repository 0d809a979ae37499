package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/cartchef/backend/internal/database"
	"github.com/pageza/cartchef/backend/migrations"
)

func newMigrateCommand() *cobra.Command {
	var rollback bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if !rollback {
				if err := a.openDB(ctx); err != nil {
					return err
				}
				if err := database.Migrate(ctx, a.cfg, a.db, migrations.FS, a.log); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "All migrations applied successfully.")
				return nil
			}

			if a.cfg.DBDriver == database.DriverSQLite {
				return errors.New("rollback is only supported on postgres")
			}
			sqlDB, err := database.OpenSQL(a.cfg)
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			name, err := database.Rollback(ctx, sqlDB, migrations.FS, a.log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Successfully rolled back migration: %s\n", name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&rollback, "rollback", false, "Rollback the last migration")
	return cmd
}
