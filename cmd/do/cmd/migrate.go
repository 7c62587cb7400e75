package cmd

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumenfide/lumen/internal/config"
	"github.com/lumenfide/lumen/internal/db"

	"github.com/spf13/cobra"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, reset or inspect database migrations",
	}

	cmd.AddCommand(migrateSubCmd("up", "Apply pending migrations", db.RunMigrations))
	cmd.AddCommand(migrateSubCmd("reset", "Roll back every migration and re-apply them", db.ResetMigrations))
	cmd.AddCommand(migrateSubCmd("status", "Show applied migrations", db.MigrationStatus))
	return cmd
}

type migrateFunc func(ctx context.Context, database *sql.DB, driver string) error

func migrateSubCmd(use, short string, fn migrateFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if use == "reset" && cfg.IsProduction() {
				return fmt.Errorf("refusing to reset a production database")
			}

			ctx := cmd.Context()
			database, err := db.Init(ctx, cfg.DBDriver, cfg.DBConnection)
			if err != nil {
				return err
			}
			defer database.Close()

			return fn(ctx, database.DB, cfg.DBDriver)
		},
	}
}
