package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/booking-directory/internal/config"
	"github.com/iliyamo/booking-directory/internal/database"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(
		migrateSubcommand("up", "Apply all pending migrations", database.Migrate),
		migrateSubcommand("down", "Roll back the latest migration", database.Rollback),
		&cobra.Command{
			Use:   "status",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withDB(func(db *sql.DB, driver string) error {
					v, err := database.Version(db, driver)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s schema version: %d\n", driver, v)
					return nil
				})
			},
		},
	)
	return cmd
}

func migrateSubcommand(use, short string, run func(*sql.DB, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return withDB(run)
		},
	}
}

func withDB(fn func(db *sql.DB, driver string) error) error {
	cfg := config.Load()
	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db, cfg.DBDriver)
}
