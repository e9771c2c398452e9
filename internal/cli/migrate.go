package cli

import (
	"fmt"
	"strconv"

	"github.com/blog-engagement-api/internal/config"
	"github.com/blog-engagement-api/internal/database"
	"github.com/blog-engagement-api/internal/repository"
	"github.com/spf13/cobra"
)

func newMigrateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back store schema migrations",
		Long: `Runs the SQL migrations in the configured migrations directory
against PostgreSQL. The SQLite backend migrates itself when opened, so
'migrate up' only opens and closes it.`,
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := a.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if a.cfg.Store.Backend != config.BackendPostgres {
				store, err := repository.Open(a.cfg, log)
				if err != nil {
					return err
				}
				defer store.Close()
				fmt.Fprintf(cmd.OutOrStdout(), "Store %q is ready.\n", a.cfg.Store.Backend)
				return nil
			}

			db, err := database.New(&a.cfg.Database, log)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := db.RunMigrations(a.cfg.Database.MigrationsPath); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Database migrations executed successfully.")
			return nil
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openPostgres(cmd)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := db.MigrateDown(a.cfg.Database.MigrationsPath); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Last migration rolled back.")
			return nil
		},
	}

	gotoCmd := &cobra.Command{
		Use:   "goto <version>",
		Short: "Migrate up or down to a specific version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", args[0], err)
			}
			db, err := a.openPostgres(cmd)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := db.MigrateToVersion(a.cfg.Database.MigrationsPath, uint(version)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migrated to version %d.\n", version)
			return nil
		},
	}

	cmd.AddCommand(up, down, gotoCmd)
	return cmd
}

func (a *app) openPostgres(cmd *cobra.Command) (*database.DB, error) {
	log, err := a.load(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	if a.cfg.Store.Backend != config.BackendPostgres {
		return nil, fmt.Errorf("this command requires the postgres backend, got %q", a.cfg.Store.Backend)
	}
	return database.New(&a.cfg.Database, log)
}
