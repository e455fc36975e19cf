package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/researcher10001-hub/bytecity-accounting/internal/config"
	"github.com/researcher10001-hub/bytecity-accounting/internal/domain"
	"github.com/researcher10001-hub/bytecity-accounting/internal/infrastructure/db/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the Postgres row-store schema and the users table",
	Long:  "Applies the row-store schema and creates the users table with its header row. Safe to run repeatedly.",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.RowStoreDriver != config.DriverPostgres {
		return fmt.Errorf("migrate requires ROWSTORE_DRIVER=%s, got %q", config.DriverPostgres, cfg.RowStoreDriver)
	}

	db, err := deps.NewDB(cfg.DBAddr, cfg.DBDebug)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer func() { _ = db.Close() }()

	return migrate(cmd.Context(), cmd.OutOrStdout(), db, cfg.UsersTable)
}

func migrate(ctx context.Context, out io.Writer, db *sql.DB, table string) error {
	if err := postgres.Migrate(ctx, db); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	created, err := postgres.NewRowStore(db).EnsureTable(ctx, table, domain.UsersHeader())
	if err != nil {
		return fmt.Errorf("failed to create table %q: %w", table, err)
	}

	if created {
		fmt.Fprintf(out, "schema applied, table %q created\n", table)
	} else {
		fmt.Fprintf(out, "schema applied, table %q already exists\n", table)
	}
	return nil
}
