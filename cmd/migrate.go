package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtroode/tokenauth/database"
	"github.com/dtroode/tokenauth/internal/config"
	"github.com/dtroode/tokenauth/internal/repository/postgres"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Apply all pending migrations to the database named by DATABASE_URL.`,
		Args:  cobra.NoArgs,
		RunE:  runMigrate,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		Args:  cobra.NoArgs,
		RunE:  runMigrateStatus,
	})

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	conn, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer conn.Close()

	cmd.Println("Running migrations...")
	if err := database.Migrate(cmd.Context(), conn.Pool); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	cmd.Println("Migrations completed successfully")
	return nil
}

func runMigrateStatus(cmd *cobra.Command, _ []string) error {
	conn, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := database.Status(cmd.Context(), conn.Pool); err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}
	return nil
}

func openDatabase(cmd *cobra.Command) (*postgres.Connection, error) {
	cfg, err := config.NewDatabaseConfig()
	if err != nil {
		return nil, err
	}

	cmd.Println("Connecting to database...")
	return postgres.Open(cmd.Context(), cfg.DSN)
}
