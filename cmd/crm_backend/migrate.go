package main

import (
	"fmt"

	"github.com/SscSPs/crm_backend/internal/platform/config"
	"github.com/SscSPs/crm_backend/internal/platform/database"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL schema",
	}
	cmd.AddCommand(migrateUpCmd())
	cmd.AddCommand(migrateDownCmd())
	return cmd
}

func migrateUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePostgres(appCfg); err != nil {
				return err
			}
			result, err := database.MigratePostgres(appCfg.DatabaseURL)
			if err != nil {
				return err
			}
			printMigrationResult("up", result)
			return nil
		},
	}
}

func migrateDownCmd() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePostgres(appCfg); err != nil {
				return err
			}
			result, err := database.RollbackPostgres(appCfg.DatabaseURL, steps)
			if err != nil {
				return err
			}
			printMigrationResult("down", result)
			return nil
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	return cmd
}

func requirePostgres(cfg *config.Config) error {
	if cfg.DatabaseDriver != config.DriverPostgres {
		return fmt.Errorf("migrations apply to the %s driver only; sqlite schema is created on open (DATABASE_DRIVER=%s)", config.DriverPostgres, cfg.DatabaseDriver)
	}
	return nil
}

func printMigrationResult(direction string, result database.MigrationResult) {
	status := color.New(color.FgGreen).Sprint("APPLIED")
	if !result.Applied {
		status = color.New(color.FgBlue).Sprint("CURRENT")
	}
	if result.Dirty {
		status = color.New(color.FgRed).Sprint("DIRTY  ")
	}
	fmt.Printf("migrate %s: %s version %d\n", direction, status, result.Version)
}
