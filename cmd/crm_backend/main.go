package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/crm_backend/internal/platform/config"
	"github.com/spf13/cobra"
)

// @title CRM Backend API
// @version 1.0
// @description Deal ledger and supporting CRM API.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	rootCmd := &cobra.Command{
		Use:   "crm_backend",
		Short: "CRM backend: deal ledger, clients and users over HTTP",
		// Config and logger are loaded once for every subcommand.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
			slog.SetDefault(logger)
			appCfg = cfg
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(statsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// appCfg is set by the root command before any subcommand runs.
var appCfg *config.Config
