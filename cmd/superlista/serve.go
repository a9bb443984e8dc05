package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dukerupert/superlista/internal/app"
	"github.com/dukerupert/superlista/internal/config"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	var port, dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				cfg.Port = port
			}
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			return app.Serve(cmd.Context(), cfg, slog.Default())
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides SUPERLISTA_PORT)")
	cmd.Flags().StringVar(&dbPath, "db", "", "database path (overrides SUPERLISTA_DB_PATH)")
	return cmd
}
