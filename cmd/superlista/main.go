package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dukerupert/superlista/internal/config"
	"github.com/dukerupert/superlista/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := &config.Config{}
	var logLevel string

	cmd := &cobra.Command{
		Use:          "superlista",
		Short:        "Shared shopping list server and client",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if logLevel != "" {
				loaded.LogLevel = logLevel
			}
			*cfg = *loaded
			logging.Setup(cfg.LogLevel, cfg.LogFormat)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides SUPERLISTA_LOG_LEVEL)")

	cmd.AddCommand(newServeCmd(cfg))
	cmd.AddCommand(newListCmd(cfg))
	cmd.AddCommand(newAddCmd(cfg))
	cmd.AddCommand(newVAPIDKeysCmd())
	return cmd
}
