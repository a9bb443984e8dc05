package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dukerupert/superlista/internal/push"
)

func newVAPIDKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vapid-keys",
		Short: "Generate a VAPID key pair for web push",
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, priv, err := push.GenerateVAPIDKeys()
			if err != nil {
				return fmt.Errorf("generate keys: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "SUPERLISTA_VAPID_PUBLIC_KEY=%s\nSUPERLISTA_VAPID_PRIVATE_KEY=%s\n", pub, priv)
			return nil
		},
	}
}
