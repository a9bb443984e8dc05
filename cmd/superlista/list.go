package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dukerupert/superlista/internal/app"
	"github.com/dukerupert/superlista/internal/config"
	"github.com/dukerupert/superlista/internal/grocery"
	"github.com/dukerupert/superlista/internal/model"
)

func newListCmd(cfg *config.Config) *cobra.Command {
	var name, apiURL string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the shared shopping list",
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiURL != "" {
				cfg.APIURL = apiURL
			}
			c, err := startClient(cmd.Context(), cfg, name)
			if err != nil {
				return err
			}
			defer c.Close()

			return app.WriteList(cmd.OutOrStdout(), c.List.Rows(), c.Stats.Stats(), time.Now())
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "log in with this display name")
	cmd.Flags().StringVar(&apiURL, "api", "", "API base URL (overrides SUPERLISTA_API_URL)")
	return cmd
}

func newAddCmd(cfg *config.Config) *cobra.Command {
	var name string
	var form model.ItemForm

	cmd := &cobra.Command{
		Use:   "add <item>",
		Short: "Add an item to the top of the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := startClient(cmd.Context(), cfg, name)
			if err != nil {
				return err
			}
			defer c.Close()

			form.Name = strings.Join(args, " ")
			if form.Place == "" {
				form.Place = grocery.SuggestPlace(form.Name)
			}
			out, err := c.Add(cmd.Context(), form)
			if err != nil {
				return err
			}
			if out.AuditErr != nil {
				slog.Warn("item added but history was not recorded", "error", out.AuditErr)
			}
			return app.WriteList(cmd.OutOrStdout(), c.List.Rows(), c.Stats.Stats(), time.Now())
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "log in with this display name")
	cmd.Flags().IntVar(&form.Quantity, "qty", 1, "quantity")
	cmd.Flags().StringVar(&form.Unit, "unit", "unidad", "unit")
	cmd.Flags().StringVar(&form.Place, "place", "", "place (suggested from the name when empty)")
	cmd.Flags().StringVar(&form.Status, "status", grocery.StatusAgotado, "stock status at home")
	return cmd
}

// startClient opens the app client, restoring the remembered user or
// logging in as name when given.
func startClient(ctx context.Context, cfg *config.Config, name string) (*app.Client, error) {
	c, err := app.NewClient(cfg, app.ClientOptions{}, slog.Default())
	if err != nil {
		return nil, err
	}
	if err := c.Start(ctx); err != nil {
		c.Close()
		return nil, err
	}
	if name != "" {
		if err := c.Login(ctx, name); err != nil {
			c.Close()
			return nil, err
		}
	}
	return c, nil
}
