package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"careport/internal/session"
)

var tokenSetCmd = &cobra.Command{
	Use:   "token:set <token>",
	Short: "Persist a bearer token for backend requests",
	Long: `Persist a bearer token for backend requests.

The token is written to the configured token file with owner-only
permissions. A running careport instance picks up the change through
its file watcher without restarting.

Examples:
  careport token:set eyJhbGciOi...
  careport token:set "$(my-auth-helper)"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token := strings.TrimSpace(args[0])
		if token == "" {
			return fmt.Errorf("token must not be empty")
		}

		store := session.NewTokenStore(cfg.API.TokenPath)
		if err := store.Save(token); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Token saved to %s\n", store.Path())
		return nil
	},
}

var tokenClearCmd = &cobra.Command{
	Use:   "token:clear",
	Short: "Remove the persisted bearer token",
	Long: `Remove the persisted bearer token.

Subsequent backend requests run unauthenticated. A running careport
instance sees the removal through its file watcher and shows a
session-ended notice.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := session.NewTokenStore(cfg.API.TokenPath)
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Token cleared from %s\n", store.Path())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenSetCmd)
	rootCmd.AddCommand(tokenClearCmd)
}
