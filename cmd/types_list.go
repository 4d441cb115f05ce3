package cmd

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"careport/internal/taxonomy"
)

var typesCategory string

var typesListCmd = &cobra.Command{
	Use:   "types:list",
	Short: "List marketplace role types",
	Long: `List marketplace role types as JSON.

Without flags, prints the available role categories. With --category,
prints the role types registered under that category, including any
embedded children and profile attributes the backend returns.

Examples:
  # List all categories
  careport types:list

  # List types in a category
  careport types:list --category Healthcare
  careport types:list -C Healthcare

  # Parse specific fields with jq
  careport types:list -C Healthcare | jq '.[].name'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := buildServices()
		if err != nil {
			return err
		}
		ctx := context.Background()

		var payload any
		if cmd.Flags().Changed("category") {
			types, err := services.Taxonomy.PlayerTypes(ctx, typesCategory)
			if err != nil {
				return err
			}
			if types == nil {
				types = []taxonomy.PlayerType{}
			}
			payload = types
		} else {
			categories, err := services.Taxonomy.Categories(ctx)
			if err != nil {
				return err
			}
			if categories == nil {
				categories = []string{}
			}
			payload = categories
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	},
}

func init() {
	typesListCmd.Flags().StringVarP(&typesCategory, "category", "C", "",
		"filter types by category")
	rootCmd.AddCommand(typesListCmd)
}
