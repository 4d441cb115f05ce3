package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"careport/internal/entities"
)

// entityListers maps resource names to list functions so the command can
// stay generic over the typed collection services.
func entityListers(reg *entities.Registry) map[string]func(context.Context) (any, error) {
	return map[string]func(context.Context) (any, error){
		"providers":      listAs(reg.Providers.List),
		"patients":       listAs(reg.Patients.List),
		"administrators": listAs(reg.Administrators.List),
		"commissions":    listAs(reg.Commissions.List),
		"payments":       listAs(reg.Payments.List),
		"services":       listAs(reg.Services.List),
		"reviews":        listAs(reg.Reviews.List),
		"communications": listAs(reg.Communications.List),
		"notifications":  listAs(reg.Notifications.List),
	}
}

func listAs[T entities.Entity](list func(context.Context) ([]T, error)) func(context.Context) (any, error) {
	return func(ctx context.Context) (any, error) {
		records, err := list(ctx)
		if err != nil {
			return nil, err
		}
		if records == nil {
			records = []T{}
		}
		return records, nil
	}
}

var entitiesListCmd = &cobra.Command{
	Use:   "entities:list <resource>",
	Short: "List records from a marketplace collection",
	Long: `List records from a marketplace collection as JSON.

Resource is one of: providers, patients, administrators, commissions,
payments, services, reviews, communications, notifications.

When the backend is unreachable and demo fallback is enabled, the
bundled demo dataset is printed instead.

Examples:
  careport entities:list providers
  careport entities:list payments | jq '.[].amount'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := buildServices()
		if err != nil {
			return err
		}

		listers := entityListers(services.Entities)
		resource := strings.ToLower(args[0])
		list, ok := listers[resource]
		if !ok {
			names := make([]string, 0, len(listers))
			for name := range listers {
				names = append(names, name)
			}
			sort.Strings(names)
			return fmt.Errorf("unknown resource %q (want one of: %s)", args[0], strings.Join(names, ", "))
		}

		records, err := list(context.Background())
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	},
}

func init() {
	rootCmd.AddCommand(entitiesListCmd)
}
