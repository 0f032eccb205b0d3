package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// statusCmd prints the cache size and freshness.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cached country count and last refresh time",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		rt, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		status, err := rt.service.Status(ctx)
		if err != nil {
			return err
		}

		last := "never"
		if status.LastRefreshedAt != nil {
			last = status.LastRefreshedAt.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Total countries: %d\nLast refreshed: %s\n", status.TotalCountries, last)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(statusCmd)
}
