package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// refreshCmd runs one refresh and waits for the summary image.
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh the country cache once",
	Long: `Fetches countries and exchange rates, recomputes estimated GDP, upserts every
country and regenerates the summary image, then exits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		rt, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		res, err := rt.refresher.Refresh(ctx)
		if err != nil {
			return err
		}
		if err := rt.refresher.Wait(ctx); err != nil {
			return err
		}

		rt.logger.Info("Refresh completed",
			zap.Int("processed", res.ProcessedCount),
			zap.Int64("total", res.TotalCount),
			zap.Int("skipped", res.Stats.Skipped),
			zap.Int("missing_rate", res.Stats.MissingRate),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "Countries processed: %d\nTotal countries: %d\n", res.ProcessedCount, res.TotalCount)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(refreshCmd)
}
