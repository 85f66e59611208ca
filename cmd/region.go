package cmd

import (
	"fmt"
	"strconv"

	"blitz-stats/core/logger"
	"blitz-stats/core/region"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// regionCmd resolves account IDs to regions without touching any backend.
var regionCmd = &cobra.Command{
	Use:   "region <account_id>...",
	Short: "Show the home and stats region of account IDs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := logger.New(&logger.Config{Level: "info", Format: "console"})
		if err != nil {
			return err
		}
		defer l.Sync()

		for _, arg := range args {
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid account id %q: %w", arg, err)
			}
			l.Info("Account region",
				zap.Int64("account_id", id),
				zap.Stringer("nominal", region.FromID(id)),
				zap.Stringer("stats", region.FromPlayerID(id)),
			)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(regionCmd)
}
