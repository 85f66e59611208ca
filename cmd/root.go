package cmd

import (
	"fmt"
	"os"

	"blitz-stats/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "blitz-stats",
	Short: "Blitz Stats Service",
	Long: `Blitz Stats ingests WoT Blitz reference data and player statistics.
It keeps the vehicle and map catalogs in sync with the public API and stores
per-vehicle stats and achievements under composite identifiers.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with the development config gives readable CLI errors.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
