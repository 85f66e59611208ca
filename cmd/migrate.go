package cmd

import (
	"fmt"

	"blitz-stats/core/config"
	"blitz-stats/core/database"
	"blitz-stats/core/logger"
	"blitz-stats/feature/integrity/checks"
	"blitz-stats/feature/stats"
	"blitz-stats/feature/tankopedia"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd creates or updates the SQL schema and reports missing columns.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the stats database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		l, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer l.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		if err := tankopedia.NewRepository(db).Migrate(); err != nil {
			return fmt.Errorf("failed to migrate tanks: %w", err)
		}
		if err := stats.NewRepository(db).Migrate(); err != nil {
			return fmt.Errorf("failed to migrate stats: %w", err)
		}

		expected := map[string][]string{tankopedia.Tank{}.TableName(): tankopedia.ExpectedColumns}
		for table, cols := range stats.ExpectedColumns {
			expected[table] = cols
		}

		report, err := checks.CheckSchema(db, expected)
		if err != nil {
			return err
		}
		for table, tr := range report.Tables {
			if tr.Status != "ok" {
				l.Error("Table check failed", zap.String("table", table), zap.Strings("missing_columns", tr.MissingColumns))
			}
		}
		for _, e := range report.Errors {
			l.Error("Schema error", zap.String("error", e))
		}
		if !report.Matched {
			return fmt.Errorf("schema check failed")
		}

		l.Info("Schema up to date", zap.String("driver", cfg.Database.Driver))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
