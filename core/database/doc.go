// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL (production) or
// SQLite (local runs and tests) connections from the application's
// configuration. The stats feature stores per-vehicle stat records and
// achievement snapshots here, keyed by composite identifiers.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table so the migrate command can
// confirm that the expected schema is in place after AutoMigrate.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "tank_stats")
package database
