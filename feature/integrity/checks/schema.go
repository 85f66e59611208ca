package checks

import (
	"fmt"
	"sort"

	"blitz-stats/core/database"

	"gorm.io/gorm"
)

// SchemaReport strictly types the result of a schema integrity check.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckSchema compares the live tables against the expected columns.
func CheckSchema(db *gorm.DB, expected map[string][]string) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Matched: true,
		Tables:  make(map[string]TableReport, len(expected)),
	}

	tables := make([]string, 0, len(expected))
	for t := range expected {
		tables = append(tables, t)
	}
	sort.Strings(tables)

	for _, table := range tables {
		missing, err := database.MissingColumns(db, table, expected[table])
		if err != nil {
			report.Matched = false
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", table, err))
			report.Tables[table] = TableReport{Status: "error"}
			continue
		}
		tr := TableReport{MissingColumns: missing, Status: "ok"}
		if len(missing) > 0 {
			tr.Status = "error"
			report.Matched = false
		}
		report.Tables[table] = tr
	}
	return report, nil
}
