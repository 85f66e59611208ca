package checks

import (
	"testing"

	"blitz-stats/core/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ID     int64 `gorm:"primaryKey"`
	Region string
}

func TestCheckSchema(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Table("samples").AutoMigrate(&sample{}))

	t.Run("Matched", func(t *testing.T) {
		report, err := CheckSchema(db, map[string][]string{"samples": {"id", "region"}})
		require.NoError(t, err)
		assert.True(t, report.Matched)
		assert.Equal(t, "ok", report.Tables["samples"].Status)
	})

	t.Run("Missing Columns", func(t *testing.T) {
		report, err := CheckSchema(db, map[string][]string{
			"samples": {"id", "region", "wins"},
			"absent":  {"id"},
		})
		require.NoError(t, err)
		assert.False(t, report.Matched)
		assert.Equal(t, []string{"wins"}, report.Tables["samples"].MissingColumns)
		assert.Equal(t, []string{"id"}, report.Tables["absent"].MissingColumns)
	})

	t.Run("Nil DB", func(t *testing.T) {
		_, err := CheckSchema(nil, nil)
		assert.Error(t, err)
	})
}
