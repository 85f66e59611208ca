package conversions

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"blitz-stats/core/region"
	"blitz-stats/core/transform"
	"blitz-stats/feature/maps"
	"blitz-stats/feature/replay"
	"blitz-stats/feature/stats"
	"blitz-stats/feature/tankopedia"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	assert.Equal(t, 10, reg.Len())

	_, ok := transform.Transform[tankopedia.Tank](reg, tankopedia.VehicleV1{TankID: 1, Tier: 1, Type: "lightTank"})
	assert.True(t, ok)
	_, ok = transform.Transform[maps.Map](reg, maps.APIMap{ID: 1})
	assert.True(t, ok)
	_, ok = transform.Transform[replay.PlayerData](reg, replay.Detail{DBID: 1, VehicleDescr: 1})
	assert.True(t, ok)

	ms, ok := transform.Transform[stats.MaxSeries](reg, stats.AchievementsMain{AccountID: 1, MaxSeries: &stats.MaxSeriesRecord{}})
	require.True(t, ok)
	assert.Equal(t, region.RU, ms.Region)

	// No edge from a tank to a map.
	_, ok = transform.Transform[maps.Map](reg, tankopedia.Tank{})
	assert.False(t, ok)

	// Frozen.
	assert.ErrorIs(t, tankopedia.RegisterTransforms(reg), transform.ErrFrozen)
}

func TestHandleList(t *testing.T) {
	app := fiber.New()
	require.NoError(t, NewFeature(NewRegistry()).Load(app))

	resp, err := app.Test(httptest.NewRequest("GET", "/conversions", nil))
	require.NoError(t, err)
	data, _ := io.ReadAll(resp.Body)

	var edges []transform.Edge
	require.NoError(t, json.Unmarshal(data, &edges))
	assert.Len(t, edges, 10)
	assert.Contains(t, edges, transform.Edge{Source: "tankopedia.VehicleV2", Target: "tankopedia.Tank"})
}
