package stats

import (
	"testing"
	"time"

	"blitz-stats/core/ids"
	"blitz-stats/core/region"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAchievementsMain(t *testing.T) {
	t.Run("Fills region from account", func(t *testing.T) {
		src := AchievementsMain{
			AccountID: 521458531,
			Updated:   1692296001,
			MaxSeries: &MaxSeriesRecord{JointVictory: 3, Punisher: 1},
		}
		got, ok := FromAchievementsMain(src)
		require.True(t, ok)
		assert.Equal(t, region.EU, got.Region)
		assert.Equal(t, int64(1692296001), got.Added)
		assert.Equal(t, int64(3), got.JointVictory)

		assert.Nil(t, src.Region, "source must not be mutated")
		assert.Zero(t, src.MaxSeries.AccountID)
	})

	t.Run("Keeps explicit region", func(t *testing.T) {
		r := region.ASIA
		got, ok := FromAchievementsMain(AchievementsMain{AccountID: 1, Region: &r, MaxSeries: &MaxSeriesRecord{}})
		require.True(t, ok)
		assert.Equal(t, region.ASIA, got.Region)
	})

	t.Run("No max series", func(t *testing.T) {
		_, ok := FromAchievementsMain(AchievementsMain{AccountID: 1})
		assert.False(t, ok)
	})
}

func TestFromWGTankStat(t *testing.T) {
	got, ok := FromWGTankStat(WGTankStat{
		AccountID: 521458531, TankID: 2625, LastBattleTime: 1621494665, MarkOfMastery: 4,
		All: WGStatsBlock{Battles: 100, Wins: 55, Survived: 40},
	})
	require.True(t, ok)
	assert.Equal(t, int64(100), got.Battles)
	assert.Equal(t, 4, got.MarkOfMastery)
	assert.True(t, got.ID.IsZero(), "conversion does not seal")

	_, ok = FromWGTankStatV1(WGTankStatV1{AccountID: 1})
	assert.False(t, ok)
}

func TestNewTankStat(t *testing.T) {
	now := time.Unix(1700000000, 0)

	stat, clamped, err := NewTankStat(TankStat{AccountID: 521458531, TankID: 2625, LastBattleTime: 1621494665}, now, ids.DefaultClockSkew)
	require.NoError(t, err)
	assert.False(t, clamped)
	assert.Equal(t, "001f14d363000a4160a60b89", stat.ID.String())
	assert.Equal(t, region.EU, stat.Region)

	future := now.Add(11 * time.Hour).Unix()
	stat, clamped, err = NewTankStat(TankStat{AccountID: 1, TankID: 1, LastBattleTime: future}, now, ids.DefaultClockSkew)
	require.NoError(t, err)
	assert.True(t, clamped)
	assert.Equal(t, now.Unix(), stat.LastBattleTime)

	_, _, err = NewTankStat(TankStat{TankID: 1}, now, ids.DefaultClockSkew)
	assert.ErrorIs(t, err, ErrInvalidAccount)

	_, _, err = NewTankStat(TankStat{AccountID: 1}, now, ids.DefaultClockSkew)
	assert.ErrorIs(t, err, ErrInvalidTank)

	_, _, err = NewTankStat(TankStat{AccountID: 1, TankID: 1 << 24}, now, ids.DefaultClockSkew)
	assert.ErrorIs(t, err, ids.ErrFieldOverflow)
}

func TestNewMaxSeries(t *testing.T) {
	now := time.Unix(1700000000, 0)

	m, clamped, err := NewMaxSeries(MaxSeries{AccountID: 521458531, Region: region.EU, Added: 1692296001}, now, ids.DefaultClockSkew)
	require.NoError(t, err)
	assert.False(t, clamped)
	assert.Equal(t, "001f14d36300000164de6341", m.ID.String())

	m, _, err = NewMaxSeries(MaxSeries{AccountID: 7}, now, ids.DefaultClockSkew)
	require.NoError(t, err)
	assert.Equal(t, now.Unix(), m.Added)
}
