package stats

import (
	"blitz-stats/core/region"
	"blitz-stats/core/transform"
)

// WGTankStat is a tanks/stats record of API v2; counters sit in "all".
type WGTankStat struct {
	AccountID      int64        `json:"account_id"`
	TankID         int64        `json:"tank_id"`
	LastBattleTime int64        `json:"last_battle_time"`
	BattleLifeTime int64        `json:"battle_life_time"`
	MarkOfMastery  int          `json:"mark_of_mastery"`
	All            WGStatsBlock `json:"all"`
}

// WGStatsBlock holds the battle counters of a stat record.
type WGStatsBlock struct {
	Battles     int64 `json:"battles"`
	Wins        int64 `json:"wins"`
	DamageDealt int64 `json:"damage_dealt"`
	Spotted     int64 `json:"spotted"`
	Frags       int64 `json:"frags"`
	Survived    int64 `json:"survived_battles"`
}

// WGTankStatV1 is the flat v1 stat record.
type WGTankStatV1 struct {
	AccountID      int64 `json:"account_id"`
	TankID         int64 `json:"tank_id"`
	LastBattleTime int64 `json:"last_battle_time"`
	WGStatsBlock
}

// FromWGTankStat converts a v2 record. The result still needs NewTankStat.
func FromWGTankStat(w WGTankStat) (TankStat, bool) {
	if w.AccountID <= 0 || w.TankID <= 0 {
		return TankStat{}, false
	}
	s := fromBlock(w.AccountID, w.TankID, w.LastBattleTime, w.All)
	s.BattleLifeTime = w.BattleLifeTime
	s.MarkOfMastery = w.MarkOfMastery
	return s, true
}

// FromWGTankStatV1 converts a v1 record. The result still needs NewTankStat.
func FromWGTankStatV1(w WGTankStatV1) (TankStat, bool) {
	if w.AccountID <= 0 || w.TankID <= 0 {
		return TankStat{}, false
	}
	return fromBlock(w.AccountID, w.TankID, w.LastBattleTime, w.WGStatsBlock), true
}

func fromBlock(accountID, tankID, lastBattle int64, b WGStatsBlock) TankStat {
	return TankStat{
		AccountID:      accountID,
		TankID:         tankID,
		LastBattleTime: lastBattle,
		Battles:        b.Battles,
		Wins:           b.Wins,
		DamageDealt:    b.DamageDealt,
		Spotted:        b.Spotted,
		Frags:          b.Frags,
		Survived:       b.Survived,
	}
}

// FromAchievementsMain extracts the max-series snapshot of an achievements
// record. It fails when the record has no max series. A missing region is
// derived from the account id; the source is left untouched.
func FromAchievementsMain(a AchievementsMain) (MaxSeries, bool) {
	if a.MaxSeries == nil || a.AccountID <= 0 {
		return MaxSeries{}, false
	}
	nested := *a.MaxSeries
	nested.AccountID = a.AccountID
	nested.Updated = a.Updated
	if a.Region != nil {
		r := *a.Region
		nested.Region = &r
	} else {
		nested.Region = nil
	}
	return FromMaxSeriesRecord(nested)
}

// FromMaxSeriesRecord converts a standalone max-series record.
func FromMaxSeriesRecord(m MaxSeriesRecord) (MaxSeries, bool) {
	if m.AccountID <= 0 {
		return MaxSeries{}, false
	}
	r := region.FromPlayerID(m.AccountID)
	if m.Region != nil {
		r = *m.Region
	}
	return MaxSeries{
		AccountID: m.AccountID,
		Added:     m.Updated,
		Region:    r,
		Series: Series{
			JointVictory: m.JointVictory,
			ArmorPiercer: m.ArmorPiercer,
			Punisher:     m.Punisher,
			TitleSniper:  m.TitleSniper,
			Invincible:   m.Invincible,
			Diehard:      m.Diehard,
			HandOfDeath:  m.HandOfDeath,
		},
	}, true
}

// RegisterTransforms adds the stat and achievement conversions to r.
func RegisterTransforms(r *transform.Registry) error {
	if err := transform.Register(r, FromWGTankStat); err != nil {
		return err
	}
	if err := transform.Register(r, FromWGTankStatV1); err != nil {
		return err
	}
	if err := transform.Register(r, FromAchievementsMain); err != nil {
		return err
	}
	return transform.Register(r, FromMaxSeriesRecord)
}
