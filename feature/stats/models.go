package stats

import (
	"errors"
	"fmt"
	"time"

	"blitz-stats/core/ids"
	"blitz-stats/core/region"
)

var (
	// ErrInvalidAccount is returned for records without a usable account id.
	ErrInvalidAccount = errors.New("invalid account id")
	// ErrInvalidTank is returned for stat records without a tank id.
	ErrInvalidTank = errors.New("invalid tank id")
)

// TankStat is one player's statistics on one vehicle as of LastBattleTime.
type TankStat struct {
	ID             ids.ID        `json:"id" gorm:"primaryKey;type:char(24)"`
	AccountID      int64         `json:"account_id" gorm:"index"`
	TankID         int64         `json:"tank_id" gorm:"index"`
	LastBattleTime int64         `json:"last_battle_time"`
	Region         region.Region `json:"region"`
	BattleLifeTime int64         `json:"battle_life_time"`
	MarkOfMastery  int           `json:"mark_of_mastery"`
	Battles        int64         `json:"battles"`
	Wins           int64         `json:"wins"`
	DamageDealt    int64         `json:"damage_dealt"`
	Spotted        int64         `json:"spotted"`
	Frags          int64         `json:"frags"`
	Survived       int64         `json:"survived_battles"`
}

// TableName overrides the table name used by TankStat.
func (TankStat) TableName() string {
	return "tank_stats"
}

// NewTankStat seals a converted stat record: it validates the ids, clamps a
// skewed LastBattleTime to now, derives the region from the account and
// computes the record id. The bool reports whether the timestamp was clamped.
func NewTankStat(s TankStat, now time.Time, slack time.Duration) (TankStat, bool, error) {
	if s.AccountID <= 0 {
		return TankStat{}, false, fmt.Errorf("%w: %d", ErrInvalidAccount, s.AccountID)
	}
	if s.TankID <= 0 {
		return TankStat{}, false, fmt.Errorf("%w: %d", ErrInvalidTank, s.TankID)
	}

	ts, clamped := ids.ClampTimestamp(s.LastBattleTime, now, slack)
	if ts < 0 {
		ts = 0
	}
	s.LastBattleTime = ts
	s.Region = region.FromPlayerID(s.AccountID)

	id, err := ids.StatID(uint64(s.AccountID), uint64(s.TankID), uint64(ts))
	if err != nil {
		return TankStat{}, false, err
	}
	s.ID = id
	return s, clamped, nil
}

// MaxSeriesRecord holds the longest streaks per achievement. When nested in
// AchievementsMain the account fields are empty and come from the parent.
type MaxSeriesRecord struct {
	AccountID    int64          `json:"account_id,omitempty"`
	Updated      int64          `json:"updated_at,omitempty"`
	Region       *region.Region `json:"region,omitempty"`
	JointVictory int64          `json:"jointVictory"`
	ArmorPiercer int64          `json:"armorPiercer"`
	Punisher     int64          `json:"punisher"`
	TitleSniper  int64          `json:"titleSniper"`
	Invincible   int64          `json:"invincible"`
	Diehard      int64          `json:"diehard"`
	HandOfDeath  int64          `json:"handOfDeath"`
}

// AchievementsMain is an account achievements record.
type AchievementsMain struct {
	AccountID    int64            `json:"account_id"`
	Updated      int64            `json:"updated_at"`
	Region       *region.Region   `json:"region,omitempty"`
	Achievements map[string]int64 `json:"achievements,omitempty"`
	MaxSeries    *MaxSeriesRecord `json:"max_series,omitempty"`
}

// Payload is an achievements payload: AchievementsMain or MaxSeriesRecord.
type Payload interface {
	isPayload()
}

func (AchievementsMain) isPayload() {}

func (MaxSeriesRecord) isPayload() {}

// Series are the streak counters stored with a MaxSeries row.
type Series struct {
	JointVictory int64 `json:"jointVictory"`
	ArmorPiercer int64 `json:"armorPiercer"`
	Punisher     int64 `json:"punisher"`
	TitleSniper  int64 `json:"titleSniper"`
	Invincible   int64 `json:"invincible"`
	Diehard      int64 `json:"diehard"`
	HandOfDeath  int64 `json:"handOfDeath"`
}

// MaxSeries is a stored max-series snapshot.
type MaxSeries struct {
	ID        ids.ID        `json:"id" gorm:"primaryKey;type:char(24)"`
	AccountID int64         `json:"account_id" gorm:"index"`
	Added     int64         `json:"added"`
	Region    region.Region `json:"region"`
	Series    `gorm:"embedded"`
}

// TableName overrides the table name used by MaxSeries.
func (MaxSeries) TableName() string {
	return "max_series"
}

// NewMaxSeries seals a converted snapshot. A zero Added is stamped with now;
// a skewed one is clamped. The id encodes account, region and Added.
func NewMaxSeries(m MaxSeries, now time.Time, slack time.Duration) (MaxSeries, bool, error) {
	if m.AccountID <= 0 {
		return MaxSeries{}, false, fmt.Errorf("%w: %d", ErrInvalidAccount, m.AccountID)
	}

	clamped := false
	if m.Added <= 0 {
		m.Added = now.Unix()
	} else {
		m.Added, clamped = ids.ClampTimestamp(m.Added, now, slack)
	}

	r := m.Region
	id, err := ids.AchievementID(uint64(m.AccountID), &r, uint64(m.Added))
	if err != nil {
		return MaxSeries{}, false, err
	}
	m.ID = id
	return m, clamped, nil
}
