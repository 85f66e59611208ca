package replay

import (
	"blitz-stats/core/region"
	"blitz-stats/core/transform"
)

// Detail is the per-player block of a replay's battle results.
type Detail struct {
	DBID              int64 `json:"dbid"`
	ClanID            int64 `json:"clanid"`
	VehicleDescr      int64 `json:"vehicle_descr"`
	Team              int   `json:"team"`
	DamageMade        int64 `json:"damage_made"`
	DamageAssisted    int64 `json:"damage_assisted"`
	DamageBlocked     int64 `json:"damage_blocked"`
	DamageReceived    int64 `json:"damage_received"`
	Shots             int64 `json:"n_shots"`
	HitsDealt         int64 `json:"n_hits_dealt"`
	PenetrationsDealt int64 `json:"n_penetrations_dealt"`
	EnemiesDestroyed  int64 `json:"n_enemies_destroyed"`
	EnemiesSpotted    int64 `json:"n_enemies_spotted"`
	BaseCapturePoints int64 `json:"base_capture_points"`
	BaseDefendPoints  int64 `json:"base_defend_points"`
	HitpointsLeft     *int  `json:"hitpoints_left,omitempty"`
}

// PlayerData is one player's result in a battle.
type PlayerData struct {
	AccountID      int64         `json:"account_id"`
	ClanID         int64         `json:"clan_id,omitempty"`
	TankID         int64         `json:"tank_id"`
	Team           int           `json:"team"`
	Region         region.Region `json:"region"`
	DamageMade     int64         `json:"damage_made"`
	DamageAssisted int64         `json:"damage_assisted"`
	DamageBlocked  int64         `json:"damage_blocked"`
	DamageReceived int64         `json:"damage_received"`
	Shots          int64         `json:"shots"`
	Hits           int64         `json:"hits"`
	Penetrations   int64         `json:"penetrations"`
	Kills          int64         `json:"kills"`
	Spotted        int64         `json:"spotted"`
	Survived       bool          `json:"survived"`
}

// FromDetail converts a replay detail. Details without a player id or vehicle
// are rejected. The region comes from the player id.
func FromDetail(d Detail) (PlayerData, bool) {
	if d.DBID <= 0 || d.VehicleDescr <= 0 {
		return PlayerData{}, false
	}
	return PlayerData{
		AccountID:      d.DBID,
		ClanID:         d.ClanID,
		TankID:         d.VehicleDescr,
		Team:           d.Team,
		Region:         region.FromPlayerID(d.DBID),
		DamageMade:     d.DamageMade,
		DamageAssisted: d.DamageAssisted,
		DamageBlocked:  d.DamageBlocked,
		DamageReceived: d.DamageReceived,
		Shots:          d.Shots,
		Hits:           d.HitsDealt,
		Penetrations:   d.PenetrationsDealt,
		Kills:          d.EnemiesDestroyed,
		Spotted:        d.EnemiesSpotted,
		Survived:       d.HitpointsLeft != nil && *d.HitpointsLeft > 0,
	}, true
}

// RegisterTransforms adds the replay conversions to r.
func RegisterTransforms(r *transform.Registry) error {
	if err := transform.Register(r, FromDetail); err != nil {
		return err
	}
	return transform.Register(r, MetaFromMap)
}
