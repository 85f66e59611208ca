package replay

import (
	"sort"
	"time"

	"blitz-stats/core/transform"
	"blitz-stats/feature/maps"
)

// Summary is the digest of one replay.
type Summary struct {
	Release  string        `json:"release"`
	Version  string        `json:"version"`
	Arena    string        `json:"arena_id,omitempty"`
	Map      maps.Map      `json:"map"`
	Start    time.Time     `json:"battle_start"`
	Duration time.Duration `json:"battle_duration"`
	Players  []PlayerData  `json:"players"`
	Skipped  int           `json:"skipped"`
}

// Summarize converts the details of a replay through reg and groups them
// with the replay's release and map. Players are ordered by team, then by
// damage dealt, highest first.
func Summarize(meta Meta, details []Detail, reg *transform.Registry) (Summary, error) {
	release, err := Release(meta.Version)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		Release:  release,
		Version:  meta.Version,
		Arena:    meta.ArenaUniqueID,
		Start:    meta.BattleStart,
		Duration: meta.BattleDuration,
	}
	if m, ok := transform.Transform[maps.Map](reg, maps.ReplayMap{ID: meta.MapID, Name: meta.MapName}); ok {
		s.Map = m
	} else {
		s.Map = maps.Map{Name: meta.MapName}
	}

	srcs := make([]any, len(details))
	for i, d := range details {
		srcs[i] = d
	}
	s.Players = transform.TransformAll[PlayerData](reg, srcs)
	s.Skipped = len(details) - len(s.Players)

	sort.SliceStable(s.Players, func(i, j int) bool {
		a, b := s.Players[i], s.Players[j]
		if a.Team != b.Team {
			return a.Team < b.Team
		}
		if a.DamageMade != b.DamageMade {
			return a.DamageMade > b.DamageMade
		}
		return a.AccountID < b.AccountID
	})
	return s, nil
}
