package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"blitz-stats/core/utils"
)

// ErrVersionFormat is returned for versions without major and minor parts.
var ErrVersionFormat = errors.New("invalid version format")

// Meta is the parsed meta.json record of a replay.
type Meta struct {
	Version        string        `json:"version"`
	Title          string        `json:"title,omitempty"`
	PlayerID       int64         `json:"dbid"`
	PlayerName     string        `json:"playerName"`
	ArenaUniqueID  string        `json:"arenaUniqueId"`
	MapID          int64         `json:"mapId"`
	MapName        string        `json:"mapName"`
	ArenaBonusType int           `json:"arenaBonusType"`
	BattleStart    time.Time     `json:"battleStartTime"`
	BattleDuration time.Duration `json:"battleDuration"`
}

// MetaFromMap builds a Meta from loosely typed JSON. Numbers may arrive as
// float64, json.Number or strings. Missing keys leave zero values.
func MetaFromMap(m map[string]any) (Meta, bool) {
	if m == nil {
		return Meta{}, false
	}
	meta := Meta{
		Version:        utils.ToString(m["version"]),
		Title:          utils.ToString(m["title"]),
		PlayerID:       utils.ToInt64(m["dbid"]),
		PlayerName:     utils.ToString(m["playerName"]),
		ArenaUniqueID:  utils.ToString(m["arenaUniqueId"]),
		MapID:          utils.ToInt64(m["mapId"]),
		MapName:        utils.ToString(m["mapName"]),
		ArenaBonusType: utils.ToInt(m["arenaBonusType"]),
		BattleDuration: time.Duration(utils.ToFloat64(m["battleDuration"]) * float64(time.Second)),
	}
	if start := utils.ToInt64(m["battleStartTime"]); start > 0 {
		meta.BattleStart = time.Unix(start, 0).UTC()
	}
	return meta, meta.Version != ""
}

// DecodeMeta reads meta.json. Large ids are kept exact.
func DecodeMeta(r io.Reader) (Meta, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return Meta{}, fmt.Errorf("failed to decode replay meta: %w", err)
	}
	meta, ok := MetaFromMap(raw)
	if !ok {
		return Meta{}, fmt.Errorf("replay meta: %w: missing version", ErrVersionFormat)
	}
	return meta, nil
}

// Release returns the major.minor part of a client version, e.g.
// "10.2.0_apple" gives "10.2".
func Release(version string) (string, error) {
	parts := strings.SplitN(strings.TrimSpace(version), ".", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("%w: %q", ErrVersionFormat, version)
	}
	minor := parts[1]
	if i := strings.IndexAny(minor, "_- "); i >= 0 {
		minor = minor[:i]
	}
	if minor == "" {
		return "", fmt.Errorf("%w: %q", ErrVersionFormat, version)
	}
	return parts[0] + "." + minor, nil
}
