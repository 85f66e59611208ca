package maps

import (
	"sort"
	"strings"

	"blitz-stats/core/transform"
)

// DefaultLocale is the locale used for map names.
const DefaultLocale = "en"

// APIMap is a map record of the WG API; Name holds one entry per locale.
type APIMap struct {
	ID   int64             `json:"id"`
	Key  string            `json:"key"`
	Name map[string]string `json:"name"`
}

// ReplayMap is the map reference found in replay metadata.
type ReplayMap struct {
	ID   int64  `json:"map_id"`
	Name string `json:"map_name"`
}

// FromAPIMap converts an API record using the English name, or the first
// locale in sorted order when English is missing.
func FromAPIMap(m APIMap) (Map, bool) {
	if m.ID <= 0 {
		return Map{}, false
	}
	name, ok := m.Name[DefaultLocale]
	if !ok && len(m.Name) > 0 {
		locales := make([]string, 0, len(m.Name))
		for l := range m.Name {
			locales = append(locales, l)
		}
		sort.Strings(locales)
		name = m.Name[locales[0]]
	}
	return Map{ID: m.ID, Key: strings.TrimSpace(m.Key), Name: name}, true
}

// FromReplayMap converts a replay map reference. Replays carry no key.
func FromReplayMap(m ReplayMap) (Map, bool) {
	if m.ID <= 0 {
		return Map{}, false
	}
	return Map{ID: m.ID, Name: m.Name}, true
}

// RegisterTransforms adds the map conversions to r.
func RegisterTransforms(r *transform.Registry) error {
	if err := transform.Register(r, FromAPIMap); err != nil {
		return err
	}
	return transform.Register(r, FromReplayMap)
}
