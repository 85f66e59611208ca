// Package maps maintains the battle map catalog, indexed by id and key.
//
// Maps come from the WG API (APIMap, localized names) or from replay
// metadata (ReplayMap). The catalog has no bucket cache.
package maps
