// Package stats ingests and serves per-player statistics.
//
// Two record kinds are stored, each keyed by a composite identifier from
// core/ids:
//
//   - TankStat: one account on one vehicle, id = (account, tank, last battle).
//   - MaxSeries: achievement streaks, id = (account, region, added).
//
// Upstream payloads (API v1 and v2 stat records, achievements records with a
// nested max series, standalone max-series records) are converted through
// the transformation registry, then sealed: validated, timestamp clamped
// against clock skew, region resolved and id computed. Ingesting the same
// payload twice leaves a single row.
package stats
