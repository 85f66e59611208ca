// Package ids builds the composite identifiers used as idempotent upsert keys.
//
// An ID is 12 bytes (24 hex digits) made by concatenating two or three
// integers, each zero-padded to a fixed hex width. The same inputs always
// give the same ID, so re-ingesting a fact produces the same key instead of
// a duplicate.
//
// # Layouts
//
//   - StatLayout: account_id (10) | tank_id (6) | last_battle_time (8)
//   - AchievementLayout: account_id (10) | region ordinal (6) | updated (8)
//
// Encode rejects values wider than their slot with a *FieldOverflowError.
//
// # Timestamps
//
// Upstream timestamps may run ahead of the local clock. ClampTimestamp is a
// validation step applied before encoding; Encode itself never alters its
// inputs.
//
//	ts, _ := ids.ClampTimestamp(stat.LastBattleTime, time.Now(), ids.DefaultClockSkew)
//	id, err := ids.StatID(accountID, tankID, uint64(ts))
package ids
