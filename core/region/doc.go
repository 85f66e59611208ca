// Package region maps account IDs to the server group (shard) that owns them.
//
// Account IDs are 32-bit values allocated in contiguous, ascending ranges per
// region. Two tables are exposed:
//
//   - FromID returns the nominal home of an identifier.
//   - FromPlayerID returns the home that actually serves player statistics.
//     It moves the ASIA/CHINA boundary 1e8 lower because the band
//     [30e8, 31e8) never resolves on the asia stats API.
//
// Both functions are total. Identifiers outside every named range (negative
// values, values above 2^32-1, and sentinel IDs) map to BOT.
//
// # Usage
//
//	r := region.FromPlayerID(521458531) // region.EU
//	fmt.Println(r, r.Ordinal())         // "eu 1"
package region
