// Package reconcile keeps long-lived reference collections (vehicle catalog,
// map catalog) in sync with freshly fetched snapshots.
//
// # Collections
//
// A Collection maps a primary string key to an entity and maintains two
// derived structures alongside the primary map:
//
//   - a code index from an optional short code to the entity's key;
//   - a bucket cache from a bounded attribute (e.g. tier 1..10) to the set
//     of keys sharing it. Every legal bucket exists from construction, and
//     asking for a bucket outside the legal range is an error.
//
// Every mutation (Add, Remove, Pop, Reconcile) updates all three structures
// together. Verify compares the derived indexes with a from-scratch Rebuild.
//
// # Reconcile
//
// Reconcile(old, fresh) computes the keys only in fresh (added) and the keys
// in both whose values differ under the Indexer's Equal (updated), copies
// those entities into old, and repairs the indexes for exactly those keys.
// Running it twice with the same fresh snapshot yields an empty Diff. It
// never removes keys; use Remove for that.
//
// All touched entities are validated up front, so a failing reconcile leaves
// old untouched.
//
// # Persisting changes
//
// Apply forwards the entities named by a Diff to a Sink, preferring
// BatchSink.UpsertBatch when available.
//
// # Usage Example
//
//	stored := reconcile.NewCollection[tankopedia.Tank](tankopedia.Indexer{}, tankopedia.MaxTier)
//	diff, err := reconcile.Reconcile(stored, fresh)
//	if err != nil {
//	    return err
//	}
//	_, err = reconcile.Apply(ctx, repo, stored, diff)
//
// # Caching
//
// Cache keeps loaded collections for a TTL and uses singleflight so that
// concurrent requests trigger a single load.
package reconcile
