// Package catalog stores reference collections such as the vehicle and map
// catalogs.
//
// A Store couples a reconcile.Collection with a JSON snapshot in object
// storage, a TTL cache, an optional persistence sink and reconcile metrics.
// Feature services wrap a Store and add their domain lookups.
package catalog
