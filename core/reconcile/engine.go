package reconcile

import (
	"errors"
	"sort"
)

// ErrNilCollection is returned when Reconcile receives a nil collection.
var ErrNilCollection = errors.New("nil collection")

// Reconcile merges fresh into old and reports which keys changed.
//
// A key is added when it exists only in fresh, and updated when it exists
// in both with values that differ under Indexer.Equal. Added and updated
// entities are copied into old and both indexes are repaired for exactly
// those keys. Keys missing from fresh are left alone.
//
// Every touched entity is validated before old is mutated, so a failure
// (bucket out of range, code conflict) returns an error and leaves old
// exactly as it was.
func Reconcile[V any](old, fresh *Collection[V]) (Diff, error) {
	if old == nil || fresh == nil {
		return Diff{}, ErrNilCollection
	}

	diff := Diff{Added: []string{}, Updated: []string{}}
	touched := make(map[string]V)

	for key, nv := range fresh.items {
		ov, exists := old.items[key]
		switch {
		case !exists:
			diff.Added = append(diff.Added, key)
		case !old.indexer.Equal(ov, nv):
			diff.Updated = append(diff.Updated, key)
		default:
			continue
		}
		touched[key] = nv
	}

	if len(touched) == 0 {
		return diff, nil
	}

	if err := old.validate(touched); err != nil {
		return Diff{}, err
	}

	sort.Strings(diff.Added)
	sort.Strings(diff.Updated)

	for _, key := range diff.Touched() {
		old.put(key, touched[key])
	}

	return diff, nil
}
