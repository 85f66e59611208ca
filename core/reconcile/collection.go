package reconcile

import (
	"fmt"
	"sort"
)

// Collection is a keyed set of reference entities with two derived indexes:
// a code index (code -> key) and a bucket cache (bucket -> set of keys).
// Both indexes are kept in lock-step with the primary map by every mutation.
//
// A Collection is single-writer. Callers serialize Add, Remove, Pop and
// Reconcile on one instance.
type Collection[V any] struct {
	indexer Indexer[V]
	buckets int
	items   map[string]V
	codes   map[string]string
	tiers   []map[string]struct{}
}

// NewCollection creates an empty collection. buckets is the number of legal
// bucket values (1..buckets); zero disables the bucket cache.
func NewCollection[V any](indexer Indexer[V], buckets int) *Collection[V] {
	if buckets < 0 {
		buckets = 0
	}
	c := &Collection[V]{
		indexer: indexer,
		buckets: buckets,
		items:   make(map[string]V),
		codes:   make(map[string]string),
		tiers:   make([]map[string]struct{}, buckets),
	}
	for i := range c.tiers {
		c.tiers[i] = make(map[string]struct{})
	}
	return c
}

// FromValues builds a collection from a slice of entities.
func FromValues[V any](indexer Indexer[V], buckets int, values []V) (*Collection[V], error) {
	c := NewCollection(indexer, buckets)
	if err := c.AddAll(values); err != nil {
		return nil, err
	}
	return c, nil
}

// Add inserts or replaces one entity and updates both indexes.
func (c *Collection[V]) Add(v V) error {
	key := c.indexer.Key(v)
	if key == "" {
		return ErrEmptyKey
	}
	if err := c.validate(map[string]V{key: v}); err != nil {
		return err
	}
	c.put(key, v)
	return nil
}

// AddAll adds every entity, or none if any of them is invalid.
func (c *Collection[V]) AddAll(values []V) error {
	batch := make(map[string]V, len(values))
	for _, v := range values {
		key := c.indexer.Key(v)
		if key == "" {
			return ErrEmptyKey
		}
		batch[key] = v
	}
	if err := c.validate(batch); err != nil {
		return err
	}
	for _, key := range sortedKeys(batch) {
		c.put(key, batch[key])
	}
	return nil
}

// Get returns the entity stored under key.
func (c *Collection[V]) Get(key string) (V, bool) {
	v, ok := c.items[key]
	return v, ok
}

// ByCode returns the entity indexed under code.
func (c *Collection[V]) ByCode(code string) (V, bool) {
	var zero V
	key, ok := c.codes[code]
	if !ok {
		return zero, false
	}
	v, ok := c.items[key]
	return v, ok
}

// Bucket returns the sorted keys in bucket n. A bucket outside 1..Buckets()
// is an error, not an empty result.
func (c *Collection[V]) Bucket(n int) ([]string, error) {
	if n < 1 || n > c.buckets {
		return nil, &BucketRangeError{Bucket: n, Max: c.buckets}
	}
	return sortedKeys(c.tiers[n-1]), nil
}

// Buckets returns the number of legal buckets.
func (c *Collection[V]) Buckets() int {
	return c.buckets
}

// Remove deletes key from the primary map and both indexes.
func (c *Collection[V]) Remove(key string) bool {
	_, ok := c.Pop(key)
	return ok
}

// Pop deletes key and returns the entity that was stored under it.
func (c *Collection[V]) Pop(key string) (V, bool) {
	v, ok := c.items[key]
	if !ok {
		return v, false
	}
	c.unindex(key, v)
	delete(c.items, key)
	return v, true
}

// Len returns the number of entities.
func (c *Collection[V]) Len() int {
	return len(c.items)
}

// Keys returns all primary keys in sorted order.
func (c *Collection[V]) Keys() []string {
	return sortedKeys(c.items)
}

// Values returns all entities ordered by key.
func (c *Collection[V]) Values() []V {
	keys := c.Keys()
	out := make([]V, 0, len(keys))
	for _, k := range keys {
		out = append(out, c.items[k])
	}
	return out
}

// Clone returns an independent copy. Entities are copied by value.
func (c *Collection[V]) Clone() *Collection[V] {
	out := NewCollection(c.indexer, c.buckets)
	for k, v := range c.items {
		out.items[k] = v
	}
	for code, k := range c.codes {
		out.codes[code] = k
	}
	for i, set := range c.tiers {
		for k := range set {
			out.tiers[i][k] = struct{}{}
		}
	}
	return out
}

// Rebuild recomputes both indexes from the primary map.
func (c *Collection[V]) Rebuild() error {
	codes, tiers, err := c.buildIndexes()
	if err != nil {
		return err
	}
	c.codes = codes
	c.tiers = tiers
	return nil
}

// Verify checks that the derived indexes match a from-scratch rebuild.
func (c *Collection[V]) Verify() error {
	codes, tiers, err := c.buildIndexes()
	if err != nil {
		return err
	}
	if len(codes) != len(c.codes) {
		return fmt.Errorf("%w: %d codes indexed, want %d", ErrInconsistent, len(c.codes), len(codes))
	}
	for code, key := range codes {
		if c.codes[code] != key {
			return fmt.Errorf("%w: code %q -> %q, want %q", ErrInconsistent, code, c.codes[code], key)
		}
	}
	for i := range tiers {
		if len(tiers[i]) != len(c.tiers[i]) {
			return fmt.Errorf("%w: bucket %d has %d keys, want %d", ErrInconsistent, i+1, len(c.tiers[i]), len(tiers[i]))
		}
		for key := range tiers[i] {
			if _, ok := c.tiers[i][key]; !ok {
				return fmt.Errorf("%w: bucket %d missing key %s", ErrInconsistent, i+1, key)
			}
		}
	}
	return nil
}

func (c *Collection[V]) buildIndexes() (map[string]string, []map[string]struct{}, error) {
	codes := make(map[string]string)
	tiers := make([]map[string]struct{}, c.buckets)
	for i := range tiers {
		tiers[i] = make(map[string]struct{})
	}
	for _, key := range sortedKeys(c.items) {
		v := c.items[key]
		if code, ok := c.indexer.Code(v); ok {
			if owner, taken := codes[code]; taken {
				return nil, nil, fmt.Errorf("%w: %q claimed by %s and %s", ErrCodeConflict, code, owner, key)
			}
			codes[code] = key
		}
		if c.buckets > 0 {
			b := c.indexer.Bucket(v)
			if b < 1 || b > c.buckets {
				return nil, nil, &BucketRangeError{Key: key, Bucket: b, Max: c.buckets}
			}
			tiers[b-1][key] = struct{}{}
		}
	}
	return codes, tiers, nil
}

// validate checks that writing batch would keep every index legal. It does
// not mutate the collection.
func (c *Collection[V]) validate(batch map[string]V) error {
	claims := make(map[string]string, len(batch))
	for _, key := range sortedKeys(batch) {
		v := batch[key]
		if c.buckets > 0 {
			b := c.indexer.Bucket(v)
			if b < 1 || b > c.buckets {
				return &BucketRangeError{Key: key, Bucket: b, Max: c.buckets}
			}
		}
		code, ok := c.indexer.Code(v)
		if !ok {
			continue
		}
		if other, taken := claims[code]; taken {
			return fmt.Errorf("%w: %q claimed by %s and %s", ErrCodeConflict, code, other, key)
		}
		claims[code] = key
	}
	for code, key := range claims {
		owner, taken := c.codes[code]
		if !taken || owner == key {
			continue
		}
		// The current owner may release the code in this same batch.
		if _, rewritten := batch[owner]; rewritten {
			continue
		}
		return fmt.Errorf("%w: %q owned by %s, claimed by %s", ErrCodeConflict, code, owner, key)
	}
	return nil
}

func (c *Collection[V]) put(key string, v V) {
	if old, ok := c.items[key]; ok {
		c.unindex(key, old)
	}
	c.items[key] = v
	if code, ok := c.indexer.Code(v); ok {
		c.codes[code] = key
	}
	if c.buckets > 0 {
		c.tiers[c.indexer.Bucket(v)-1][key] = struct{}{}
	}
}

func (c *Collection[V]) unindex(key string, v V) {
	if code, ok := c.indexer.Code(v); ok && c.codes[code] == key {
		delete(c.codes, code)
	}
	if c.buckets > 0 {
		b := c.indexer.Bucket(v)
		if b >= 1 && b <= c.buckets {
			delete(c.tiers[b-1], key)
		}
	}
}

func sortedKeys[M ~map[string]T, T any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
