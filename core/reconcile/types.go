package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrBucketRange means a bucket attribute is outside the legal range.
	ErrBucketRange = errors.New("bucket out of range")
	// ErrCodeConflict means two different keys claim the same code.
	ErrCodeConflict = errors.New("code already indexed for another key")
	// ErrEmptyKey means an entity produced an empty primary key.
	ErrEmptyKey = errors.New("empty key")
	// ErrInconsistent means the derived indexes disagree with the primary map.
	ErrInconsistent = errors.New("collection indexes inconsistent")
)

// BucketRangeError reports a bucket outside 1..Max.
type BucketRangeError struct {
	Key    string
	Bucket int
	Max    int
}

func (e *BucketRangeError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("bucket %d outside 1..%d", e.Bucket, e.Max)
	}
	return fmt.Sprintf("key %s: bucket %d outside 1..%d", e.Key, e.Bucket, e.Max)
}

func (e *BucketRangeError) Unwrap() error {
	return ErrBucketRange
}

// Indexer describes how a collection keys, indexes, and compares entities
// of type V.
type Indexer[V any] interface {
	// Key returns the primary key of the entity.
	Key(v V) string

	// Code returns the secondary lookup code, if the entity has one.
	Code(v V) (string, bool)

	// Bucket returns the bounded attribute (e.g. tier) used by the bucket cache.
	// It is ignored by collections created without buckets.
	Bucket(v V) int

	// Equal reports full structural equality, not just key equality.
	Equal(a, b V) bool
}

// Diff lists the keys changed by a Reconcile call.
type Diff struct {
	// Added contains keys present in the new snapshot only.
	Added []string `json:"added"`

	// Updated contains keys present in both snapshots whose value changed.
	Updated []string `json:"updated"`
}

// Empty reports whether nothing changed.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Updated) == 0
}

// Len returns the number of touched keys.
func (d Diff) Len() int {
	return len(d.Added) + len(d.Updated)
}

// Touched returns added keys followed by updated keys.
func (d Diff) Touched() []string {
	out := make([]string, 0, d.Len())
	out = append(out, d.Added...)
	return append(out, d.Updated...)
}
