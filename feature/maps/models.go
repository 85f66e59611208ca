package maps

import (
	"errors"
	"strconv"

	"blitz-stats/core/reconcile"
)

// ErrNotFound is returned when a map is not in the catalog.
var ErrNotFound = errors.New("map not found")

// Map is a battle map.
type Map struct {
	ID   int64  `json:"id"`
	Key  string `json:"key,omitempty"`
	Name string `json:"name"`
}

// Indexer indexes maps by id and key. Maps have no bucket attribute.
type Indexer struct{}

func (Indexer) Key(m Map) string { return strconv.FormatInt(m.ID, 10) }

func (Indexer) Code(m Map) (string, bool) { return m.Key, m.Key != "" }

func (Indexer) Bucket(Map) int { return 0 }

func (Indexer) Equal(a, b Map) bool { return a == b }

// NewCollection creates an empty map collection without a bucket cache.
func NewCollection() *reconcile.Collection[Map] {
	return reconcile.NewCollection[Map](Indexer{}, 0)
}
