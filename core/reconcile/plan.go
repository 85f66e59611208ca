package reconcile

import (
	"context"
	"fmt"
)

// Sink persists entities touched by a reconcile.
type Sink[V any] interface {
	// Name identifies the sink in errors and logs.
	Name() string

	// Upsert writes one entity.
	Upsert(ctx context.Context, v V) error
}

// BatchSink is implemented by sinks that can write many entities at once.
type BatchSink[V any] interface {
	Sink[V]

	// UpsertBatch writes all entities in one operation.
	UpsertBatch(ctx context.Context, values []V) error
}

// Remover is implemented by sinks that can delete entities by key.
type Remover[V any] interface {
	Sink[V]

	// Delete removes the entity stored under key. Deleting a missing key is
	// not an error.
	Delete(ctx context.Context, key string) error
}

// Apply pushes every key in diff from coll to sink, in Added then Updated
// order. It uses UpsertBatch when the sink supports it and falls back to
// one Upsert per key otherwise. It returns the number of entities written.
func Apply[V any](ctx context.Context, sink Sink[V], coll *Collection[V], diff Diff) (executed int, err error) {
	if sink == nil || diff.Empty() {
		return 0, nil
	}
	if coll == nil {
		return 0, ErrNilCollection
	}

	keys := diff.Touched()
	values := make([]V, 0, len(keys))
	for _, key := range keys {
		v, ok := coll.Get(key)
		if !ok {
			return 0, fmt.Errorf("sink %s: key %s not in collection", sink.Name(), key)
		}
		values = append(values, v)
	}

	if batch, ok := sink.(BatchSink[V]); ok {
		if err := batch.UpsertBatch(ctx, values); err != nil {
			return 0, fmt.Errorf("sink %s: batch upsert failed: %w", sink.Name(), err)
		}
		return len(values), nil
	}

	for i, v := range values {
		if err := ctx.Err(); err != nil {
			return executed, err
		}
		if err := sink.Upsert(ctx, v); err != nil {
			return executed, fmt.Errorf("sink %s: upsert %s failed: %w", sink.Name(), keys[i], err)
		}
		executed++
	}
	return executed, nil
}
