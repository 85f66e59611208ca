package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"blitz-stats/core/metrics"
	"blitz-stats/core/reconcile"
	"blitz-stats/core/storage"

	"go.uber.org/zap"
)

// Options configures a Store.
type Options[V any] struct {
	// Name labels the collection in logs, metrics and the cache.
	Name string
	// Indexer keys and compares entities.
	Indexer reconcile.Indexer[V]
	// Buckets is the bucket cache size; zero disables it.
	Buckets int

	// Client persists the snapshot. Nil keeps the catalog in memory only.
	Client storage.Client
	Bucket string
	Object string
	// TTL bounds how long a loaded snapshot is served before reloading.
	TTL time.Duration

	// Sink receives entities touched by a refresh. Optional. Sinks that
	// implement reconcile.Remover also receive removals.
	Sink reconcile.Sink[V]

	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// Store is a reference catalog backed by a JSON snapshot in object storage.
//
// Published collections are never mutated. Writers clone, change the clone,
// persist it and then publish it, so readers need no locking. Writers are
// serialized by mu.
type Store[V any] struct {
	opts  Options[V]
	cache *reconcile.Cache[V]
	mu    sync.Mutex
}

// New creates a store.
func New[V any](opts Options[V]) *Store[V] {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Client == nil {
		// Nothing to reload from.
		opts.TTL = -1
	}
	return &Store[V]{opts: opts, cache: reconcile.NewCache[V]()}
}

// Name returns the collection name.
func (s *Store[V]) Name() string {
	return s.opts.Name
}

// Load returns the current collection. The result must not be modified.
func (s *Store[V]) Load(ctx context.Context) (*reconcile.Collection[V], error) {
	return s.cache.GetOrLoad(ctx, s.opts.Name, s.opts.TTL, s.loadSnapshot)
}

// Plan returns the diff a Refresh with fresh would apply, without applying it.
func (s *Store[V]) Plan(ctx context.Context, fresh *reconcile.Collection[V]) (reconcile.Diff, error) {
	current, err := s.Load(ctx)
	if err != nil {
		return reconcile.Diff{}, err
	}
	diff, err := reconcile.Reconcile(current.Clone(), fresh)
	if err != nil {
		return reconcile.Diff{}, fmt.Errorf("reconcile %s: %w", s.opts.Name, err)
	}
	return diff, nil
}

// Refresh reconciles the current collection against fresh, pushes touched
// entities to the sink, persists the snapshot and publishes it. On error
// nothing is published.
func (s *Store[V]) Refresh(ctx context.Context, fresh *reconcile.Collection[V]) (reconcile.Diff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.Load(ctx)
	if err != nil {
		return reconcile.Diff{}, err
	}

	next := current.Clone()
	diff, err := reconcile.Reconcile(next, fresh)
	if err != nil {
		s.opts.Metrics.ObserveReconcileError(s.opts.Name)
		return reconcile.Diff{}, fmt.Errorf("reconcile %s: %w", s.opts.Name, err)
	}
	if diff.Empty() {
		s.opts.Logger.Debug("Collection unchanged", zap.String("collection", s.opts.Name))
		return diff, nil
	}

	if _, err := reconcile.Apply(ctx, s.opts.Sink, next, diff); err != nil {
		s.opts.Metrics.ObserveReconcileError(s.opts.Name)
		return reconcile.Diff{}, err
	}
	if err := s.save(ctx, next); err != nil {
		return reconcile.Diff{}, err
	}
	s.cache.Put(s.opts.Name, next, s.opts.TTL)

	s.opts.Metrics.ObserveReconcile(s.opts.Name, len(diff.Added), len(diff.Updated))
	s.opts.Logger.Info("Collection reconciled",
		zap.String("collection", s.opts.Name),
		zap.Int("added", len(diff.Added)),
		zap.Int("updated", len(diff.Updated)),
		zap.Int("size", next.Len()),
	)
	return diff, nil
}

// Remove drops key from the catalog, deletes it from the sink and persists
// the result. On error nothing is published.
func (s *Store[V]) Remove(ctx context.Context, key string) (V, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero V
	current, err := s.Load(ctx)
	if err != nil {
		return zero, false, err
	}
	if _, ok := current.Get(key); !ok {
		return zero, false, nil
	}

	next := current.Clone()
	removed, _ := next.Pop(key)
	if remover, ok := s.opts.Sink.(reconcile.Remover[V]); ok {
		if err := remover.Delete(ctx, key); err != nil {
			return zero, false, fmt.Errorf("sink %s: delete %s failed: %w", remover.Name(), key, err)
		}
	}
	if err := s.save(ctx, next); err != nil {
		return zero, false, err
	}
	s.cache.Put(s.opts.Name, next, s.opts.TTL)

	s.opts.Logger.Info("Entry removed", zap.String("collection", s.opts.Name), zap.String("key", key))
	return removed, true, nil
}

// Verify loads the current collection and checks its secondary indexes.
// It returns the number of entries.
func (s *Store[V]) Verify(ctx context.Context) (int, error) {
	current, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	if err := current.Verify(); err != nil {
		return current.Len(), fmt.Errorf("%s: %w", s.opts.Name, err)
	}
	return current.Len(), nil
}

// Invalidate forces the next Load to read the stored snapshot.
func (s *Store[V]) Invalidate() {
	s.cache.Invalidate(s.opts.Name)
}

func (s *Store[V]) loadSnapshot(ctx context.Context) (*reconcile.Collection[V], error) {
	if s.opts.Client == nil {
		return reconcile.NewCollection(s.opts.Indexer, s.opts.Buckets), nil
	}

	var values []V
	err := storage.LoadJSON(ctx, s.opts.Client, s.opts.Bucket, s.opts.Object, &values)
	if errors.Is(err, storage.ErrNotFound) {
		s.opts.Logger.Info("No stored snapshot, starting empty",
			zap.String("collection", s.opts.Name),
			zap.String("object", s.opts.Object),
		)
		values = nil
	} else if err != nil {
		return nil, fmt.Errorf("load %s snapshot: %w", s.opts.Name, err)
	}

	coll, err := reconcile.FromValues(s.opts.Indexer, s.opts.Buckets, values)
	if err != nil {
		return nil, fmt.Errorf("index %s snapshot: %w", s.opts.Name, err)
	}
	return coll, nil
}

func (s *Store[V]) save(ctx context.Context, coll *reconcile.Collection[V]) error {
	if s.opts.Client == nil {
		return nil
	}
	if err := storage.EnsureBucket(ctx, s.opts.Client, s.opts.Bucket); err != nil {
		return err
	}
	return storage.SaveJSON(ctx, s.opts.Client, s.opts.Bucket, s.opts.Object, coll.Values())
}
