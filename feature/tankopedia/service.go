package tankopedia

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"blitz-stats/core/catalog"
	"blitz-stats/core/metrics"
	"blitz-stats/core/reconcile"
	"blitz-stats/core/storage"
	"blitz-stats/core/transform"

	"go.uber.org/zap"
)

// CollectionName labels the tank catalog in logs and metrics.
const CollectionName = "tankopedia"

// Config wires a Service.
type Config struct {
	Client   storage.Client
	Bucket   string
	Object   string
	TTL      time.Duration
	Sink     reconcile.Sink[Tank]
	Registry *transform.Registry
	Metrics  *metrics.Metrics
	Logger   *zap.Logger
}

// Service serves the tank catalog.
type Service struct {
	store    *catalog.Store[Tank]
	sink     reconcile.Sink[Tank]
	registry *transform.Registry
	logger   *zap.Logger
}

// NewService creates a tankopedia service.
func NewService(cfg Config) *Service {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	store := catalog.New(catalog.Options[Tank]{
		Name:    CollectionName,
		Indexer: Indexer{},
		Buckets: MaxTier,
		Client:  cfg.Client,
		Bucket:  cfg.Bucket,
		Object:  cfg.Object,
		TTL:     cfg.TTL,
		Sink:    cfg.Sink,
		Metrics: cfg.Metrics,
		Logger:  cfg.Logger,
	})
	return &Service{store: store, sink: cfg.Sink, registry: cfg.Registry, logger: cfg.Logger}
}

// Load returns the current catalog.
func (s *Service) Load(ctx context.Context) (*reconcile.Collection[Tank], error) {
	return s.store.Load(ctx)
}

// Refresh reconciles the catalog against fresh.
func (s *Service) Refresh(ctx context.Context, fresh *reconcile.Collection[Tank]) (reconcile.Diff, error) {
	return s.store.Refresh(ctx, fresh)
}

// Plan returns the diff a refresh with fresh would apply.
func (s *Service) Plan(ctx context.Context, fresh *reconcile.Collection[Tank]) (reconcile.Diff, error) {
	return s.store.Plan(ctx, fresh)
}

// Verify checks the catalog indexes and returns its size. When the sink can
// list its rows it must hold exactly the catalog's tanks.
func (s *Service) Verify(ctx context.Context) (int, error) {
	n, err := s.store.Verify(ctx)
	if err != nil {
		return n, err
	}
	mirror, ok := s.sink.(lister)
	if !ok {
		return n, nil
	}
	coll, err := s.store.Load(ctx)
	if err != nil {
		return n, err
	}
	rows, err := mirror.List(ctx)
	if err != nil {
		return n, err
	}
	if err := compareMirror(coll, rows); err != nil {
		return n, fmt.Errorf("%s: %w", s.sink.Name(), err)
	}
	return n, nil
}

type lister interface {
	List(ctx context.Context) ([]Tank, error)
}

func compareMirror(coll *reconcile.Collection[Tank], rows []Tank) error {
	missing, stale, differ := 0, 0, 0
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		key := row.Key()
		seen[key] = true
		t, ok := coll.Get(key)
		switch {
		case !ok:
			stale++
		case !t.Equal(row):
			differ++
		}
	}
	for _, key := range coll.Keys() {
		if !seen[key] {
			missing++
		}
	}
	if missing+stale+differ > 0 {
		return fmt.Errorf("%w: %d missing, %d stale, %d differ", ErrMirrorDrift, missing, stale, differ)
	}
	return nil
}

// RefreshFrom fetches a fresh catalog from src and reconciles it.
func (s *Service) RefreshFrom(ctx context.Context, src Source) (reconcile.Diff, error) {
	fresh, err := src.Fetch(ctx)
	if err != nil {
		return reconcile.Diff{}, fmt.Errorf("fetch tankopedia: %w", err)
	}
	return s.Refresh(ctx, fresh)
}

// RefreshResponse parses a vehicles API response and reconciles it.
// It returns the diff and the number of skipped records.
func (s *Service) RefreshResponse(ctx context.Context, body []byte) (reconcile.Diff, int, error) {
	fresh, skipped, err := ParseResponse(bytes.NewReader(body), s.registry)
	if err != nil {
		return reconcile.Diff{}, 0, err
	}
	if skipped > 0 {
		s.logger.Info("Skipped unconvertible vehicles", zap.Int("skipped", skipped))
	}
	diff, err := s.Refresh(ctx, fresh)
	return diff, skipped, err
}

// Get returns the tank with the given id.
func (s *Service) Get(ctx context.Context, id int64) (Tank, error) {
	coll, err := s.store.Load(ctx)
	if err != nil {
		return Tank{}, err
	}
	t, ok := coll.Get(strconv.FormatInt(id, 10))
	if !ok {
		return Tank{}, fmt.Errorf("tank %d: %w", id, ErrNotFound)
	}
	return t, nil
}

// ByCode returns the tank with the given code.
func (s *Service) ByCode(ctx context.Context, code string) (Tank, error) {
	coll, err := s.store.Load(ctx)
	if err != nil {
		return Tank{}, err
	}
	t, ok := coll.ByCode(code)
	if !ok {
		return Tank{}, fmt.Errorf("tank code %q: %w", code, ErrNotFound)
	}
	return t, nil
}

// ByTier returns the tanks of a tier ordered by key.
func (s *Service) ByTier(ctx context.Context, tier int) ([]Tank, error) {
	if err := ValidateTier(tier); err != nil {
		return nil, err
	}
	coll, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	keys, err := coll.Bucket(tier)
	if err != nil {
		return nil, err
	}
	tanks := make([]Tank, 0, len(keys))
	for _, key := range keys {
		if t, ok := coll.Get(key); ok {
			tanks = append(tanks, t)
		}
	}
	return tanks, nil
}

// Remove drops a tank from the catalog.
func (s *Service) Remove(ctx context.Context, id int64) (Tank, error) {
	t, ok, err := s.store.Remove(ctx, strconv.FormatInt(id, 10))
	if err != nil {
		return Tank{}, err
	}
	if !ok {
		return Tank{}, fmt.Errorf("tank %d: %w", id, ErrNotFound)
	}
	return t, nil
}
