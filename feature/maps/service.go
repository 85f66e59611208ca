package maps

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

// CollectionName labels the map catalog in logs and metrics.
const CollectionName = "maps"

// Config wires a Service.
type Config struct {
	Client   storage.Client
	Bucket   string
	Object   string
	TTL      time.Duration
	Registry *transform.Registry
	Metrics  *metrics.Metrics
	Logger   *zap.Logger
}

// Service serves the map catalog.
type Service struct {
	store    *catalog.Store[Map]
	registry *transform.Registry
	logger   *zap.Logger
}

// NewService creates a maps service.
func NewService(cfg Config) *Service {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	store := catalog.New(catalog.Options[Map]{
		Name:    CollectionName,
		Indexer: Indexer{},
		Client:  cfg.Client,
		Bucket:  cfg.Bucket,
		Object:  cfg.Object,
		TTL:     cfg.TTL,
		Metrics: cfg.Metrics,
		Logger:  cfg.Logger,
	})
	return &Service{store: store, registry: cfg.Registry, logger: cfg.Logger}
}

// Load returns the current catalog.
func (s *Service) Load(ctx context.Context) (*reconcile.Collection[Map], error) {
	return s.store.Load(ctx)
}

// Refresh reconciles the catalog against fresh.
func (s *Service) Refresh(ctx context.Context, fresh *reconcile.Collection[Map]) (reconcile.Diff, error) {
	return s.store.Refresh(ctx, fresh)
}

// Plan returns the diff a refresh with fresh would apply.
func (s *Service) Plan(ctx context.Context, fresh *reconcile.Collection[Map]) (reconcile.Diff, error) {
	return s.store.Plan(ctx, fresh)
}

// Verify checks the catalog indexes and returns its size.
func (s *Service) Verify(ctx context.Context) (int, error) {
	return s.store.Verify(ctx)
}

// RefreshFrom fetches a fresh catalog from src and reconciles it.
func (s *Service) RefreshFrom(ctx context.Context, src Source) (reconcile.Diff, error) {
	fresh, err := src.Fetch(ctx)
	if err != nil {
		return reconcile.Diff{}, fmt.Errorf("fetch maps: %w", err)
	}
	return s.Refresh(ctx, fresh)
}

// RefreshResponse parses a maps API response and reconciles it.
func (s *Service) RefreshResponse(ctx context.Context, body []byte) (reconcile.Diff, int, error) {
	fresh, skipped, err := ParseResponse(bytes.NewReader(body), s.registry)
	if err != nil {
		return reconcile.Diff{}, 0, err
	}
	diff, err := s.Refresh(ctx, fresh)
	return diff, skipped, err
}

// Get returns the map with the given id.
func (s *Service) Get(ctx context.Context, id int64) (Map, error) {
	coll, err := s.store.Load(ctx)
	if err != nil {
		return Map{}, err
	}
	m, ok := coll.Get(strconv.FormatInt(id, 10))
	if !ok {
		return Map{}, fmt.Errorf("map %d: %w", id, ErrNotFound)
	}
	return m, nil
}

// ByCode returns the map with the given key.
func (s *Service) ByCode(ctx context.Context, key string) (Map, error) {
	coll, err := s.store.Load(ctx)
	if err != nil {
		return Map{}, err
	}
	m, ok := coll.ByCode(key)
	if !ok {
		return Map{}, fmt.Errorf("map key %q: %w", key, ErrNotFound)
	}
	return m, nil
}
