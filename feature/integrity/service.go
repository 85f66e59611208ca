package integrity

import (
	"context"

	"blitz-stats/core/storage"
	"blitz-stats/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Config wires the resources the checks inspect. DB and Catalogs are optional.
type Config struct {
	Client   storage.Client
	Bucket   string
	Objects  []string
	Catalogs map[string]checks.Catalog
	DB       *gorm.DB
	Schema   map[string][]string
	Logger   *zap.Logger
}

// Service handles integrity checks.
type Service struct {
	cfg    Config
	logger *zap.Logger
}

// NewService creates a new integrity service.
func NewService(cfg Config) *Service {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Service{cfg: cfg, logger: cfg.Logger}
}

// CheckStructure returns the snapshot objects missing from the bucket.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.cfg.Client, s.cfg.Bucket, s.cfg.Objects)
}

// FixStructure creates the bucket.
func (s *Service) FixStructure(ctx context.Context) error {
	return checks.FixStructure(ctx, s.cfg.Client, s.cfg.Bucket, s.logger)
}

// CheckCatalogs verifies the indexes of every reference catalog.
func (s *Service) CheckCatalogs(ctx context.Context) map[string]checks.CatalogReport {
	return checks.CheckCatalogs(ctx, s.cfg.Catalogs)
}

// CheckSchema compares the stats database with the expected columns.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.cfg.DB, s.cfg.Schema)
}
