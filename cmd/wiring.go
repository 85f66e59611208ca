package cmd

import (
	"fmt"

	"blitz-stats/core/config"
	"blitz-stats/core/database"
	"blitz-stats/core/logger"
	"blitz-stats/core/metrics"
	"blitz-stats/core/reconcile"
	"blitz-stats/core/storage"
	"blitz-stats/core/transform"
	"blitz-stats/feature/conversions"
	"blitz-stats/feature/integrity"
	"blitz-stats/feature/integrity/checks"
	"blitz-stats/feature/maps"
	"blitz-stats/feature/stats"
	"blitz-stats/feature/tankopedia"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// services holds the shared dependencies built from configuration.
type services struct {
	registry *transform.Registry
	metrics  *metrics.Metrics
	storage  storage.Client
	db       *gorm.DB

	tanks *tankopedia.Service
	maps  *maps.Service
	stats *stats.Service

	integrity *integrity.Service
}

// newServices builds services. The database is optional: without it tanks are
// not mirrored to SQL and the stats feature is disabled. With migrate set the
// SQL tables are created or updated first.
func newServices(cfg *config.Config, logg *zap.Logger, migrate bool) (*services, error) {
	reg, err := conversions.Build()
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	rt := &services{registry: reg, metrics: metrics.New(), storage: client}

	var tankSink reconcile.Sink[tankopedia.Tank]
	if db, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
	} else {
		rt.db = db
		logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

		tankRepo := tankopedia.NewRepository(db)
		statsRepo := stats.NewRepository(db)
		if migrate {
			if err := tankRepo.Migrate(); err != nil {
				return nil, fmt.Errorf("failed to migrate tanks: %w", err)
			}
			if err := statsRepo.Migrate(); err != nil {
				return nil, fmt.Errorf("failed to migrate stats: %w", err)
			}
		}

		tankSink = tankRepo
		rt.stats = stats.NewService(stats.Config{
			Repository: statsRepo,
			Registry:   reg,
			Metrics:    rt.metrics,
			Logger:     logg.Named("stats"),
			ClockSkew:  cfg.Ingest.ClockSkew(),
		})
	}

	rt.tanks = tankopedia.NewService(tankopedia.Config{
		Client:   client,
		Bucket:   cfg.Storage.Bucket,
		Object:   cfg.Ingest.TankopediaObject,
		TTL:      cfg.Ingest.CacheTTL(),
		Sink:     tankSink,
		Registry: reg,
		Metrics:  rt.metrics,
		Logger:   logg.Named("tankopedia"),
	})
	rt.maps = maps.NewService(maps.Config{
		Client:   client,
		Bucket:   cfg.Storage.Bucket,
		Object:   cfg.Ingest.MapsObject,
		TTL:      cfg.Ingest.CacheTTL(),
		Registry: reg,
		Metrics:  rt.metrics,
		Logger:   logg.Named("maps"),
	})

	schema := map[string][]string{tankopedia.Tank{}.TableName(): tankopedia.ExpectedColumns}
	for table, cols := range stats.ExpectedColumns {
		schema[table] = cols
	}
	rt.integrity = integrity.NewService(integrity.Config{
		Client:  client,
		Bucket:  cfg.Storage.Bucket,
		Objects: []string{cfg.Ingest.TankopediaObject, cfg.Ingest.MapsObject},
		Catalogs: map[string]checks.Catalog{
			tankopedia.CollectionName: rt.tanks,
			maps.CollectionName:       rt.maps,
		},
		DB:     rt.db,
		Schema: schema,
		Logger: logg.Named("integrity"),
	})
	return rt, nil
}

// setupServices loads configuration and builds services for CLI commands.
func setupServices(migrate bool) (*config.Config, *zap.Logger, *services, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	rt, err := newServices(cfg, l, migrate)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, l, rt, nil
}
