package stats

import (
	"context"
	"time"

	"blitz-stats/core/ids"
	"blitz-stats/core/metrics"
	"blitz-stats/core/region"
	"blitz-stats/core/transform"

	"go.uber.org/zap"
)

// IngestResult summarizes one ingest call.
type IngestResult struct {
	Stored  int `json:"stored"`
	Skipped int `json:"skipped"`
	Clamped int `json:"clamped"`
}

// Config wires a Service.
type Config struct {
	Repository *Repository
	Registry   *transform.Registry
	Metrics    *metrics.Metrics
	Logger     *zap.Logger
	// ClockSkew is the allowed future drift of upstream timestamps.
	ClockSkew time.Duration
	// Now overrides the clock in tests.
	Now func() time.Time
}

// Service ingests and serves player statistics.
type Service struct {
	repo     *Repository
	registry *transform.Registry
	metrics  *metrics.Metrics
	logger   *zap.Logger
	skew     time.Duration
	now      func() time.Time
}

// NewService creates a stats service.
func NewService(cfg Config) *Service {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.ClockSkew <= 0 {
		cfg.ClockSkew = ids.DefaultClockSkew
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Service{
		repo:     cfg.Repository,
		registry: cfg.Registry,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger,
		skew:     cfg.ClockSkew,
		now:      cfg.Now,
	}
}

// IngestTankStats converts, seals and upserts stat payloads. Payloads that do
// not convert or fail validation are skipped. Later records with the same id
// replace earlier ones.
func (s *Service) IngestTankStats(ctx context.Context, payloads []any) (IngestResult, error) {
	var res IngestResult
	now := s.now()
	byID := make(map[ids.ID]int)
	var rows []TankStat

	for _, p := range payloads {
		converted, ok := transform.Transform[TankStat](s.registry, p)
		if !ok {
			res.Skipped++
			s.metrics.ObserveTransformMiss("stats.TankStat", 1)
			continue
		}
		stat, clamped, err := NewTankStat(converted, now, s.skew)
		if err != nil {
			res.Skipped++
			s.logger.Warn("Skipping tank stat", zap.Int64("account_id", converted.AccountID), zap.Error(err))
			continue
		}
		if clamped {
			res.Clamped++
			s.logger.Info("Clamped skewed last_battle_time",
				zap.Int64("account_id", stat.AccountID),
				zap.Int64("tank_id", stat.TankID),
				zap.Int64("original", converted.LastBattleTime),
			)
		}
		if i, seen := byID[stat.ID]; seen {
			rows[i] = stat
			continue
		}
		byID[stat.ID] = len(rows)
		rows = append(rows, stat)
	}

	if err := s.repo.UpsertTankStats(ctx, rows); err != nil {
		return res, err
	}
	res.Stored = len(rows)
	s.metrics.ObserveClamp(res.Clamped)
	s.metrics.ObserveStored("tank_stat", res.Stored)
	return res, nil
}

// IngestAchievements converts, seals and upserts achievement payloads as
// max-series snapshots.
func (s *Service) IngestAchievements(ctx context.Context, payloads []any) (IngestResult, error) {
	var res IngestResult
	now := s.now()
	byID := make(map[ids.ID]int)
	var rows []MaxSeries

	for _, p := range payloads {
		converted, ok := transform.Transform[MaxSeries](s.registry, p)
		if !ok {
			res.Skipped++
			s.metrics.ObserveTransformMiss("stats.MaxSeries", 1)
			continue
		}
		series, clamped, err := NewMaxSeries(converted, now, s.skew)
		if err != nil {
			res.Skipped++
			s.logger.Warn("Skipping max series", zap.Int64("account_id", converted.AccountID), zap.Error(err))
			continue
		}
		if clamped {
			res.Clamped++
			s.logger.Info("Clamped skewed achievements timestamp",
				zap.Int64("account_id", series.AccountID),
				zap.Int64("original", converted.Added),
			)
		}
		if i, seen := byID[series.ID]; seen {
			rows[i] = series
			continue
		}
		byID[series.ID] = len(rows)
		rows = append(rows, series)
	}

	if err := s.repo.UpsertMaxSeries(ctx, rows); err != nil {
		return res, err
	}
	res.Stored = len(rows)
	s.metrics.ObserveClamp(res.Clamped)
	s.metrics.ObserveStored("max_series", res.Stored)
	return res, nil
}

// TankStats lists an account's stats.
func (s *Service) TankStats(ctx context.Context, accountID int64) ([]TankStat, error) {
	return s.repo.ListByAccount(ctx, accountID)
}

// TankStat returns one stat record by its composite id.
func (s *Service) TankStat(ctx context.Context, id ids.ID) (TankStat, error) {
	return s.repo.GetTankStat(ctx, id)
}

// MaxSeries lists an account's max-series snapshots.
func (s *Service) MaxSeries(ctx context.Context, accountID int64) ([]MaxSeries, error) {
	return s.repo.ListMaxSeries(ctx, accountID)
}

// RegionInfo describes where an account lives.
type RegionInfo struct {
	AccountID int64         `json:"account_id"`
	Region    region.Region `json:"region"`
	Nominal   region.Region `json:"nominal"`
}

// Region resolves the statistics-bearing and nominal regions of an account.
func (s *Service) Region(accountID int64) RegionInfo {
	return RegionInfo{
		AccountID: accountID,
		Region:    region.FromPlayerID(accountID),
		Nominal:   region.FromID(accountID),
	}
}
