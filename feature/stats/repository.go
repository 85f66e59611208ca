package stats

import (
	"context"
	"errors"
	"fmt"

	"blitz-stats/core/ids"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// ExpectedColumns lists the columns each stats table must have.
var ExpectedColumns = map[string][]string{
	"tank_stats": {"id", "account_id", "tank_id", "last_battle_time", "region", "battles", "wins"},
	"max_series": {"id", "account_id", "added", "region", "joint_victory"},
}

// Repository persists stat records keyed by their composite id.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository on db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the stats tables.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&TankStat{}, &MaxSeries{})
}

// UpsertTankStats writes stats; rows with an existing id are replaced.
func (r *Repository) UpsertTankStats(ctx context.Context, stats []TankStat) error {
	if len(stats) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&stats).Error
	if err != nil {
		return fmt.Errorf("failed to upsert tank stats: %w", err)
	}
	return nil
}

// UpsertMaxSeries writes max-series snapshots; existing ids are replaced.
func (r *Repository) UpsertMaxSeries(ctx context.Context, series []MaxSeries) error {
	if len(series) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&series).Error
	if err != nil {
		return fmt.Errorf("failed to upsert max series: %w", err)
	}
	return nil
}

// GetTankStat returns the stat record with the given id.
func (r *Repository) GetTankStat(ctx context.Context, id ids.ID) (TankStat, error) {
	var s TankStat
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return TankStat{}, fmt.Errorf("tank stat %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return TankStat{}, fmt.Errorf("failed to get tank stat %s: %w", id, err)
	}
	return s, nil
}

// ListByAccount returns an account's stats, newest battle first.
func (r *Repository) ListByAccount(ctx context.Context, accountID int64) ([]TankStat, error) {
	var stats []TankStat
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("last_battle_time DESC").Order("tank_id").
		Find(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tank stats: %w", err)
	}
	return stats, nil
}

// ListMaxSeries returns an account's max-series snapshots, newest first.
func (r *Repository) ListMaxSeries(ctx context.Context, accountID int64) ([]MaxSeries, error) {
	var series []MaxSeries
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("added DESC").
		Find(&series).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list max series: %w", err)
	}
	return series, nil
}
