package tankopedia

import (
	"context"
	"fmt"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ExpectedColumns lists the columns the tanks table must have.
var ExpectedColumns = []string{"tank_id", "name", "code", "nation", "type", "tier", "is_premium"}

// Repository persists tanks. It is the reconcile sink of the catalog.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository on db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the tanks table.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&Tank{})
}

// Name identifies the sink.
func (r *Repository) Name() string {
	return "tanks"
}

// Upsert inserts or replaces one tank.
func (r *Repository) Upsert(ctx context.Context, t Tank) error {
	return r.UpsertBatch(ctx, []Tank{t})
}

// UpsertBatch inserts or replaces tanks in one statement.
func (r *Repository) UpsertBatch(ctx context.Context, tanks []Tank) error {
	if len(tanks) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&tanks).Error
	if err != nil {
		return fmt.Errorf("failed to upsert tanks: %w", err)
	}
	return nil
}

// Delete removes the tank stored under key.
func (r *Repository) Delete(ctx context.Context, key string) error {
	id, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid tank key %q: %w", key, err)
	}
	if err := r.db.WithContext(ctx).Delete(&Tank{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete tank %d: %w", id, err)
	}
	return nil
}

// List returns all stored tanks ordered by id.
func (r *Repository) List(ctx context.Context) ([]Tank, error) {
	var tanks []Tank
	if err := r.db.WithContext(ctx).Order("tank_id").Find(&tanks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tanks: %w", err)
	}
	return tanks, nil
}
