package repository

import (
	"context"
	"fmt"

	"github.com/traymate/mealmenu/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const upsertBatchSize = 100

// MealRepository handles meal data operations.
type MealRepository struct {
	db *gorm.DB
}

// NewMealRepository creates a new MealRepository.
func NewMealRepository(db *gorm.DB) *MealRepository {
	return &MealRepository{db: db}
}

// List returns every meal row ordered by ID ascending.
// Parameters:
//   - ctx: request context; the query runs on a session bound to it.
//
// Returns:
//   - []domain.Meal: all rows, empty when the table is empty.
//   - error: non-nil if the query fails.
func (r *MealRepository) List(ctx context.Context) ([]domain.Meal, error) {
	var meals []domain.Meal
	if err := r.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "ID"}}).
		Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

// Count returns the number of meal rows.
func (r *MealRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Meal{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Upsert inserts meals or overwrites existing rows with the same ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - meals: rows to write.
//
// Returns:
//   - error: non-nil if any batch fails; earlier batches are rolled back.
func (r *MealRepository) Upsert(ctx context.Context, meals []domain.Meal) error {
	if len(meals) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ID"}},
			UpdateAll: true,
		}).CreateInBatches(meals, upsertBatchSize).Error
	})
}

// Replace deletes every meal row and inserts meals in one transaction.
// Returns the number of rows deleted.
func (r *MealRepository) Replace(ctx context.Context, meals []domain.Meal) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.Meal{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete meals: %w", result.Error)
		}
		deleted = result.RowsAffected

		if len(meals) == 0 {
			return nil
		}
		return tx.CreateInBatches(meals, upsertBatchSize).Error
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// Ping checks that the database behind the repository is reachable.
func (r *MealRepository) Ping(ctx context.Context) error {
	return Ping(ctx, r.db)
}
