package service

import (
	"context"
	"fmt"
	"time"

	"github.com/traymate/mealmenu/internal/domain"
	"github.com/traymate/mealmenu/internal/logger"
)

// MealLister is the read side of the meal store.
type MealLister interface {
	List(ctx context.Context) ([]domain.Meal, error)
}

// MealService serves the meal menu.
type MealService struct {
	store MealLister
}

// NewMealService creates a new meal service.
func NewMealService(store MealLister) *MealService {
	return &MealService{store: store}
}

// ListMeals fetches every stored meal and projects each row to MealOut.
// Parameters:
//   - ctx: request context; cancelling it aborts the query.
//
// Returns:
//   - []domain.MealOut: one entry per row, never nil.
//   - error: wraps domain.ErrStorageUnavailable if the store fails.
func (s *MealService) ListMeals(ctx context.Context) ([]domain.MealOut, error) {
	start := time.Now()

	meals, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list meals: %w", domain.ErrStorageUnavailable, err)
	}

	out := domain.NewMealOuts(meals)

	logger.With(logger.Fields{logger.FieldCount: len(out)}).
		WithDuration(time.Since(start).Milliseconds()).
		Debug(ctx, "Listed meals")

	return out, nil
}
