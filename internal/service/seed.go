package service

import (
	"context"
	"fmt"
	"time"

	"github.com/traymate/mealmenu/internal/domain"
	"github.com/traymate/mealmenu/internal/logger"
	"github.com/traymate/mealmenu/internal/seed"
)

// MealWriter is the write side of the meal store, used only for seeding.
type MealWriter interface {
	Upsert(ctx context.Context, meals []domain.Meal) error
	Replace(ctx context.Context, meals []domain.Meal) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// SeedResult summarizes a seed run.
type SeedResult struct {
	Source   string
	Loaded   int
	Deleted  int64
	Total    int64
	Duration time.Duration
}

// SeedService loads meal rows from seed documents.
type SeedService struct {
	store MealWriter
	log   *logger.Logger
}

// NewSeedService creates a new seed service.
func NewSeedService(store MealWriter, log *logger.Logger) *SeedService {
	if log == nil {
		log = logger.GetDefault()
	}
	return &SeedService{store: store, log: log}
}

// Run reads src and writes its meals. With replace set, existing rows not
// in the document are removed in the same transaction; otherwise rows are
// upserted by ID.
func (s *SeedService) Run(ctx context.Context, src seed.Source, replace bool) (*SeedResult, error) {
	start := time.Now()
	ctx = s.log.WithField(logger.FieldSource, src.Location()).WithContext(ctx)

	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	docs, err := seed.Decode(rc)
	if err != nil {
		return nil, err
	}

	meals := make([]domain.Meal, 0, len(docs))
	for _, d := range docs {
		meals = append(meals, d.Entity())
	}

	result := &SeedResult{Source: src.Location(), Loaded: len(meals)}

	if replace {
		result.Deleted, err = s.store.Replace(ctx, meals)
	} else {
		err = s.store.Upsert(ctx, meals)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to write meals: %w", domain.ErrStorageUnavailable, err)
	}

	result.Total, err = s.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to count meals: %w", domain.ErrStorageUnavailable, err)
	}
	result.Duration = time.Since(start)

	logger.With(logger.Fields{
		"loaded":  result.Loaded,
		"deleted": result.Deleted,
	}).WithCount(int(result.Total)).WithDuration(result.Duration.Milliseconds()).
		Info(ctx, "Seed completed")

	return result, nil
}
