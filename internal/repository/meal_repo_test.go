package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/traymate/mealmenu/internal/config"
	"github.com/traymate/mealmenu/internal/domain"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := InitDB(&config.DatabaseConfig{
		Driver:      "sqlite",
		Path:        filepath.Join(t.TempDir(), "meals.db"),
		AutoMigrate: true,
		LogLevel:    "silent",
	})
	if err != nil {
		t.Fatalf("failed to init db: %v", err)
	}
	t.Cleanup(func() { _ = CloseDB(db) })
	return db
}

func meal(id int, name string) domain.Meal {
	return domain.Meal{
		ID:           id,
		Name:         name,
		Ingredients:  "rice,beans",
		NutriInfo:    "400kcal",
		NutriAmounts: "1 bowl",
		Description:  "house special",
		ImageURL:     "http://x/" + name + ".png",
		MealType:     "D",
		MealPeriod:   "Dinner",
		TimeRange:    "5-8",
		AllergenInfo: "none",
		Tags:         "vegan",
		IsAvailable:  true,
		IsSeasonal:   id%2 == 0,
	}
}

func TestMealRepository_ListEmpty(t *testing.T) {
	repo := NewMealRepository(newTestDB(t))

	meals, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(meals) != 0 {
		t.Errorf("expected no meals, got %d", len(meals))
	}
}

func TestMealRepository_UpsertAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewMealRepository(newTestDB(t))

	if err := repo.Upsert(ctx, []domain.Meal{meal(3, "stew"), meal(1, "soup"), meal(2, "salad")}); err != nil {
		t.Fatalf("failed to upsert: %v", err)
	}

	meals, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(meals) != 3 {
		t.Fatalf("expected 3 meals, got %d", len(meals))
	}
	for i, want := range []int{1, 2, 3} {
		if meals[i].ID != want {
			t.Errorf("expected meals[%d].ID=%d, got %d", i, want, meals[i].ID)
		}
	}
	if meals[1] != meal(2, "salad") {
		t.Errorf("row did not round-trip: %+v", meals[1])
	}

	// Same ID overwrites instead of duplicating
	updated := meal(2, "salad")
	updated.IsAvailable = false
	updated.Description = "out of season"
	if err := repo.Upsert(ctx, []domain.Meal{updated}); err != nil {
		t.Fatalf("failed to upsert update: %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 rows after update, got %d", count)
	}

	meals, _ = repo.List(ctx)
	if meals[1] != updated {
		t.Errorf("expected updated row, got %+v", meals[1])
	}
}

func TestMealRepository_Replace(t *testing.T) {
	ctx := context.Background()
	repo := NewMealRepository(newTestDB(t))

	_ = repo.Upsert(ctx, []domain.Meal{meal(1, "a"), meal(2, "b")})

	deleted, err := repo.Replace(ctx, []domain.Meal{meal(5, "c")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 deleted rows, got %d", deleted)
	}

	meals, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(meals) != 1 || meals[0].ID != 5 {
		t.Errorf("expected only meal 5 to remain, got %+v", meals)
	}
}

func TestMealRepository_ClosedDatabase(t *testing.T) {
	db := newTestDB(t)
	repo := NewMealRepository(db)

	if err := CloseDB(db); err != nil {
		t.Fatalf("failed to close: %v", err)
	}

	if _, err := repo.List(context.Background()); err == nil {
		t.Error("expected error listing from a closed database")
	}
}

func TestPingAndSelectOne(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	if err := Ping(ctx, db); err != nil {
		t.Errorf("unexpected ping error: %v", err)
	}

	one, err := SelectOne(ctx, db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if one != 1 {
		t.Errorf("expected 1, got %d", one)
	}

	_ = CloseDB(db)
	if err := Ping(ctx, db); !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Errorf("expected ErrStorageUnavailable after close, got %v", err)
	}
}

func TestInitDB_UnknownDriver(t *testing.T) {
	if _, err := InitDB(&config.DatabaseConfig{Driver: "oracle"}); err == nil {
		t.Error("expected error for unsupported driver")
	}
}

func TestInitDB_SQLiteJournalMode(t *testing.T) {
	db := newTestDB(t)

	var mode string
	if err := db.Raw("PRAGMA journal_mode").Scan(&mode).Error; err != nil {
		t.Fatalf("failed to read journal mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("expected wal journal mode, got %q", mode)
	}
}
