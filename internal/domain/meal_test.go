package domain

import (
	"encoding/json"
	"reflect"
	"sort"
	"testing"
)

func grilledChicken() Meal {
	return Meal{
		ID:           1,
		Name:         "Grilled Chicken",
		Ingredients:  "chicken,salt",
		NutriInfo:    "250kcal",
		NutriAmounts: "1 serving",
		Description:  "...",
		ImageURL:     "http://x/img.png",
		MealType:     "L",
		MealPeriod:   "Lunch",
		TimeRange:    "11-2",
		AllergenInfo: "none",
		Tags:         "protein",
		IsAvailable:  true,
		IsSeasonal:   false,
	}
}

// Meal and MealOut must stay field-for-field compatible; drift between the
// two shapes is a schema mismatch.
func TestMealAndMealOutShapesMatch(t *testing.T) {
	entity := reflect.TypeOf(Meal{})
	out := reflect.TypeOf(MealOut{})

	if entity.NumField() != out.NumField() {
		t.Fatalf("%v: Meal has %d fields, MealOut has %d", ErrSchemaMismatch, entity.NumField(), out.NumField())
	}

	for i := 0; i < entity.NumField(); i++ {
		ef := entity.Field(i)
		of, ok := out.FieldByName(ef.Name)
		if !ok {
			t.Errorf("%v: MealOut is missing %s", ErrSchemaMismatch, ef.Name)
			continue
		}
		if ef.Type != of.Type {
			t.Errorf("%v: %s is %s in Meal but %s in MealOut", ErrSchemaMismatch, ef.Name, ef.Type, of.Type)
		}
	}
}

func TestNewMealOut_CopiesEveryField(t *testing.T) {
	m := grilledChicken()
	got := NewMealOut(m)

	want := MealOut{
		ID:           1,
		Name:         "Grilled Chicken",
		Ingredients:  "chicken,salt",
		NutriInfo:    "250kcal",
		NutriAmounts: "1 serving",
		Description:  "...",
		ImageURL:     "http://x/img.png",
		MealType:     "L",
		MealPeriod:   "Lunch",
		TimeRange:    "11-2",
		AllergenInfo: "none",
		Tags:         "protein",
		IsAvailable:  true,
		IsSeasonal:   false,
	}
	if got != want {
		t.Errorf("unexpected projection:\n got  %+v\n want %+v", got, want)
	}

	if back := got.Entity(); back != m {
		t.Errorf("expected Entity to restore the row, got %+v", back)
	}
}

func TestMealOut_JSONKeys(t *testing.T) {
	// zero values must still be emitted
	body, err := json.Marshal(NewMealOut(Meal{}))
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	keys := make([]string, 0, len(decoded))
	for k := range decoded {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	want := []string{
		"allergen_info", "description", "id", "image_url", "ingredients",
		"isAvailable", "isSeasonal", "mealPeriod", "mealtype", "name",
		"nutri_amounts", "nutri_info", "tags", "time_range",
	}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("unexpected keys:\n got  %v\n want %v", keys, want)
	}

	if _, ok := decoded["ID"]; ok {
		t.Error("storage key ID must not leak into the transfer shape")
	}
	if _, ok := decoded["isAvailable"].(bool); !ok {
		t.Errorf("expected isAvailable to be a boolean, got %T", decoded["isAvailable"])
	}
	if _, ok := decoded["id"].(float64); !ok {
		t.Errorf("expected id to be a number, got %T", decoded["id"])
	}
}

func TestNewMealOuts(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		out := NewMealOuts(nil)
		if out == nil {
			t.Fatal("expected non-nil slice")
		}
		body, _ := json.Marshal(out)
		if string(body) != "[]" {
			t.Errorf("expected [], got %s", body)
		}
	})

	t.Run("preserves order", func(t *testing.T) {
		a, b := grilledChicken(), grilledChicken()
		b.ID = 7
		out := NewMealOuts([]Meal{b, a})
		if len(out) != 2 || out[0].ID != 7 || out[1].ID != 1 {
			t.Errorf("unexpected order: %+v", out)
		}
	})
}

func TestMealTableName(t *testing.T) {
	if (Meal{}).TableName() != "meals" {
		t.Errorf("expected table meals, got %q", (Meal{}).TableName())
	}
}
