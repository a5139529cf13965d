package seed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/traymate/mealmenu/internal/domain"
)

// requiredKeys are the JSON keys of MealOut; a seed document must carry
// every one of them and nothing else.
var requiredKeys = mealOutKeys()

func mealOutKeys() map[string]struct{} {
	t := reflect.TypeOf(domain.MealOut{})
	keys := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		keys[name] = struct{}{}
	}
	return keys
}

// Decode reads a JSON array of meal objects using the client-facing keys.
// Any shape problem (missing or unknown key, wrong value type, duplicate
// or non-positive id) is reported as domain.ErrSchemaMismatch.
func Decode(r io.Reader) ([]domain.MealOut, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: seed document is not a JSON array: %w", domain.ErrSchemaMismatch, err)
	}

	meals := make([]domain.MealOut, 0, len(raw))
	seen := make(map[int]struct{}, len(raw))

	for i, item := range raw {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil {
			return nil, fmt.Errorf("%w: item %d is not an object: %w", domain.ErrSchemaMismatch, i, err)
		}
		if err := checkKeys(fields); err != nil {
			return nil, fmt.Errorf("%w: item %d: %s", domain.ErrSchemaMismatch, i, err)
		}

		var meal domain.MealOut
		dec := json.NewDecoder(bytes.NewReader(item))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&meal); err != nil {
			return nil, fmt.Errorf("%w: item %d: %w", domain.ErrSchemaMismatch, i, err)
		}

		// Zero would hand the key to the database's auto-increment
		if meal.ID <= 0 {
			return nil, fmt.Errorf("%w: item %d: id must be positive, got %d", domain.ErrSchemaMismatch, i, meal.ID)
		}
		if _, dup := seen[meal.ID]; dup {
			return nil, fmt.Errorf("%w: item %d: duplicate id %d", domain.ErrSchemaMismatch, i, meal.ID)
		}
		seen[meal.ID] = struct{}{}

		meals = append(meals, meal)
	}

	return meals, nil
}

func checkKeys(fields map[string]json.RawMessage) error {
	var missing, unknown []string
	for key := range requiredKeys {
		v, ok := fields[key]
		if !ok || string(v) == "null" {
			missing = append(missing, key)
		}
	}
	for key := range fields {
		if _, ok := requiredKeys[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(missing) == 0 && len(unknown) == 0 {
		return nil
	}

	sort.Strings(missing)
	sort.Strings(unknown)
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing "+strings.Join(missing, ", "))
	}
	if len(unknown) > 0 {
		parts = append(parts, "unknown "+strings.Join(unknown, ", "))
	}
	return errors.New(strings.Join(parts, "; "))
}
