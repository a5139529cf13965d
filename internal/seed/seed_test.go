package seed

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/traymate/mealmenu/internal/domain"
)

const grilledChickenDoc = `[{
	"id": 1,
	"name": "Grilled Chicken",
	"ingredients": "chicken,salt",
	"nutri_info": "250kcal",
	"nutri_amounts": "1 serving",
	"description": "...",
	"image_url": "http://x/img.png",
	"mealtype": "L",
	"mealPeriod": "Lunch",
	"time_range": "11-2",
	"allergen_info": "none",
	"tags": "protein",
	"isAvailable": true,
	"isSeasonal": false
}]`

func TestDecode_Valid(t *testing.T) {
	meals, err := Decode(strings.NewReader(grilledChickenDoc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(meals) != 1 {
		t.Fatalf("expected 1 meal, got %d", len(meals))
	}
	m := meals[0]
	if m.ID != 1 || m.Name != "Grilled Chicken" || m.MealPeriod != "Lunch" || !m.IsAvailable || m.IsSeasonal {
		t.Errorf("unexpected meal: %+v", m)
	}
}

func TestDecode_SchemaMismatch(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		errPart string
	}{
		{
			name:    "not an array",
			doc:     `{"id": 1}`,
			errPart: "not a JSON array",
		},
		{
			name:    "missing field",
			doc:     strings.Replace(grilledChickenDoc, `"tags": "protein",`, "", 1),
			errPart: "missing tags",
		},
		{
			name:    "null field",
			doc:     strings.Replace(grilledChickenDoc, `"tags": "protein"`, `"tags": null`, 1),
			errPart: "missing tags",
		},
		{
			name:    "storage key instead of id",
			doc:     strings.Replace(grilledChickenDoc, `"id": 1`, `"ID": 1`, 1),
			errPart: "missing id; unknown ID",
		},
		{
			name:    "wrong type",
			doc:     strings.Replace(grilledChickenDoc, `"isAvailable": true`, `"isAvailable": "yes"`, 1),
			errPart: "item 0",
		},
		{
			name:    "zero id",
			doc:     strings.Replace(grilledChickenDoc, `"id": 1`, `"id": 0`, 1),
			errPart: "id must be positive, got 0",
		},
		{
			name:    "negative id",
			doc:     strings.Replace(grilledChickenDoc, `"id": 1`, `"id": -4`, 1),
			errPart: "id must be positive, got -4",
		},
		{
			name:    "duplicate id",
			doc:     "[" + strings.Trim(grilledChickenDoc, "[]") + "," + strings.Trim(grilledChickenDoc, "[]") + "]",
			errPart: "duplicate id 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			if !errors.Is(err, domain.ErrSchemaMismatch) {
				t.Fatalf("expected ErrSchemaMismatch, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("expected error to mention %q, got %q", tt.errPart, err.Error())
			}
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		location string
		wantType string
		wantErr  bool
	}{
		{location: "./seed/meals.json", wantType: "*seed.FileSource"},
		{location: "file:///tmp/meals.json", wantType: "*seed.FileSource"},
		{location: "https://example.com/meals.json", wantType: "*seed.HTTPSource"},
		{location: "s3://menus/seed/meals.json", wantType: "*seed.S3Source"},
		{location: "s3://menus", wantErr: true},
		{location: "ftp://example.com/meals.json", wantErr: true},
		{location: "", wantErr: true},
	}

	opts := Options{}
	opts.Storage.Region = "us-east-2"
	opts.Storage.AccessKey = "test"
	opts.Storage.SecretKey = "test"

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			src, err := Resolve(tt.location, opts)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.location)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := typeName(src); got != tt.wantType {
				t.Errorf("expected %s, got %s", tt.wantType, got)
			}
		})
	}
}

func typeName(src Source) string {
	switch src.(type) {
	case *FileSource:
		return "*seed.FileSource"
	case *HTTPSource:
		return "*seed.HTTPSource"
	case *S3Source:
		return "*seed.S3Source"
	default:
		return "unknown"
	}
}

func TestFileSource_Open(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meals.json")
	if err := os.WriteFile(path, []byte(grilledChickenDoc), 0o644); err != nil {
		t.Fatalf("failed to write seed: %v", err)
	}

	src, err := Resolve(path, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rc, err := src.Open(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rc.Close()

	meals, err := Decode(rc)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if len(meals) != 1 {
		t.Errorf("expected 1 meal, got %d", len(meals))
	}
}

func TestFileSource_Missing(t *testing.T) {
	src := &FileSource{Path: filepath.Join(t.TempDir(), "nope.json")}
	if _, err := src.Open(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestHTTPSource_Open(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, grilledChickenDoc)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/meals.json", Options{Timeout: 5 * time.Second})
	rc, err := src.Open(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rc.Close()

	meals, err := Decode(rc)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if len(meals) != 1 || meals[0].ID != 1 {
		t.Errorf("unexpected meals: %+v", meals)
	}
}

func TestHTTPSource_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		io.WriteString(w, "[]")
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, Options{Timeout: 5 * time.Second, RetryCount: 2})
	rc, err := src.Open(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rc.Close()

	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("expected 2 calls, got %d", got)
	}
}

func TestHTTPSource_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, Options{Timeout: 5 * time.Second})
	if _, err := src.Open(context.Background()); err == nil {
		t.Error("expected error for 404 response")
	}
}
