package presets

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Simplici0/plotshare/internal/db"
	"github.com/Simplici0/plotshare/internal/migrations"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	ctx := context.Background()
	database, err := db.Open(ctx, filepath.Join(t.TempDir(), "presets.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := migrations.Up(ctx, database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return NewStore(database)
}

func TestStoreCreateGetUpdate(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	id, err := store.Create(ctx, Preset{Name: "Shivalik Heights", PricePerUnitArea: 4900, TotalArea: 1200, Active: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Shivalik Heights" || got.PricePerUnitArea != 4900 || got.TotalArea != 1200 || !got.Active {
		t.Fatalf("unexpected preset: %+v", got)
	}

	got.PricePerUnitArea = 5250.5
	got.Notes = "revised rate"
	got.Active = false
	if err := store.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}

	updated, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get after update: %v", err)
	}
	if updated.PricePerUnitArea != 5250.5 || updated.Notes != "revised rate" || updated.Active {
		t.Fatalf("update not applied: %+v", updated)
	}
}

func TestStoreMissingIDReturnsErrNotFound(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if _, err := store.Get(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get err=%v, want ErrNotFound", err)
	}
	if err := store.Update(ctx, Preset{ID: 42, Name: "ghost"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update err=%v, want ErrNotFound", err)
	}
}

func TestStoreListFiltersInactiveAndSortsByName(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, p := range []Preset{
		{Name: "Zenith", PricePerUnitArea: 6100, TotalArea: 900, Active: true},
		{Name: "Archived", PricePerUnitArea: 3000, TotalArea: 1500, Active: false},
		{Name: "Aangan", PricePerUnitArea: 4200, TotalArea: 1100, Active: true},
	} {
		if _, err := store.Create(ctx, p); err != nil {
			t.Fatalf("Create %s: %v", p.Name, err)
		}
	}

	all, err := store.List(ctx, false)
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 presets, got %d", len(all))
	}

	active, err := store.List(ctx, true)
	if err != nil {
		t.Fatalf("List active: %v", err)
	}
	if len(active) != 2 || active[0].Name != "Aangan" || active[1].Name != "Zenith" {
		t.Fatalf("unexpected active presets: %+v", active)
	}

	exists, err := store.Exists(ctx, "Archived")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !exists {
		t.Fatalf("expected Archived to exist")
	}
}

func TestStoreNameTakenIgnoresOwnRow(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first, err := store.Create(ctx, Preset{Name: "Aangan", Active: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := store.Create(ctx, Preset{Name: "Zenith", Active: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	cases := []struct {
		name     string
		exceptID int64
		want     bool
	}{
		{"Aangan", 0, true},
		{"Aangan", first, false},
		{"Aangan", second, true},
		{"Unused", 0, false},
	}
	for _, tc := range cases {
		got, err := store.NameTaken(ctx, tc.name, tc.exceptID)
		if err != nil {
			t.Fatalf("NameTaken(%q, %d): %v", tc.name, tc.exceptID, err)
		}
		if got != tc.want {
			t.Fatalf("NameTaken(%q, %d) = %v, want %v", tc.name, tc.exceptID, got, tc.want)
		}
	}
}
