package menu

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/Alexander123-byte/Food-ordering-program/internal/database"
	"github.com/Alexander123-byte/Food-ordering-program/internal/entity"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	ddl := []string{
		`CREATE TABLE categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE menu_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT,
			price NUMERIC NOT NULL,
			category_id INTEGER NOT NULL REFERENCES categories (id),
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			unavailability_reason TEXT,
			calories INTEGER,
			cooking_time_minutes INTEGER,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP
		)`,
	}
	for _, stmt := range ddl {
		if _, err := db.ExecContext(context.Background(), stmt); err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	return NewRepository(&database.Connections{Writer: db, Reader: db})
}

func seedItem(t *testing.T, repo *Repository) *entity.MenuItem {
	t.Helper()
	ctx := context.Background()

	category := &entity.Category{Name: "Pizza", Description: "Italian thin-crust pizza"}
	if _, err := repo.writer.NewInsert().Model(category).Exec(ctx); err != nil {
		t.Fatalf("insert category: %v", err)
	}

	item := &entity.MenuItem{
		Name:        "Margherita",
		Description: "Tomato sauce, mozzarella, basil",
		Price:       decimal.RequireFromString("450"),
		CategoryID:  category.ID,
		IsAvailable: true,
	}
	if err := repo.AddItem(ctx, item); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	return item
}

func TestSetAvailabilityStoresReason(t *testing.T) {
	repo := newTestRepository(t)
	item := seedItem(t, repo)
	ctx := context.Background()

	affected, err := repo.SetAvailability(ctx, item.ID, false, "oven is broken")
	if err != nil {
		t.Fatalf("SetAvailability: %v", err)
	}
	if !affected {
		t.Fatal("SetAvailability affected no rows")
	}

	got, err := repo.GetItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got.IsAvailable {
		t.Error("item still available")
	}
	if got.UnavailabilityReason == nil || *got.UnavailabilityReason != "oven is broken" {
		t.Errorf("stored reason = %v, want %q", got.UnavailabilityReason, "oven is broken")
	}
}

func TestSetAvailabilityEmptyReasonDefaults(t *testing.T) {
	repo := newTestRepository(t)
	item := seedItem(t, repo)
	ctx := context.Background()

	if _, err := repo.SetAvailability(ctx, item.ID, false, ""); err != nil {
		t.Fatalf("SetAvailability: %v", err)
	}

	got, err := repo.GetItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got.UnavailabilityReason == nil || *got.UnavailabilityReason != entity.UnavailabilityReasonUnspecified {
		t.Errorf("stored reason = %v, want %q", got.UnavailabilityReason, entity.UnavailabilityReasonUnspecified)
	}
}

func TestSetAvailabilityTrueClearsReason(t *testing.T) {
	repo := newTestRepository(t)
	item := seedItem(t, repo)
	ctx := context.Background()

	if _, err := repo.SetAvailability(ctx, item.ID, false, "oven is broken"); err != nil {
		t.Fatalf("SetAvailability(false): %v", err)
	}

	affected, err := repo.SetAvailability(ctx, item.ID, true, "this argument must be ignored")
	if err != nil {
		t.Fatalf("SetAvailability(true): %v", err)
	}
	if !affected {
		t.Fatal("SetAvailability affected no rows")
	}

	got, err := repo.GetItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if !got.IsAvailable {
		t.Error("item still unavailable")
	}
	if got.UnavailabilityReason != nil {
		t.Errorf("reason not cleared: %q", *got.UnavailabilityReason)
	}
}

func TestSetAvailabilityMissingItem(t *testing.T) {
	repo := newTestRepository(t)
	seedItem(t, repo)

	affected, err := repo.SetAvailability(context.Background(), 9999, false, "gone")
	if err != nil {
		t.Fatalf("SetAvailability: %v", err)
	}
	if affected {
		t.Error("SetAvailability reported a row affected for a missing id")
	}
}

func TestGetItemNotFound(t *testing.T) {
	repo := newTestRepository(t)
	seedItem(t, repo)

	if _, err := repo.GetItem(context.Background(), 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetItem error = %v, want ErrNotFound", err)
	}
}

func TestListItemsAvailableOnly(t *testing.T) {
	repo := newTestRepository(t)
	item := seedItem(t, repo)
	ctx := context.Background()

	second := &entity.MenuItem{
		Name:        "Pepperoni",
		Price:       decimal.RequireFromString("550"),
		CategoryID:  item.CategoryID,
		IsAvailable: true,
	}
	if err := repo.AddItem(ctx, second); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := repo.SetAvailability(ctx, second.ID, false, "out of pepperoni"); err != nil {
		t.Fatalf("SetAvailability: %v", err)
	}

	all, err := repo.ListItems(ctx, Filter{})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("unfiltered listing has %d items, want 2", len(all))
	}
	if all[0].CategoryName != "Pizza" {
		t.Errorf("category name not joined: %+v", all[0])
	}

	available, err := repo.ListItems(ctx, Filter{AvailableOnly: true})
	if err != nil {
		t.Fatalf("ListItems available: %v", err)
	}
	if len(available) != 1 || available[0].Name != "Margherita" {
		t.Errorf("available-only listing = %+v, want just Margherita", available)
	}
}
