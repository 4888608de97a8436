package seeder

import (
	"context"
	"database/sql"
	"testing"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"go.uber.org/zap"

	"github.com/Alexander123-byte/Food-ordering-program/internal/database"
	"github.com/Alexander123-byte/Food-ordering-program/internal/entity"
)

func newTestSeeder(t *testing.T) *Seeder {
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

	return New(&database.Connections{Writer: db, Reader: db}, zap.NewNop())
}

func TestMenuSeedsEmptyDatabase(t *testing.T) {
	seed := newTestSeeder(t)
	ctx := context.Background()

	if err := seed.Menu(ctx); err != nil {
		t.Fatalf("Menu: %v", err)
	}

	categories, err := seed.db.NewSelect().Model((*entity.Category)(nil)).Count(ctx)
	if err != nil {
		t.Fatalf("count categories: %v", err)
	}
	if categories != 4 {
		t.Errorf("%d categories seeded, want 4", categories)
	}

	items, err := seed.db.NewSelect().Model((*entity.MenuItem)(nil)).Count(ctx)
	if err != nil {
		t.Fatalf("count items: %v", err)
	}
	if items != 8 {
		t.Errorf("%d items seeded, want 8", items)
	}
}

func TestMenuSkipsNonEmptyDatabase(t *testing.T) {
	seed := newTestSeeder(t)
	ctx := context.Background()

	if err := seed.Menu(ctx); err != nil {
		t.Fatalf("first Menu: %v", err)
	}
	if err := seed.Menu(ctx); err != nil {
		t.Fatalf("second Menu: %v", err)
	}

	categories, err := seed.db.NewSelect().Model((*entity.Category)(nil)).Count(ctx)
	if err != nil {
		t.Fatalf("count categories: %v", err)
	}
	if categories != 4 {
		t.Errorf("%d categories after repeated seed, want 4", categories)
	}
}
