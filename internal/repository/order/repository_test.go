package order

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

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
		`CREATE TABLE customers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			phone TEXT,
			email TEXT,
			address TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE menu_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT,
			price NUMERIC NOT NULL,
			category_id INTEGER NOT NULL,
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			unavailability_reason TEXT,
			calories INTEGER,
			cooking_time_minutes INTEGER,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP
		)`,
		`CREATE TABLE orders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			order_number TEXT NOT NULL UNIQUE,
			customer_id INTEGER NOT NULL REFERENCES customers (id),
			total_amount NUMERIC NOT NULL,
			status TEXT NOT NULL,
			payment_method TEXT,
			delivery_address TEXT,
			notes TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP
		)`,
		`CREATE TABLE order_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			order_id INTEGER NOT NULL REFERENCES orders (id),
			menu_item_id INTEGER NOT NULL REFERENCES menu_items (id),
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			price_at_order NUMERIC NOT NULL,
			subtotal NUMERIC GENERATED ALWAYS AS (quantity * price_at_order) STORED,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range ddl {
		if _, err := db.ExecContext(context.Background(), stmt); err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	return NewRepository(&database.Connections{Writer: db, Reader: db})
}

func seedOrder(t *testing.T, repo *Repository, number string) *entity.Order {
	t.Helper()
	ctx := context.Background()

	customer := &entity.Customer{Name: "Ann", Phone: "+700111", Email: "ann@example.com"}
	if _, err := repo.writer.NewInsert().Model(customer).Exec(ctx); err != nil {
		t.Fatalf("insert customer: %v", err)
	}
	menuItem := &entity.MenuItem{Name: "Margherita", Price: decimal.RequireFromString("450"), CategoryID: 1, IsAvailable: true}
	if _, err := repo.writer.NewInsert().Model(menuItem).Exec(ctx); err != nil {
		t.Fatalf("insert menu item: %v", err)
	}

	now := time.Now().UTC()
	order := &entity.Order{
		Number:        number,
		CustomerID:    customer.ID,
		TotalAmount:   decimal.RequireFromString("900"),
		Status:        entity.StatusPending,
		PaymentMethod: "cash",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	items := []*entity.OrderItem{
		{MenuItemID: menuItem.ID, Quantity: 2, PriceAtOrder: decimal.RequireFromString("450")},
	}
	if err := repo.Create(ctx, order, items); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return order
}

func TestCreateAndGetByNumber(t *testing.T) {
	repo := newTestRepository(t)
	created := seedOrder(t, repo, "ORD-20240315-AB12CD")

	got, err := repo.GetByNumber(context.Background(), created.Number)
	if err != nil {
		t.Fatalf("GetByNumber: %v", err)
	}
	if got.CustomerName != "Ann" || got.CustomerPhone != "+700111" {
		t.Errorf("customer fields not joined: %+v", got)
	}
	if len(got.Items) != 1 {
		t.Fatalf("%d items, want 1", len(got.Items))
	}
	item := got.Items[0]
	if item.MenuItemName != "Margherita" {
		t.Errorf("item name not joined: %+v", item)
	}
	if !item.Subtotal.Equal(decimal.RequireFromString("900")) {
		t.Errorf("generated subtotal = %s, want 900", item.Subtotal)
	}

	if _, err := repo.GetByNumber(context.Background(), "ORD-19700101-000000"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing order error = %v, want ErrNotFound", err)
	}
}

func TestUpdateStatusInvalidWritesNothing(t *testing.T) {
	repo := newTestRepository(t)
	created := seedOrder(t, repo, "ORD-20240315-AB12CD")
	ctx := context.Background()

	affected, err := repo.UpdateStatus(ctx, created.ID, entity.OrderStatus("shipped"))
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("error = %v, want ErrInvalidStatus", err)
	}
	if affected {
		t.Error("invalid status reported a row affected")
	}

	got, err := repo.GetByNumber(ctx, created.Number)
	if err != nil {
		t.Fatalf("GetByNumber: %v", err)
	}
	if got.Status != entity.StatusPending {
		t.Errorf("status changed to %s, want pending untouched", got.Status)
	}
}

func TestUpdateStatusValid(t *testing.T) {
	repo := newTestRepository(t)
	created := seedOrder(t, repo, "ORD-20240315-AB12CD")
	ctx := context.Background()

	affected, err := repo.UpdateStatus(ctx, created.ID, entity.StatusPreparing)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if !affected {
		t.Fatal("no row affected")
	}

	got, err := repo.GetByNumber(ctx, created.Number)
	if err != nil {
		t.Fatalf("GetByNumber: %v", err)
	}
	if got.Status != entity.StatusPreparing {
		t.Errorf("status = %s, want preparing", got.Status)
	}
}

func TestUpdateStatusMissingOrder(t *testing.T) {
	repo := newTestRepository(t)
	seedOrder(t, repo, "ORD-20240315-AB12CD")

	affected, err := repo.UpdateStatus(context.Background(), 9999, entity.StatusConfirmed)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if affected {
		t.Error("missing order reported a row affected")
	}
}
