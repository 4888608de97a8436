package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alexander123-byte/Food-ordering-program/internal/database"
	"github.com/Alexander123-byte/Food-ordering-program/internal/entity"
)

var repoTracer = otel.Tracer("github.com/Alexander123-byte/Food-ordering-program/repository/order")

var (
	// ErrNotFound is returned when an order is missing.
	ErrNotFound = errors.New("order not found")
	// ErrInvalidStatus is returned when a status outside the enumeration is
	// requested; nothing is written in that case.
	ErrInvalidStatus = errors.New("invalid order status")
)

// Repository encapsulates read/write access for orders and their line items.
type Repository struct {
	writer *bun.DB
	reader *bun.DB
}

// NewRepository wires a repository backed by configured database connections.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{
		writer: conns.Writer,
		reader: conns.Reader,
	}
}

// Create persists the order header and all line items as a single
// transaction: either every row commits or none do.
func (r *Repository) Create(ctx context.Context, order *entity.Order, items []*entity.OrderItem) error {
	if order == nil {
		return errors.New("nil order")
	}
	if len(items) == 0 {
		return errors.New("order has no items")
	}
	ctx, span := repoTracer.Start(ctx, "OrderRepository.Create", trace.WithAttributes(
		attribute.String("order.number", order.Number),
		attribute.Int("order.items", len(items)),
	))
	defer span.End()

	err := r.writer.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(order).Exec(ctx); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		for _, item := range items {
			item.OrderID = order.ID
		}
		if _, err := tx.NewInsert().Model(&items).Exec(ctx); err != nil {
			return fmt.Errorf("insert order items: %w", err)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transaction failed")
		return err
	}
	return nil
}

// GetByNumber returns the order header joined with customer details plus its
// line items in insertion order, each joined with the menu item name.
func (r *Repository) GetByNumber(ctx context.Context, number string) (*entity.Order, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.GetByNumber",
		trace.WithAttributes(attribute.String("order.number", number)))
	defer span.End()

	order := new(entity.Order)
	err := r.reader.NewSelect().
		Model(order).
		ColumnExpr("\"order\".*").
		ColumnExpr("c.name AS customer_name").
		ColumnExpr("c.phone AS customer_phone").
		ColumnExpr("c.email AS customer_email").
		Join("JOIN customers AS c ON c.id = \"order\".customer_id").
		Where("\"order\".order_number = ?", number).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}

	var items []*entity.OrderItem
	err = r.reader.NewSelect().
		Model(&items).
		ColumnExpr("order_item.*").
		ColumnExpr("m.name AS menu_item_name").
		Join("JOIN menu_items AS m ON m.id = order_item.menu_item_id").
		Where("order_item.order_id = ?", order.ID).
		Order("id").
		Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select items failed")
		return nil, err
	}
	order.Items = items
	return order, nil
}

// ListRecent returns most-recent-first order summaries with the customer
// name joined. A failed query is retried once after pinging the connection,
// so a dropped session recovers transparently.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]entity.Order, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.ListRecent",
		trace.WithAttributes(attribute.Int("order.limit", limit)))
	defer span.End()

	if limit <= 0 {
		limit = 50
	}

	orders, err := r.listRecent(ctx, limit)
	if err == nil {
		return orders, nil
	}

	if pingErr := r.reader.DB.PingContext(ctx); pingErr != nil {
		span.RecordError(pingErr)
		span.SetStatus(codes.Error, "reconnect failed")
		return nil, err
	}
	orders, err = r.listRecent(ctx, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return orders, nil
}

func (r *Repository) listRecent(ctx context.Context, limit int) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.reader.NewSelect().
		Model(&orders).
		ColumnExpr("\"order\".order_number, \"order\".created_at, \"order\".total_amount, \"order\".status").
		ColumnExpr("c.name AS customer_name").
		Join("JOIN customers AS c ON c.id = \"order\".customer_id").
		OrderExpr("\"order\".created_at DESC").
		Limit(limit).
		Scan(ctx)
	return orders, err
}

// UpdateStatus validates the requested status against the enumeration before
// touching storage, then reports whether a row was affected so callers can
// distinguish a missing order from a successful write.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus) (bool, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.UpdateStatus", trace.WithAttributes(
		attribute.Int64("order.id", id),
		attribute.String("order.status", status.String()),
	))
	defer span.End()

	if !status.Valid() {
		span.SetStatus(codes.Error, "invalid status")
		return false, ErrInvalidStatus
	}

	res, err := r.writer.NewUpdate().
		Model((*entity.Order)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
