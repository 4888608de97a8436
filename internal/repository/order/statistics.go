package order

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/codes"

	"github.com/Alexander123-byte/Food-ordering-program/internal/entity"
)

// Statistics aggregates non-cancelled orders: count, revenue, average order
// value, distinct customers, and the ten best-selling items by cumulative
// quantity. The optional date range bounds the order aggregates.
func (r *Repository) Statistics(ctx context.Context, from, to *time.Time) (entity.Statistics, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.Statistics")
	defer span.End()

	var stats entity.Statistics

	q := r.reader.NewSelect().
		Model((*entity.Order)(nil)).
		ColumnExpr("COUNT(*)").
		ColumnExpr("COALESCE(SUM(total_amount), 0)").
		ColumnExpr("COALESCE(AVG(total_amount), 0)").
		ColumnExpr("COUNT(DISTINCT customer_id)").
		Where("status != ?", entity.StatusCancelled)
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("created_at <= ?", *to)
	}
	err := q.Scan(ctx,
		&stats.TotalOrders,
		&stats.TotalRevenue,
		&stats.AvgOrderValue,
		&stats.UniqueCustomers,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "aggregate failed")
		return entity.Statistics{}, err
	}

	var popular []entity.ItemSales
	err = r.reader.NewSelect().
		TableExpr("order_items AS oi").
		ColumnExpr("m.name AS name").
		ColumnExpr("SUM(oi.quantity) AS quantity").
		Join("JOIN menu_items AS m ON m.id = oi.menu_item_id").
		Join("JOIN orders AS o ON o.id = oi.order_id").
		Where("o.status != ?", entity.StatusCancelled).
		GroupExpr("m.name").
		OrderExpr("quantity DESC").
		Limit(10).
		Scan(ctx, &popular)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "popular items failed")
		return entity.Statistics{}, err
	}
	stats.PopularItems = popular
	return stats, nil
}
