package menu

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alexander123-byte/Food-ordering-program/internal/database"
	"github.com/Alexander123-byte/Food-ordering-program/internal/entity"
)

var repoTracer = otel.Tracer("github.com/Alexander123-byte/Food-ordering-program/repository/menu")

// ErrNotFound is returned when a menu item is missing.
var ErrNotFound = errors.New("menu item not found")

// Filter narrows menu listings. The zero value returns the full menu,
// including unavailable items, so administrative views see everything;
// customer-facing views opt into AvailableOnly.
type Filter struct {
	CategoryID    *int64
	AvailableOnly bool
}

// Repository encapsulates storage access for categories and menu items.
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

// ListCategories returns all categories ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]entity.Category, error) {
	ctx, span := repoTracer.Start(ctx, "MenuRepository.ListCategories")
	defer span.End()

	var categories []entity.Category
	err := r.reader.NewSelect().
		Model(&categories).
		Order("name").
		Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return categories, nil
}

// ListItems returns menu items joined with their category name, ordered by
// category name then item name.
func (r *Repository) ListItems(ctx context.Context, filter Filter) ([]entity.MenuItem, error) {
	ctx, span := repoTracer.Start(ctx, "MenuRepository.ListItems",
		trace.WithAttributes(attribute.Bool("menu.available_only", filter.AvailableOnly)))
	defer span.End()

	var items []entity.MenuItem
	q := r.reader.NewSelect().
		Model(&items).
		ColumnExpr("menu_item.*").
		ColumnExpr("c.name AS category_name").
		Join("JOIN categories AS c ON c.id = menu_item.category_id").
		OrderExpr("c.name, menu_item.name")

	if filter.AvailableOnly {
		q = q.Where("menu_item.is_available = TRUE")
	}
	if filter.CategoryID != nil {
		q = q.Where("menu_item.category_id = ?", *filter.CategoryID)
	}

	if err := q.Scan(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return items, nil
}

// GetItem fetches a single menu item with its category name joined.
func (r *Repository) GetItem(ctx context.Context, id int64) (*entity.MenuItem, error) {
	ctx, span := repoTracer.Start(ctx, "MenuRepository.GetItem",
		trace.WithAttributes(attribute.Int64("menu_item.id", id)))
	defer span.End()

	item := new(entity.MenuItem)
	err := r.reader.NewSelect().
		Model(item).
		ColumnExpr("menu_item.*").
		ColumnExpr("c.name AS category_name").
		Join("JOIN categories AS c ON c.id = menu_item.category_id").
		Where("menu_item.id = ?", id).
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
	return item, nil
}

// AddItem inserts a new menu item under its category.
func (r *Repository) AddItem(ctx context.Context, item *entity.MenuItem) error {
	if item == nil {
		return errors.New("nil menu item")
	}
	ctx, span := repoTracer.Start(ctx, "MenuRepository.AddItem",
		trace.WithAttributes(attribute.String("menu_item.name", item.Name)))
	defer span.End()

	_, err := r.writer.NewInsert().Model(item).Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
	}
	return err
}

// SetAvailability flips the availability flag. Making an item available
// always clears the stored reason; making it unavailable stores the supplied
// reason, substituting the unspecified sentinel when none is given. Reports
// whether a row was affected.
func (r *Repository) SetAvailability(ctx context.Context, id int64, available bool, reason string) (bool, error) {
	ctx, span := repoTracer.Start(ctx, "MenuRepository.SetAvailability", trace.WithAttributes(
		attribute.Int64("menu_item.id", id),
		attribute.Bool("menu_item.available", available),
	))
	defer span.End()

	q := r.writer.NewUpdate().
		Model((*entity.MenuItem)(nil)).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id)

	if available {
		q = q.Set("is_available = TRUE").Set("unavailability_reason = NULL")
	} else {
		if reason == "" {
			reason = entity.UnavailabilityReasonUnspecified
		}
		q = q.Set("is_available = FALSE").Set("unavailability_reason = ?", reason)
	}

	res, err := q.Exec(ctx)
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
