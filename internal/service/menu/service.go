package menu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Alexander123-byte/Food-ordering-program/internal/cache"
	"github.com/Alexander123-byte/Food-ordering-program/internal/config"
	"github.com/Alexander123-byte/Food-ordering-program/internal/entity"
	repo "github.com/Alexander123-byte/Food-ordering-program/internal/repository/menu"
	"github.com/Alexander123-byte/Food-ordering-program/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/Alexander123-byte/Food-ordering-program/service/menu")

// Filter re-exports the repository filter for callers of the service.
type Filter = repo.Filter

// Service exposes menu reads with a degraded-read policy (interactive views
// get an empty result and a log line instead of an error) and the
// administrative menu mutations.
type Service struct {
	repo     *repo.Repository
	cache    cache.Store
	cacheTTL time.Duration
	logger   *zap.Logger
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository *repo.Repository
	Cache      cache.Store
	Config     config.Config
	Logger     *zap.Logger
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		repo:     p.Repository,
		cache:    p.Cache,
		cacheTTL: p.Config.Cache.DefaultTTL,
		logger:   p.Logger,
	}
}

// Categories returns all categories ordered by name. Storage errors degrade
// to an empty list.
func (s *Service) Categories(ctx context.Context) []entity.Category {
	ctx, span := serviceTracer.Start(ctx, "MenuService.Categories")
	defer span.End()

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		s.logger.Warn("listing categories failed, returning empty set", zap.Error(err))
		span.RecordError(err)
		return []entity.Category{}
	}
	return categories
}

// Items returns the menu for the given filter. Storage errors degrade to an
// empty list.
func (s *Service) Items(ctx context.Context, filter Filter) []entity.MenuItem {
	ctx, span := serviceTracer.Start(ctx, "MenuService.Items")
	defer span.End()

	items, err := s.repo.ListItems(ctx, filter)
	if err != nil {
		s.logger.Warn("listing menu items failed, returning empty set", zap.Error(err))
		span.RecordError(err)
		return []entity.MenuItem{}
	}
	return items
}

// Item retrieves a single menu item, consulting the cache first.
func (s *Service) Item(ctx context.Context, id int64) (*entity.MenuItem, error) {
	ctx, span := serviceTracer.Start(ctx, "MenuService.Item",
		trace.WithAttributes(attribute.Int64("menu_item.id", id)))
	defer span.End()

	if item, err := s.getFromCache(ctx, id); err == nil {
		return item, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("menu cache read failed", zap.Int64("id", id), zap.Error(err))
	}

	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errorbank.NotFound("menu item not found", errorbank.WithDetail("menu_item_id", id))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load menu item", errorbank.WithCause(err))
	}

	if err := s.storeInCache(ctx, item); err != nil {
		s.logger.Warn("menu cache write failed", zap.Int64("id", id), zap.Error(err))
	}
	return item, nil
}

// AddItem inserts a new menu item. Callers re-query the menu to discover the
// created identifier.
func (s *Service) AddItem(ctx context.Context, item *entity.MenuItem) error {
	if item == nil {
		return errorbank.BadRequest("menu item payload is required")
	}
	if item.Name == "" {
		return errorbank.BadRequest("menu item name is required", errorbank.WithDetail("field", "name"))
	}
	if item.Price.IsNegative() {
		return errorbank.BadRequest("menu item price must not be negative", errorbank.WithDetail("field", "price"))
	}
	ctx, span := serviceTracer.Start(ctx, "MenuService.AddItem",
		trace.WithAttributes(attribute.String("menu_item.name", item.Name)))
	defer span.End()

	item.IsAvailable = true
	if err := s.repo.AddItem(ctx, item); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to add menu item", errorbank.WithCause(err))
	}
	return nil
}

// SetAvailability updates an item's availability flag and reason, then
// drops the item's cache entry so stale availability is never served.
func (s *Service) SetAvailability(ctx context.Context, id int64, available bool, reason string) error {
	ctx, span := serviceTracer.Start(ctx, "MenuService.SetAvailability", trace.WithAttributes(
		attribute.Int64("menu_item.id", id),
		attribute.Bool("menu_item.available", available),
	))
	defer span.End()

	affected, err := s.repo.SetAvailability(ctx, id, available, reason)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to update availability", errorbank.WithCause(err))
	}
	if !affected {
		return errorbank.NotFound("menu item not found", errorbank.WithDetail("menu_item_id", id))
	}

	if err := s.cache.Delete(ctx, s.cacheKey(id)); err != nil {
		s.logger.Warn("menu cache invalidation failed", zap.Int64("id", id), zap.Error(err))
	}
	return nil
}

func (s *Service) cacheKey(id int64) string {
	return fmt.Sprintf("menu:items:%d", id)
}

func (s *Service) getFromCache(ctx context.Context, id int64) (*entity.MenuItem, error) {
	if s.cache == nil {
		return nil, cache.ErrCacheMiss
	}
	bytes, err := s.cache.Get(ctx, s.cacheKey(id))
	if err != nil {
		return nil, err
	}
	var item entity.MenuItem
	if err := json.Unmarshal(bytes, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) storeInCache(ctx context.Context, item *entity.MenuItem) error {
	if s.cache == nil || item == nil {
		return nil
	}
	bytes, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, s.cacheKey(item.ID), bytes, s.cacheTTL)
}
