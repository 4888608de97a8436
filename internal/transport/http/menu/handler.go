package menu

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Alexander123-byte/Food-ordering-program/internal/dto"
	"github.com/Alexander123-byte/Food-ordering-program/internal/entity"
	"github.com/Alexander123-byte/Food-ordering-program/internal/presentation/http/response"
	service "github.com/Alexander123-byte/Food-ordering-program/internal/service/menu"
	"github.com/Alexander123-byte/Food-ordering-program/pkg/errorbank"
)

// Handler exposes the customer-facing menu endpoints.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a menu Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with the provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/menu")
	g.GET("/categories", h.listCategories)
	g.GET("/items", h.listItems)
	g.GET("/items/:id", h.getItem)
}

func (h *Handler) listCategories(c echo.Context) error {
	b := response.New(c)

	categories := h.svc.Categories(c.Request().Context())
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, dto.CategoryResponse{
			ID:          category.ID,
			Name:        category.Name,
			Description: category.Description,
		})
	}
	return b.WithData(out).Build()
}

func (h *Handler) listItems(c echo.Context) error {
	b := response.New(c)

	var filter service.Filter
	if raw := c.QueryParam("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return b.WithError(errorbank.BadRequest("invalid category_id", errorbank.WithCause(err))).Build()
		}
		filter.CategoryID = &id
	}
	if raw := c.QueryParam("available"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			return b.WithError(errorbank.BadRequest("invalid available flag", errorbank.WithCause(err))).Build()
		}
		filter.AvailableOnly = available
	}

	items := h.svc.Items(c.Request().Context(), filter)
	out := make([]dto.MenuItemResponse, 0, len(items))
	for i := range items {
		out = append(out, toItemDTO(&items[i]))
	}
	return b.WithData(out).Build()
}

func (h *Handler) getItem(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	item, err := h.svc.Item(c.Request().Context(), id)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(toItemDTO(item)).Build()
}

func toItemDTO(item *entity.MenuItem) dto.MenuItemResponse {
	return dto.MenuItemResponse{
		ID:                   item.ID,
		Name:                 item.Name,
		Description:          item.Description,
		Price:                item.Price,
		CategoryID:           item.CategoryID,
		CategoryName:         item.CategoryName,
		IsAvailable:          item.IsAvailable,
		UnavailabilityReason: item.UnavailabilityReason,
		Calories:             item.Calories,
		CookingTimeMinutes:   item.CookingTimeMinutes,
	}
}
