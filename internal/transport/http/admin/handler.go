package admin

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Alexander123-byte/Food-ordering-program/internal/config"
	"github.com/Alexander123-byte/Food-ordering-program/internal/dto"
	"github.com/Alexander123-byte/Food-ordering-program/internal/entity"
	"github.com/Alexander123-byte/Food-ordering-program/internal/presentation/http/response"
	menusvc "github.com/Alexander123-byte/Food-ordering-program/internal/service/menu"
	ordersvc "github.com/Alexander123-byte/Food-ordering-program/internal/service/order"
	"github.com/Alexander123-byte/Food-ordering-program/pkg/errorbank"
)

// PassphraseHeader carries the shared administrative secret. This gate is a
// stand-in, not a security boundary.
const PassphraseHeader = "X-Admin-Passphrase"

// Handler exposes the administrative operations: order oversight, menu
// management, and reporting.
type Handler struct {
	orders   *ordersvc.Service
	menu     *menusvc.Service
	validate *validator.Validate
}

// NewHandler constructs an admin Handler.
func NewHandler(orders *ordersvc.Service, menu *menusvc.Service, validate *validator.Validate) *Handler {
	return &Handler{orders: orders, menu: menu, validate: validate}
}

// Register mounts the admin group behind the passphrase middleware.
func Register(e *echo.Echo, h *Handler, cfg config.Config) {
	g := e.Group("/admin", passphrase(cfg.Admin.Passphrase))
	g.GET("/orders", h.listOrders)
	g.PATCH("/orders/:id/status", h.updateStatus)
	g.POST("/menu/items", h.addMenuItem)
	g.PATCH("/menu/items/:id/availability", h.setAvailability)
	g.GET("/statistics", h.statistics)
}

func passphrase(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			supplied := c.Request().Header.Get(PassphraseHeader)
			if subtle.ConstantTimeCompare([]byte(supplied), []byte(secret)) != 1 {
				return response.New(c).
					WithError(errorbank.Unauthorized("invalid admin passphrase")).
					Build()
			}
			return next(c)
		}
	}
}

func (h *Handler) listOrders(c echo.Context) error {
	b := response.New(c)

	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return b.WithError(errorbank.BadRequest("invalid limit")).Build()
		}
		limit = parsed
	}

	orders := h.orders.Recent(c.Request().Context(), limit)
	out := make([]dto.OrderSummaryResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, dto.OrderSummaryResponse{
			OrderNumber:  order.Number,
			CreatedAt:    order.CreatedAt,
			TotalAmount:  order.TotalAmount,
			Status:       order.Status.String(),
			CustomerName: order.CustomerName,
		})
	}
	return b.WithData(out).Build()
}

func (h *Handler) updateStatus(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	var payload dto.UpdateStatusRequest
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}
	if err := h.validate.Struct(payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	if err := h.orders.UpdateStatus(c.Request().Context(), id, payload.Status); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(map[string]string{"status": payload.Status}).Build()
}

func (h *Handler) addMenuItem(c echo.Context) error {
	b := response.New(c)

	var payload dto.AddMenuItemRequest
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}
	if err := h.validate.Struct(payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	price, err := decimal.NewFromString(payload.Price)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid price", errorbank.WithCause(err))).Build()
	}

	item := &entity.MenuItem{
		Name:               payload.Name,
		Description:        payload.Description,
		Price:              price,
		CategoryID:         payload.CategoryID,
		Calories:           payload.Calories,
		CookingTimeMinutes: payload.CookingTimeMinutes,
	}
	if err := h.menu.AddItem(c.Request().Context(), item); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithStatus(http.StatusCreated).WithData(map[string]string{"name": item.Name}).Build()
}

func (h *Handler) setAvailability(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	var payload dto.SetAvailabilityRequest
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	if err := h.menu.SetAvailability(c.Request().Context(), id, payload.Available, payload.Reason); err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(map[string]bool{"available": payload.Available}).Build()
}

func (h *Handler) statistics(c echo.Context) error {
	b := response.New(c)

	var from, to *time.Time
	if raw := c.QueryParam("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return b.WithError(errorbank.BadRequest("invalid from timestamp", errorbank.WithCause(err))).Build()
		}
		from = &parsed
	}
	if raw := c.QueryParam("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return b.WithError(errorbank.BadRequest("invalid to timestamp", errorbank.WithCause(err))).Build()
		}
		to = &parsed
	}

	stats := h.orders.Statistics(c.Request().Context(), from, to)
	out := dto.StatisticsResponse{
		TotalOrders:     stats.TotalOrders,
		TotalRevenue:    stats.TotalRevenue,
		AvgOrderValue:   stats.AvgOrderValue,
		UniqueCustomers: stats.UniqueCustomers,
		PopularItems:    make([]dto.ItemSalesResponse, 0, len(stats.PopularItems)),
	}
	for _, item := range stats.PopularItems {
		out.PopularItems = append(out.PopularItems, dto.ItemSalesResponse{
			Name:     item.Name,
			Quantity: item.Quantity,
		})
	}
	return b.WithData(out).Build()
}
