package order

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alexander123-byte/Food-ordering-program/internal/dto"
	"github.com/Alexander123-byte/Food-ordering-program/internal/entity"
	"github.com/Alexander123-byte/Food-ordering-program/internal/presentation/http/response"
	service "github.com/Alexander123-byte/Food-ordering-program/internal/service/order"
	"github.com/Alexander123-byte/Food-ordering-program/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/Alexander123-byte/Food-ordering-program/transport/http/order")

// Handler exposes order checkout and lookup over HTTP.
type Handler struct {
	svc      *service.Service
	validate *validator.Validate
}

// NewHandler constructs an order Handler.
func NewHandler(svc *service.Service, validate *validator.Validate) *Handler {
	return &Handler{svc: svc, validate: validate}
}

// Register routes with the provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/orders")
	g.POST("", h.create)
	g.GET("/:number", h.getByNumber)
}

// create builds a draft from the requested items, then submits it. Each
// item failure (unknown id, bad quantity, unavailable dish) aborts checkout
// before anything is written.
func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	var payload dto.CreateOrderRequest
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}
	if err := h.validate.Struct(payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.create",
		trace.WithAttributes(attribute.Int("order.items", len(payload.Items))))
	defer span.End()

	draft := service.NewDraft()
	for _, item := range payload.Items {
		if _, err := h.svc.AddToDraft(ctx, draft, item.MenuItemID, item.Quantity); err != nil {
			return b.WithError(err).Build()
		}
	}

	confirmation, err := h.svc.Submit(ctx, draft, service.CheckoutInfo{
		Name:            payload.CustomerName,
		Phone:           payload.Phone,
		Email:           payload.Email,
		DeliveryAddress: payload.DeliveryAddress,
		Notes:           payload.Notes,
		PaymentMethod:   payload.PaymentMethod,
	})
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).WithData(dto.OrderConfirmationResponse{
		OrderNumber: confirmation.OrderNumber,
		Total:       confirmation.Total,
	}).Build()
}

func (h *Handler) getByNumber(c echo.Context) error {
	b := response.New(c)

	number := c.Param("number")
	ctx, span := httpTracer.Start(c.Request().Context(), "orders.getByNumber",
		trace.WithAttributes(attribute.String("order.number", number)))
	defer span.End()

	order, err := h.svc.ByNumber(ctx, number)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(toOrderDTO(order)).Build()
}

// toOrderDTO converts a persisted order with items into its transport form.
func toOrderDTO(order *entity.Order) dto.OrderResponse {
	out := dto.OrderResponse{
		OrderNumber:     order.Number,
		Status:          order.Status.String(),
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		CustomerEmail:   order.CustomerEmail,
		TotalAmount:     order.TotalAmount,
		PaymentMethod:   order.PaymentMethod,
		DeliveryAddress: order.DeliveryAddress,
		Notes:           order.Notes,
		CreatedAt:       order.CreatedAt,
		Items:           make([]dto.OrderItemResponse, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		out.Items = append(out.Items, dto.OrderItemResponse{
			MenuItemID: item.MenuItemID,
			Name:       item.MenuItemName,
			Quantity:   item.Quantity,
			Price:      item.PriceAtOrder,
			Subtotal:   item.Subtotal,
		})
	}
	return out
}
