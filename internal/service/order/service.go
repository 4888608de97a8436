package order

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Alexander123-byte/Food-ordering-program/internal/config"
	"github.com/Alexander123-byte/Food-ordering-program/internal/entity"
	"github.com/Alexander123-byte/Food-ordering-program/internal/messaging"
	customerrepo "github.com/Alexander123-byte/Food-ordering-program/internal/repository/customer"
	menurepo "github.com/Alexander123-byte/Food-ordering-program/internal/repository/menu"
	orderrepo "github.com/Alexander123-byte/Food-ordering-program/internal/repository/order"
	"github.com/Alexander123-byte/Food-ordering-program/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/Alexander123-byte/Food-ordering-program/service/order")

const defaultPaymentMethod = "cash"

// Service turns a customer's selection of menu items into a validated,
// priced, persisted order, and exposes the order queries built on top.
type Service struct {
	menu      MenuGateway
	customers CustomerGateway
	orders    OrderGateway
	logger    *zap.Logger
	publisher messaging.Client
	messaging messagingConfig
	now       func() time.Time
}

type messagingConfig struct {
	enabled bool
	topic   string
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Menu      *menurepo.Repository
	Customers *customerrepo.Repository
	Orders    *orderrepo.Repository
	Config    config.Config
	Logger    *zap.Logger
	Publisher messaging.Client
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		menu:      p.Menu,
		customers: p.Customers,
		orders:    p.Orders,
		logger:    p.Logger,
		publisher: p.Publisher,
		messaging: messagingConfig{
			enabled: p.Config.Messaging.Enabled,
			topic:   p.Config.Messaging.Kafka.Topic,
		},
		now: time.Now,
	}
}

// AddToDraft resolves one (menu item, quantity) request against the current
// menu and appends a priced line to the draft. Failure rejects only this
// addition, never the rest of the selection; an unavailable item is rejected
// with its stored reason so the caller can display it.
func (s *Service) AddToDraft(ctx context.Context, draft *Draft, itemID int64, quantity int) (*entity.OrderItem, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.AddToDraft", trace.WithAttributes(
		attribute.Int64("menu_item.id", itemID),
		attribute.Int("quantity", quantity),
	))
	defer span.End()

	if quantity <= 0 {
		return nil, errorbank.BadRequest("quantity must be positive",
			errorbank.WithDetail("quantity", quantity))
	}

	item, err := s.menu.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, menurepo.ErrNotFound) {
			return nil, errorbank.NotFound("menu item not found",
				errorbank.WithDetail("menu_item_id", itemID))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "menu lookup failed")
		return nil, errorbank.Internal("failed to resolve menu item", errorbank.WithCause(err))
	}

	if !item.IsAvailable {
		return nil, errorbank.Unprocessable("menu item is unavailable",
			errorbank.WithDetail("menu_item_id", itemID),
			errorbank.WithDetail("reason", item.Reason()),
		)
	}

	line := entity.OrderItem{
		MenuItemID:   item.ID,
		MenuItemName: item.Name,
		Quantity:     quantity,
		PriceAtOrder: item.Price,
	}
	draft.add(line)
	return &line, nil
}

// CheckoutInfo carries the customer and delivery details gathered at
// checkout. Name and phone are mandatory; everything else is optional.
type CheckoutInfo struct {
	Name            string
	Phone           string
	Email           string
	DeliveryAddress string
	Notes           string
	PaymentMethod   string
}

// Confirmation is returned to the caller for display after a successful
// submission.
type Confirmation struct {
	OrderNumber string
	Total       decimal.Decimal
}

// Submit finds or creates the customer, then persists the draft as one
// atomic order. On success the draft is cleared; on any failure it is left
// intact so the caller can retry without re-entering items.
func (s *Service) Submit(ctx context.Context, draft *Draft, info CheckoutInfo) (*Confirmation, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Submit",
		trace.WithAttributes(attribute.Int("order.items", draft.Len())))
	defer span.End()

	if draft.Empty() {
		return nil, errorbank.BadRequest("order has no items")
	}
	if info.Name == "" {
		return nil, errorbank.BadRequest("customer name is required", errorbank.WithDetail("field", "name"))
	}
	if info.Phone == "" {
		return nil, errorbank.BadRequest("customer phone is required", errorbank.WithDetail("field", "phone"))
	}

	customer, err := s.customers.FindOrCreate(ctx, info.Name, info.Phone, info.Email, info.DeliveryAddress)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "customer lookup failed")
		return nil, errorbank.Internal("failed to resolve customer", errorbank.WithCause(err))
	}

	paymentMethod := info.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = defaultPaymentMethod
	}

	now := s.now().UTC()
	order := &entity.Order{
		Number:          NewOrderNumber(now),
		CustomerID:      customer.ID,
		TotalAmount:     draft.Total(),
		Status:          entity.StatusPending,
		PaymentMethod:   paymentMethod,
		DeliveryAddress: info.DeliveryAddress,
		Notes:           info.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	selection := draft.Items()
	items := make([]*entity.OrderItem, len(selection))
	for i := range selection {
		items[i] = &selection[i]
	}

	if err := s.orders.Create(ctx, order, items); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "order creation failed")
		return nil, errorbank.Internal("failed to create order", errorbank.WithCause(err))
	}

	draft.Clear()
	s.publishCreated(ctx, order, customer, items)
	s.logger.Info("order created",
		zap.String("number", order.Number),
		zap.String("total", order.TotalAmount.String()),
		zap.Int("items", len(items)),
	)
	return &Confirmation{OrderNumber: order.Number, Total: order.TotalAmount}, nil
}

// ByNumber returns the order with its line items, or a not-found error.
func (s *Service) ByNumber(ctx context.Context, number string) (*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.ByNumber",
		trace.WithAttributes(attribute.String("order.number", number)))
	defer span.End()

	order, err := s.orders.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, orderrepo.ErrNotFound) {
			return nil, errorbank.NotFound("order not found",
				errorbank.WithDetail("order_number", number))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load order", errorbank.WithCause(err))
	}
	return order, nil
}

// Recent returns most-recent-first order summaries for administrative views.
// Storage errors degrade to an empty list.
func (s *Service) Recent(ctx context.Context, limit int) []entity.Order {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Recent")
	defer span.End()

	orders, err := s.orders.ListRecent(ctx, limit)
	if err != nil {
		s.logger.Warn("listing orders failed, returning empty set", zap.Error(err))
		span.RecordError(err)
		return []entity.Order{}
	}
	return orders
}

// UpdateStatus validates the requested status and applies it, mapping an
// out-of-enumeration value and a missing order to distinct errors.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	ctx, span := serviceTracer.Start(ctx, "OrderService.UpdateStatus", trace.WithAttributes(
		attribute.Int64("order.id", id),
		attribute.String("order.status", status),
	))
	defer span.End()

	affected, err := s.orders.UpdateStatus(ctx, id, entity.OrderStatus(status))
	if err != nil {
		if errors.Is(err, orderrepo.ErrInvalidStatus) {
			return errorbank.BadRequest("invalid order status",
				errorbank.WithDetail("status", status))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to update status", errorbank.WithCause(err))
	}
	if !affected {
		return errorbank.NotFound("order not found", errorbank.WithDetail("order_id", id))
	}
	return nil
}

// Statistics aggregates historical orders; failures degrade to the zero
// Statistics value so reporting views never crash a session.
func (s *Service) Statistics(ctx context.Context, from, to *time.Time) entity.Statistics {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Statistics")
	defer span.End()

	stats, err := s.orders.Statistics(ctx, from, to)
	if err != nil {
		s.logger.Warn("statistics failed, returning zero values", zap.Error(err))
		span.RecordError(err)
		return entity.Statistics{PopularItems: []entity.ItemSales{}}
	}
	return stats
}

func (s *Service) publishCreated(ctx context.Context, order *entity.Order, customer *entity.Customer, items []*entity.OrderItem) {
	if !s.messaging.enabled || s.publisher == nil {
		return
	}

	event := OrderCreatedEvent{
		OrderNumber:  order.Number,
		CustomerName: customer.Name,
		Status:       order.Status.String(),
		Total:        order.TotalAmount,
		CreatedAt:    order.CreatedAt,
		Items:        make([]ReceiptLine, 0, len(items)),
	}
	for _, item := range items {
		event.Items = append(event.Items, ReceiptLine{
			Name:     item.MenuItemName,
			Quantity: item.Quantity,
			Price:    item.PriceAtOrder,
			Subtotal: item.LineSubtotal(),
		})
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal order created", zap.Error(err))
		return
	}
	if err := s.publisher.Publish(ctx, []byte(order.Number), payload); err != nil {
		s.logger.Error("publish order created", zap.Error(err))
	}
}
