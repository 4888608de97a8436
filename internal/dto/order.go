package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest is the checkout payload: customer details plus the
// selected (menu item, quantity) pairs. Name and phone gate checkout.
type CreateOrderRequest struct {
	CustomerName    string                   `json:"customer_name" validate:"required"`
	Phone           string                   `json:"phone" validate:"required"`
	Email           string                   `json:"email" validate:"omitempty,email"`
	DeliveryAddress string                   `json:"delivery_address"`
	Notes           string                   `json:"notes"`
	PaymentMethod   string                   `json:"payment_method"`
	Items           []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateOrderItemRequest is one requested line of a new order.
type CreateOrderItemRequest struct {
	MenuItemID int64 `json:"menu_item_id" validate:"required,gt=0"`
	Quantity   int   `json:"quantity" validate:"required,gt=0"`
}

// OrderConfirmationResponse is returned after a successful checkout.
type OrderConfirmationResponse struct {
	OrderNumber string          `json:"order_number"`
	Total       decimal.Decimal `json:"total"`
}

// OrderResponse represents a full order with its line items.
type OrderResponse struct {
	OrderNumber     string              `json:"order_number"`
	Status          string              `json:"status"`
	CustomerName    string              `json:"customer_name"`
	CustomerPhone   string              `json:"customer_phone"`
	CustomerEmail   string              `json:"customer_email,omitempty"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	PaymentMethod   string              `json:"payment_method"`
	DeliveryAddress string              `json:"delivery_address,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	Items           []OrderItemResponse `json:"items"`
}

// OrderItemResponse is one persisted line of an order.
type OrderItemResponse struct {
	MenuItemID int64           `json:"menu_item_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// OrderSummaryResponse is the compact listing row for administrative views.
type OrderSummaryResponse struct {
	OrderNumber  string          `json:"order_number"`
	CreatedAt    time.Time       `json:"created_at"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       string          `json:"status"`
	CustomerName string          `json:"customer_name"`
}

// UpdateStatusRequest carries an administrative status transition.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// StatisticsResponse aggregates historical orders for reporting.
type StatisticsResponse struct {
	TotalOrders     int64               `json:"total_orders"`
	TotalRevenue    decimal.Decimal     `json:"total_revenue"`
	AvgOrderValue   decimal.Decimal     `json:"avg_order_value"`
	UniqueCustomers int64               `json:"unique_customers"`
	PopularItems    []ItemSalesResponse `json:"popular_items"`
}

// ItemSalesResponse is one best-seller row.
type ItemSalesResponse struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}
