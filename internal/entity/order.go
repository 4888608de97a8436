package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// OrderStatus enumerates the lifecycle states of an order. Membership in the
// enumeration is the only transition rule; any valid status may follow any
// other via an explicit administrative change.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusPreparing  OrderStatus = "preparing"
	StatusDelivering OrderStatus = "delivering"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists all valid statuses in lifecycle order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		StatusPending,
		StatusConfirmed,
		StatusPreparing,
		StatusDelivering,
		StatusDelivered,
		StatusCancelled,
	}
}

// Valid reports whether the status belongs to the enumeration.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing,
		StatusDelivering, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) String() string { return string(s) }

// Order is a persisted purchase order. TotalAmount is fixed at creation time
// as the sum of line-item subtotals and never recalculated.
type Order struct {
	bun.BaseModel `bun:"table:orders"`

	ID              int64           `bun:",pk,autoincrement"`
	Number          string          `bun:"order_number"`
	CustomerID      int64           `bun:"customer_id"`
	CustomerName    string          `bun:"customer_name,scanonly"`
	CustomerPhone   string          `bun:"customer_phone,scanonly"`
	CustomerEmail   string          `bun:"customer_email,scanonly"`
	TotalAmount     decimal.Decimal `bun:"total_amount"`
	Status          OrderStatus     `bun:"status"`
	PaymentMethod   string          `bun:"payment_method"`
	DeliveryAddress string          `bun:"delivery_address"`
	Notes           string          `bun:"notes"`
	CreatedAt       time.Time       `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time       `bun:"updated_at,nullzero"`

	Items []*OrderItem `bun:"rel:has-many,join:id=order_id"`
}
