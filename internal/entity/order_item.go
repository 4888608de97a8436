package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// OrderItem is one line of an order. PriceAtOrder snapshots the menu price
// at order time; the persisted subtotal is a generated column derived from
// quantity and that snapshot, never from the current menu price.
type OrderItem struct {
	bun.BaseModel `bun:"table:order_items"`

	ID           int64           `bun:",pk,autoincrement"`
	OrderID      int64           `bun:"order_id"`
	MenuItemID   int64           `bun:"menu_item_id"`
	MenuItemName string          `bun:"menu_item_name,scanonly"`
	Quantity     int             `bun:"quantity"`
	PriceAtOrder decimal.Decimal `bun:"price_at_order"`
	Subtotal     decimal.Decimal `bun:"subtotal,scanonly"`
	CreatedAt    time.Time       `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
}

// LineSubtotal computes quantity x captured price for in-memory selections
// that have not been persisted yet.
func (i *OrderItem) LineSubtotal() decimal.Decimal {
	return i.PriceAtOrder.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
