package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderCreatedEvent is published after an order commits. It carries the full
// receipt so downstream consumers (the archive worker in particular) never
// have to read back from the database.
type OrderCreatedEvent struct {
	OrderNumber  string          `json:"order_number"`
	CustomerName string          `json:"customer_name"`
	Status       string          `json:"status"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"created_at"`
	Items        []ReceiptLine   `json:"items"`
}

// ReceiptLine is one priced line of the receipt.
type ReceiptLine struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
}
