package order

import (
	"context"
	"time"

	"github.com/Alexander123-byte/Food-ordering-program/internal/entity"
)

// MenuGateway resolves menu items for pricing a selection.
type MenuGateway interface {
	GetItem(ctx context.Context, id int64) (*entity.MenuItem, error)
}

// CustomerGateway locates or registers the ordering customer.
type CustomerGateway interface {
	FindOrCreate(ctx context.Context, name, phone, email, address string) (*entity.Customer, error)
}

// OrderGateway owns durable order state and the transaction boundary.
type OrderGateway interface {
	Create(ctx context.Context, order *entity.Order, items []*entity.OrderItem) error
	GetByNumber(ctx context.Context, number string) (*entity.Order, error)
	ListRecent(ctx context.Context, limit int) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus) (bool, error)
	Statistics(ctx context.Context, from, to *time.Time) (entity.Statistics, error)
}
