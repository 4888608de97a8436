package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Customer is identified by phone number: one record per distinct phone,
// created on first order and reused afterwards.
type Customer struct {
	bun.BaseModel `bun:"table:customers"`

	ID        int64     `bun:",pk,autoincrement"`
	Name      string    `bun:"name,notnull"`
	Phone     string    `bun:"phone"`
	Email     string    `bun:"email"`
	Address   string    `bun:"address"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
}
