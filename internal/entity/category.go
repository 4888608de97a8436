package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Category groups menu items. Categories are created at seed time or by an
// administrator and are immutable afterwards.
type Category struct {
	bun.BaseModel `bun:"table:categories"`

	ID          int64     `bun:",pk,autoincrement"`
	Name        string    `bun:"name,notnull"`
	Description string    `bun:"description"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
}
