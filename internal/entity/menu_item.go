package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// UnavailabilityReasonUnspecified is stored when an item is marked
// unavailable without an explanation, so an unavailable item always carries
// a reason.
const UnavailabilityReasonUnspecified = "unspecified"

// MenuItem is a dish on the menu. Items are never physically deleted; they
// are marked unavailable instead, with an optional free-text reason.
type MenuItem struct {
	bun.BaseModel `bun:"table:menu_items"`

	ID                   int64           `bun:",pk,autoincrement"`
	Name                 string          `bun:"name,notnull"`
	Description          string          `bun:"description"`
	Price                decimal.Decimal `bun:"price"`
	CategoryID           int64           `bun:"category_id"`
	CategoryName         string          `bun:"category_name,scanonly"`
	IsAvailable          bool            `bun:"is_available"`
	UnavailabilityReason *string         `bun:"unavailability_reason"`
	Calories             *int            `bun:"calories"`
	CookingTimeMinutes   *int            `bun:"cooking_time_minutes"`
	CreatedAt            time.Time       `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
	UpdatedAt            time.Time       `bun:"updated_at,nullzero"`
}

// Reason returns the stored unavailability reason, falling back to the
// unspecified sentinel for legacy rows with a NULL reason.
func (m *MenuItem) Reason() string {
	if m.UnavailabilityReason == nil || *m.UnavailabilityReason == "" {
		return UnavailabilityReasonUnspecified
	}
	return *m.UnavailabilityReason
}
