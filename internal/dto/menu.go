package dto

import "github.com/shopspring/decimal"

// CategoryResponse represents a menu category via transport layers.
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// MenuItemResponse represents a menu item via transport layers.
type MenuItemResponse struct {
	ID                   int64           `json:"id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	Price                decimal.Decimal `json:"price"`
	CategoryID           int64           `json:"category_id"`
	CategoryName         string          `json:"category_name"`
	IsAvailable          bool            `json:"is_available"`
	UnavailabilityReason *string         `json:"unavailability_reason,omitempty"`
	Calories             *int            `json:"calories,omitempty"`
	CookingTimeMinutes   *int            `json:"cooking_time_minutes,omitempty"`
}

// AddMenuItemRequest is the administrative payload for a new dish.
type AddMenuItemRequest struct {
	Name               string  `json:"name" validate:"required"`
	Description        string  `json:"description"`
	Price              string  `json:"price" validate:"required"`
	CategoryID         int64   `json:"category_id" validate:"required,gt=0"`
	Calories           *int    `json:"calories" validate:"omitempty,gte=0"`
	CookingTimeMinutes *int    `json:"cooking_time_minutes" validate:"omitempty,gte=0"`
}

// SetAvailabilityRequest toggles a dish's availability. Reason is only
// meaningful when Available is false.
type SetAvailabilityRequest struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason"`
}
