package entity

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestOrderStatusValid(t *testing.T) {
	tests := []struct {
		status OrderStatus
		want   bool
	}{
		{StatusPending, true},
		{StatusConfirmed, true},
		{StatusPreparing, true},
		{StatusDelivering, true},
		{StatusDelivered, true},
		{StatusCancelled, true},
		{OrderStatus("shipped"), false},
		{OrderStatus("PENDING"), false},
		{OrderStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrderStatusesAllValid(t *testing.T) {
	statuses := OrderStatuses()
	if len(statuses) != 6 {
		t.Fatalf("expected 6 statuses, got %d", len(statuses))
	}
	for _, status := range statuses {
		if !status.Valid() {
			t.Errorf("status %q from OrderStatuses is not valid", status)
		}
	}
}

func TestOrderItemLineSubtotal(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		quantity int
		want     string
	}{
		{"single unit", "450", 1, "450"},
		{"multiple units", "380", 3, "1140"},
		{"fractional price", "2.50", 4, "10"},
		{"zero quantity", "450", 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := OrderItem{
				Quantity:     tt.quantity,
				PriceAtOrder: decimal.RequireFromString(tt.price),
			}
			want := decimal.RequireFromString(tt.want)
			if got := item.LineSubtotal(); !got.Equal(want) {
				t.Errorf("LineSubtotal() = %s, want %s", got, want)
			}
		})
	}
}

func TestMenuItemReason(t *testing.T) {
	oven := "oven is broken"
	empty := ""

	tests := []struct {
		name   string
		reason *string
		want   string
	}{
		{"stored reason", &oven, "oven is broken"},
		{"nil reason", nil, UnavailabilityReasonUnspecified},
		{"empty reason", &empty, UnavailabilityReasonUnspecified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := MenuItem{UnavailabilityReason: tt.reason}
			if got := item.Reason(); got != tt.want {
				t.Errorf("Reason() = %q, want %q", got, tt.want)
			}
		})
	}
}
