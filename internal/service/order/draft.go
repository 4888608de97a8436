package order

import (
	"github.com/shopspring/decimal"

	"github.com/Alexander123-byte/Food-ordering-program/internal/entity"
)

// Draft holds an in-progress selection of priced line items. It lives purely
// in memory and is owned by a single session until submitted or abandoned;
// nothing touches storage until Submit.
type Draft struct {
	items []entity.OrderItem
}

// NewDraft returns an empty selection.
func NewDraft() *Draft {
	return &Draft{}
}

func (d *Draft) add(item entity.OrderItem) {
	d.items = append(d.items, item)
}

// Remove drops the selection at position i (zero-based), reporting whether
// anything was removed.
func (d *Draft) Remove(i int) bool {
	if i < 0 || i >= len(d.items) {
		return false
	}
	d.items = append(d.items[:i], d.items[i+1:]...)
	return true
}

// Clear abandons the whole selection. Always permitted.
func (d *Draft) Clear() {
	d.items = nil
}

// Empty reports whether nothing is selected.
func (d *Draft) Empty() bool {
	return len(d.items) == 0
}

// Len returns the number of selected lines.
func (d *Draft) Len() int {
	return len(d.items)
}

// Items returns a copy of the current selection.
func (d *Draft) Items() []entity.OrderItem {
	out := make([]entity.OrderItem, len(d.items))
	copy(out, d.items)
	return out
}

// Total recomputes the sum of line subtotals from scratch on every call, so
// the running total can never drift from the selection.
func (d *Draft) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range d.items {
		total = total.Add(d.items[i].LineSubtotal())
	}
	return total
}
