package order

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Alexander123-byte/Food-ordering-program/internal/entity"
)

func line(name string, quantity int, price string) entity.OrderItem {
	return entity.OrderItem{
		MenuItemName: name,
		Quantity:     quantity,
		PriceAtOrder: decimal.RequireFromString(price),
	}
}

func TestDraftTotalRecomputed(t *testing.T) {
	draft := NewDraft()
	if !draft.Total().Equal(decimal.Zero) {
		t.Fatalf("empty draft total = %s, want 0", draft.Total())
	}

	draft.add(line("Margherita", 2, "450"))
	draft.add(line("Cola", 3, "100"))

	want := decimal.RequireFromString("1200")
	if got := draft.Total(); !got.Equal(want) {
		t.Fatalf("Total() = %s, want %s", got, want)
	}

	if !draft.Remove(1) {
		t.Fatal("Remove(1) = false, want true")
	}
	want = decimal.RequireFromString("900")
	if got := draft.Total(); !got.Equal(want) {
		t.Fatalf("Total() after remove = %s, want %s", got, want)
	}
}

func TestDraftRemoveOutOfRange(t *testing.T) {
	draft := NewDraft()
	draft.add(line("Margherita", 1, "450"))

	for _, i := range []int{-1, 1, 5} {
		if draft.Remove(i) {
			t.Errorf("Remove(%d) = true, want false", i)
		}
	}
	if draft.Len() != 1 {
		t.Fatalf("Len() = %d after failed removes, want 1", draft.Len())
	}
}

func TestDraftClear(t *testing.T) {
	draft := NewDraft()
	draft.add(line("Margherita", 1, "450"))
	draft.add(line("Cola", 1, "100"))

	draft.Clear()
	if !draft.Empty() {
		t.Fatal("draft not empty after Clear")
	}
	if !draft.Total().Equal(decimal.Zero) {
		t.Fatalf("cleared draft total = %s, want 0", draft.Total())
	}
}

func TestDraftItemsReturnsCopy(t *testing.T) {
	draft := NewDraft()
	draft.add(line("Margherita", 1, "450"))

	items := draft.Items()
	items[0].Quantity = 99

	if draft.Items()[0].Quantity != 1 {
		t.Fatal("mutating the returned slice changed the draft")
	}
}
