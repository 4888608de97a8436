package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Alexander123-byte/Food-ordering-program/internal/entity"
	menurepo "github.com/Alexander123-byte/Food-ordering-program/internal/repository/menu"
	orderrepo "github.com/Alexander123-byte/Food-ordering-program/internal/repository/order"
	"github.com/Alexander123-byte/Food-ordering-program/pkg/errorbank"
)

type fakeMenu struct {
	items map[int64]*entity.MenuItem
}

func (f *fakeMenu) GetItem(_ context.Context, id int64) (*entity.MenuItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, menurepo.ErrNotFound
	}
	clone := *item
	return &clone, nil
}

type fakeCustomers struct {
	byPhone map[string]*entity.Customer
	nextID  int64
	created int
}

func (f *fakeCustomers) FindOrCreate(_ context.Context, name, phone, email, address string) (*entity.Customer, error) {
	if existing, ok := f.byPhone[phone]; ok {
		return existing, nil
	}
	f.nextID++
	f.created++
	customer := &entity.Customer{ID: f.nextID, Name: name, Phone: phone, Email: email, Address: address}
	if f.byPhone == nil {
		f.byPhone = make(map[string]*entity.Customer)
	}
	f.byPhone[phone] = customer
	return customer, nil
}

type fakeOrders struct {
	createErr error
	created   []*entity.Order
	items     map[string][]*entity.OrderItem
	statuses  map[int64]entity.OrderStatus
}

func (f *fakeOrders) Create(_ context.Context, order *entity.Order, items []*entity.OrderItem) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, order)
	if f.items == nil {
		f.items = make(map[string][]*entity.OrderItem)
	}
	f.items[order.Number] = items
	return nil
}

func (f *fakeOrders) GetByNumber(_ context.Context, number string) (*entity.Order, error) {
	for _, order := range f.created {
		if order.Number == number {
			return order, nil
		}
	}
	return nil, orderrepo.ErrNotFound
}

func (f *fakeOrders) ListRecent(_ context.Context, limit int) ([]entity.Order, error) {
	out := make([]entity.Order, 0, len(f.created))
	for _, order := range f.created {
		out = append(out, *order)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, id int64, status entity.OrderStatus) (bool, error) {
	if !status.Valid() {
		return false, orderrepo.ErrInvalidStatus
	}
	if _, ok := f.statuses[id]; !ok {
		return false, nil
	}
	f.statuses[id] = status
	return true, nil
}

func (f *fakeOrders) Statistics(_ context.Context, _, _ *time.Time) (entity.Statistics, error) {
	return entity.Statistics{TotalOrders: int64(len(f.created))}, nil
}

func newTestService(menu *fakeMenu, customers *fakeCustomers, orders *fakeOrders) *Service {
	return &Service{
		menu:      menu,
		customers: customers,
		orders:    orders,
		logger:    zap.NewNop(),
		now:       func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) },
	}
}

func testMenu() *fakeMenu {
	reason := "oven is broken"
	return &fakeMenu{items: map[int64]*entity.MenuItem{
		1: {ID: 1, Name: "Margherita", Price: decimal.RequireFromString("450"), IsAvailable: true},
		2: {ID: 2, Name: "Cola", Price: decimal.RequireFromString("100"), IsAvailable: true},
		3: {ID: 3, Name: "Calzone", Price: decimal.RequireFromString("520"), IsAvailable: false, UnavailabilityReason: &reason},
	}}
}

func TestAddToDraft(t *testing.T) {
	svc := newTestService(testMenu(), &fakeCustomers{}, &fakeOrders{})
	ctx := context.Background()

	t.Run("prices the line from the menu", func(t *testing.T) {
		draft := NewDraft()
		line, err := svc.AddToDraft(ctx, draft, 1, 2)
		if err != nil {
			t.Fatalf("AddToDraft: %v", err)
		}
		if line.MenuItemName != "Margherita" || line.Quantity != 2 {
			t.Errorf("unexpected line: %+v", line)
		}
		if !line.PriceAtOrder.Equal(decimal.RequireFromString("450")) {
			t.Errorf("PriceAtOrder = %s, want 450", line.PriceAtOrder)
		}
		if draft.Len() != 1 {
			t.Errorf("draft has %d lines, want 1", draft.Len())
		}
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		draft := NewDraft()
		for _, quantity := range []int{0, -1} {
			_, err := svc.AddToDraft(ctx, draft, 1, quantity)
			if errorbank.From(err).Kind() != errorbank.KindBadRequest {
				t.Errorf("quantity %d: kind = %s, want bad_request", quantity, errorbank.From(err).Kind())
			}
		}
		if !draft.Empty() {
			t.Error("rejected additions reached the draft")
		}
	})

	t.Run("rejects unknown item", func(t *testing.T) {
		_, err := svc.AddToDraft(ctx, NewDraft(), 99, 1)
		if errorbank.From(err).Kind() != errorbank.KindNotFound {
			t.Errorf("kind = %s, want not_found", errorbank.From(err).Kind())
		}
	})

	t.Run("rejects unavailable item with its reason", func(t *testing.T) {
		_, err := svc.AddToDraft(ctx, NewDraft(), 3, 1)
		appErr := errorbank.From(err)
		if appErr.Kind() != errorbank.KindUnprocessableEntity {
			t.Fatalf("kind = %s, want unprocessable", appErr.Kind())
		}
		if got := appErr.Details()["reason"]; got != "oven is broken" {
			t.Errorf("reason detail = %v, want %q", got, "oven is broken")
		}
	})

	t.Run("price snapshot survives a menu change", func(t *testing.T) {
		menu := testMenu()
		svc := newTestService(menu, &fakeCustomers{}, &fakeOrders{})
		draft := NewDraft()
		if _, err := svc.AddToDraft(ctx, draft, 1, 1); err != nil {
			t.Fatalf("AddToDraft: %v", err)
		}

		menu.items[1].Price = decimal.RequireFromString("999")

		if got := draft.Items()[0].PriceAtOrder; !got.Equal(decimal.RequireFromString("450")) {
			t.Errorf("snapshot price = %s, want 450", got)
		}
	})
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	info := CheckoutInfo{Name: "Ann", Phone: "+700111", Email: "ann@example.com"}

	t.Run("persists the draft and clears it", func(t *testing.T) {
		orders := &fakeOrders{}
		svc := newTestService(testMenu(), &fakeCustomers{}, orders)
		draft := NewDraft()
		mustAdd(t, svc, draft, 1, 2)
		mustAdd(t, svc, draft, 2, 3)

		confirmation, err := svc.Submit(ctx, draft, info)
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if !confirmation.Total.Equal(decimal.RequireFromString("1200")) {
			t.Errorf("Total = %s, want 1200", confirmation.Total)
		}
		if len(orders.created) != 1 {
			t.Fatalf("%d orders created, want 1", len(orders.created))
		}

		order := orders.created[0]
		if order.Status != entity.StatusPending {
			t.Errorf("status = %s, want pending", order.Status)
		}
		if order.PaymentMethod != "cash" {
			t.Errorf("payment method = %q, want cash default", order.PaymentMethod)
		}
		if len(orders.items[order.Number]) != 2 {
			t.Errorf("%d items persisted, want 2", len(orders.items[order.Number]))
		}
		if !draft.Empty() {
			t.Error("draft not cleared after successful submit")
		}
	})

	t.Run("rejects an empty draft", func(t *testing.T) {
		svc := newTestService(testMenu(), &fakeCustomers{}, &fakeOrders{})
		_, err := svc.Submit(ctx, NewDraft(), info)
		if errorbank.From(err).Kind() != errorbank.KindBadRequest {
			t.Errorf("kind = %s, want bad_request", errorbank.From(err).Kind())
		}
	})

	t.Run("requires name and phone", func(t *testing.T) {
		svc := newTestService(testMenu(), &fakeCustomers{}, &fakeOrders{})
		for _, missing := range []CheckoutInfo{
			{Phone: "+700111"},
			{Name: "Ann"},
		} {
			draft := NewDraft()
			mustAdd(t, svc, draft, 1, 1)
			_, err := svc.Submit(ctx, draft, missing)
			if errorbank.From(err).Kind() != errorbank.KindBadRequest {
				t.Errorf("kind = %s, want bad_request", errorbank.From(err).Kind())
			}
			if draft.Empty() {
				t.Error("draft cleared on rejected submit")
			}
		}
	})

	t.Run("keeps the draft when persistence fails", func(t *testing.T) {
		orders := &fakeOrders{createErr: errors.New("connection refused")}
		svc := newTestService(testMenu(), &fakeCustomers{}, orders)
		draft := NewDraft()
		mustAdd(t, svc, draft, 1, 2)

		_, err := svc.Submit(ctx, draft, info)
		if errorbank.From(err).Kind() != errorbank.KindInternal {
			t.Errorf("kind = %s, want internal", errorbank.From(err).Kind())
		}
		if draft.Len() != 1 {
			t.Errorf("draft has %d lines after failed submit, want 1", draft.Len())
		}
	})

	t.Run("reuses the customer on repeat phone", func(t *testing.T) {
		customers := &fakeCustomers{}
		svc := newTestService(testMenu(), customers, &fakeOrders{})

		for i := 0; i < 2; i++ {
			draft := NewDraft()
			mustAdd(t, svc, draft, 2, 1)
			if _, err := svc.Submit(ctx, draft, info); err != nil {
				t.Fatalf("Submit %d: %v", i, err)
			}
		}
		if customers.created != 1 {
			t.Errorf("%d customers created, want 1", customers.created)
		}
	})

	t.Run("assigns distinct order numbers", func(t *testing.T) {
		orders := &fakeOrders{}
		svc := newTestService(testMenu(), &fakeCustomers{}, orders)

		for i := 0; i < 2; i++ {
			draft := NewDraft()
			mustAdd(t, svc, draft, 1, 1)
			if _, err := svc.Submit(ctx, draft, info); err != nil {
				t.Fatalf("Submit %d: %v", i, err)
			}
		}
		if orders.created[0].Number == orders.created[1].Number {
			t.Errorf("duplicate order number %q", orders.created[0].Number)
		}
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	orders := &fakeOrders{statuses: map[int64]entity.OrderStatus{7: entity.StatusPending}}
	svc := newTestService(testMenu(), &fakeCustomers{}, orders)

	if err := svc.UpdateStatus(ctx, 7, "preparing"); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if orders.statuses[7] != entity.StatusPreparing {
		t.Errorf("status = %s, want preparing", orders.statuses[7])
	}

	err := svc.UpdateStatus(ctx, 7, "shipped")
	if errorbank.From(err).Kind() != errorbank.KindBadRequest {
		t.Errorf("invalid status kind = %s, want bad_request", errorbank.From(err).Kind())
	}

	err = svc.UpdateStatus(ctx, 99, "confirmed")
	if errorbank.From(err).Kind() != errorbank.KindNotFound {
		t.Errorf("missing order kind = %s, want not_found", errorbank.From(err).Kind())
	}
}

func TestByNumber(t *testing.T) {
	ctx := context.Background()
	orders := &fakeOrders{}
	svc := newTestService(testMenu(), &fakeCustomers{}, orders)

	draft := NewDraft()
	mustAdd(t, svc, draft, 1, 1)
	confirmation, err := svc.Submit(ctx, draft, CheckoutInfo{Name: "Ann", Phone: "+700111"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	order, err := svc.ByNumber(ctx, confirmation.OrderNumber)
	if err != nil {
		t.Fatalf("ByNumber: %v", err)
	}
	if order.Number != confirmation.OrderNumber {
		t.Errorf("Number = %q, want %q", order.Number, confirmation.OrderNumber)
	}

	_, err = svc.ByNumber(ctx, "ORD-19700101-000000")
	if errorbank.From(err).Kind() != errorbank.KindNotFound {
		t.Errorf("kind = %s, want not_found", errorbank.From(err).Kind())
	}
}

type failingStatsOrders struct {
	fakeOrders
}

func (f *failingStatsOrders) Statistics(_ context.Context, _, _ *time.Time) (entity.Statistics, error) {
	return entity.Statistics{}, errors.New("connection refused")
}

func TestStatisticsDegradesToZero(t *testing.T) {
	svc := newTestService(testMenu(), &fakeCustomers{}, &fakeOrders{})
	svc.orders = &failingStatsOrders{}

	stats := svc.Statistics(context.Background(), nil, nil)
	if stats.TotalOrders != 0 || !stats.TotalRevenue.Equal(decimal.Zero) {
		t.Errorf("degraded statistics not zeroed: %+v", stats)
	}
	if stats.PopularItems == nil {
		t.Error("PopularItems should be an empty slice, not nil")
	}
}

func mustAdd(t *testing.T, svc *Service, draft *Draft, itemID int64, quantity int) {
	t.Helper()
	if _, err := svc.AddToDraft(context.Background(), draft, itemID, quantity); err != nil {
		t.Fatalf("AddToDraft(%d, %d): %v", itemID, quantity, err)
	}
}
