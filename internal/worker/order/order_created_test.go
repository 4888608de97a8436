package order

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Alexander123-byte/Food-ordering-program/internal/archive"
	"github.com/Alexander123-byte/Food-ordering-program/internal/config"
	"github.com/Alexander123-byte/Food-ordering-program/internal/messaging"
	ordersvc "github.com/Alexander123-byte/Food-ordering-program/internal/service/order"
)

func TestOrderCreatedHandlerArchivesReceipt(t *testing.T) {
	store, err := archive.NewStoreAt(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewStoreAt: %v", err)
	}

	cfg := config.Config{}
	cfg.Messaging.Kafka.Topic = "orders.created"
	registration := NewOrderCreatedHandler(store, zap.NewNop(), cfg)
	if registration.Topic != "orders.created" {
		t.Fatalf("Topic = %q, want orders.created", registration.Topic)
	}

	event := ordersvc.OrderCreatedEvent{
		OrderNumber:  "ORD-20240315-AB12CD",
		CustomerName: "Ann",
		Status:       "pending",
		Total:        decimal.RequireFromString("900"),
		CreatedAt:    time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
		Items: []ordersvc.ReceiptLine{
			{Name: "Margherita", Quantity: 2, Price: decimal.RequireFromString("450"), Subtotal: decimal.RequireFromString("900")},
		},
	}
	payload, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}

	msg := messaging.Message{Topic: "orders.created", Key: []byte(event.OrderNumber), Value: payload}
	if err := registration.Handler(context.Background(), msg); err != nil {
		t.Fatalf("handler: %v", err)
	}

	receipt, err := store.Read("ORD-20240315-AB12CD")
	if err != nil {
		t.Fatalf("Read archived receipt: %v", err)
	}
	if receipt.CustomerName != "Ann" || len(receipt.Items) != 1 {
		t.Errorf("unexpected receipt: %+v", receipt)
	}
}

func TestOrderCreatedHandlerRejectsGarbage(t *testing.T) {
	store, err := archive.NewStoreAt(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewStoreAt: %v", err)
	}
	cfg := config.Config{}
	cfg.Messaging.Kafka.Topic = "orders.created"
	registration := NewOrderCreatedHandler(store, zap.NewNop(), cfg)

	msg := messaging.Message{Topic: "orders.created", Value: []byte("{not json")}
	if err := registration.Handler(context.Background(), msg); err == nil {
		t.Fatal("expected an error for an undecodable message")
	}
}
