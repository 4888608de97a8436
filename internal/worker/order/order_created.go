package order

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Alexander123-byte/Food-ordering-program/internal/archive"
	"github.com/Alexander123-byte/Food-ordering-program/internal/config"
	"github.com/Alexander123-byte/Food-ordering-program/internal/messaging"
	ordersvc "github.com/Alexander123-byte/Food-ordering-program/internal/service/order"
	"github.com/Alexander123-byte/Food-ordering-program/internal/worker"
)

var workerTracer = otel.Tracer("github.com/Alexander123-byte/Food-ordering-program/worker/order")

// Module registers order-related worker handlers.
var Module = fx.Module("worker_order",
	fx.Provide(
		fx.Annotate(
			NewOrderCreatedHandler,
			fx.ResultTags(`group:"worker.handlers"`),
		),
	),
)

// NewOrderCreatedHandler archives every created order as a JSON receipt in
// the file store, giving the reporting CLI a database-free data source.
func NewOrderCreatedHandler(store *archive.Store, logger *zap.Logger, cfg config.Config) worker.HandlerRegistration {
	handler := func(ctx context.Context, msg messaging.Message) error {
		_, span := workerTracer.Start(ctx, "worker.orders.archive", trace.WithAttributes(
			attribute.String("messaging.topic", msg.Topic),
		))
		defer span.End()

		var event ordersvc.OrderCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("failed to decode order created", zap.Error(err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "decode error")
			return err
		}

		receipt := archive.Receipt{
			OrderNumber:  event.OrderNumber,
			CustomerName: event.CustomerName,
			Status:       event.Status,
			Total:        event.Total,
			CreatedAt:    event.CreatedAt,
			Items:        make([]archive.ReceiptItem, 0, len(event.Items)),
		}
		for _, line := range event.Items {
			receipt.Items = append(receipt.Items, archive.ReceiptItem{
				Name:     line.Name,
				Quantity: line.Quantity,
				Price:    line.Price,
				Subtotal: line.Subtotal,
			})
		}

		path, err := store.Write(receipt)
		if err != nil {
			logger.Error("failed to archive order", zap.String("number", event.OrderNumber), zap.Error(err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "archive error")
			return err
		}
		logger.Info("order archived",
			zap.String("number", event.OrderNumber),
			zap.String("path", path),
		)
		return nil
	}

	return worker.HandlerRegistration{
		Topic:   cfg.Messaging.Kafka.Topic,
		Handler: handler,
	}
}
