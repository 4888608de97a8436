package customer

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alexander123-byte/Food-ordering-program/internal/database"
	"github.com/Alexander123-byte/Food-ordering-program/internal/entity"
)

var repoTracer = otel.Tracer("github.com/Alexander123-byte/Food-ordering-program/repository/customer")

// Repository encapsulates storage access for customers.
type Repository struct {
	writer *bun.DB
	reader *bun.DB
}

// NewRepository wires a repository backed by configured database connections.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{
		writer: conns.Writer,
		reader: conns.Reader,
	}
}

// FindOrCreate looks a customer up by phone and returns the existing record
// unchanged on a hit; name, email, and address are used only when a new row
// is inserted on a miss.
func (r *Repository) FindOrCreate(ctx context.Context, name, phone, email, address string) (*entity.Customer, error) {
	ctx, span := repoTracer.Start(ctx, "CustomerRepository.FindOrCreate",
		trace.WithAttributes(attribute.String("customer.phone", phone)))
	defer span.End()

	existing := new(entity.Customer)
	err := r.writer.NewSelect().
		Model(existing).
		Where("phone = ?", phone).
		Scan(ctx)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}

	created := &entity.Customer{
		Name:    name,
		Phone:   phone,
		Email:   email,
		Address: address,
	}
	if _, err := r.writer.NewInsert().Model(created).Exec(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return nil, err
	}
	return created, nil
}
