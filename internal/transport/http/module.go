package http

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/fx"

	"github.com/Alexander123-byte/Food-ordering-program/internal/transport/http/admin"
	"github.com/Alexander123-byte/Food-ordering-program/internal/transport/http/menu"
	"github.com/Alexander123-byte/Food-ordering-program/internal/transport/http/order"
)

// Module aggregates every HTTP transport group and the request validator
// they share.
var Module = fx.Options(
	fx.Provide(validator.New),
	menu.Module,
	order.Module,
	admin.Module,
)
