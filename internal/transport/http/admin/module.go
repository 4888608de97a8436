package admin

import (
	"go.uber.org/fx"

	"github.com/labstack/echo/v4"

	"github.com/Alexander123-byte/Food-ordering-program/internal/config"
)

// Module wires HTTP admin handlers behind the passphrase gate.
var Module = fx.Options(
	fx.Provide(NewHandler),
	fx.Invoke(func(e *echo.Echo, h *Handler, cfg config.Config) {
		Register(e, h, cfg)
	}),
)
