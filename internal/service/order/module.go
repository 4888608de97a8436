package order

import "go.uber.org/fx"

// Module provides the order workflow service to Fx.
var Module = fx.Provide(NewService)
