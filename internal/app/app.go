package app

import (
	"go.uber.org/fx"

	"github.com/Alexander123-byte/Food-ordering-program/internal/archive"
	"github.com/Alexander123-byte/Food-ordering-program/internal/cache"
	"github.com/Alexander123-byte/Food-ordering-program/internal/config"
	"github.com/Alexander123-byte/Food-ordering-program/internal/database"
	"github.com/Alexander123-byte/Food-ordering-program/internal/logger"
	"github.com/Alexander123-byte/Food-ordering-program/internal/messaging"
	"github.com/Alexander123-byte/Food-ordering-program/internal/observability"
	repositorycustomer "github.com/Alexander123-byte/Food-ordering-program/internal/repository/customer"
	repositorymenu "github.com/Alexander123-byte/Food-ordering-program/internal/repository/menu"
	repositoryorder "github.com/Alexander123-byte/Food-ordering-program/internal/repository/order"
	"github.com/Alexander123-byte/Food-ordering-program/internal/seeder"
	httpserver "github.com/Alexander123-byte/Food-ordering-program/internal/server/http"
	servicemenu "github.com/Alexander123-byte/Food-ordering-program/internal/service/menu"
	serviceorder "github.com/Alexander123-byte/Food-ordering-program/internal/service/order"
	transporthttp "github.com/Alexander123-byte/Food-ordering-program/internal/transport/http"
	"github.com/Alexander123-byte/Food-ordering-program/internal/worker"
	workerorder "github.com/Alexander123-byte/Food-ordering-program/internal/worker/order"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	cache.Module,
	database.Module,
	logger.Module,
	messaging.Module,
	observability.Module,
	archive.Module,
	repositorymenu.Module,
	repositorycustomer.Module,
	repositoryorder.Module,
	servicemenu.Module,
	serviceorder.Module,
)

// HTTP wires the HTTP transport on top of the core modules. The menu seed
// runs at startup so a fresh database is usable immediately.
var HTTP = fx.Options(
	Core,
	seeder.Startup,
	httpserver.Module,
	transporthttp.Module,
)

// Worker exposes background receipt archiving.
var Worker = fx.Options(
	Core,
	worker.Module,
	workerorder.Module,
)

// Module is the default application wiring (HTTP only).
var Module = HTTP
