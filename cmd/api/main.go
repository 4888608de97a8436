package main

import (
	"go.uber.org/fx"

	"github.com/Alexander123-byte/Food-ordering-program/internal/app"
)

func main() {
	fx.New(app.Module).Run()
}
