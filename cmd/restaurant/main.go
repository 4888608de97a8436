package main

import (
	"os"

	"github.com/Alexander123-byte/Food-ordering-program/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
