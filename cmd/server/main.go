package main

import (
	"context"
	"fmt"
	"os"

	"github.com/genneg/SwingRadar-sub000/internal/app"
	"github.com/genneg/SwingRadar-sub000/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "event-search: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}

	return a.Run(ctx)
}
