// Package main is the layerkit console: administrative commands that run
// against the configured database.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/layerkit/layerkit/internal/app"
	"github.com/layerkit/layerkit/internal/config"
	"github.com/layerkit/layerkit/internal/console"
	"github.com/layerkit/layerkit/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Console output belongs to the operator; logs go to stderr.
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	c := console.New(out)
	c.Register(console.NewUserCreateCommand(a.Users, in, out))
	c.Register(console.NewMigrateCommand(a, out))

	return c.Run(ctx, args)
}
