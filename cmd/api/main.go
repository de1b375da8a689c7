// Package main is the entrypoint for the layerkit web server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/layerkit/layerkit/internal/app"
	"github.com/layerkit/layerkit/internal/config"
	"github.com/layerkit/layerkit/internal/handler"
	"github.com/layerkit/layerkit/internal/logging"
	"github.com/layerkit/layerkit/internal/server"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to start", "error", err)
		os.Exit(1)
	}

	if err := a.Migrate(ctx); err != nil {
		logger.Error("failed to migrate database", "error", err)
		_ = a.Close()
		os.Exit(1)
	}

	r := newRouter(routerDeps{
		pages:   handler.New(a.Users, logger),
		admin:   handler.NewAdminHandler(a.Users, logger),
		health:  handler.NewHealthHandler(a.Database(), a.Cache()),
		metrics: handler.NewMetricsHandler(a.Metrics),
		isDev:   cfg.IsDevelopment(),
		logger:  logger,
	})

	srv := server.New(r, server.Options{
		Addr:            fmt.Sprintf(":%d", cfg.AppPort),
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)
	a.RegisterShutdown(srv)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"driver", cfg.DatabaseDriver,
		"cache", cfg.CacheEnabled(),
	)

	if err := srv.ListenAndRun(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
