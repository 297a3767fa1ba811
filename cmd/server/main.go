package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/credatlas/credatlas/internal/api"
	"github.com/credatlas/credatlas/internal/auth"
	"github.com/credatlas/credatlas/internal/config"
	"github.com/credatlas/credatlas/internal/dataset"
	"github.com/credatlas/credatlas/internal/metrics"
	"github.com/credatlas/credatlas/internal/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	slog.Info("credatlas-server starting", "config", *configPath)

	cfg, err := config.Load(*configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Info("no config file — using defaults", "path", *configPath)
		cfg = config.Defaults()
	case err != nil:
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	slog.Info("config loaded",
		"http_port", cfg.Server.HTTPPort,
		"auth_mode", cfg.Server.Auth.Mode,
		"dataset_path", cfg.Server.Dataset.Path,
		"dataset_watch", cfg.Server.Dataset.Watch,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load the dataset once. A missing file is not fatal — serve an empty
	// table so every query behaves as if the table has zero rows.
	table, err := dataset.Load(cfg.Server.Dataset.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Warn("dataset file not found — serving empty dataset",
			"path", cfg.Server.Dataset.Path)
		table = dataset.Empty()
	case err != nil:
		slog.Error("failed to load dataset", "err", err)
		os.Exit(1)
	default:
		slog.Info("dataset loaded",
			"path", cfg.Server.Dataset.Path,
			"rows", table.Len(),
			"columns", len(table.Columns()),
		)
	}

	st := store.New(table)
	reg := metrics.NewRegistry()
	reg.SetDatasetRows(table.Len())

	// Optional hot reload: swap the whole immutable table on file change.
	if cfg.Server.Dataset.Watch {
		go func() {
			err := dataset.Watch(ctx, cfg.Server.Dataset.Path, func(t *dataset.Table) {
				st.Replace(t)
				reg.SetDatasetRows(t.Len())
			})
			if err != nil {
				slog.Error("dataset watcher stopped", "err", err)
			}
		}()
	}

	handler := auth.Middleware(
		cfg.Server.Auth.Mode,
		cfg.Server.Auth.EffectiveHeader(),
		cfg.Server.Auth.Key(),
		api.New(st, reg),
	)

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler: handler,
	}
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
		}
	}()

	<-ctx.Done()
	slog.Info("credatlas-server shutting down")
	httpSrv.Shutdown(context.Background()) //nolint:errcheck
}
