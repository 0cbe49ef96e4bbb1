package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kreolabs/boutik/internal/catalog"
	"github.com/kreolabs/boutik/internal/config"
	"github.com/kreolabs/boutik/internal/export"
	"github.com/kreolabs/boutik/internal/ledger"
	"github.com/kreolabs/boutik/internal/orders"
	"github.com/kreolabs/boutik/internal/server"
	"github.com/kreolabs/boutik/internal/storage"
	"github.com/kreolabs/boutik/internal/storage/remote"
	"github.com/kreolabs/boutik/internal/storage/sqlite"
	"github.com/kreolabs/boutik/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := buildStore(cfg)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "backend", cfg.StoreBackend)

	ledgerSvc := ledger.New(store)
	orderSvc := orders.New(store)
	catalogSvc := catalog.New(store)
	exporter := export.New(cfg.AppName, ledgerSvc, orderSvc, catalogSvc)

	ctx := context.Background()
	// A failed hydrate is not fatal: the services start empty and the next
	// successful save re-seeds the store.
	if err := ledgerSvc.Load(ctx); err != nil {
		slog.Warn("credit data not loaded, starting empty", "error", err)
	}
	if err := orderSvc.Load(ctx); err != nil {
		slog.Warn("order data not loaded, starting empty", "error", err)
	}
	if err := catalogSvc.Load(ctx); err != nil {
		slog.Warn("catalog data not loaded, starting empty", "error", err)
	}

	handler := server.NewRouter(server.RouterParams{
		Clients: server.NewClientHandler(ledgerSvc),
		Orders:  server.NewOrderHandler(orderSvc),
		Catalog: server.NewCatalogHandler(catalogSvc),
		Export:  server.NewExportHandler(exporter),
		Pricing: server.NewPricingHandler(),
		Metrics: server.NewMetrics(),
	})

	srv := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      handler,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "address", cfg.AppAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-shutdownCtx.Done()
	slog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

// buildStore wires the persistence backend selected by STORE_BACKEND.
func buildStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		return sqlite.New(cfg.DBPath)
	case config.BackendRemote:
		return remote.New(cfg.RemoteURL, cfg.RemoteTimeout), nil
	case config.BackendRemoteFallback:
		local, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("local store for fallback: %w", err)
		}
		return storage.NewFallback(remote.New(cfg.RemoteURL, cfg.RemoteTimeout), local), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
