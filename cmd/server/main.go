// cmd/server is the data store entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/eventdesk/internal/config"
	"github.com/Shivanand-hulikatti/eventdesk/internal/database"
	"github.com/Shivanand-hulikatti/eventdesk/internal/handler"
	"github.com/Shivanand-hulikatti/eventdesk/internal/logging"
	"github.com/Shivanand-hulikatti/eventdesk/internal/repository"
	"github.com/Shivanand-hulikatti/eventdesk/internal/service"
	"github.com/Shivanand-hulikatti/eventdesk/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadServer()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── 1. Open the store ────────────────────────────────────────────────
	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	// ── 2. Wire up layers ────────────────────────────────────────────────
	cat := service.NewCatalog(store, log)
	if err := cat.SeedAdmin(ctx, cfg.Seed); err != nil {
		return err
	}

	shell := web.Shell()
	if cfg.WebDir != "" {
		shell = web.Overlay(os.DirFS(cfg.WebDir), shell)
	}
	router := handler.NewRouter(cat, handler.Assets{Views: web.Views(), Shell: shell}, log)

	// ── 3. Start server with graceful shutdown ───────────────────────────
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", cfg.Addr), zap.String("store", cfg.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// openStore connects to the configured backend and applies migrations.
func openStore(ctx context.Context, cfg config.Server, log *zap.Logger) (*repository.Store, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := database.NewPool(ctx, cfg.Postgres, log)
		if err != nil {
			return nil, nil, err
		}
		if err := database.MigratePostgres(ctx, pool, log); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info("connected to PostgreSQL", zap.String("host", cfg.Postgres.Host))
		return repository.NewPostgresStore(pool), closePool(pool), nil
	default:
		db, err := database.OpenSQLite(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := database.MigrateSQLite(ctx, db, log); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info("opened SQLite", zap.String("path", cfg.SQLite.Path))
		return repository.NewSQLiteStore(db), closeDB(db), nil
	}
}

func closePool(pool *pgxpool.Pool) func() { return pool.Close }

func closeDB(db *sql.DB) func() { return func() { _ = db.Close() } }

