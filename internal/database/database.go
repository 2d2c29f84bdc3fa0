// Package database opens the catalog store (PostgreSQL via pgx or SQLite via
// modernc) and applies its embedded migrations.
package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/Shivanand-hulikatti/eventdesk/internal/config"
)

//go:embed migrations
var migrations embed.FS

// NewPool creates and validates a pgxpool connection pool.
// It retries cfg.ConnectAttempts times to accommodate containers starting up.
func NewPool(ctx context.Context, cfg config.Postgres, log *zap.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	// Sensible pool defaults for a small service.
	poolCfg.MaxConns = 20
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	attempts := cfg.ConnectAttempts
	if attempts == 0 {
		attempts = 1
	}
	backoff := retry.WithMaxRetries(attempts-1, retry.NewConstant(cfg.ConnectBackoff))

	var pool *pgxpool.Pool
	var attempt int
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		p, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			log.Warn("db connect failed", zap.Int("attempt", attempt), zap.Error(err))
			return retry.RetryableError(err)
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			log.Warn("db ping failed", zap.Int("attempt", attempt), zap.Error(err))
			return retry.RetryableError(err)
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	return pool, nil
}

// OpenSQLite opens the SQLite database at path. The special path ":memory:"
// yields a private in-memory database pinned to a single connection.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	if path == ":memory:" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

// MigratePostgres applies the PostgreSQL migrations through the pool.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool, log *zap.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return migrate(ctx, db, goose.DialectPostgres, "migrations/postgres", log)
}

// MigrateSQLite applies the SQLite migrations.
func MigrateSQLite(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	return migrate(ctx, db, goose.DialectSQLite3, "migrations/sqlite", log)
}

func migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect, dir string, log *zap.Logger) error {
	sub, err := fs.Sub(migrations, dir)
	if err != nil {
		return fmt.Errorf("migrations %s: %w", dir, err)
	}
	provider, err := goose.NewProvider(dialect, db, sub)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	for _, r := range results {
		log.Info("migration applied", zap.String("source", r.Source.Path), zap.Duration("took", r.Duration))
	}
	return nil
}
