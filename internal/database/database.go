// Package database owns the PostgreSQL connection pool, the embedded goose
// migrations and the development seed data.
package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"

	"bookmarkbrain/internal/logger"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Pool limits applied to every connection pool.
const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
	pingTimeout     = 3 * time.Second
)

// connectRetries is how many extra pings Connect attempts while PostgreSQL
// is still starting.
var connectRetries uint64 = 5

// Connect opens a pgx-backed pool for dsn and pings it, backing off
// exponentially between attempts until ctx ends or retries run out.
func Connect(ctx context.Context, dsn string, log *logger.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("database open: %w", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	backoff := retry.WithMaxRetries(connectRetries, retry.NewExponential(500*time.Millisecond))
	attempt := 0
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := db.PingContext(pctx); err != nil {
			log.Warn("database not ready", "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping: %w", err)
	}

	log.Info("database connected", "attempts", attempt)
	return db, nil
}

// Migrate applies every pending migration embedded under migrations/.
func Migrate(ctx context.Context, db *sql.DB, log *logger.Logger) error {
	fsys, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return fmt.Errorf("migrations fs: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	for _, r := range results {
		log.Info("migration applied", "version", r.Source.Version, "file", r.Source.Path, "duration", r.Duration.String())
	}
	log.Info("database schema up to date", "applied", len(results))
	return nil
}
