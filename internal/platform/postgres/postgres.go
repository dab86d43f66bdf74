// Package postgres dials the shop database and decides whether the process
// runs against PostgreSQL or the in-memory adapters.
package postgres

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ErrEmptyDSN is returned by Connect when no DSN was provided.
var ErrEmptyDSN = errors.New("postgres dsn is empty")

const pingTimeout = 5 * time.Second

// Connect opens a GORM connection and pings it before handing it out, so a
// misconfigured DSN fails at startup instead of on the first query.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, ErrEmptyDSN
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// ConnectFromEnv connects using the POSTGRES_DSN variable. A missing variable
// or a failed dial is not fatal: the caller gets a nil DB together with a
// no-op cleanup and is expected to serve from memory. The returned cleanup
// closes the underlying pool.
func ConnectFromEnv(ctx context.Context, logger *slog.Logger) (*gorm.DB, func()) {
	noop := func() {}
	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	if dsn == "" {
		warn(logger, "POSTGRES_DSN not set, serving from in-memory repositories", nil)
		return nil, noop
	}
	db, err := Connect(ctx, dsn)
	if err != nil {
		warn(logger, "postgres dial failed, serving from in-memory repositories", err)
		return nil, noop
	}
	sqlDB, err := db.DB()
	if err != nil {
		warn(logger, "postgres pool unwrap failed, serving from in-memory repositories", err)
		return nil, noop
	}
	if logger != nil {
		logger.Info("connected to postgres")
	}
	return db, func() { _ = sqlDB.Close() }
}

func warn(logger *slog.Logger, msg string, err error) {
	if logger == nil {
		return
	}
	if err != nil {
		logger.Warn(msg, slog.String("error", err.Error()))
		return
	}
	logger.Warn(msg)
}
