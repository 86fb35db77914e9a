package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresDB struct {
	Conn *pgxpool.Pool
}

const ErrConflictCode = "23505"

// IsConflict reports whether err is a unique-constraint violation.
func IsConflict(err error) bool {
	var pgxErr *pgconn.PgError
	return errors.As(err, &pgxErr) && pgxErr.Code == ErrConflictCode
}

// poolConfig parses the connection string and applies the pool limits.
// The limits have to be set before the pool is built: pgxpool copies its
// config on construction, so mutating pool.Config() afterwards has no effect.
func poolConfig(storagePath string, maxConns int, maxConnIdleTime time.Duration) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(storagePath)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = int32(maxConns)
	cfg.MaxConnIdleTime = maxConnIdleTime
	return cfg, nil
}

func New(ctx context.Context, storagePath string, maxConns int, maxConnIdleTime time.Duration) (*PostgresDB, error) {
	cfg, err := poolConfig(storagePath, maxConns, maxConnIdleTime)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}
	return &PostgresDB{Conn: pool}, nil
}

// WithTx runs fn inside a transaction on a single pooled connection.
// The transaction is rolled back on any error (including a panic unwinding
// through the deferred rollback) and committed otherwise, so a connection is
// never returned to the pool with a transaction still open.
func (db *PostgresDB) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := db.Conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
