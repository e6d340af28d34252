// Package postgres implements the storage tables on PostgreSQL using pgx.
package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/shop/db"
	"github.com/xenking/shop/internal/storage"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// NewPool creates a pgxpool.Pool configured with shopspring/decimal support
// for NUMERIC columns.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	return pool, nil
}

// RunMigrations executes the embedded DDL schema against the pool.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, db.Schema)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// txKey is a private key type to store the transaction in the context.
type txKey struct{}

// DB holds the connection pool shared by all stores.
type DB struct {
	Pool *pgxpool.Pool
}

// NewDB wraps an existing pool.
func NewDB(pool *pgxpool.Pool) *DB {
	return &DB{Pool: pool}
}

// Close closes the database connection pool.
func (d *DB) Close() {
	d.Pool.Close()
}

// WithTransaction runs fn inside a transaction. Stores called with the
// context passed to fn join the transaction. When ctx already carries a
// transaction, fn runs inside it and commit is left to the outer call.
func (d *DB) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }() // no-op after commit

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// querier returns the transaction carried by ctx, or the pool.
func (d *DB) querier(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return d.Pool
}

// Stores returns the customer, product and order tables backed by d.
func (d *DB) Stores() storage.Stores {
	return storage.Stores{
		Customers: NewCustomerStore(d),
		Products:  NewProductStore(d),
		Orders:    NewOrderStore(d),
	}
}

// insertError maps unique violations to storage.ErrAlreadyExists while
// keeping the driver error in the chain.
func insertError(table, id string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("inserting %s %q: %w: %w", table, id, storage.ErrAlreadyExists, err)
	}
	return fmt.Errorf("inserting %s %q: %w", table, id, err)
}

// getError maps pgx.ErrNoRows to storage.ErrNotFound.
func getError(table, id string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("getting %s %q: %w", table, id, storage.ErrNotFound)
	}
	return fmt.Errorf("getting %s %q: %w", table, id, err)
}
