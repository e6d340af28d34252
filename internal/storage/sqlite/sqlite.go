// Package sqlite implements the storage tables on SQLite through database/sql.
//
// The default build uses the pure Go modernc.org/sqlite driver. Building with
// the sqlite_cgo tag switches to github.com/mattn/go-sqlite3.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xenking/shop/internal/storage"
)

// DB wraps a SQLite database handle.
type DB struct {
	db *sql.DB
}

// Open opens the SQLite database at path (":memory:" for an in-memory
// database) and applies pending migrations.
func Open(ctx context.Context, path string) (*DB, error) {
	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// One connection: an in-memory database lives and dies with its
	// connection, and pragmas are per connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := ApplyMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying migrations: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// PingContext verifies the database is reachable.
func (d *DB) PingContext(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// querier is an interface that both *sql.DB and *sql.Tx implement
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

// WithTransaction runs fn inside a transaction joined by every store call
// made with the context passed to fn. Nested calls reuse the outer transaction.
func (d *DB) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (d *DB) querier(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return d.db
}

// Stores returns the customer, product and order tables backed by d.
func (d *DB) Stores() storage.Stores {
	return storage.Stores{
		Customers: NewCustomerStore(d),
		Products:  NewProductStore(d),
		Orders:    NewOrderStore(d),
	}
}

func insertError(table, id string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("inserting %s %q: %w: %w", table, id, storage.ErrAlreadyExists, err)
	}
	return fmt.Errorf("inserting %s %q: %w", table, id, err)
}

func rowsAffected(res sql.Result, table, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating %s %q: %w", table, id, err)
	}
	if n == 0 {
		return fmt.Errorf("updating %s %q: %w", table, id, storage.ErrNotFound)
	}
	return nil
}
