package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/go-faster/errors"
)

// CurrentSchemaVersion is the version of the last migration.
const CurrentSchemaVersion = "1.0.0"

// Migration is one forward schema step.
type Migration struct {
	Version string
	Up      string
}

// AllMigrations contains every migration in order.
var AllMigrations = []Migration{
	{Version: "1.0.0", Up: migrationV1Up},
}

// Decimal columns are TEXT so that values round-trip without float rounding.
const migrationV1Up = `
CREATE TABLE IF NOT EXISTS schema_version (
    version    TEXT PRIMARY KEY,
    applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS customers (
    id            TEXT PRIMARY KEY,
    name          TEXT    NOT NULL,
    street        TEXT,
    number        INTEGER,
    zipcode       TEXT,
    city          TEXT,
    active        BOOLEAN NOT NULL DEFAULT 1,
    reward_points TEXT    NOT NULL DEFAULT '0'
);

CREATE TABLE IF NOT EXISTS products (
    id    TEXT PRIMARY KEY,
    name  TEXT NOT NULL,
    price TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS orders (
    id          TEXT PRIMARY KEY,
    customer_id TEXT NOT NULL,
    total       TEXT NOT NULL,
    FOREIGN KEY (customer_id) REFERENCES customers(id)
);

CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id);

CREATE TABLE IF NOT EXISTS order_items (
    id         TEXT PRIMARY KEY,
    order_id   TEXT    NOT NULL,
    product_id TEXT    NOT NULL,
    name       TEXT    NOT NULL,
    price      TEXT    NOT NULL,
    quantity   INTEGER NOT NULL CHECK (quantity > 0),
    position   INTEGER NOT NULL,
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
    FOREIGN KEY (product_id) REFERENCES products(id)
);

CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id, position);
`

// ApplyMigrations runs all pending migrations.
func ApplyMigrations(ctx context.Context, db *sql.DB) error {
	current, err := schemaVersion(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range AllMigrations {
		v, err := semver.NewVersion(m.Version)
		if err != nil {
			return fmt.Errorf("invalid migration version %s: %w", m.Version, err)
		}
		if !v.GreaterThan(current) {
			continue
		}

		if _, err := db.ExecContext(ctx, m.Up); err != nil {
			return fmt.Errorf("applying migration %s: %w", m.Version, err)
		}
		if _, err := db.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return fmt.Errorf("recording migration %s: %w", m.Version, err)
		}
	}
	return nil
}

// schemaVersion returns the highest applied version, or 0.0.0 on a fresh
// database.
func schemaVersion(ctx context.Context, db *sql.DB) (*semver.Version, error) {
	zero := semver.MustParse("0.0.0")

	var name string
	err := db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, nil
	}
	if err != nil {
		return nil, fmt.Errorf("checking schema_version table: %w", err)
	}

	rows, err := db.QueryContext(ctx, "SELECT version FROM schema_version")
	if err != nil {
		return nil, fmt.Errorf("reading schema_version: %w", err)
	}
	defer func() { _ = rows.Close() }()

	current := zero
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scanning schema_version: %w", err)
		}
		v, err := semver.NewVersion(s)
		if err != nil {
			return nil, fmt.Errorf("invalid schema version %s: %w", s, err)
		}
		if v.GreaterThan(current) {
			current = v
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading schema_version: %w", err)
	}
	return current, nil
}
