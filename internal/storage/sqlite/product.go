package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/xenking/shop/internal/storage"
)

const (
	insertProductSQL = `INSERT INTO products (id, name, price) VALUES (?, ?, ?)`

	updateProductSQL = `UPDATE products SET name = ?, price = ? WHERE id = ?`

	getProductSQL = `SELECT id, name, price FROM products WHERE id = ?`

	listProductsSQL = `SELECT id, name, price FROM products ORDER BY id`
)

var _ storage.Store[storage.ProductRow] = (*ProductStore)(nil)

// ProductStore implements the products table on SQLite.
type ProductStore struct {
	db *DB
}

// NewProductStore returns a ProductStore that uses the given DB.
func NewProductStore(db *DB) *ProductStore {
	return &ProductStore{db: db}
}

func (s *ProductStore) Insert(ctx context.Context, row storage.ProductRow) error {
	if _, err := s.db.querier(ctx).ExecContext(ctx, insertProductSQL, row.ID, row.Name, row.Price); err != nil {
		return insertError("product", row.ID, err)
	}
	return nil
}

func (s *ProductStore) Update(ctx context.Context, row storage.ProductRow) error {
	res, err := s.db.querier(ctx).ExecContext(ctx, updateProductSQL, row.Name, row.Price, row.ID)
	if err != nil {
		return fmt.Errorf("updating product %q: %w", row.ID, err)
	}
	return rowsAffected(res, "product", row.ID)
}

func (s *ProductStore) Get(ctx context.Context, id string) (storage.ProductRow, error) {
	var row storage.ProductRow
	err := s.db.querier(ctx).QueryRowContext(ctx, getProductSQL, id).Scan(&row.ID, &row.Name, &row.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ProductRow{}, fmt.Errorf("getting product %q: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return storage.ProductRow{}, fmt.Errorf("getting product %q: %w", id, err)
	}
	return row, nil
}

func (s *ProductStore) List(ctx context.Context) ([]storage.ProductRow, error) {
	rows, err := s.db.querier(ctx).QueryContext(ctx, listProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []storage.ProductRow
	for rows.Next() {
		var row storage.ProductRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Price); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return result, nil
}
