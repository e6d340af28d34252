package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/xenking/shop/internal/storage"
)

const (
	insertProductSQL = `INSERT INTO products (id, name, price) VALUES ($1, $2, $3)`

	updateProductSQL = `UPDATE products SET name = $2, price = $3 WHERE id = $1`

	getProductSQL = `SELECT id, name, price FROM products WHERE id = $1`

	listProductsSQL = `SELECT id, name, price FROM products ORDER BY id`
)

var _ storage.Store[storage.ProductRow] = (*ProductStore)(nil)

// ProductStore implements the products table on PostgreSQL.
type ProductStore struct {
	db *DB
}

// NewProductStore returns a ProductStore that uses the given DB.
func NewProductStore(db *DB) *ProductStore {
	return &ProductStore{db: db}
}

// Insert adds a new product row.
func (s *ProductStore) Insert(ctx context.Context, row storage.ProductRow) error {
	_, err := s.db.querier(ctx).Exec(ctx, insertProductSQL, row.ID, row.Name, row.Price)
	if err != nil {
		return insertError("product", row.ID, err)
	}
	return nil
}

// Update overwrites the name and price of the product row with the same id.
func (s *ProductStore) Update(ctx context.Context, row storage.ProductRow) error {
	tag, err := s.db.querier(ctx).Exec(ctx, updateProductSQL, row.ID, row.Name, row.Price)
	if err != nil {
		return fmt.Errorf("updating product %q: %w", row.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("updating product %q: %w", row.ID, storage.ErrNotFound)
	}
	return nil
}

// Get returns a single product row by its identifier.
func (s *ProductStore) Get(ctx context.Context, id string) (storage.ProductRow, error) {
	rows, err := s.db.querier(ctx).Query(ctx, getProductSQL, id)
	if err != nil {
		return storage.ProductRow{}, fmt.Errorf("getting product %q: %w", id, err)
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		return storage.ProductRow{}, getError("product", id, err)
	}
	return p, nil
}

// List returns all product rows ordered by id.
func (s *ProductStore) List(ctx context.Context) ([]storage.ProductRow, error) {
	rows, err := s.db.querier(ctx).Query(ctx, listProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return pgx.CollectRows(rows, scanProduct)
}

func scanProduct(row pgx.CollectableRow) (storage.ProductRow, error) {
	var p storage.ProductRow
	err := row.Scan(&p.ID, &p.Name, &p.Price)
	return p, err
}
