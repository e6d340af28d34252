package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/xenking/shop/internal/storage"
)

const (
	insertCustomerSQL = `INSERT INTO customers (id, name, street, number, zipcode, city, active, reward_points)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	updateCustomerSQL = `UPDATE customers
		SET name = $2, street = $3, number = $4, zipcode = $5, city = $6, active = $7, reward_points = $8
		WHERE id = $1`

	getCustomerSQL = `SELECT id, name, street, number, zipcode, city, active, reward_points
		FROM customers WHERE id = $1`

	listCustomersSQL = `SELECT id, name, street, number, zipcode, city, active, reward_points
		FROM customers ORDER BY id`
)

var _ storage.Store[storage.CustomerRow] = (*CustomerStore)(nil)

// CustomerStore implements the customers table on PostgreSQL.
type CustomerStore struct {
	db *DB
}

// NewCustomerStore returns a CustomerStore that uses the given DB.
func NewCustomerStore(db *DB) *CustomerStore {
	return &CustomerStore{db: db}
}

// Insert adds a new customer row.
func (s *CustomerStore) Insert(ctx context.Context, row storage.CustomerRow) error {
	_, err := s.db.querier(ctx).Exec(ctx, insertCustomerSQL, customerArgs(row)...)
	if err != nil {
		return insertError("customer", row.ID, err)
	}
	return nil
}

// Update overwrites every column of the customer row with the same id.
func (s *CustomerStore) Update(ctx context.Context, row storage.CustomerRow) error {
	tag, err := s.db.querier(ctx).Exec(ctx, updateCustomerSQL, customerArgs(row)...)
	if err != nil {
		return fmt.Errorf("updating customer %q: %w", row.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("updating customer %q: %w", row.ID, storage.ErrNotFound)
	}
	return nil
}

// Get returns the customer row with the given id.
func (s *CustomerStore) Get(ctx context.Context, id string) (storage.CustomerRow, error) {
	rows, err := s.db.querier(ctx).Query(ctx, getCustomerSQL, id)
	if err != nil {
		return storage.CustomerRow{}, fmt.Errorf("getting customer %q: %w", id, err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, scanCustomer)
	if err != nil {
		return storage.CustomerRow{}, getError("customer", id, err)
	}
	return row, nil
}

// List returns all customer rows ordered by id.
func (s *CustomerStore) List(ctx context.Context) ([]storage.CustomerRow, error) {
	rows, err := s.db.querier(ctx).Query(ctx, listCustomersSQL)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	return pgx.CollectRows(rows, scanCustomer)
}

func customerArgs(row storage.CustomerRow) []any {
	var (
		street, zipcode, city *string
		number                *int32
	)
	if a := row.Address; a != nil {
		n := int32(a.Number)
		street, number, zipcode, city = &a.Street, &n, &a.Zipcode, &a.City
	}
	return []any{row.ID, row.Name, street, number, zipcode, city, row.Active, row.RewardPoints}
}

func scanCustomer(r pgx.CollectableRow) (storage.CustomerRow, error) {
	var (
		row                   storage.CustomerRow
		street, zipcode, city *string
		number                *int32
	)
	err := r.Scan(
		&row.ID, &row.Name, &street, &number, &zipcode, &city,
		&row.Active, &row.RewardPoints,
	)
	if street != nil {
		row.Address = &storage.AddressRow{Street: *street, Zipcode: deref(zipcode), City: deref(city)}
		if number != nil {
			row.Address.Number = int(*number)
		}
	}
	return row, err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
