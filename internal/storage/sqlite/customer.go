package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/xenking/shop/internal/storage"
)

const (
	insertCustomerSQL = `INSERT INTO customers (id, name, street, number, zipcode, city, active, reward_points)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	updateCustomerSQL = `UPDATE customers
		SET name = ?, street = ?, number = ?, zipcode = ?, city = ?, active = ?, reward_points = ?
		WHERE id = ?`

	getCustomerSQL = `SELECT id, name, street, number, zipcode, city, active, reward_points
		FROM customers WHERE id = ?`

	listCustomersSQL = `SELECT id, name, street, number, zipcode, city, active, reward_points
		FROM customers ORDER BY id`
)

var _ storage.Store[storage.CustomerRow] = (*CustomerStore)(nil)

// CustomerStore implements the customers table on SQLite.
type CustomerStore struct {
	db *DB
}

// NewCustomerStore returns a CustomerStore that uses the given DB.
func NewCustomerStore(db *DB) *CustomerStore {
	return &CustomerStore{db: db}
}

// Insert adds a new customer row.
func (s *CustomerStore) Insert(ctx context.Context, row storage.CustomerRow) error {
	args := append([]any{row.ID}, customerColumns(row)...)
	if _, err := s.db.querier(ctx).ExecContext(ctx, insertCustomerSQL, args...); err != nil {
		return insertError("customer", row.ID, err)
	}
	return nil
}

// Update overwrites every column of the customer row with the same id.
func (s *CustomerStore) Update(ctx context.Context, row storage.CustomerRow) error {
	args := append(customerColumns(row), row.ID)
	res, err := s.db.querier(ctx).ExecContext(ctx, updateCustomerSQL, args...)
	if err != nil {
		return fmt.Errorf("updating customer %q: %w", row.ID, err)
	}
	return rowsAffected(res, "customer", row.ID)
}

// Get returns the customer row with the given id.
func (s *CustomerStore) Get(ctx context.Context, id string) (storage.CustomerRow, error) {
	row, err := scanCustomer(s.db.querier(ctx).QueryRowContext(ctx, getCustomerSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return storage.CustomerRow{}, fmt.Errorf("getting customer %q: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return storage.CustomerRow{}, fmt.Errorf("getting customer %q: %w", id, err)
	}
	return row, nil
}

// List returns all customer rows ordered by id.
func (s *CustomerStore) List(ctx context.Context) ([]storage.CustomerRow, error) {
	rows, err := s.db.querier(ctx).QueryContext(ctx, listCustomersSQL)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []storage.CustomerRow
	for rows.Next() {
		row, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	return result, nil
}

// customerColumns returns every column value except id, in statement order.
func customerColumns(row storage.CustomerRow) []any {
	var (
		street, zipcode, city sql.NullString
		number                sql.NullInt64
	)
	if a := row.Address; a != nil {
		street = sql.NullString{String: a.Street, Valid: true}
		number = sql.NullInt64{Int64: int64(a.Number), Valid: true}
		zipcode = sql.NullString{String: a.Zipcode, Valid: true}
		city = sql.NullString{String: a.City, Valid: true}
	}
	return []any{row.Name, street, number, zipcode, city, row.Active, row.RewardPoints}
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCustomer(r scanner) (storage.CustomerRow, error) {
	var (
		row                   storage.CustomerRow
		street, zipcode, city sql.NullString
		number                sql.NullInt64
	)
	if err := r.Scan(
		&row.ID, &row.Name, &street, &number, &zipcode, &city,
		&row.Active, &row.RewardPoints,
	); err != nil {
		return storage.CustomerRow{}, err
	}
	if street.Valid {
		row.Address = &storage.AddressRow{
			Street:  street.String,
			Number:  int(number.Int64),
			Zipcode: zipcode.String,
			City:    city.String,
		}
	}
	return row, nil
}
