// Package storage defines the row shapes persisted for each aggregate and the
// storage-client capability the repositories are built on. Backends live in
// the postgres and sqlite subpackages.
package storage

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when no row matches the requested id.
	ErrNotFound = errors.New("row not found")
	// ErrAlreadyExists is returned when inserting a row whose id is taken.
	ErrAlreadyExists = errors.New("row already exists")
)

// Store is the per-table storage client: insert-one, update-one, get-by-id
// and list-all. Update and Get return ErrNotFound for unknown ids, Insert
// returns ErrAlreadyExists for duplicate ids.
type Store[R any] interface {
	Insert(ctx context.Context, row R) error
	Update(ctx context.Context, row R) error
	Get(ctx context.Context, id string) (R, error)
	List(ctx context.Context) ([]R, error)
}

// AddressRow holds the nullable address columns of a customer row.
type AddressRow struct {
	Street  string
	Number  int
	Zipcode string
	City    string
}

// CustomerRow mirrors the customers table.
type CustomerRow struct {
	ID           string
	Name         string
	Address      *AddressRow
	Active       bool
	RewardPoints decimal.Decimal
}

// ProductRow mirrors the products table.
type ProductRow struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

// OrderRow mirrors the orders table together with its owned order_items rows.
// Items are stored and loaded in slice order.
type OrderRow struct {
	ID         string
	CustomerID string
	Total      decimal.Decimal
	Items      []OrderItemRow
}

// OrderItemRow mirrors the order_items table.
type OrderItemRow struct {
	ID        string
	OrderID   string
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
}

// Stores groups the three table clients of one backend.
type Stores struct {
	Customers Store[CustomerRow]
	Products  Store[ProductRow]
	Orders    Store[OrderRow]
}

// AttachItems distributes item rows, already sorted by position, onto their
// orders. Orders keep their order; orders without items get none.
func AttachItems(orders []OrderRow, items []OrderItemRow) []OrderRow {
	byOrder := make(map[string][]OrderItemRow, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}
	return orders
}
