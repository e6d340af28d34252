package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/xenking/shop/internal/storage"
)

const (
	insertOrderSQL = `INSERT INTO orders (id, customer_id, total) VALUES (?, ?, ?)`

	updateOrderSQL = `UPDATE orders SET customer_id = ?, total = ? WHERE id = ?`

	getOrderSQL = `SELECT id, customer_id, total FROM orders WHERE id = ?`

	listOrdersSQL = `SELECT id, customer_id, total FROM orders ORDER BY id`

	insertOrderItemSQL = `INSERT INTO order_items (id, order_id, product_id, name, price, quantity, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	deleteOrderItemsSQL = `DELETE FROM order_items WHERE order_id = ?`

	listOrderItemsSQL = `SELECT id, order_id, product_id, name, price, quantity
		FROM order_items WHERE order_id = ? ORDER BY position`

	listAllOrderItemsSQL = `SELECT id, order_id, product_id, name, price, quantity
		FROM order_items ORDER BY order_id, position`
)

var _ storage.Store[storage.OrderRow] = (*OrderStore)(nil)

// OrderStore implements the orders and order_items tables on SQLite.
// Every write touches both tables inside a single transaction.
type OrderStore struct {
	db *DB
}

// NewOrderStore returns an OrderStore that uses the given DB.
func NewOrderStore(db *DB) *OrderStore {
	return &OrderStore{db: db}
}

// Insert adds the order row and all of its item rows.
func (s *OrderStore) Insert(ctx context.Context, row storage.OrderRow) error {
	return s.db.WithTransaction(ctx, func(ctx context.Context) error {
		q := s.db.querier(ctx)
		if _, err := q.ExecContext(ctx, insertOrderSQL, row.ID, row.CustomerID, row.Total); err != nil {
			return insertError("order", row.ID, err)
		}
		return insertItems(ctx, q, row)
	})
}

// Update overwrites the order row and replaces its item rows with row.Items.
func (s *OrderStore) Update(ctx context.Context, row storage.OrderRow) error {
	return s.db.WithTransaction(ctx, func(ctx context.Context) error {
		q := s.db.querier(ctx)
		res, err := q.ExecContext(ctx, updateOrderSQL, row.CustomerID, row.Total, row.ID)
		if err != nil {
			return fmt.Errorf("updating order %q: %w", row.ID, err)
		}
		if err := rowsAffected(res, "order", row.ID); err != nil {
			return err
		}

		if _, err := q.ExecContext(ctx, deleteOrderItemsSQL, row.ID); err != nil {
			return fmt.Errorf("deleting items of order %q: %w", row.ID, err)
		}
		return insertItems(ctx, q, row)
	})
}

// Get returns the order row with its items in stored order.
func (s *OrderStore) Get(ctx context.Context, id string) (storage.OrderRow, error) {
	q := s.db.querier(ctx)

	var o storage.OrderRow
	err := q.QueryRowContext(ctx, getOrderSQL, id).Scan(&o.ID, &o.CustomerID, &o.Total)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.OrderRow{}, fmt.Errorf("getting order %q: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return storage.OrderRow{}, fmt.Errorf("getting order %q: %w", id, err)
	}

	o.Items, err = queryItems(ctx, q, listOrderItemsSQL, id)
	if err != nil {
		return storage.OrderRow{}, fmt.Errorf("getting items of order %q: %w", id, err)
	}
	return o, nil
}

// List returns all orders ordered by id, each with its items loaded.
func (s *OrderStore) List(ctx context.Context) ([]storage.OrderRow, error) {
	q := s.db.querier(ctx)

	orders, err := queryOrders(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	items, err := queryItems(ctx, q, listAllOrderItemsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing order items: %w", err)
	}
	return storage.AttachItems(orders, items), nil
}

func insertItems(ctx context.Context, q querier, row storage.OrderRow) error {
	for i, item := range row.Items {
		_, err := q.ExecContext(ctx, insertOrderItemSQL,
			item.ID, row.ID, item.ProductID, item.Name, item.Price, item.Quantity, i,
		)
		if err != nil {
			return insertError("order item", item.ID, err)
		}
	}
	return nil
}

// queryOrders reads every order row. The result set is closed before
// returning, so the single connection is free for the next query.
func queryOrders(ctx context.Context, q querier) ([]storage.OrderRow, error) {
	rows, err := q.QueryContext(ctx, listOrdersSQL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var orders []storage.OrderRow
	for rows.Next() {
		var o storage.OrderRow
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.Total); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func queryItems(ctx context.Context, q querier, query string, args ...any) ([]storage.OrderItemRow, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []storage.OrderItemRow
	for rows.Next() {
		var item storage.OrderItemRow
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Price, &item.Quantity,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
